package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene>",
		Short: "Validate a scene file without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Scene is valid")
			fmt.Fprintf(w, "  Canvas: %dx%d\n", sc.Canvas.Width, sc.Canvas.Height)
			fmt.Fprintf(w, "  Duration: %gs @ %d fps\n", sc.Duration, sc.FPS)
			fmt.Fprintf(w, "  Total frames: %d\n", sc.TotalFrames())
			fmt.Fprintf(w, "  Elements: %d\n", len(sc.Elements))
			return nil
		},
	}
}
