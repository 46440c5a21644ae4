package main

import (
	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var template, format string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := scene.Template(template)
			if err != nil {
				return common.Wrap(common.KindInvalidScene, err)
			}
			f, err := scene.ParseFormat(format)
			if err != nil {
				return common.Wrap(common.KindInvalidScene, err)
			}
			doc, err := scene.Encode(sc, f)
			if err != nil {
				return common.Wrap(common.KindIO, err)
			}
			if len(doc) > 0 && doc[len(doc)-1] != '\n' {
				doc = append(doc, '\n')
			}
			_, err = cmd.OutOrStdout().Write(doc)
			return common.Wrap(common.KindIO, err)
		},
	}
	cmd.Flags().StringVar(&template, "template", "spinning-cube", "template name (spinning-cube, grid-flythrough, text-terminal)")
	cmd.Flags().StringVar(&format, "format", "json", "scene encoding (json, yaml, toml)")
	return cmd
}
