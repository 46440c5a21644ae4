package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/spf13/cobra"
)

// version is the release reported by --version and info.
const version = "0.1.0"

type rootOptions struct {
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "termcad",
		Short:         "Terminal CAD aesthetic GIF generator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			common.SetLogger(newLogger(cmd.ErrOrStderr(), opts))
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "log errors only")

	cmd.AddCommand(
		newRenderCmd(),
		newValidateCmd(),
		newInitCmd(),
		newPrimitivesCmd(),
		newInfoCmd(),
	)
	return cmd
}

func newLogger(w io.Writer, opts *rootOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.quiet:
		level = slog.LevelError
	case opts.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadScene reads, decodes and validates a scene file. Unreadable files are KindIO, everything else KindInvalidScene.
func loadScene(path string) (*scene.Scene, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, common.Errorf(common.KindIO, "Failed to read scene file: %w", err)
	}
	sc, err := scene.Load(path)
	if err != nil {
		return nil, common.Errorf(common.KindInvalidScene, "Parse error: %w", err)
	}
	if err := scene.Validate(sc); err != nil {
		return nil, common.Wrap(common.KindInvalidScene, err)
	}
	return sc, nil
}

// defaultOutput derives the output path from the scene file name: <stem>.gif or <stem>_frames.
func defaultOutput(scenePath string, frames bool) string {
	base := filepath.Base(scenePath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	if frames {
		return stem + "_frames"
	}
	return stem + ".gif"
}
