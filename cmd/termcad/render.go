package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine"
	"github.com/Carmen-Shannon/termcad/engine/renderer"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	output          string
	frames          bool
	json            bool
	supersample     uint32
	nativeGIF       bool
	workers         int
	profile         bool
	fallbackAdapter bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene to GIF or PNG frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (GIF) or directory (with --frames)")
	f.BoolVar(&opts.frames, "frames", false, "write PNG frames to a directory instead of a GIF")
	f.BoolVar(&opts.json, "json", false, "print JSON progress and status lines")
	f.Uint32Var(&opts.supersample, "supersample", 1, "render at N times the canvas size and downscale")
	f.BoolVar(&opts.nativeGIF, "native-gif", false, "encode the GIF in-process instead of with ffmpeg")
	f.IntVar(&opts.workers, "workers", 0, "PNG encoder goroutines (default: CPU count - 1)")
	f.BoolVar(&opts.profile, "profile", false, "log frame rate and memory statistics while rendering")
	f.BoolVar(&opts.fallbackAdapter, "fallback-adapter", false, "use the software fallback GPU adapter")
	return cmd
}

func runRender(cmd *cobra.Command, scenePath string, opts *renderOptions) error {
	sc, err := loadScene(scenePath)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = defaultOutput(scenePath, opts.frames)
	}
	format := engine.FormatGIF
	if opts.frames {
		format = engine.FormatFrames
	}

	stdout := cmd.OutOrStdout()
	e := engine.NewEngine(
		engine.WithFormat(format),
		engine.WithNativeGIF(opts.nativeGIF),
		engine.WithSupersample(opts.supersample),
		engine.WithWorkers(opts.workers),
		engine.WithProfiling(opts.profile),
		engine.WithRendererOptions(renderer.WithForceSoftwareRenderer(opts.fallbackAdapter)),
	)
	if opts.json {
		e.SetProgressCallback(jsonProgress(stdout))
	}

	res, err := e.Render(cmd.Context(), sc, out)
	if err != nil {
		return err
	}
	if opts.json {
		return nil
	}

	if res.Format == engine.FormatFrames {
		fmt.Fprintf(stdout, "Wrote %d frames to %s\n", res.Frames, res.Output)
		return nil
	}
	fmt.Fprintf(stdout, "Wrote %s (%d frames)\n", res.Output, res.Frames)
	common.Logger().Info("render complete",
		"size", datasize.ByteSize(res.SizeBytes).HumanReadable(),
		"elapsed", res.Elapsed,
	)
	return nil
}

// jsonProgress prints each event as one JSON line.
func jsonProgress(w io.Writer) common.ProgressFunc {
	enc := json.NewEncoder(w)
	return func(ev common.ProgressEvent) {
		if err := enc.Encode(ev); err != nil {
			common.Logger().Warn("failed to write progress", "error", err)
		}
	}
}
