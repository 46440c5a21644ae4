package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/output"
	"github.com/Carmen-Shannon/termcad/engine/profiler"
	"github.com/Carmen-Shannon/termcad/engine/renderer"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/spf13/cobra"
)

var postEffects = []string{"bloom", "scanlines", "chromatic_aberration", "noise", "vignette", "crt_curvature"}

type toolInfo struct {
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	Primitives    []string        `json:"primitives"`
	Geometries    []string        `json:"geometries"`
	PostEffects   []string        `json:"post_effects"`
	OutputFormats []string        `json:"output_formats"`
	Features      map[string]bool `json:"features"`
	Host          profiler.Host   `json:"host"`
}

func newInfoCmd() *cobra.Command {
	var asJSON, probeGPU bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show tool info and capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := collectInfo(cmd, probeGPU)
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				return common.Wrap(common.KindIO, enc.Encode(info))
			}

			fmt.Fprintf(w, "termcad v%s\n", info.Version)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Terminal CAD aesthetic GIF generator")
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Primitives: %s\n", strings.Join(info.Primitives, ", "))
			fmt.Fprintf(w, "Geometries: %s\n", strings.Join(info.Geometries, ", "))
			fmt.Fprintf(w, "Post-effects: %s\n", strings.Join(info.PostEffects, ", "))
			fmt.Fprintln(w, "Output: GIF, PNG frames")
			fmt.Fprintln(w)
			h := info.Host
			fmt.Fprintf(w, "Host: %s/%s, %d CPUs, %s memory\n", h.OS, h.Arch, h.CPUCount, h.MemoryTotal.HumanReadable())
			if h.GPUAdapter != "" {
				fmt.Fprintf(w, "GPU: %s\n", h.GPUAdapter)
			}
			fmt.Fprintf(w, "ffmpeg: %t\n", info.Features["ffmpeg"])
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&probeGPU, "gpu", true, "open the GPU to report the adapter name")
	return cmd
}

func collectInfo(cmd *cobra.Command, probeGPU bool) toolInfo {
	info := toolInfo{
		Name:          "termcad",
		Version:       version,
		PostEffects:   postEffects,
		OutputFormats: []string{"gif", "png"},
		Features: map[string]bool{
			"animation_expressions": true,
			"json_output":           true,
			"headless_rendering":    true,
			"ffmpeg":                output.FFmpegAvailable(),
			"native_gif":            true,
		},
		Host: profiler.HostInfo(cmd.Context()),
	}
	for _, t := range scene.ElementTypes {
		info.Primitives = append(info.Primitives, string(t))
	}
	for _, g := range scene.GeometryTypes {
		info.Geometries = append(info.Geometries, string(g))
	}
	if probeGPU {
		name, err := renderer.ProbeAdapter(false)
		if err != nil {
			common.Logger().Debug("no GPU adapter", "error", err)
		}
		info.Host.GPUAdapter = name
	}
	return info
}
