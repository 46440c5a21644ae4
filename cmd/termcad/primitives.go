package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/primitives"
	"github.com/spf13/cobra"
)

func newPrimitivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "primitives [name]",
		Short: "List available primitives and their parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				listPrimitives(w)
				return nil
			}
			doc, err := primitives.Lookup(args[0])
			if err != nil {
				return common.Wrap(common.KindInvalidScene, err)
			}
			describePrimitive(w, doc)
			return nil
		},
	}
}

func listPrimitives(w io.Writer) {
	fmt.Fprintln(w, "Available primitives:")
	fmt.Fprintln(w)
	for _, d := range primitives.Catalog() {
		fmt.Fprintf(w, "  %-11s %s\n", d.Name, d.Summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use `termcad primitives <name>` for details on a specific primitive.")
}

func describePrimitive(w io.Writer, d primitives.Doc) {
	fmt.Fprintf(w, "%s - %s\n", d.Name, d.Summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parameters:")
	for _, p := range d.Params {
		fmt.Fprintf(w, "  %-15s %s\n", p.Name, p.Description)
	}
}
