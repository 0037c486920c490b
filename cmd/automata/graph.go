package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <name>",
	Short: "Export the state diagram of an automaton",
	Long: `Outputs a Mermaid flowchart (default) or a Graphviz DOT digraph.
With --input, the states visited by that input are highlighted.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		r, err := a.engine.Recognizer(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			overlay = graph.OverlayFromRun(r.Recognize(input))
		}

		out, err := graph.Render(format, r.Automaton(), overlay)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", graph.FormatMermaid, "Output format: mermaid or dot")
	graphCmd.Flags().String("input", "", "Highlight the trace of this input")
}
