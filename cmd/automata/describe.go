package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show the formal definition of an automaton",
	Long: `Prints the 5-tuple (Q, Σ, δ, q₀, F) as Markdown, rendered for the terminal
when stdout is one. With --yaml, prints a definition document instead, ready
to be dropped into a definitions directory.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		raw, _ := cmd.Flags().GetBool("raw")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		automaton, err := a.engine.Inspect(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if asYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(loamAdapter.Export(automaton.Definition()))
		}

		md, err := tui.DefinitionMarkdown(automaton)
		if err != nil {
			return err
		}
		if raw || !isTerminal(out) {
			fmt.Fprint(out, md)
			return nil
		}

		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().Bool("yaml", false, "Print a YAML definition document")
	describeCmd.Flags().Bool("raw", false, "Print Markdown without terminal rendering")
}
