package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo [name]",
	Short: "Run the sample strings of the built-in automata",
	Long: `Prints, for each built-in automaton (or only the named one), its formal
definition, transition table, per-state patterns and the verdicts of its
sample strings compared with the expected ones.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		names := a.engine.List()
		if len(args) == 1 {
			names = args[:1]
		}

		out := cmd.OutOrStdout()
		if !noBanner && isTerminal(out) {
			tui.PrintBanner(out)
		}

		var mismatches, shown int
		for _, name := range names {
			r, err := a.engine.Recognizer(name)
			if err != nil {
				return err
			}
			samples := catalog.Samples(name)
			if len(samples) == 0 {
				if len(args) == 1 {
					return fmt.Errorf("automaton %q has no sample strings", name)
				}
				continue
			}

			inputs := make([]string, len(samples))
			for i, s := range samples {
				inputs[i] = s.Input
			}
			runs, err := a.engine.RunBatch(cmd.Context(), name, inputs)
			if err != nil {
				return err
			}

			res, err := cli.PrintDemo(out, styler(cmd), r, samples, runs)
			if err != nil {
				return err
			}
			mismatches += res.Mismatches
			shown++
		}

		if mismatches > 0 {
			return fmt.Errorf("%d sample(s) did not match their expected verdict", mismatches)
		}
		a.logger.Debug("demo complete", "automata", shown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
