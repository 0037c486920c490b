package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every definition in a directory",
	Long: `Loads every definition document of the directory (default: --dir, or the
current directory) and reports all construction errors at once. Unreachable
states are reported as warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dir := cfg.DefinitionsDir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = "."
		}

		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", dir, err)
		}

		out := cmd.OutOrStdout()
		recognizers, err := automata.Compile(loader)
		if err != nil {
			var compileErr *automata.CompileError
			if errors.As(err, &compileErr) {
				for _, e := range compileErr.Errors {
					fmt.Fprintf(out, "✗ %v\n", e)
				}
				return fmt.Errorf("%d invalid definition(s) in %s", len(compileErr.Errors), dir)
			}
			return err
		}

		for _, r := range recognizers {
			fmt.Fprintf(out, "✓ %s\n", r.Name())
			for _, s := range r.Automaton().Unreachable() {
				fmt.Fprintf(out, "  warning: state %s is unreachable\n", s)
			}
		}
		logger.Debug("validation complete", "dir", dir, "definitions", len(recognizers))
		fmt.Fprintf(out, "%d definition(s) are valid ✅\n", len(recognizers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
