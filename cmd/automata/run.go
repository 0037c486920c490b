package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <name> [input...]",
	Short: "Classify input strings",
	Long: `Runs every input through the named automaton and prints verdict and trace.
Without input arguments, one input per line is read from stdin.
Rejections are results, not failures: the exit status is 0.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		persist, _ := cmd.Flags().GetBool("save")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		name, inputs := args[0], args[1:]
		if len(inputs) == 0 {
			inputs, err = readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}

		runs, err := a.engine.RunBatch(cmd.Context(), name, inputs)
		if err != nil {
			return err
		}

		var records []*domain.RunRecord
		if persist {
			store, closeStore, err := cli.NewRunStore(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			for _, run := range runs {
				record := &domain.RunRecord{ID: uuid.NewString(), Run: run, CreatedAt: time.Now().UTC()}
				if err := store.Save(cmd.Context(), record); err != nil {
					return fmt.Errorf("failed to save run: %w", err)
				}
				records = append(records, record)
			}
			a.logger.Info("runs saved", "store", a.cfg.Store, "count", len(records))
		}

		out := cmd.OutOrStdout()
		if jsonMode {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if persist {
				return enc.Encode(records)
			}
			return enc.Encode(runs)
		}

		cli.PrintRuns(out, styler(cmd), runs)
		for _, r := range records {
			fmt.Fprintf(out, "saved %s\n", r.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print runs as JSON")
	runCmd.Flags().Bool("save", false, "Persist runs in the configured run store")
	runCmd.Flags().String("store", "memory", "Run store: memory, file or redis")
	runCmd.Flags().String("runs-dir", ".automata/runs", "Directory of the file run store")
	runCmd.Flags().String("redis-addr", "localhost:6379", "Redis address of the redis run store")
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return lines, nil
}

// styler disables colour when output is not the process stdout.
func styler(cmd *cobra.Command) tui.Styler {
	if isTerminal(cmd.OutOrStdout()) {
		return tui.DefaultStyler()
	}
	return tui.NewStyler(termenv.Ascii)
}
