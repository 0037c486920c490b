package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata runs deterministic finite automata over input strings",
	Long: `Automata classifies strings with deterministic finite automata.

It ships with four built-in recognizers (an {a,b} pattern, identifiers,
product codes and institutional e-mail addresses) and loads more from a
directory of YAML, Markdown or JSON definition documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default automata.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "Directory of definition documents merged into the catalog")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Maximum parallel runs in a batch (0 = GOMAXPROCS)")
}

// app is what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *automata.Engine
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File != "" {
		logger.Debug("config loaded", "file", cfg.File)
	}
	return cfg, logger, nil
}

func newApp(cmd *cobra.Command, opts ...automata.Option) (*app, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	engine, err := cli.NewEngine(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, engine: engine}, nil
}

func (a *app) recognizers() []ports.Recognizer {
	names := a.engine.List()
	out := make([]ports.Recognizer, 0, len(names))
	for _, name := range names {
		if r, err := a.engine.Recognizer(name); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// completeNames offers registered automaton names for the first argument.
func completeNames(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := newApp(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := a.engine.List()
	sort.Strings(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}
