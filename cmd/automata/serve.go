package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the registered automata as a JSON API over HTTP.
Runs are kept in the configured run store. With --watch, definition
documents are reloaded when they change and /events streams the changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var opts []httpAdapter.Option
		var engineOpts []automata.Option
		if cfg.Server.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}
			engineOpts = append(engineOpts, automata.WithLifecycleHooks(
				observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger)),
			))
			opts = append(opts, httpAdapter.WithMetrics(reg))
		}

		engine, err := cli.NewEngine(cfg, logger, engineOpts...)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		store, closeStore, err := cli.NewRunStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		opts = append(opts,
			httpAdapter.WithStore(store),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(automata.Version),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           httpAdapter.NewHandler(engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if watch {
			go func() {
				if err := cli.WatchAndReload(ctx, engine, logger, cli.DefaultDebounce); err != nil {
					logger.Warn("watch disabled", "err", err)
				}
			}()
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening",
				"address", srv.Addr,
				"automata", len(engine.List()),
				"store", cfg.Store,
				"metrics", cfg.Server.Metrics,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("shutting down", "signal", ctx.Signal())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().Bool("watch", false, "Reload definitions when they change")
	serveCmd.Flags().String("store", "memory", "Run store: memory, file or redis")
	serveCmd.Flags().String("runs-dir", ".automata/runs", "Directory of the file run store")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "Redis address of the redis run store")
}
