package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
)

// NewLogger builds the application logger from the resolved configuration.
func NewLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(w, level, cfg.LogFormat)
}

// NewEngine initializes the automata engine with standard CLI conventions:
// the catalog, plus the definitions directory when one is configured.
func NewEngine(cfg *config.Config, logger *slog.Logger, opts ...automata.Option) (*automata.Engine, error) {
	engineOpts := []automata.Option{
		automata.WithLogger(logger),
		automata.WithConcurrency(cfg.Concurrency),
	}
	if cfg.DefinitionsDir != "" {
		engineOpts = append(engineOpts, automata.WithDirectory(cfg.DefinitionsDir))
	}

	engine, err := automata.New(append(engineOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// NewRunStore opens the configured RunStore, wrapped with the privacy
// middlewares the configuration asks for. The returned function releases it.
func NewRunStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.RunStore, func() error, error) {
	store, closeFn, err := openRunStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mws, err := privacyMiddlewares(cfg.Privacy)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if len(mws) > 0 {
		logger.Debug("protecting saved runs", "redact", cfg.Privacy.Redact, "encrypted", cfg.Privacy.EncryptionKey != "")
	}
	return middleware.Chain(store, mws...), closeFn, nil
}

func openRunStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.RunStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreFile:
		logger.Debug("using file run store", "dir", cfg.RunsDir)
		return file.New(cfg.RunsDir), noop, nil

	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithTTL(cfg.Redis.TTL))
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis at %s is unreachable: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("using redis run store", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		return store, store.Close, nil

	default:
		return memory.NewStore(), noop, nil
	}
}

// privacyMiddlewares masks before it encrypts.
func privacyMiddlewares(p config.PrivacyConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(p.Redact) > 0 {
		mw, err := middleware.NewPIIMiddleware(p.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	active, fallback, err := p.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}
