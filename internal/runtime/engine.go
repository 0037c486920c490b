package runtime

import (
	"context"
	"io"
	"log/slog"
	goruntime "runtime"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Engine executes recognizers and reports what happened through hooks and logs.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	concurrency int
	now         func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConcurrency limits the number of runs RunBatch executes at once.
// Values below 1 fall back to GOMAXPROCS.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = goruntime.GOMAXPROCS(0)
	}
	return e
}

// Run classifies input with r and fires the lifecycle hooks.
// Hooks observe the run; they cannot alter its result.
func (e *Engine) Run(ctx context.Context, r ports.Recognizer, input string) domain.Run {
	name := r.Name()
	started := e.now()

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventRunStart, Automaton: name},
			Input:     input,
		})
	}

	run := r.Recognize(input)

	if e.hooks.OnStep != nil {
		symbols := []rune(input)
		for i := 1; i < len(run.Trace) && i-1 < len(symbols); i++ {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventStep, Automaton: name},
				Index:     i - 1,
				From:      run.Trace[i-1],
				Symbol:    domain.Symbol(symbols[i-1]),
				To:        run.Trace[i],
			})
		}
	}

	elapsed := e.now().Sub(started)
	e.logger.DebugContext(ctx, "run complete",
		"automaton", name,
		"input", input,
		"verdict", run.Verdict,
		"path", run.Path(),
		"duration", elapsed,
	)

	if e.hooks.OnRunComplete != nil {
		snapshot := run.Clone()
		e.hooks.OnRunComplete(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventRunComplete, Automaton: name},
			Input:     input,
			Run:       &snapshot,
			Duration:  elapsed,
		})
	}

	return run
}

// RunBatch classifies every input concurrently and returns the runs in input order.
// The only error is the context's, when it is cancelled before all runs finish.
func (e *Engine) RunBatch(ctx context.Context, r ports.Recognizer, inputs []string) ([]domain.Run, error) {
	results := make([]domain.Run, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, input := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Run(gctx, r, input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "batch complete", "automaton", r.Name(), "inputs", len(inputs))
	return results, nil
}
