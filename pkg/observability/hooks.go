package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks logs every run completion at info level and every step at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"automaton", e.Automaton,
				"index", e.Index,
				"from", e.From,
				"symbol", e.Symbol,
				"to", e.To,
			)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run",
				"automaton", e.Automaton,
				"input", e.Input,
				"verdict", e.Run.Verdict,
				"final", e.Run.Final(),
				"duration", e.Duration,
			)
		},
	}
}

// Combine fans every event out to each set of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var starts []func(context.Context, *domain.RunEvent)
	var steps []func(context.Context, *domain.StepEvent)
	var completes []func(context.Context, *domain.RunEvent)
	for _, h := range hooks {
		if h.OnRunStart != nil {
			starts = append(starts, h.OnRunStart)
		}
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnRunComplete != nil {
			completes = append(completes, h.OnRunComplete)
		}
	}

	if len(starts) > 0 {
		out.OnRunStart = func(ctx context.Context, e *domain.RunEvent) {
			for _, f := range starts {
				f(ctx, e)
			}
		}
	}
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, f := range steps {
				f(ctx, e)
			}
		}
	}
	if len(completes) > 0 {
		out.OnRunComplete = func(ctx context.Context, e *domain.RunEvent) {
			for _, f := range completes {
				f(ctx, e)
			}
		}
	}
	return out
}
