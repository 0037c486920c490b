package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records run outcomes as Prometheus collectors.
type Metrics struct {
	runs        *prometheus.CounterVec
	inputLength *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of runs by automaton and verdict",
			},
			[]string{"automaton", "verdict"},
		),
		inputLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_input_symbols",
				Help:    "Length of run inputs in symbols",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"automaton"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"automaton"},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.inputLength, m.transitions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.transitions.WithLabelValues(e.Automaton).Inc()
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			m.runs.WithLabelValues(e.Automaton, string(e.Run.Verdict)).Inc()
			m.inputLength.WithLabelValues(e.Automaton).Observe(float64(len([]rune(e.Input))))
		},
	}
}
