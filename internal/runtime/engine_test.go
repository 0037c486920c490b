package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	m := runtime.NewMachine(abAutomaton(t))

	var mu sync.Mutex
	var events []string
	var steps []domain.StepEvent
	var completed *domain.RunEvent

	hooks := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, string(e.Type))
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, string(e.Type))
			steps = append(steps, *e)
		},
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, string(e.Type))
			completed = e
		},
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	run := engine.Run(context.Background(), m, "abc")

	if run.Verdict != domain.VerdictInvalidSymbol {
		t.Fatalf("Expected invalid symbol verdict, got %s", run.Verdict)
	}

	want := []string{"run_start", "step", "step", "run_complete"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("Expected events %v, got %v", want, events)
	}

	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(steps))
	}
	if steps[0].From != "q0" || steps[0].Symbol != 'a' || steps[0].To != "q1" {
		t.Errorf("Unexpected first step: %+v", steps[0])
	}
	if steps[1].Index != 1 || steps[1].Symbol != 'b' || steps[1].To != "q2" {
		t.Errorf("Unexpected second step: %+v", steps[1])
	}

	if completed == nil || completed.Run == nil {
		t.Fatal("Expected OnRunComplete with a run")
	}
	if completed.Automaton != "ab-pattern" || completed.Input != "abc" {
		t.Errorf("Unexpected completion event: %+v", completed)
	}

	// Hooks receive a copy; tampering must not leak into the returned run.
	completed.Run.Trace[0] = "tampered"
	if run.Trace[0] != "q0" {
		t.Errorf("Hook mutated the run: %v", run.Trace)
	}
}

func TestEngine_HooksDoNotChangeOutcome(t *testing.T) {
	m := runtime.NewMachine(identifierAutomaton(t))

	plain := runtime.NewEngine().Run(context.Background(), m, "Uptc9")
	hooked := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) { e.To = "nowhere" },
	})).Run(context.Background(), m, "Uptc9")

	if plain.Path() != hooked.Path() || plain.Verdict != hooked.Verdict {
		t.Errorf("Expected identical runs, got %s (%s) and %s (%s)", plain.Path(), plain.Verdict, hooked.Path(), hooked.Verdict)
	}
}

func TestEngine_RunBatchPreservesOrder(t *testing.T) {
	m := runtime.NewMachine(identifierAutomaton(t))
	inputs := []string{"A123", "1234", "Sogamoso2025", "soga2025", "Uptc9", "UPTC", "X0", "aa99", "Z99", "AAT"}

	for _, limit := range []int{1, 3, 0} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			engine := runtime.NewEngine(runtime.WithConcurrency(limit))
			runs, err := engine.RunBatch(context.Background(), m, inputs)
			if err != nil {
				t.Fatalf("RunBatch failed: %v", err)
			}
			if len(runs) != len(inputs) {
				t.Fatalf("Expected %d runs, got %d", len(inputs), len(runs))
			}
			for i, run := range runs {
				if run.Input != inputs[i] {
					t.Errorf("run %d: expected input %q, got %q", i, inputs[i], run.Input)
				}
				if want := runtime.Run(m.Automaton(), inputs[i]); want.Verdict != run.Verdict {
					t.Errorf("run %d: expected %s, got %s", i, want.Verdict, run.Verdict)
				}
			}
		})
	}
}

func TestEngine_RunBatchCancelled(t *testing.T) {
	m := runtime.NewMachine(abAutomaton(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.NewEngine().RunBatch(ctx, m, []string{"aa", "ba"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestEngine_RunBatchEmpty(t *testing.T) {
	m := runtime.NewMachine(abAutomaton(t))
	runs, err := runtime.NewEngine().RunBatch(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
