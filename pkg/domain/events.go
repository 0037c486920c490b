package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart    EventType = "run_start"
	EventStep        EventType = "step"
	EventRunComplete EventType = "run_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// StepEvent represents one transition taken during a run.
type StepEvent struct {
	EventBase
	Index  int    `json:"index"`
	From   State  `json:"from"`
	Symbol Symbol `json:"symbol"`
	To     State  `json:"to"`
}

// RunEvent represents the beginning or the end of a run.
// Run is nil for EventRunStart.
type RunEvent struct {
	EventBase
	Input    string        `json:"input"`
	Run      *Run          `json:"run,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks observe runs; they cannot change their outcome.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnStep        func(context.Context, *StepEvent)
	OnRunComplete func(context.Context, *RunEvent)
}
