package domain

import (
	"strings"
	"time"
)

// Verdict classifies how a run ended.
type Verdict string

const (
	VerdictAccepted       Verdict = "accepted"
	VerdictInvalidSymbol  Verdict = "rejected_invalid_symbol"
	VerdictNoTransition   Verdict = "rejected_no_transition"
	VerdictNotAccepting   Verdict = "rejected_not_accepting"
	VerdictSuffixMismatch Verdict = "rejected_suffix_mismatch" // two-phase recognizers only
)

// Rejected reports whether the verdict is any of the rejection causes.
func (v Verdict) Rejected() bool {
	return v != VerdictAccepted
}

// Run is the outcome of feeding one input string through a recognizer.
type Run struct {
	Automaton string  `json:"automaton"`
	Input     string  `json:"input"`
	Trace     []State `json:"trace"`
	Accepted  bool    `json:"accepted"`
	Verdict   Verdict `json:"verdict"`

	// Consumed counts the symbols that produced a transition.
	Consumed int `json:"consumed"`

	// Offending is the symbol that stopped an early rejection.
	Offending *Symbol `json:"offending,omitempty"`
}

// Final returns the last state of the trace.
func (r Run) Final() State {
	if len(r.Trace) == 0 {
		return ""
	}
	return r.Trace[len(r.Trace)-1]
}

// Path renders the trace as "q0 → q1 → q2".
func (r Run) Path() string {
	parts := make([]string, len(r.Trace))
	for i, s := range r.Trace {
		parts[i] = string(s)
	}
	return strings.Join(parts, " → ")
}

// Clone returns a deep copy of the run.
func (r Run) Clone() Run {
	out := r
	out.Trace = append([]State(nil), r.Trace...)
	if r.Offending != nil {
		sym := *r.Offending
		out.Offending = &sym
	}
	return out
}

// RunRecord is a Run persisted by a RunStore.
type RunRecord struct {
	ID        string    `json:"id"`
	Run       Run       `json:"run"`
	CreatedAt time.Time `json:"created_at"`
}
