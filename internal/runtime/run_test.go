package runtime_test

import (
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abAutomaton accepts strings over {a,b} that end in "a" after at least two symbols
// and never contain "bb".
func abAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	b := dsl.New("ab-pattern").Alphabet(dsl.Literal("ab"))
	b.State("q0").Start().On(dsl.Literal("a"), "q1").On(dsl.Literal("b"), "q2")
	b.State("q1").On(dsl.Literal("a"), "q4").On(dsl.Literal("b"), "q2")
	b.State("q2").On(dsl.Literal("a"), "q4").On(dsl.Literal("b"), "q3")
	b.State("q3")
	b.State("q4").Accepting().On(dsl.Literal("a"), "q4").On(dsl.Literal("b"), "q2")

	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func identifierAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	b := dsl.New("identifier").Alphabet(dsl.Upper, dsl.Lower, dsl.Digits)
	b.State("q0").Start().On(dsl.Upper, "q1")
	b.State("q1").On(dsl.Lower, "q1").On(dsl.Digits, "q2")
	b.State("q2").Accepting().On(dsl.Digits, "q2")

	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func trace(states ...domain.State) []domain.State { return states }

func TestRun_Verdicts(t *testing.T) {
	ab := abAutomaton(t)
	id := identifierAutomaton(t)

	tests := []struct {
		name      string
		automaton *domain.Automaton
		input     string
		verdict   domain.Verdict
		trace     []domain.State
		consumed  int
		offending rune
	}{
		{name: "aa accepted", automaton: ab, input: "aa", verdict: domain.VerdictAccepted, trace: trace("q0", "q1", "q4"), consumed: 2},
		{name: "ba accepted", automaton: ab, input: "ba", verdict: domain.VerdictAccepted, trace: trace("q0", "q2", "q4"), consumed: 2},
		{name: "bb ends in non accepting dead end", automaton: ab, input: "bb", verdict: domain.VerdictNotAccepting, trace: trace("q0", "q2", "q3"), consumed: 2},
		{name: "single a", automaton: ab, input: "a", verdict: domain.VerdictNotAccepting, trace: trace("q0", "q1"), consumed: 1},
		{name: "no transition out of q3", automaton: ab, input: "bba", verdict: domain.VerdictNoTransition, trace: trace("q0", "q2", "q3"), consumed: 2, offending: 'a'},
		{name: "symbol outside alphabet", automaton: ab, input: "ac", verdict: domain.VerdictInvalidSymbol, trace: trace("q0", "q1"), consumed: 1, offending: 'c'},
		{name: "empty input", automaton: ab, input: "", verdict: domain.VerdictNotAccepting, trace: trace("q0")},
		{name: "A1 accepted", automaton: id, input: "A1", verdict: domain.VerdictAccepted, trace: trace("q0", "q1", "q2"), consumed: 2},
		{name: "Sogamoso2025 accepted", automaton: id, input: "Sogamoso2025", verdict: domain.VerdictAccepted, consumed: 12},
		{name: "lowercase start", automaton: id, input: "abc123", verdict: domain.VerdictNoTransition, trace: trace("q0"), offending: 'a'},
		{name: "letter after digits", automaton: id, input: "A1b2", verdict: domain.VerdictNoTransition, trace: trace("q0", "q1", "q2"), consumed: 2, offending: 'b'},
		{name: "punctuation", automaton: id, input: "A-1", verdict: domain.VerdictInvalidSymbol, trace: trace("q0", "q1"), consumed: 1, offending: '-'},
		{name: "multibyte rune is one symbol", automaton: id, input: "Añ1", verdict: domain.VerdictInvalidSymbol, trace: trace("q0", "q1"), consumed: 1, offending: 'ñ'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := runtime.Run(tt.automaton, tt.input)

			assert.Equal(t, tt.automaton.Name(), run.Automaton)
			assert.Equal(t, tt.input, run.Input)
			assert.Equal(t, tt.verdict, run.Verdict)
			assert.Equal(t, tt.verdict == domain.VerdictAccepted, run.Accepted)
			assert.Equal(t, tt.consumed, run.Consumed)
			if tt.trace != nil {
				assert.Equal(t, tt.trace, run.Trace)
			}
			if tt.offending != 0 {
				require.NotNil(t, run.Offending)
				assert.Equal(t, domain.Symbol(tt.offending), *run.Offending)
			} else {
				assert.Nil(t, run.Offending)
			}
		})
	}
}

func TestRun_TraceShape(t *testing.T) {
	a := abAutomaton(t)
	inputs := []string{"", "a", "ab", "abba", "aababaabb", "abababababab", "bbbbbbb", "xyz", "aaaaaaa"}

	for _, input := range inputs {
		run := runtime.Run(a, input)

		require.NotEmpty(t, run.Trace, input)
		assert.Equal(t, a.Start(), run.Trace[0], "trace starts at the start state")
		assert.Len(t, run.Trace, run.Consumed+1, "one state per consumed symbol")
		assert.LessOrEqual(t, run.Consumed, len([]rune(input)))

		for i := 1; i < len(run.Trace); i++ {
			to, ok := a.Next(run.Trace[i-1], domain.Symbol([]rune(input)[i-1]))
			require.True(t, ok, "step %d of %q follows δ", i, input)
			assert.Equal(t, to, run.Trace[i])
		}

		if run.Accepted {
			assert.Equal(t, len([]rune(input)), run.Consumed, "accepted runs consume the whole input")
			assert.True(t, a.IsAccepting(run.Final()))
		}
	}
}

func TestRun_IsDeterministic(t *testing.T) {
	a := identifierAutomaton(t)
	first := runtime.Run(a, "Uptc9")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, runtime.Run(a, "Uptc9"))
	}
}

func TestRun_DoesNotMutateAutomaton(t *testing.T) {
	a := abAutomaton(t)
	before := a.Definition()
	_ = runtime.Run(a, "abba")
	_ = runtime.Run(a, "zz")
	assert.Equal(t, before, a.Definition())
}

func TestMachine_Recognize(t *testing.T) {
	a := abAutomaton(t)
	m := runtime.NewMachine(a)

	assert.Equal(t, "ab-pattern", m.Name())
	assert.Same(t, a, m.Automaton())
	assert.Equal(t, runtime.Run(a, "aa"), m.Recognize("aa"))
}
