package runtime

import "github.com/aretw0/automata/pkg/domain"

// Run feeds input through a, one rune at a time, and classifies the outcome.
//
// The walk stops at the first symbol outside the alphabet or without a
// transition from the current state; the trace then holds the states visited
// up to that point. Run is total and has no side effects.
func Run(a *domain.Automaton, input string) domain.Run {
	current := a.Start()
	run := domain.Run{
		Automaton: a.Name(),
		Input:     input,
		Trace:     []domain.State{current},
	}

	for _, r := range input {
		sym := domain.Symbol(r)
		if !a.InAlphabet(sym) {
			return reject(run, domain.VerdictInvalidSymbol, sym)
		}
		next, ok := a.Next(current, sym)
		if !ok {
			return reject(run, domain.VerdictNoTransition, sym)
		}
		current = next
		run.Trace = append(run.Trace, current)
		run.Consumed++
	}

	run.Accepted = a.IsAccepting(current)
	if run.Accepted {
		run.Verdict = domain.VerdictAccepted
	} else {
		run.Verdict = domain.VerdictNotAccepting
	}
	return run
}

func reject(run domain.Run, verdict domain.Verdict, sym domain.Symbol) domain.Run {
	run.Accepted = false
	run.Verdict = verdict
	run.Offending = &sym
	return run
}
