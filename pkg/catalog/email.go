package catalog

import (
	"strings"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// EmailValidator recognises institutional addresses in two phases.
// The prefix automaton consumes the input up to and including the first '@';
// the remainder must then equal the domain exactly.
type EmailValidator struct {
	prefix *domain.Automaton
	domain string
}

var _ ports.Recognizer = (*EmailValidator)(nil)

// NewEmailValidator returns a validator over the built-in prefix automaton and EmailDomain.
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{prefix: EmailPrefix(), domain: EmailDomain}
}

// Name returns the registry name.
func (v *EmailValidator) Name() string { return v.prefix.Name() }

// Automaton returns the prefix automaton.
func (v *EmailValidator) Automaton() *domain.Automaton { return v.prefix }

// Domain returns the required suffix.
func (v *EmailValidator) Domain() string { return v.domain }

// Recognize classifies input. A prefix rejection is returned unchanged; a
// mismatching domain yields VerdictSuffixMismatch with the prefix trace.
// Consumed counts prefix symbols only.
func (v *EmailValidator) Recognize(input string) domain.Run {
	head, tail, found := strings.Cut(input, "@")
	if !found {
		return v.withInput(runtime.Run(v.prefix, input), input)
	}

	run := v.withInput(runtime.Run(v.prefix, head+"@"), input)
	if !run.Accepted {
		return run
	}
	if tail != v.domain {
		run.Accepted = false
		run.Verdict = domain.VerdictSuffixMismatch
	}
	return run
}

func (v *EmailValidator) withInput(run domain.Run, input string) domain.Run {
	run.Input = input
	return run
}
