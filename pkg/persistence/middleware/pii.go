package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Mask replaces redacted inputs.
const Mask = "***"

type piiMiddleware struct {
	next     ports.RunStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the input of runs whose
// automaton name matches any of the patterns. Verdict and trace are kept.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.RunStore) ports.RunStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, record *domain.RunRecord) error {
	if !m.matches(record.Run.Automaton) {
		return m.next.Save(ctx, record)
	}

	// The caller's record stays untouched.
	cloned := *record
	cloned.Run = record.Run.Clone()
	cloned.Run.Input = Mask
	cloned.Run.Offending = nil

	return m.next.Save(ctx, &cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	return m.next.Load(ctx, id)
}

func (m *piiMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
