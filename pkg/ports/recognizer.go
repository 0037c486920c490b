package ports

import "github.com/aretw0/automata/pkg/domain"

// Recognizer classifies input strings.
// Implementations must be safe for concurrent use and free of side effects.
type Recognizer interface {
	// Name is the registry name, e.g. "identifier".
	Name() string

	// Automaton exposes the underlying definition for read-only consumers
	// such as the table and diagram renderers.
	Automaton() *domain.Automaton

	// Recognize runs the input and always returns exactly one Run.
	Recognize(input string) domain.Run
}
