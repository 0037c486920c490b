package catalog

import (
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Default returns every built-in recognizer in presentation order.
func Default() []ports.Recognizer {
	return []ports.Recognizer{
		runtime.NewMachine(ABPattern()),
		runtime.NewMachine(Identifier()),
		runtime.NewMachine(ProductCode()),
		NewEmailValidator(),
		runtime.NewMachine(EmailStrict()),
	}
}

// Definitions returns the serialisable definitions of the built-in automata.
func Definitions() []domain.Definition {
	recognizers := Default()
	out := make([]domain.Definition, 0, len(recognizers))
	for _, r := range recognizers {
		out = append(out, r.Automaton().Definition())
	}
	return out
}
