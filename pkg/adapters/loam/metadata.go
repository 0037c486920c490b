package loam

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/mitchellh/mapstructure"
)

// DefinitionMetadata is the frontmatter (or JSON body) of a definition document.
// Alphabet entries and transition symbols are class specs such as "A-Z" or "@".
type DefinitionMetadata struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	States      []string `json:"states" yaml:"states,flow" mapstructure:"states"`
	Start       string   `json:"start" yaml:"start" mapstructure:"start"`
	Accepting   []string `json:"accepting" yaml:"accepting,flow" mapstructure:"accepting"`

	// Loosely typed so that unquoted YAML digits (on: 0) still decode.
	Alphabet    []any `json:"alphabet" yaml:"alphabet,flow" mapstructure:"alphabet"`
	Transitions []any `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionMetadata is one transitions entry: δ(from, on) = to for every symbol in on.
type TransitionMetadata struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	On   string `json:"on" yaml:"on" mapstructure:"on"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// Export is the inverse of Compile. The alphabet becomes one class spec and
// transitions are grouped per source and destination, in order of appearance.
func Export(def domain.Definition) DefinitionMetadata {
	meta := DefinitionMetadata{
		Name:        def.Name,
		Description: def.Description,
		Start:       string(def.Start),
		Alphabet:    []any{dsl.Spec(def.Alphabet)},
	}
	for _, s := range def.States {
		meta.States = append(meta.States, string(s))
	}
	for _, s := range def.Accepting {
		meta.Accepting = append(meta.Accepting, string(s))
	}

	type edge struct{ from, to domain.State }
	var order []edge
	symbols := make(map[edge][]domain.Symbol)
	for _, t := range def.Transitions {
		e := edge{t.From, t.To}
		if _, ok := symbols[e]; !ok {
			order = append(order, e)
		}
		symbols[e] = append(symbols[e], t.Symbol)
	}
	for _, e := range order {
		meta.Transitions = append(meta.Transitions, TransitionMetadata{
			From: string(e.from),
			On:   dsl.Spec(symbols[e]),
			To:   string(e.to),
		})
	}
	return meta
}

// Compile expands metadata into a domain.Definition named name.
// Class and decoding errors are aggregated; structural checks are left to domain.NewAutomaton.
func Compile(name string, meta DefinitionMetadata, body string) (domain.Definition, error) {
	def := domain.Definition{
		Name:        name,
		Description: strings.TrimSpace(meta.Description),
		Start:       domain.State(meta.Start),
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(body)
	}

	for _, s := range meta.States {
		def.States = append(def.States, domain.State(s))
	}
	for _, s := range meta.Accepting {
		def.Accepting = append(def.Accepting, domain.State(s))
	}

	var errs []error

	for i, raw := range meta.Alphabet {
		var spec string
		if err := decode(raw, &spec); err != nil {
			errs = append(errs, fmt.Errorf("alphabet[%d]: %w", i, err))
			continue
		}
		c, err := dsl.ParseClass(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("alphabet[%d]: %w", i, err))
			continue
		}
		def.Alphabet = append(def.Alphabet, c.Symbols()...)
	}

	for i, raw := range meta.Transitions {
		var tm TransitionMetadata
		if err := decode(raw, &tm); err != nil {
			errs = append(errs, fmt.Errorf("transitions[%d]: %w", i, err))
			continue
		}
		c, err := dsl.ParseClass(tm.On)
		if err != nil {
			errs = append(errs, fmt.Errorf("transitions[%d] from %s: %w", i, tm.From, err))
			continue
		}
		for _, sym := range c.Symbols() {
			def.Transitions = append(def.Transitions, domain.Transition{
				From:   domain.State(tm.From),
				Symbol: sym,
				To:     domain.State(tm.To),
			})
		}
	}

	if len(errs) > 0 {
		return def, &domain.DefinitionError{Name: name, Errors: errs}
	}
	return def, nil
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
