package domain

// Definition is the plain, serialisable description of an automaton.
// It is the input of NewAutomaton and the output of Automaton.Definition.
type Definition struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	States      []State      `json:"states" yaml:"states"`
	Alphabet    []Symbol     `json:"alphabet" yaml:"alphabet"`
	Start       State        `json:"start" yaml:"start"`
	Accepting   []State      `json:"accepting" yaml:"accepting"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}
