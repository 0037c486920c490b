package domain

// Transition is one entry of the transition function: δ(From, Symbol) = To.
type Transition struct {
	From   State  `json:"from" yaml:"from"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	To     State  `json:"to" yaml:"to"`
}

type transitionKey struct {
	from   State
	symbol Symbol
}
