// Package graph renders automata as Mermaid flowcharts and Graphviz DOT.
package graph

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

// Formats accepted by Render.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// Node roles, used for styling.
const (
	RoleStart     = "start"
	RoleAccepting = "accepting"
	RoleRegular   = "regular"
)

// Role colours: start green, accepting coral, others light blue.
var roleColors = map[string]string{
	RoleStart:     "#90ee90",
	RoleAccepting: "#f08080",
	RoleRegular:   "#add8e6",
}

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []domain.State
	Current domain.State
}

// OverlayFromRun highlights the states a run visited and the state it stopped in.
func OverlayFromRun(run domain.Run) *Overlay {
	return &Overlay{
		Visited: append([]domain.State(nil), run.Trace...),
		Current: run.Final(),
	}
}

// Edge is every transition between one pair of states, merged into a single arrow.
type Edge struct {
	From    domain.State
	To      domain.State
	Symbols []domain.Symbol
}

// Label compresses the edge symbols, e.g. "a-z,0-9".
func (e Edge) Label() string {
	return dsl.Label(e.Symbols)
}

// Edges merges parallel transitions. Edges appear in the order of their first transition.
func Edges(a *domain.Automaton) []Edge {
	type pair struct{ from, to domain.State }

	var edges []Edge
	index := make(map[pair]int)
	for _, t := range a.Transitions() {
		p := pair{t.From, t.To}
		i, ok := index[p]
		if !ok {
			i = len(edges)
			index[p] = i
			edges = append(edges, Edge{From: t.From, To: t.To})
		}
		edges[i].Symbols = append(edges[i].Symbols, t.Symbol)
	}
	return edges
}

// Role classifies a state. Accepting wins over start.
func Role(a *domain.Automaton, s domain.State) string {
	switch {
	case a.IsAccepting(s):
		return RoleAccepting
	case s == a.Start():
		return RoleStart
	default:
		return RoleRegular
	}
}

// Render dispatches on format.
func Render(format string, a *domain.Automaton, overlay *Overlay) (string, error) {
	switch format {
	case "", FormatMermaid:
		return Mermaid(a, overlay), nil
	case FormatDOT:
		return DOT(a, overlay), nil
	default:
		return "", fmt.Errorf("unknown graph format %q (want %s or %s)", format, FormatMermaid, FormatDOT)
	}
}
