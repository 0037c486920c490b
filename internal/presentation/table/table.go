// Package table renders transition tables and per-state transition summaries.
package table

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Placeholder fills cells without a transition.
const Placeholder = "-"

// MaxFullColumns is the largest alphabet shown in full. Larger alphabets are sampled.
const MaxFullColumns = 12

// Columns picks the symbols shown as table columns: the whole alphabet when it
// is small, otherwise the first, second and last symbol of each contiguous run.
func Columns(a *domain.Automaton) []domain.Symbol {
	alphabet := a.Alphabet()
	if len(alphabet) <= MaxFullColumns {
		return alphabet
	}

	var cols []domain.Symbol
	for _, run := range dsl.Runs(alphabet) {
		switch {
		case len(run) <= 3:
			cols = append(cols, run...)
		default:
			cols = append(cols, run[0], run[1], run[len(run)-1])
		}
	}
	return cols
}

// StateLabel prefixes s with → when it is the start state and * when it is accepting.
func StateLabel(a *domain.Automaton, s domain.State) string {
	var marker string
	if s == a.Start() {
		marker += "→"
	}
	if a.IsAccepting(s) {
		marker += "*"
	}
	return marker + string(s)
}

// Render writes the transition table of a in the given format.
func Render(a *domain.Automaton, format string) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	cols := Columns(a)
	header := table.Row{"δ"}
	for _, sym := range cols {
		header = append(header, sym.String())
	}
	t.AppendHeader(header)

	for _, s := range a.States() {
		row := table.Row{StateLabel(a, s)}
		for _, sym := range cols {
			cell := Placeholder
			if to, ok := a.Next(s, sym); ok {
				cell = string(to)
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	switch format {
	case "", FormatTable:
		return t.Render(), nil
	case FormatMarkdown, "md":
		return t.RenderMarkdown(), nil
	case FormatCSV:
		return t.RenderCSV(), nil
	default:
		return "", fmt.Errorf("unknown table format %q (want %s, %s or %s)", format, FormatTable, FormatMarkdown, FormatCSV)
	}
}

// Pattern summarises the outgoing transitions of one state.
type Pattern struct {
	State   domain.State `json:"state"`
	Summary string       `json:"summary"`
}

// Patterns groups each state's transitions by destination, e.g. "A-Z → q1, 0 → q4".
// States without outgoing transitions read "no transitions".
func Patterns(a *domain.Automaton) []Pattern {
	var out []Pattern
	for _, s := range a.States() {
		var order []domain.State
		bySymbol := make(map[domain.State][]domain.Symbol)
		for _, t := range a.TransitionsFrom(s) {
			if _, ok := bySymbol[t.To]; !ok {
				order = append(order, t.To)
			}
			bySymbol[t.To] = append(bySymbol[t.To], t.Symbol)
		}

		summary := "no transitions"
		if len(order) > 0 {
			parts := make([]string, 0, len(order))
			for _, to := range order {
				parts = append(parts, dsl.Label(bySymbol[to])+" → "+string(to))
			}
			summary = strings.Join(parts, ", ")
		}
		out = append(out, Pattern{State: s, Summary: summary})
	}
	return out
}

// RenderPatterns writes the pattern summaries as a two column table.
func RenderPatterns(a *domain.Automaton) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"State", "Transitions"})
	for _, p := range Patterns(a) {
		t.AppendRow(table.Row{StateLabel(a, p.State), p.Summary})
	}
	return t.Render()
}
