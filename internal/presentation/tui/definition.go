package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

// DefinitionMarkdown describes a as the 5-tuple (Q, Σ, δ, q₀, F) in markdown.
func DefinitionMarkdown(a *domain.Automaton) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", a.Name())
	if d := a.Description(); d != "" {
		fmt.Fprintf(&sb, "%s\n\n", d)
	}

	sb.WriteString("## Formal definition\n\n")
	fmt.Fprintf(&sb, "- **Q** = {%s}\n", joinStates(a.States()))
	fmt.Fprintf(&sb, "- **Σ** = {%s} (%d symbols)\n", dsl.Label(a.Alphabet()), len(a.Alphabet()))
	fmt.Fprintf(&sb, "- **q₀** = %s\n", a.Start())
	fmt.Fprintf(&sb, "- **F** = {%s}\n", joinStates(a.Accepting()))
	fmt.Fprintf(&sb, "- **|δ|** = %d transitions\n", len(a.Transitions()))
	if unreachable := a.Unreachable(); len(unreachable) > 0 {
		fmt.Fprintf(&sb, "- **Unreachable** = {%s}\n", joinStates(unreachable))
	}
	sb.WriteString("\n")

	grid, err := table.Render(a, table.FormatMarkdown)
	if err != nil {
		return "", err
	}
	sb.WriteString("## Transition table\n\n")
	sb.WriteString(grid)
	sb.WriteString("\n\n")

	sb.WriteString("## Patterns\n\n")
	for _, p := range table.Patterns(a) {
		fmt.Fprintf(&sb, "- `%s`: %s\n", table.StateLabel(a, p.State), p.Summary)
	}

	return sb.String(), nil
}

func joinStates(states []domain.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
