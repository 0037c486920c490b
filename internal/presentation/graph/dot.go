package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// DOT produces a Graphviz digraph with an invisible entry point into the start state.
func DOT(a *domain.Automaton, overlay *Overlay) string {
	visited := make(map[domain.State]bool)
	var current domain.State
	if overlay != nil {
		for _, s := range overlay.Visited {
			visited[s] = true
		}
		current = overlay.Current
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quote(a.Name()))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle, style=filled];\n")
	sb.WriteString("\n")

	sb.WriteString("  __start [shape=point];\n")
	fmt.Fprintf(&sb, "  __start -> %s;\n", quote(string(a.Start())))
	sb.WriteString("\n")

	for _, s := range a.States() {
		attrs := []string{fmt.Sprintf("fillcolor=%s", quote(roleColors[Role(a, s)]))}
		if a.IsAccepting(s) {
			attrs = append(attrs, "shape=doublecircle")
		}
		switch {
		case overlay != nil && s == current:
			attrs = append(attrs, `color="#fbc02d"`, "penwidth=4")
		case visited[s]:
			attrs = append(attrs, `color="#01579b"`, "penwidth=2")
		}
		fmt.Fprintf(&sb, "  %s [%s];\n", quote(string(s)), strings.Join(attrs, ", "))
	}
	sb.WriteString("\n")

	for _, e := range Edges(a) {
		fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n", quote(string(e.From)), quote(string(e.To)), quote(e.Label()))
	}

	sb.WriteString("}\n")
	return sb.String()
}
