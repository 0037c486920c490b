package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Mermaid produces a left-to-right flowchart.
// States are circles (double circles when accepting) styled by role;
// the overlay, if any, outlines visited states and the current one.
func Mermaid(a *domain.Automaton, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range a.States() {
		safeID := sanitizeMermaidID(string(s))
		opener, closer := "((", "))"
		if a.IsAccepting(s) {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s:::%s\n", safeID, opener, s, closer, Role(a, s))
	}

	for _, e := range Edges(a) {
		label := strings.ReplaceAll(e.Label(), "\"", "#quot;")
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(string(e.From)), label, sanitizeMermaidID(string(e.To)))
	}

	sb.WriteString("\n")
	for _, role := range []string{RoleStart, RoleAccepting, RoleRegular} {
		fmt.Fprintf(&sb, "    classDef %s fill:%s,stroke:#333,color:#000;\n", role, roleColors[role])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited stroke:#01579b,stroke-width:3px;\n")
		sb.WriteString("    classDef current stroke:#fbc02d,stroke-width:5px;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Visited {
			safeID := sanitizeMermaidID(string(s))
			if safeID == "" || seen[safeID] || s == overlay.Current {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.Current)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
