package graph

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
)

func TestEdges_MergesParallelTransitions(t *testing.T) {
	edges := Edges(catalog.Identifier())

	want := []struct {
		from, to domain.State
		label    string
	}{
		{"q0", "q1", "A-Z"},
		{"q1", "q2", "0-9"},
		{"q1", "q1", "a-z"},
		{"q2", "q2", "0-9"},
	}
	if len(edges) != len(want) {
		t.Fatalf("Expected %d edges, got %d: %+v", len(want), len(edges), edges)
	}
	for i, w := range want {
		e := edges[i]
		if e.From != w.from || e.To != w.to || e.Label() != w.label {
			t.Errorf("edge %d: expected %s -%s-> %s, got %s -%s-> %s", i, w.from, w.label, w.to, e.From, e.Label(), e.To)
		}
	}
}

func TestRole(t *testing.T) {
	a := catalog.ABPattern()
	cases := map[domain.State]string{
		"q0": RoleStart,
		"q2": RoleRegular,
		"q4": RoleAccepting,
	}
	for s, want := range cases {
		if got := Role(a, s); got != want {
			t.Errorf("Role(%s): expected %s, got %s", s, want, got)
		}
	}
}

func TestMermaid(t *testing.T) {
	a := catalog.ABPattern()
	run := runtime.Run(a, "aba")

	tests := []struct {
		name     string
		overlay  *Overlay
		contains []string
		excludes []string
	}{
		{
			name:    "Basic Graph",
			overlay: nil,
			contains: []string{
				"graph LR",
				`q0(("q0")):::start`,
				`q3(("q3")):::regular`,
				`q4((("q4"))):::accepting`,
				`q0 -- "a" --> q1`,
				`q2 -- "b" --> q3`,
				"classDef accepting fill:#f08080",
			},
			excludes: []string{"classDef visited", "class q0 visited"},
		},
		{
			name:    "Run Overlay",
			overlay: OverlayFromRun(run),
			contains: []string{
				"classDef visited",
				"classDef current",
				"class q0 visited;",
				"class q1 visited;",
				"class q2 visited;",
				"class q4 current;",
			},
			excludes: []string{"class q4 visited;", "class q3 visited;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mermaid(a, tt.overlay)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Mermaid() missing %q\nGot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Mermaid() should not contain %q\nGot:\n%s", s, got)
				}
			}
		})
	}
}

func TestMermaid_SanitizesIDs(t *testing.T) {
	def := domain.Definition{
		Name:        "dots",
		States:      []domain.State{"start.state", "end-state"},
		Alphabet:    []domain.Symbol{'"'},
		Start:       "start.state",
		Accepting:   []domain.State{"end-state"},
		Transitions: []domain.Transition{{From: "start.state", Symbol: '"', To: "end-state"}},
	}
	a, err := domain.NewAutomaton(def)
	if err != nil {
		t.Fatalf("NewAutomaton() failed: %v", err)
	}

	got := Mermaid(a, nil)
	for _, s := range []string{
		`start_state(("start.state"))`,
		`end_state((("end-state")))`,
		`start_state -- "#quot;" --> end_state`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("Mermaid() missing %q\nGot:\n%s", s, got)
		}
	}
}

func TestDOT(t *testing.T) {
	a := catalog.Identifier()
	run := runtime.Run(a, "Ab")

	got := DOT(a, OverlayFromRun(run))
	for _, s := range []string{
		`digraph "identifier" {`,
		"rankdir=LR;",
		"__start [shape=point];",
		`__start -> "q0";`,
		`"q0" [fillcolor="#90ee90", color="#01579b", penwidth=2];`,
		`"q1" [fillcolor="#add8e6", color="#fbc02d", penwidth=4];`,
		`"q2" [fillcolor="#f08080", shape=doublecircle];`,
		`"q1" -> "q1" [label="a-z"];`,
		`"q1" -> "q2" [label="0-9"];`,
	} {
		if !strings.Contains(got, s) {
			t.Errorf("DOT() missing %q\nGot:\n%s", s, got)
		}
	}
}

func TestRender(t *testing.T) {
	a := catalog.ABPattern()

	out, err := Render("", a, nil)
	if err != nil || !strings.HasPrefix(out, "graph LR") {
		t.Errorf("Render(\"\") should default to mermaid, got %q (%v)", out, err)
	}
	out, err = Render(FormatDOT, a, nil)
	if err != nil || !strings.HasPrefix(out, "digraph") {
		t.Errorf("Render(dot) got %q (%v)", out, err)
	}
	if _, err := Render("svg", a, nil); err == nil {
		t.Error("Expected error for unknown format")
	}
}
