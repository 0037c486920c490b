package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/ports"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) prettytable.Writer {
	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(prettytable.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}

// quote makes empty and whitespace inputs visible.
func quote(input string) string {
	return fmt.Sprintf("%q", input)
}

// PrintList renders one row per recognizer.
func PrintList(w io.Writer, recognizers []ports.Recognizer) {
	t := newTable(w)
	t.AppendHeader(prettytable.Row{"Name", "States", "Σ", "Start", "Accepting", "Description"})
	for _, r := range recognizers {
		a := r.Automaton()
		t.AppendRow(prettytable.Row{
			r.Name(),
			len(a.States()),
			len(a.Alphabet()),
			a.Start(),
			joinStates(a.Accepting()),
			a.Description(),
		})
	}
	t.Render()
}

// PrintRuns renders runs as a results table.
func PrintRuns(w io.Writer, s tui.Styler, runs []domain.Run) {
	t := newTable(w)
	t.AppendHeader(prettytable.Row{"#", "Input", "Verdict", "Path"})
	for i, run := range runs {
		t.AppendRow(prettytable.Row{i + 1, quote(run.Input), s.Verdict(run.Verdict), s.Path(run)})
	}
	t.Render()
}

// DemoResult summarises a demo over the sample strings.
type DemoResult struct {
	Total      int
	Accepted   int
	Mismatches int
}

// PrintDemo prints the report of one recognizer over its sample strings:
// the formal definition, the transition table, the per-state patterns and
// the results compared against the expected verdicts.
func PrintDemo(w io.Writer, s tui.Styler, r ports.Recognizer, samples []catalog.Sample, runs []domain.Run) (DemoResult, error) {
	if len(samples) != len(runs) {
		return DemoResult{}, fmt.Errorf("got %d runs for %d samples", len(runs), len(samples))
	}
	a := r.Automaton()

	fmt.Fprintln(w, s.Bold(fmt.Sprintf("=== %s ===", r.Name())))
	if d := a.Description(); d != "" {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Q  = {%s}\n", joinStates(a.States()))
	fmt.Fprintf(w, "Σ  = {%s}\n", dsl.Label(a.Alphabet()))
	fmt.Fprintf(w, "q₀ = %s\n", a.Start())
	fmt.Fprintf(w, "F  = {%s}\n", joinStates(a.Accepting()))
	fmt.Fprintln(w)

	grid, err := table.Render(a, table.FormatTable)
	if err != nil {
		return DemoResult{}, err
	}
	fmt.Fprintln(w, grid)
	fmt.Fprintln(w, table.RenderPatterns(a))
	fmt.Fprintln(w)

	var res DemoResult
	t := newTable(w)
	t.AppendHeader(prettytable.Row{"#", "Input", "Expected", "Verdict", "Path", ""})
	for i, run := range runs {
		expected := "reject"
		if samples[i].Accept {
			expected = "accept"
		}
		mark := ""
		if run.Accepted != samples[i].Accept {
			mark = "MISMATCH"
			res.Mismatches++
		}
		if run.Accepted {
			res.Accepted++
		}
		t.AppendRow(prettytable.Row{i + 1, quote(run.Input), expected, s.Verdict(run.Verdict), s.Path(run), mark})
	}
	res.Total = len(runs)
	t.AppendFooter(prettytable.Row{"", "", "", fmt.Sprintf("%d/%d accepted", res.Accepted, res.Total), "", ""})
	t.Render()
	fmt.Fprintln(w)

	return res, nil
}

func joinStates(states []domain.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
