package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"              _                        _", "#34d399"},
	{"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _", "#2dd4bf"},
	{"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#22d3ee"},
	{" | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#38bdf8"},
	{"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#60a5fa"},
}

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to blue gradient
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
