package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Formats accepted by NewWithFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout tables and JSON output).
func New(level slog.Level) *slog.Logger {
	logger, _ := NewWithFormat(os.Stderr, level, FormatText)
	return logger
}

// NewWithFormat builds a logger for w.
// Text output goes through tint, coloured only when w is a terminal.
// Both formats standardize the "error" key to "err".
func NewWithFormat(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		color := isTerminal(w)
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
			NoColor:    !color,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = renameError(groups, a)
				if color && a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: renameError,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func renameError(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
