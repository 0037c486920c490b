package domain

import (
	"fmt"
	"unicode/utf8"
)

// State is an opaque state label, e.g. "q0".
type State string

// Symbol is a single input character. Inputs are consumed rune by rune.
type Symbol rune

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(rune(s))
}

// MarshalText encodes the symbol as its character so JSON and YAML stay readable.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a single-character string. An encoded U+FFFD is a valid
// symbol: the runtime reports it for undecodable input bytes.
func (s *Symbol) UnmarshalText(text []byte) error {
	r, size := utf8.DecodeRune(text)
	if (r == utf8.RuneError && size <= 1) || size != len(text) {
		return fmt.Errorf("symbol must be exactly one character, got %q", text)
	}
	*s = Symbol(r)
	return nil
}
