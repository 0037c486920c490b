package dsl

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ErrInvalidClass is returned when a class spec cannot be parsed.
var ErrInvalidClass = errors.New("invalid symbol class")

// Class is a set of symbols used as construction sugar, e.g. "A-Z".
type Class struct {
	symbols []domain.Symbol
}

// Common classes used by the exercises.
var (
	Upper   = Range('A', 'Z')
	Lower   = Range('a', 'z')
	Digits  = Range('0', '9')
	NonZero = Range('1', '9')
	Zero    = Literal("0")
)

// Range returns the class of every rune between lo and hi, inclusive.
func Range(lo, hi rune) Class {
	if lo > hi {
		lo, hi = hi, lo
	}
	syms := make([]domain.Symbol, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		syms = append(syms, domain.Symbol(r))
	}
	return Class{symbols: syms}
}

// Literal returns the class of the characters in chars.
func Literal(chars string) Class {
	syms := make([]domain.Symbol, 0, len(chars))
	for _, r := range chars {
		syms = append(syms, domain.Symbol(r))
	}
	return Of(syms...)
}

// Of returns the class of the given symbols.
func Of(symbols ...domain.Symbol) Class {
	syms := slices.Clone(symbols)
	slices.Sort(syms)
	return Class{symbols: slices.Compact(syms)}
}

// Union merges classes.
func Union(classes ...Class) Class {
	var syms []domain.Symbol
	for _, c := range classes {
		syms = append(syms, c.symbols...)
	}
	return Of(syms...)
}

// ParseClass parses a spec like "A-Z", "a-z0-9@." or "\-". A dash between two
// characters denotes a range; a leading or trailing dash, or an escaped one, is literal.
func ParseClass(spec string) (Class, error) {
	runes := []rune(spec)
	if len(runes) == 0 {
		return Class{}, fmt.Errorf("%w: empty spec", ErrInvalidClass)
	}

	var syms []domain.Symbol
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			if i+1 >= len(runes) {
				return Class{}, fmt.Errorf("%w: dangling escape in %q", ErrInvalidClass, spec)
			}
			i++
			syms = append(syms, domain.Symbol(runes[i]))
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '-' {
			lo, hi := r, runes[i+2]
			if lo > hi {
				return Class{}, fmt.Errorf("%w: reversed range %c-%c in %q", ErrInvalidClass, lo, hi, spec)
			}
			syms = append(syms, Range(lo, hi).symbols...)
			i += 2
			continue
		}
		syms = append(syms, domain.Symbol(r))
	}
	return Of(syms...), nil
}

// Symbols returns the class members in code point order.
func (c Class) Symbols() []domain.Symbol {
	return slices.Clone(c.symbols)
}

// Len returns the number of symbols in the class.
func (c Class) Len() int {
	return len(c.symbols)
}

// Contains reports whether sym is a member.
func (c Class) Contains(sym domain.Symbol) bool {
	_, ok := slices.BinarySearch(c.symbols, sym)
	return ok
}

// String compresses the class into a label such as "A-Z,0".
// Runs of three or more consecutive symbols become ranges.
func (c Class) String() string {
	return Label(c.symbols)
}

// Label compresses an arbitrary symbol list into a class label.
func Label(symbols []domain.Symbol) string {
	var parts []string
	for _, run := range Runs(symbols) {
		first, last := run[0], run[len(run)-1]
		switch len(run) {
		case 1:
			parts = append(parts, first.String())
		case 2:
			parts = append(parts, first.String(), last.String())
		default:
			parts = append(parts, first.String()+"-"+last.String())
		}
	}
	return strings.Join(parts, ",")
}

// Runs splits a symbol list into maximal runs of consecutive code points.
func Runs(symbols []domain.Symbol) [][]domain.Symbol {
	syms := slices.Clone(symbols)
	slices.Sort(syms)
	syms = slices.Compact(syms)

	var runs [][]domain.Symbol
	for i := 0; i < len(syms); {
		j := i
		for j+1 < len(syms) && syms[j+1] == syms[j]+1 {
			j++
		}
		runs = append(runs, syms[i:j+1])
		i = j + 1
	}
	return runs
}

// Spec renders a symbol list as a class spec that ParseClass reads back,
// e.g. "0-9A-Za-z". Dashes and backslashes are escaped.
func Spec(symbols []domain.Symbol) string {
	var sb strings.Builder
	for _, run := range Runs(symbols) {
		first, last := run[0], run[len(run)-1]
		if len(run) >= 3 && !needsEscape(first) && !needsEscape(last) {
			sb.WriteString(first.String() + "-" + last.String())
			continue
		}
		for _, sym := range run {
			if needsEscape(sym) {
				sb.WriteByte('\\')
			}
			sb.WriteString(sym.String())
		}
	}
	return sb.String()
}

func needsEscape(sym domain.Symbol) bool {
	return sym == '-' || sym == '\\'
}
