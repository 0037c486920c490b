package catalog

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

// Registry names of the built-in automata.
const (
	ABPatternName   = "ab-pattern"
	IdentifierName  = "identifier"
	ProductCodeName = "product-code"
	EmailName       = "uptc-email"
	EmailStrictName = "uptc-email-strict"
)

// EmailDomain is the literal suffix required after the '@'.
const EmailDomain = "uptc.edu.co"

var (
	a = dsl.Literal("a")
	b = dsl.Literal("b")
)

// ABPattern builds the automaton over {a,b} whose accepting state q4 is reached
// by an "a" after at least one symbol, with "bb" leading into the dead end q3.
func ABPattern() *domain.Automaton {
	bl := dsl.New(ABPatternName).
		Describe("strings over {a,b} ending in a, of length two or more, without bb").
		Alphabet(a, b)

	bl.State("q0").Start().On(a, "q1").On(b, "q2")
	bl.State("q1").On(a, "q4").On(b, "q2")
	bl.State("q2").On(a, "q4").On(b, "q3")
	bl.State("q3")
	bl.State("q4").Accepting().On(a, "q4").On(b, "q2")

	return bl.MustBuild()
}

// Identifier builds the automaton for an uppercase letter, any lowercase
// letters, then one or more digits: A123, Sogamoso2025.
func Identifier() *domain.Automaton {
	bl := dsl.New(IdentifierName).
		Describe("an uppercase letter, zero or more lowercase letters, one or more digits").
		Alphabet(dsl.Upper, dsl.Lower, dsl.Digits)

	bl.State("q0").Start().On(dsl.Upper, "q1")
	bl.State("q1").On(dsl.Lower, "q1").On(dsl.Digits, "q2")
	bl.State("q2").Accepting().On(dsl.Digits, "q2")

	return bl.MustBuild()
}

// ProductCode builds the automaton for two uppercase letters, three digits and a
// closing uppercase letter, where the digits may not start with "00".
func ProductCode() *domain.Automaton {
	bl := dsl.New(ProductCodeName).
		Describe("two uppercase letters, three digits not starting with 00, an uppercase letter").
		Alphabet(dsl.Upper, dsl.Digits)

	bl.State("q0").Start().On(dsl.Upper, "q1")
	bl.State("q1").On(dsl.Upper, "q2")
	bl.State("q2").On(dsl.NonZero, "q3").On(dsl.Zero, "q4")
	bl.State("q3").On(dsl.NonZero, "q6").On(dsl.Zero, "q7")
	bl.State("q4").On(dsl.Zero, "q5").On(dsl.NonZero, "q6")
	bl.State("q5")
	bl.State("q6").On(dsl.Digits, "q8")
	bl.State("q7").On(dsl.Zero, "q5").On(dsl.NonZero, "q8")
	bl.State("q8").On(dsl.Upper, "q9")
	bl.State("q9").Accepting()

	return bl.MustBuild()
}

var (
	emailAlphabet = dsl.Union(dsl.Lower, dsl.Digits, dsl.Literal("@."))
	at            = dsl.Literal("@")
)

// EmailPrefix builds the automaton for the local part of an address, up to and
// including the '@'. The domain is checked by EmailValidator.
func EmailPrefix() *domain.Automaton {
	bl := dsl.New(EmailName).
		Describe("a lowercase letter, lowercase letters or digits, then @" + EmailDomain).
		Alphabet(emailAlphabet)

	bl.State("q0").Start().On(dsl.Lower, "q1")
	bl.State("q1").On(dsl.Lower, "q1").On(dsl.Digits, "q1").On(at, "q2")
	bl.State("q2").Accepting()

	return bl.MustBuild()
}

// EmailStrict builds a single automaton that consumes the domain too, one state
// per character after the '@' (q3 onwards).
func EmailStrict() *domain.Automaton {
	bl := dsl.New(EmailStrictName).
		Describe("the institutional address recognised by transitions alone").
		Alphabet(emailAlphabet)

	bl.State("q0").Start().On(dsl.Lower, "q1")
	bl.State("q1").On(dsl.Lower, "q1").On(dsl.Digits, "q1").On(at, "q2")

	last := domain.State(fmt.Sprintf("q%d", 2+len([]rune(EmailDomain))))
	bl.State("q2").Literal(EmailDomain, func(i int) domain.State {
		return domain.State(fmt.Sprintf("q%d", 2+i))
	}, last).Accepting()

	return bl.MustBuild()
}
