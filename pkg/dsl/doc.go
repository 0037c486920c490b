/*
Package dsl provides a Go DSL for programmatically constructing automata.

Transition tables in the exercises are written over symbol ranges ("every
uppercase letter moves q0 to q1"). The builder expands those ranges into the
individual transitions of a domain.Definition and validates the result, so a
malformed table fails at build time instead of at run time.

Example usage:

	b := dsl.New("identifier").Alphabet(dsl.Upper, dsl.Lower, dsl.Digits)

	b.State("q0").Start().
		On(dsl.Upper, "q1")

	b.State("q1").
		On(dsl.Lower, "q1").
		On(dsl.Digits, "q2")

	b.State("q2").Accepting().
		On(dsl.Digits, "q2")

	automaton, err := b.Build()
*/
package dsl
