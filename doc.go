/*
Package automata is a deterministic finite automaton (DFA) execution engine.

An automaton is a manually supplied transition table: states, an alphabet of
runes, a start state, accepting states and a partial transition function. The
engine feeds an input string through it one rune at a time and reports a Run:
the sequence of states visited, whether the input was accepted, and why it was
rejected otherwise (a symbol outside the alphabet, a missing transition, or a
final state that is not accepting).

# Built-in automata

The catalog registers four languages by default:

  - ab-pattern: strings over {a,b} ending in a, without bb.
  - identifier: an uppercase letter, lowercase letters, then digits (A123).
  - product-code: two letters, three digits not starting with 00, a letter (AS345S).
  - uptc-email: institutional addresses, recognised in two phases
    (prefix automaton, then the literal domain uptc.edu.co).

uptc-email-strict recognises the same addresses with a single automaton.

# Usage

	eng, err := automata.New()
	if err != nil {
		log.Fatal(err)
	}

	run, err := eng.Run(ctx, "identifier", "Sogamoso2025")
	if err != nil {
		log.Fatal(err) // unknown automaton
	}
	fmt.Println(run.Verdict, run.Path())

Definitions can also be loaded from a directory of Markdown or JSON documents
with WithDirectory, or from any ports.DefinitionLoader with WithLoader.
*/
package automata
