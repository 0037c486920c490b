/*
Package domain contains the core domain models of the automata engine.

It defines the static description of a deterministic finite automaton and the
value produced by running it over an input string. This package is kept pure
and free of I/O, following the same Hexagonal Architecture split as the rest of
the module: adapters load and persist, the runtime executes, the domain only
describes.

# Key Entities

  - Definition: a serialisable description of states, alphabet and transitions.
  - Automaton: the immutable, validated form of a Definition. Safe to share.
  - Run: the outcome of feeding one input string through a recognizer (trace, verdict).
  - LifecycleHooks: callbacks used by the runtime for logging and metrics.
*/
package domain
