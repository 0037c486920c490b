/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various definition sources and run stores.

# Key Interfaces

  - Recognizer: a named component that classifies an input string into a domain.Run.
  - DefinitionLoader: loads automaton definitions (e.g., from memory or a Loam directory).
  - RunStore: persists run records (e.g., in memory or in Redis).
*/
package ports
