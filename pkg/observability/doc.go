/*
Package observability provides tools for monitoring the automata engine.

It turns lifecycle hooks into Prometheus metrics and structured log lines, so
hosts can audit runs without touching the engine itself.
*/
package observability
