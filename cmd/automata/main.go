// Command automata runs, renders and serves deterministic finite automata.
package main

func main() {
	Execute()
}
