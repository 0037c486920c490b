package automata

import (
	"fmt"
	"strings"
)

// CompileError reports every definition of a loader that could not be compiled.
type CompileError struct {
	Errors []error
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d definitions failed to compile:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "- %s\n", strings.TrimRight(err.Error(), "\n"))
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *CompileError) Unwrap() []error {
	return e.Errors
}
