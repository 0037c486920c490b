package tests

import (
	"errors"
	"slices"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// expected maps definition names to the definitions the loader must return.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, expected map[string]domain.Definition) {
	t.Helper()

	// 1. GetDefinition (Success)
	t.Run("GetDefinition_Success", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.GetDefinition(name)
			if err != nil {
				t.Fatalf("unexpected error getting definition %s: %v", name, err)
			}
			if got.Start != want.Start {
				t.Errorf("%s: start mismatch. got %q, want %q", name, got.Start, want.Start)
			}
			if !slices.Equal(got.States, want.States) {
				t.Errorf("%s: states mismatch. got %v, want %v", name, got.States, want.States)
			}
			if !slices.Equal(got.Accepting, want.Accepting) {
				t.Errorf("%s: accepting mismatch. got %v, want %v", name, got.Accepting, want.Accepting)
			}

			// Compare through the validated form so ordering differences do not matter.
			ga, err := domain.NewAutomaton(got)
			if err != nil {
				t.Fatalf("%s: loaded definition is invalid: %v", name, err)
			}
			wa, err := domain.NewAutomaton(want)
			if err != nil {
				t.Fatalf("%s: expected definition is invalid: %v", name, err)
			}
			if !slices.Equal(ga.Transitions(), wa.Transitions()) {
				t.Errorf("%s: transitions mismatch. got %v, want %v", name, ga.Transitions(), wa.Transitions())
			}
			if !slices.Equal(ga.Alphabet(), wa.Alphabet()) {
				t.Errorf("%s: alphabet mismatch. got %v, want %v", name, ga.Alphabet(), wa.Alphabet())
			}
		}
	})

	// 2. GetDefinition (NotFound)
	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition("non-existent-definition")
		if !errors.Is(err, domain.ErrDefinitionNotFound) {
			t.Errorf("expected ErrDefinitionNotFound, got %v", err)
		}
	})

	// 3. ListDefinitions
	t.Run("ListDefinitions", func(t *testing.T) {
		names, err := loader.ListDefinitions()
		if err != nil {
			t.Fatalf("unexpected error listing definitions: %v", err)
		}
		if len(names) != len(expected) {
			t.Errorf("expected %d definitions, got %d (%v)", len(expected), len(names), names)
		}
		if !slices.IsSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
		for name := range expected {
			if !slices.Contains(names, name) {
				t.Errorf("expected definition %s not found in list", name)
			}
		}
	})
}
