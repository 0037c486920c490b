package memory_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	defs := catalog.Definitions()

	expected := make(map[string]domain.Definition, len(defs))
	for _, def := range defs {
		expected[def.Name] = def
	}

	loader, err := memory.NewLoader(defs...)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}

	contract.DefinitionLoaderContractTest(t, loader, expected)
}

func TestInMemoryLoader_RejectsDuplicates(t *testing.T) {
	def := catalog.ABPattern().Definition()
	if _, err := memory.NewLoader(def, def); err == nil {
		t.Error("Expected error for duplicate definition names")
	}
	if _, err := memory.NewLoader(domain.Definition{}); err == nil {
		t.Error("Expected error for unnamed definition")
	}
}

func TestInMemoryLoader_ReturnsCopies(t *testing.T) {
	loader, err := memory.NewLoader(catalog.Identifier().Definition())
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}

	def, _ := loader.GetDefinition(catalog.IdentifierName)
	def.States[0] = "mutated"

	again, _ := loader.GetDefinition(catalog.IdentifierName)
	if again.States[0] != "q0" {
		t.Errorf("Expected stored definition to be unchanged, got %v", again.States)
	}
}
