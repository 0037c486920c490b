package loam_test

import (
	"errors"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"identifier.md": testutils.IdentifierMarkdown,
		"binary.json":   testutils.BinaryJSON,
	})

	loader, err := loam.Open(dir)
	require.NoError(t, err)

	binary := domain.Definition{
		Name:      "ends-in-one",
		States:    []domain.State{"q0", "q1"},
		Alphabet:  []domain.Symbol{'0', '1'},
		Start:     "q0",
		Accepting: []domain.State{"q1"},
		Transitions: []domain.Transition{
			{From: "q0", Symbol: '0', To: "q0"},
			{From: "q0", Symbol: '1', To: "q1"},
			{From: "q1", Symbol: '0', To: "q0"},
			{From: "q1", Symbol: '1', To: "q1"},
		},
	}

	tests.DefinitionLoaderContractTest(t, loader, map[string]domain.Definition{
		"identifier":  catalog.Identifier().Definition(),
		"ends-in-one": binary,
	})
}

func TestLoader_CompiledDefinitionRuns(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"identifier.md": testutils.IdentifierMarkdown,
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)

	def, err := loader.GetDefinition("identifier")
	require.NoError(t, err)
	assert.Equal(t, "An uppercase letter, lowercase letters, then digits.", def.Description)

	a, err := domain.NewAutomaton(def)
	require.NoError(t, err)
	for _, s := range catalog.Samples(catalog.IdentifierName) {
		assert.Equal(t, s.Accept, runtime.Run(a, s.Input).Accepted, s.Input)
	}
}

func TestLoader_DetectsCollisions(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"identifier.md": testutils.IdentifierMarkdown,
		"other.json":    `{"name": "identifier", "states": ["q0"], "alphabet": ["a"], "start": "q0"}`,
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)

	_, err = loader.ListDefinitions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_NotFound(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"identifier.md": testutils.IdentifierMarkdown,
	})
	loader, err := loam.Open(dir)
	require.NoError(t, err)

	_, err = loader.GetDefinition("missing")
	assert.True(t, errors.Is(err, domain.ErrDefinitionNotFound))
}
