package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	eng, err := automata.New()
	require.NoError(t, err)
	return NewServer(eng, "test", nil)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func ptr[T any](v T) *T { return &v }

func TestListAutomata(t *testing.T) {
	s := newServer(t)

	res, err := s.handleList(context.Background(), call(nil))
	require.NoError(t, err)

	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, "ab-pattern", entries[0].Name)
	assert.Equal(t, []domain.State{"q4"}, entries[0].Accepting)
	assert.Equal(t, "2 symbols", entries[0].Alphabet)
}

func TestRunAutomaton(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleRun(ctx, call(nil), RunArgs{Name: "identifier", Input: ptr("Sogamoso2025")})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, domain.VerdictAccepted, resp.Runs[0].Verdict)

	resp, err = s.handleRun(ctx, call(nil), RunArgs{Name: "ab-pattern", Inputs: []string{"aa", "bb", "ac"}})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 3)
	assert.Equal(t, domain.VerdictAccepted, resp.Runs[0].Verdict)
	assert.Equal(t, domain.VerdictNotAccepting, resp.Runs[1].Verdict)
	assert.Equal(t, domain.VerdictInvalidSymbol, resp.Runs[2].Verdict)

	resp, err = s.handleRun(ctx, call(nil), RunArgs{Name: "ab-pattern", Input: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, []domain.State{"q0"}, resp.Runs[0].Trace)
}

func TestRunAutomaton_Errors(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	_, err := s.handleRun(ctx, call(nil), RunArgs{Name: "nope", Input: ptr("a")})
	assert.ErrorIs(t, err, domain.ErrUnknownAutomaton)

	_, err = s.handleRun(ctx, call(nil), RunArgs{Name: "ab-pattern"})
	assert.Error(t, err)

	_, err = s.handleRun(ctx, call(nil), RunArgs{Name: "ab-pattern", Input: ptr("a"), Inputs: []string{"b"}})
	assert.Error(t, err)
}

func TestGetGraph(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	res, err := s.handleGraph(ctx, call(map[string]any{"name": "ab-pattern"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "graph LR")

	res, err = s.handleGraph(ctx, call(map[string]any{"name": "ab-pattern", "format": "dot", "input": "aba"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), `"q4" [fillcolor="#f08080", shape=doublecircle, color="#fbc02d", penwidth=4];`)

	res, err = s.handleGraph(ctx, call(map[string]any{"name": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGraph(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetTable(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	res, err := s.handleTable(ctx, call(map[string]any{"name": "ab-pattern", "format": "csv", "patterns": true}))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "*q4,q4,q2")
	assert.Contains(t, out, "no transitions")

	res, err = s.handleTable(ctx, call(map[string]any{"name": "ab-pattern", "format": "yaml"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCatalogResource(t *testing.T) {
	s := newServer(t)

	contents, err := s.readCatalog(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CatalogURI, tc.URI)
	assert.Contains(t, tc.Text, "uptc-email-strict")
}
