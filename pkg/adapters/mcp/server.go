package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource listing every registered automaton.
const CatalogURI = "automata://catalog"

// Engine defines what the MCP server needs from the automata facade.
type Engine interface {
	List() []string
	Recognizer(name string) (ports.Recognizer, error)
	Run(ctx context.Context, name, input string) (domain.Run, error)
	RunBatch(ctx context.Context, name string, inputs []string) ([]domain.Run, error)
}

// RunArgs are the arguments of the run_automaton tool.
type RunArgs struct {
	Name   string   `json:"name"`
	Input  *string  `json:"input,omitempty"`
	Inputs []string `json:"inputs,omitempty"`
}

// RunResponse aligns with the HTTP RunBatch schema.
type RunResponse struct {
	Runs []domain.Run `json:"runs" jsonschema_description:"One run per input, in input order"`
}

// Entry describes a registered automaton.
type Entry struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Start       domain.State   `json:"start"`
	States      []domain.State `json:"states"`
	Accepting   []domain.State `json:"accepting"`
	Alphabet    string         `json:"alphabet"`
}

// Server wraps the automata Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("automata-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the registered automata with their states and alphabet."),
	), s.handleList)

	// TOOL: run_automaton
	runTool := mcp.NewTool("run_automaton",
		mcp.WithDescription("Run one input, or a batch of inputs, through an automaton and report verdicts and traces."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name, see list_automata")),
		mcp.WithString("input", mcp.Description("A single input string (may be empty)")),
		mcp.WithArray("inputs", mcp.Description("Several input strings"), mcp.WithStringItems()),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the state diagram of an automaton."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("format", mcp.Description("mermaid (default) or dot"), mcp.Enum(graph.FormatMermaid, graph.FormatDOT)),
		mcp.WithString("input", mcp.Description("Highlight the trace of this input")),
	), s.handleGraph)

	// TOOL: get_table
	s.mcpServer.AddTool(mcp.NewTool("get_table",
		mcp.WithDescription("Render the transition table of an automaton."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("format", mcp.Description("table (default), markdown or csv"), mcp.Enum(table.FormatTable, table.FormatMarkdown, table.FormatCSV)),
		mcp.WithBoolean("patterns", mcp.Description("Append the per-state transition summary")),
	), s.handleTable)
}

func (s *Server) entries() []Entry {
	var out []Entry
	for _, name := range s.engine.List() {
		rec, err := s.engine.Recognizer(name)
		if err != nil {
			continue
		}
		a := rec.Automaton()
		out = append(out, Entry{
			Name:        name,
			Description: a.Description(),
			Start:       a.Start(),
			States:      a.States(),
			Accepting:   a.Accepting(),
			Alphabet:    fmt.Sprintf("%d symbols", len(a.Alphabet())),
		})
	}
	return out
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.entries())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResponse, error) {
	if (args.Input == nil) == (args.Inputs == nil) {
		return RunResponse{}, fmt.Errorf("exactly one of input or inputs is required")
	}

	if args.Input != nil {
		run, err := s.engine.Run(ctx, args.Name, *args.Input)
		if err != nil {
			return RunResponse{}, err
		}
		return RunResponse{Runs: []domain.Run{run}}, nil
	}

	runs, err := s.engine.RunBatch(ctx, args.Name, args.Inputs)
	if err != nil {
		return RunResponse{}, err
	}
	s.logger.Debug("MCP run_automaton", "automaton", args.Name, "inputs", len(runs))
	return RunResponse{Runs: runs}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.engine.Recognizer(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var overlay *graph.Overlay
	if input, ok := request.GetArguments()["input"].(string); ok {
		overlay = graph.OverlayFromRun(rec.Recognize(input))
	}

	out, err := graph.Render(request.GetString("format", graph.FormatMermaid), rec.Automaton(), overlay)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.engine.Recognizer(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	a := rec.Automaton()
	out, err := table.Render(a, request.GetString("format", table.FormatTable))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if request.GetBool("patterns", false) {
		out += "\n\n" + table.RenderPatterns(a)
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://catalog
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Registered automata",
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.entries())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
