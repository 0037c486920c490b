package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/aretw0/automata/internal/runtime"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Version is the library version reported by the CLI and the servers.
const Version = "0.3.0"

// Engine is the high-level entry point for the automata library.
// It keeps a registry of named recognizers and runs inputs through them.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.DefinitionLoader
	dir     string
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	concurrency int
	builtins    []ports.Recognizer
	skipCatalog bool

	mu          sync.RWMutex
	recognizers map[string]ports.Recognizer
	order       []string

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader adds the definitions of a custom DefinitionLoader to the registry.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithDirectory loads definition documents from dir through Loam.
// It is ignored when WithLoader is also given.
func WithDirectory(dir string) Option {
	return func(e *Engine) {
		e.dir = dir
	}
}

// WithRecognizers registers additional recognizers, such as custom two-phase validators.
func WithRecognizers(rs ...ports.Recognizer) Option {
	return func(e *Engine) {
		e.builtins = append(e.builtins, rs...)
	}
}

// WithoutCatalog starts from an empty registry instead of the built-in automata.
func WithoutCatalog() Option {
	return func(e *Engine) {
		e.skipCatalog = true
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConcurrency limits how many inputs RunBatch processes at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New initializes a new Engine.
// The built-in catalog is registered first, then any recognizers given with
// WithRecognizers, then the definitions of the configured loader. A name
// registered twice is an error, as is any definition that fails validation.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{recognizers: make(map[string]ports.Recognizer)}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil && eng.dir != "" {
		loader, err := loamAdapter.Open(eng.dir)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		if abs, err := filepath.Abs(eng.dir); err == nil {
			eng.Name = filepath.Base(abs)
		}
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repository", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithConcurrency(eng.concurrency),
	)

	if err := eng.Reload(); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload rebuilds the registry, re-reading every definition from the loader.
// On error the previous registry is kept.
func (e *Engine) Reload() error {
	var recognizers []ports.Recognizer
	if !e.skipCatalog {
		recognizers = append(recognizers, catalog.Default()...)
	}
	recognizers = append(recognizers, e.builtins...)

	if e.loader != nil {
		loaded, err := Compile(e.loader)
		if err != nil {
			return err
		}
		recognizers = append(recognizers, loaded...)
	}

	registry := make(map[string]ports.Recognizer, len(recognizers))
	order := make([]string, 0, len(recognizers))
	for _, r := range recognizers {
		if _, dup := registry[r.Name()]; dup {
			return fmt.Errorf("automaton %q is registered twice", r.Name())
		}
		registry[r.Name()] = r
		order = append(order, r.Name())
	}

	e.mu.Lock()
	e.recognizers = registry
	e.order = order
	e.mu.Unlock()

	e.logger.Debug("registry loaded", "automata", len(order))
	return nil
}

// Compile builds a recognizer for every definition of a loader.
// Every invalid definition is reported, not only the first.
func Compile(loader ports.DefinitionLoader) ([]ports.Recognizer, error) {
	names, err := loader.ListDefinitions()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	var out []ports.Recognizer
	var errs []error
	for _, name := range names {
		def, err := loader.GetDefinition(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a, err := domain.NewAutomaton(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, runtime.NewMachine(a))
	}

	if len(errs) > 0 {
		return nil, &CompileError{Errors: errs}
	}
	return out, nil
}

// List returns the registered automaton names in registration order.
func (e *Engine) List() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.order...)
}

// Recognizer returns the named recognizer or domain.ErrUnknownAutomaton.
func (e *Engine) Recognizer(name string) (ports.Recognizer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.recognizers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAutomaton, name)
	}
	return r, nil
}

// Inspect returns the automaton behind a recognizer for visualization or introspection tools.
func (e *Engine) Inspect(name string) (*domain.Automaton, error) {
	r, err := e.Recognizer(name)
	if err != nil {
		return nil, err
	}
	return r.Automaton(), nil
}

// Run classifies input with the named recognizer.
// Rejections are reported in the Run; the only error is an unknown name.
func (e *Engine) Run(ctx context.Context, name, input string) (domain.Run, error) {
	r, err := e.Recognizer(name)
	if err != nil {
		return domain.Run{}, err
	}
	return e.runtime.Run(ctx, r, input), nil
}

// RunBatch classifies every input with the named recognizer, preserving order.
func (e *Engine) RunBatch(ctx context.Context, name string, inputs []string) ([]domain.Run, error) {
	r, err := e.Recognizer(name)
	if err != nil {
		return nil, err
	}
	return e.runtime.RunBatch(ctx, r, inputs)
}

// Watch returns a channel that signals when the underlying definitions change.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the configured DefinitionLoader, or nil.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}
