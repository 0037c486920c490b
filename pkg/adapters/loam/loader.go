package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository of definition documents to ports.DefinitionLoader.
// Documents may be Markdown with frontmatter or JSON.
type Loader struct {
	Repo *loam.TypedRepository[DefinitionMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DefinitionMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initialises a strict, read-only Loam repository at dir.
// Strict mode keeps numbers consistent across JSON and YAML documents;
// read-only mode stops Loam from creating a sandbox in development.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[DefinitionMetadata](repo)), nil
}

// GetDefinition loads and compiles one definition document.
func (l *Loader) GetDefinition(name string) (domain.Definition, error) {
	ctx := context.Background()

	index, err := l.index(ctx)
	if err != nil {
		return domain.Definition{}, err
	}
	docID, ok := index[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}

	doc, err := l.Repo.Get(ctx, docID)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	return Compile(name, doc.Data, doc.Content)
}

// ListDefinitions lists all definition names in the repository.
func (l *Loader) ListDefinitions() ([]string, error) {
	index, err := l.index(context.Background())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// index maps definition names to Loam document IDs.
// The name comes from metadata when present, otherwise from the file name.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}

		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: definition '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
	}
	return seen, nil
}

// Watch implements ports.Watchable. It emits the document ID of every changed file.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
