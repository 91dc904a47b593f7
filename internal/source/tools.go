package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

type toolEntry struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

type toolsFile struct {
	Tools []toolEntry `yaml:"tools"`
}

// ToolsBuilder builds tool documents from a YAML tool registry.
type ToolsBuilder struct {
	path string
}

// NewTools creates the tools builder.
func NewTools(path string) *ToolsBuilder { return &ToolsBuilder{path: path} }

// Category returns the builder's category.
func (b *ToolsBuilder) Category() category.Category { return category.Tools }

// Build emits one Entry per registered tool.
func (b *ToolsBuilder) Build(ctx context.Context) ([]document.Document, error) {
	data, err := os.ReadFile(filepath.Clean(b.path))
	if err != nil {
		return nil, domain.NewSourceReadError(string(category.Tools), b.path, err)
	}

	var f toolsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, domain.NewSourceReadError(string(category.Tools), b.path, fmt.Errorf("parse: %w", err))
	}
	if f.Tools == nil {
		return nil, domain.NewSourceReadError(string(category.Tools), b.path, errors.New(`missing "tools" list`))
	}

	docs := make([]document.Document, 0, len(f.Tools))
	for _, t := range f.Tools {
		docs = append(docs, document.Entry{
			Base: base(ctx, category.Tools, record{
				slug:        t.Slug,
				name:        t.Title,
				description: t.Description,
				keywords:    t.Keywords,
				segments:    []string{t.Slug},
			}),
		})
	}
	return docs, nil
}
