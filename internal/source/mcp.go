package source

import (
	"context"
	"errors"
	"sort"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

type mcpServer struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	InstallCommand string   `json:"install_command"`
	Tags           []string `json:"tags"`
}

type mcpFile struct {
	Servers map[string]mcpServer `json:"servers"`
}

// MCPBuilder builds MCP server documents from a keyed server catalog.
type MCPBuilder struct {
	path string
}

// NewMCP creates the MCP builder.
func NewMCP(path string) *MCPBuilder { return &MCPBuilder{path: path} }

// Category returns the builder's category.
func (b *MCPBuilder) Category() category.Category { return category.MCP }

// Build emits one Snippet per server in key order, carrying the install command as code.
func (b *MCPBuilder) Build(ctx context.Context) ([]document.Document, error) {
	var f mcpFile
	if err := readJSON(category.MCP, b.path, &f); err != nil {
		return nil, err
	}
	if f.Servers == nil {
		return nil, domain.NewSourceReadError(string(category.MCP), b.path, errors.New(`missing "servers" object`))
	}

	keys := make([]string, 0, len(f.Servers))
	for k := range f.Servers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	docs := make([]document.Document, 0, len(keys))
	for _, key := range keys {
		s := f.Servers[key]
		group := s.Category
		if group == "" {
			group = "other"
		}
		docs = append(docs, document.Snippet{
			Base: base(ctx, category.MCP, record{
				slug:        key,
				name:        s.Name,
				description: s.Description,
				keywords:    append([]string{group}, s.Tags...),
				segments:    []string{group, key},
			}),
			Code: s.InstallCommand,
		})
	}
	return docs, nil
}
