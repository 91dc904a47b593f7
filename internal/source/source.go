// Package source holds one document builder per content collection.
//
// A builder reads its collection's native structure and emits exactly one document per record.
// An unreadable or malformed structure fails the whole builder with a domain.SourceReadError;
// missing optional fields on a record are repaired with defaults.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/docid"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/text"
	"github.com/kailas-cloud/devindex/internal/logger"
)

// Builder maps one source collection into documents.
type Builder interface {
	Category() category.Category
	Build(ctx context.Context) ([]document.Document, error)
}

// record is the normalized view of a source record before it becomes a document.
type record struct {
	slug        string
	name        string // optional display-name override; slug is used when empty
	description string
	keywords    []string
	segments    []string // path segments under the category base path
}

// base builds the shared document fields for a record.
func base(ctx context.Context, c category.Category, r record) document.Base {
	scheme := docid.For(c)
	path := scheme.Path(r.segments...)
	id := scheme.Generate(path)
	if scheme.Degenerate(id) {
		logger.FromContext(ctx).Warn("degenerate document id",
			zap.String("slug", r.slug),
			zap.String("path", path),
		)
	}

	raw := r.name
	if raw == "" {
		raw = r.slug
	}
	name := text.DisplayName(raw)

	return document.Base{
		ID:          id,
		Name:        name,
		Description: text.Description(r.description, name, c),
		Category:    c,
		Path:        path,
		Keywords:    cleanKeywords(r.keywords),
	}
}

// cleanKeywords trims, drops empties and deduplicates case-insensitively, keeping order.
func cleanKeywords(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}

// stripExt removes the leading marker and the file extension from a filename.
func stripExt(fileName string) string {
	name := strings.TrimPrefix(fileName, "_")
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// readJSON reads and decodes a JSON source file, mapping every failure to a SourceReadError.
func readJSON(c category.Category, path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return domain.NewSourceReadError(string(c), path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return domain.NewSourceReadError(string(c), path, fmt.Errorf("parse: %w", err))
	}
	return nil
}

// checkCanceled returns ctx.Err() if the build was canceled.
func checkCanceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
