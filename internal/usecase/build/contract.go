package build

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// Builder produces the documents of one category.
type Builder interface {
	Category() category.Category
	Build(ctx context.Context) ([]document.Document, error)
}
