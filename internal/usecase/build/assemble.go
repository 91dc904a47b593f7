package build

import (
	"sort"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// Assemble concatenates the builders' outputs and orders them by id.
// Two documents with the same id fail the assembly with an IDCollisionError naming both paths.
func Assemble(batches ...[]document.Document) ([]document.Document, error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	merged := make([]document.Document, 0, total)
	seen := make(map[string]string, total)
	for _, batch := range batches {
		for _, d := range batch {
			c := d.Common()
			if first, dup := seen[c.ID]; dup {
				return nil, domain.NewIDCollision(c.ID, first, c.Path)
			}
			seen[c.ID] = c.Path
			merged = append(merged, d)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Common().ID < merged[j].Common().ID
	})
	return merged, nil
}
