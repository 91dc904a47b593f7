package result

import (
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want int
	}{
		{"facets win", Response{
			EstimatedTotalHits: 1000,
			FacetDistribution:  map[string]map[string]int{CategoryField: {"tools": 40, "tldr": 12}},
		}, 52},
		{"no facets", Response{EstimatedTotalHits: 77}, 77},
		{"zero facet sum", Response{
			EstimatedTotalHits: 9,
			FacetDistribution:  map[string]map[string]int{CategoryField: {}},
		}, 9},
		{"other facet ignored", Response{
			EstimatedTotalHits: 5,
			FacetDistribution:  map[string]map[string]int{"lang": {"en": 100}},
		}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Total(); got != tt.want {
				t.Errorf("Total() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategoryCounts(t *testing.T) {
	r := Response{
		Hits:              []document.Document{document.Entry{Base: document.Base{ID: "tools-a", Category: category.Tools}}},
		FacetDistribution: map[string]map[string]int{CategoryField: {"tools": 1}},
	}
	if r.CategoryCounts()["tools"] != 1 {
		t.Errorf("CategoryCounts() = %v", r.CategoryCounts())
	}
	if (Response{}).CategoryCounts() != nil {
		t.Error("expected nil counts for empty response")
	}
}
