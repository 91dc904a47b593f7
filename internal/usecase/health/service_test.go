package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	exists bool
	err    error
	name   string
}

func (m *mockIndexChecker) IndexExists(_ context.Context, name string) (bool, error) {
	m.name = name
	return m.exists, m.err
}

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		index      *mockIndexChecker
		wantStatus Status
		wantIndex  CheckResult
	}{
		{"all healthy", nil, &mockIndexChecker{exists: true}, Healthy, CheckOK},
		{"index missing", nil, &mockIndexChecker{}, Degraded, CheckMissing},
		{"index error", nil, &mockIndexChecker{err: errors.New("boom")}, Degraded, CheckError},
		{"db down", errors.New("refused"), &mockIndexChecker{exists: true}, Unhealthy, ""},
		{"no index check", nil, nil, Healthy, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var idx IndexChecker
			if tt.index != nil {
				idx = tt.index
			}
			r := New(&mockDBPinger{err: tt.dbErr}, idx, "devindex").Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Checks["index"] != tt.wantIndex {
				t.Errorf("index check = %q, want %q", r.Checks["index"], tt.wantIndex)
			}
			if tt.dbErr == nil && r.Checks["database"] != CheckOK {
				t.Errorf("database check = %q", r.Checks["database"])
			}
		})
	}
}

func TestCheck_UsesIndexName(t *testing.T) {
	idx := &mockIndexChecker{exists: true}
	New(&mockDBPinger{}, idx, "devindex").Check(context.Background())
	if idx.name != "devindex" {
		t.Errorf("checked index %q", idx.name)
	}
}

type mockCorpus struct {
	total int
	err   error
	got   request.Params
}

func (m *mockCorpus) Search(_ context.Context, p request.Params) (result.Response, error) {
	m.got = p
	if m.err != nil {
		return result.Response{}, m.err
	}
	return result.Response{
		FacetDistribution: map[string]map[string]int{result.CategoryField: {"tools": m.total}},
	}, nil
}

func TestCheck_Documents(t *testing.T) {
	tests := []struct {
		name       string
		corpus     *mockCorpus
		wantStatus Status
		wantDocs   CheckResult
	}{
		{"populated", &mockCorpus{total: 42}, Healthy, CheckOK},
		{"empty", &mockCorpus{}, Degraded, CheckEmpty},
		{"search error", &mockCorpus{err: errors.New("boom")}, Degraded, CheckError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&mockDBPinger{}, &mockIndexChecker{exists: true}, "devindex").
				WithCorpus(tt.corpus).
				Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Checks[CheckDocuments] != tt.wantDocs {
				t.Errorf("documents check = %q, want %q", r.Checks[CheckDocuments], tt.wantDocs)
			}
			if tt.corpus.got.Limit != 0 {
				t.Errorf("count query fetched %d hits", tt.corpus.got.Limit)
			}
		})
	}
}

func TestCheck_SkipsDocumentsWhenIndexMissing(t *testing.T) {
	corpus := &mockCorpus{total: 1}
	r := New(&mockDBPinger{}, &mockIndexChecker{}, "devindex").
		WithCorpus(corpus).
		Check(context.Background())

	if _, ok := r.Checks[CheckDocuments]; ok {
		t.Error("documents must not be checked without an index")
	}
	if r.Checks[CheckIndex] != CheckMissing {
		t.Errorf("index check = %q", r.Checks[CheckIndex])
	}
}
