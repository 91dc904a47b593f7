// Package health reports whether the search engine can serve queries.
package health

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
)

// Status is the aggregated health status.
type Status string

const (
	// Healthy means queries will return documents.
	Healthy Status = "ok"
	// Degraded means the engine answers but the index is missing, unreadable or empty.
	Degraded Status = "degraded"
	// Unhealthy means the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult is the outcome of one check.
type CheckResult string

const (
	CheckOK      CheckResult = "ok"
	CheckMissing CheckResult = "missing"
	CheckEmpty   CheckResult = "empty"
	CheckError   CheckResult = "error"
)

// Check names in Report.Checks.
const (
	CheckDatabase  = "database"
	CheckIndex     = "index"
	CheckDocuments = "documents"
)

// Report aggregates check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs the checks in order; each runs only if the previous one passed.
type Service struct {
	db        DBPinger
	index     IndexChecker
	corpus    CorpusSearcher
	indexName string
}

// New creates a Service. index can be nil to skip the index check.
func New(db DBPinger, index IndexChecker, indexName string) *Service {
	return &Service{db: db, index: index, indexName: indexName}
}

// WithCorpus adds a check that the index holds at least one document.
func (s *Service) WithCorpus(c CorpusSearcher) *Service {
	s.corpus = c
	return s
}

// Check pings the engine, checks the index, then counts documents.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: make(map[string]CheckResult, 3)}

	if err := s.db.Ping(ctx); err != nil {
		r.Checks[CheckDatabase] = CheckError
		r.Status = Unhealthy
		return r
	}
	r.Checks[CheckDatabase] = CheckOK

	if s.index != nil {
		ok, err := s.index.IndexExists(ctx, s.indexName)
		switch {
		case err != nil:
			return r.degrade(CheckIndex, CheckError)
		case !ok:
			return r.degrade(CheckIndex, CheckMissing)
		}
		r.Checks[CheckIndex] = CheckOK
	}

	if s.corpus != nil {
		resp, err := s.corpus.Search(ctx, request.Params{Limit: 0, Facets: []string{result.CategoryField}})
		switch {
		case err != nil:
			return r.degrade(CheckDocuments, CheckError)
		case resp.Total() == 0:
			return r.degrade(CheckDocuments, CheckEmpty)
		}
		r.Checks[CheckDocuments] = CheckOK
	}
	return r
}

func (r Report) degrade(check string, res CheckResult) Report {
	r.Checks[check] = res
	r.Status = Degraded
	return r
}
