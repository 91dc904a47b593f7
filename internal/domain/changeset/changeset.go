// Package changeset describes what an ingest run must send to the engine.
package changeset

import "github.com/kailas-cloud/devindex/internal/domain/document"

// Set is the difference between a corpus and the state the engine already holds.
type Set struct {
	Upserts   []document.Record
	Deletes   []string
	Unchanged int
	// Hashes maps record ids to the content hash remembered once the set is applied.
	Hashes map[string]string
}

// Empty reports whether there is nothing to send.
func (s Set) Empty() bool { return len(s.Upserts) == 0 && len(s.Deletes) == 0 }

// Full returns the set that rewrites every record, for an index that holds nothing yet.
// Deletes are kept so hashes orphaned under the key prefix are still removed.
func (s Set) Full(records []document.Record) Set {
	s.Upserts = records
	s.Unchanged = 0
	return s
}
