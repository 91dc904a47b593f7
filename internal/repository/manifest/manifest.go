// Package manifest remembers which document versions the search engine already holds,
// so ingestion only sends what changed since the previous run.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/devindex/internal/domain/changeset"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

var bucketDocuments = []byte("documents")

// Store is a bbolt-backed map from document id to content hash.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the manifest at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create manifest bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Len returns the number of committed documents.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketDocuments).Stats().KeyN
		return nil
	})
	return n, err
}

// Diff compares records against the committed hashes. Deletes are sorted.
func (s *Store) Diff(records []document.Record) (changeset.Set, error) {
	plan := changeset.Set{Hashes: make(map[string]string, len(records))}
	present := make(map[string]struct{}, len(records))

	for _, r := range records {
		h, err := Hash(r)
		if err != nil {
			return changeset.Set{}, err
		}
		plan.Hashes[r.ID] = h
		present[r.ID] = struct{}{}
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		for _, r := range records {
			if prev := b.Get([]byte(r.ID)); prev != nil && string(prev) == plan.Hashes[r.ID] {
				plan.Unchanged++
				continue
			}
			plan.Upserts = append(plan.Upserts, r)
		}
		return b.ForEach(func(k, _ []byte) error {
			if _, ok := present[string(k)]; !ok {
				plan.Deletes = append(plan.Deletes, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return changeset.Set{}, fmt.Errorf("read manifest: %w", err)
	}

	sort.Strings(plan.Deletes)
	return plan, nil
}

// Commit records the change set as applied.
func (s *Store) Commit(plan changeset.Set) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocuments)
		for _, r := range plan.Upserts {
			h, ok := plan.Hashes[r.ID]
			if !ok {
				var err error
				if h, err = Hash(r); err != nil {
					return err
				}
			}
			if err := b.Put([]byte(r.ID), []byte(h)); err != nil {
				return err
			}
		}
		for _, id := range plan.Deletes {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit manifest: %w", err)
	}
	return nil
}

// Reset forgets every committed document.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDocuments)
		return err
	})
}

// Hash is the hex sha256 of the record's JSON form.
func Hash(r document.Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", r.ID, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
