// Package corpus reads and writes the assembled index artifact: a JSON array of records.
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// Encode writes records as an indented JSON array followed by a newline.
func Encode(w io.Writer, records []document.Record) error {
	if records == nil {
		records = []document.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	return nil
}

// Decode reads a JSON array of records.
func Decode(r io.Reader) ([]document.Record, error) {
	var records []document.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return records, nil
}

// WriteFile replaces path atomically: the records go to a temp file in the same
// directory which is then renamed over the target.
func WriteFile(path string, records []document.Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close corpus: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace corpus: %w", err)
	}
	return nil
}

// ReadFile loads records from path.
func ReadFile(path string) ([]document.Record, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Records converts documents to their wire form, preserving order.
func Records(docs []document.Document) []document.Record {
	out := make([]document.Record, len(docs))
	for i, d := range docs {
		out[i] = d.Record()
	}
	return out
}
