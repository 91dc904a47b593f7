package document

import (
	"strings"

	"github.com/kailas-cloud/devindex/internal/db"
)

// Hash field names of an indexed document.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldCategory     = "category"
	FieldPath         = "path"
	FieldImage        = "image"
	FieldCode         = "code"
	FieldKeywords     = "keywords"
	FieldSearchTokens = "search_tokens"
)

// TextFields are the fields free-text queries run against.
var TextFields = []string{FieldName, FieldDescription, FieldKeywords, FieldSearchTokens}

// DisplayFields are returned with every hit.
var DisplayFields = []string{
	FieldID, FieldName, FieldDescription, FieldCategory,
	FieldPath, FieldImage, FieldCode, FieldKeywords,
}

// Layout names the index and the key namespace documents live under.
type Layout struct {
	IndexName string
	KeyPrefix string
}

// Key returns the hash key of a document id.
func (l Layout) Key(id string) string { return l.KeyPrefix + id }

// ID strips the key prefix.
func (l Layout) ID(key string) string { return strings.TrimPrefix(key, l.KeyPrefix) }

// Definition returns the FT index schema for documents.
func (l Layout) Definition() (*db.IndexDefinition, error) {
	return db.NewIndex(l.IndexName).
		Prefix(l.KeyPrefix).
		TextWeighted(FieldName, 5).
		TextWeighted(FieldKeywords, 2).
		Text(FieldDescription).
		TextNoStem(FieldSearchTokens).
		Tag(FieldCategory).
		Build()
}
