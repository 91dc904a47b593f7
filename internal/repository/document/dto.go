package document

import (
	"encoding/json"
	"strings"

	"github.com/kailas-cloud/devindex/internal/domain/category"
	domdoc "github.com/kailas-cloud/devindex/internal/domain/document"
)

// buildHashFields flattens a record for HSET. Empty optional fields are left out.
func buildHashFields(r *domdoc.Record) map[string]string {
	m := map[string]string{
		FieldID:          r.ID,
		FieldName:        r.Name,
		FieldDescription: r.Description,
		FieldCategory:    string(r.Category),
		FieldPath:        r.Path,
	}
	if r.Image != "" {
		m[FieldImage] = r.Image
	}
	if r.Code != "" {
		m[FieldCode] = r.Code
	}
	if len(r.Keywords) > 0 {
		if data, err := json.Marshal(r.Keywords); err == nil {
			m[FieldKeywords] = string(data)
		}
	}
	if tokens := r.SearchTokens(); len(tokens) > 0 {
		m[FieldSearchTokens] = strings.Join(tokens, " ")
	}
	return m
}

// parseHashFields rebuilds the display part of a record from hash fields.
// Stems are not read back.
func parseHashFields(id string, m map[string]string) domdoc.Record {
	r := domdoc.Record{
		ID:          id,
		Name:        m[FieldName],
		Description: m[FieldDescription],
		Category:    category.Category(m[FieldCategory]),
		Path:        m[FieldPath],
		Image:       m[FieldImage],
		Code:        m[FieldCode],
	}
	if v := m[FieldID]; v != "" {
		r.ID = v
	}
	if raw := m[FieldKeywords]; raw != "" {
		var kw []string
		if err := json.Unmarshal([]byte(raw), &kw); err == nil {
			r.Keywords = kw
		}
	}
	return r
}
