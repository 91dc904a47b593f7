// Package document defines the search document: a closed set of variants over the category set,
// plus the flat Record used on the wire and in the corpus file.
package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
)

// Base holds the fields shared by every variant.
type Base struct {
	ID          string
	Name        string
	Description string
	Category    category.Category
	Path        string
	Keywords    []string
}

// Common returns the shared fields.
func (b Base) Common() Base { return b }

// Document is one search-indexed content item. Implemented only by Icon, Entry and Snippet.
type Document interface {
	Common() Base
	Record() Record
	isDocument()
}

// Icon is an svg or png icon; it always carries an image URL.
type Icon struct {
	Base
	Image string
}

// Entry is a text item without media: cheatsheets, tldr pages, tools.
type Entry struct {
	Base
}

// Snippet is an item with a copyable payload: an emoji character or an MCP install command.
type Snippet struct {
	Base
	Code string
}

func (Icon) isDocument()    {}
func (Entry) isDocument()   {}
func (Snippet) isDocument() {}

// Record returns the wire form.
func (d Icon) Record() Record {
	r := d.Base.record()
	r.Image = d.Image
	return r
}

// Record returns the wire form.
func (d Entry) Record() Record { return d.Base.record() }

// Record returns the wire form.
func (d Snippet) Record() Record {
	r := d.Base.record()
	r.Code = d.Code
	return r
}

func (b Base) record() Record {
	return Record{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Path:        b.Path,
		Keywords:    cloneStrings(b.Keywords),
	}
}

// StemmedField is the normalized token sequence derived from a source text.
type StemmedField struct {
	Original string   `json:"original"`
	Tokens   []string `json:"tokens"`
}

// Stems holds the stemmed auxiliary fields of a record.
type Stems struct {
	Description StemmedField `json:"description"`
	Keywords    StemmedField `json:"keywords"`
}

// Record is the flat wire form of a Document.
type Record struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    category.Category `json:"category"`
	Path        string            `json:"path"`
	Image       string            `json:"image,omitempty"`
	Code        string            `json:"code,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	Stems       *Stems            `json:"stems,omitempty"`
}

// KeywordText is the keyword list as the single text the stemmer consumes.
func (r *Record) KeywordText() string {
	return strings.Join(r.Keywords, " ")
}

// StemsCurrent reports whether the record carries stems derived from its present text.
func (r *Record) StemsCurrent() bool {
	return r.Stems != nil &&
		r.Stems.Description.Original == r.Description &&
		r.Stems.Keywords.Original == r.KeywordText()
}

// SearchTokens merges description and keyword stems, first occurrence wins.
func (r *Record) SearchTokens() []string {
	if r.Stems == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{r.Stems.Description.Tokens, r.Stems.Keywords.Tokens} {
		for _, tok := range group {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}

// FromRecord decodes a wire record into its variant.
func FromRecord(r Record) (Document, error) {
	b := Base{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Path:        r.Path,
		Keywords:    cloneStrings(r.Keywords),
	}
	switch r.Category {
	case category.SVGIcons, category.PNGIcons:
		return Icon{Base: b, Image: r.Image}, nil
	case category.Cheatsheets, category.TLDR, category.Tools:
		return Entry{Base: b}, nil
	case category.Emoji, category.MCP:
		return Snippet{Base: b, Code: r.Code}, nil
	default:
		return nil, fmt.Errorf("record %q: %w: %q", r.ID, domain.ErrUnknownCategory, r.Category)
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
