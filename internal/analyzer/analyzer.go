// Package analyzer tokenizes and stems free-text fields into search tokens.
package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"

	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// DefaultMinLength is the shortest token kept. Two keeps terms like "js", "ui" and "go".
const DefaultMinLength = 2

// Analyzer splits text into tokens with stopword removal and stemming.
type Analyzer struct {
	minLength int
	stopwords map[string]struct{}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMinLength sets the minimum token length in runes.
func WithMinLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.minLength = n
		}
	}
}

// WithStopwords replaces the default stoplist.
func WithStopwords(words []string) Option {
	return func(a *Analyzer) {
		a.stopwords = toSet(words)
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		minLength: DefaultMinLength,
		stopwords: toSet(defaultStopwords),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tokens lowercases, splits, filters and stems text, deduplicated in first-seen order.
func (a *Analyzer) Tokens(text string) []string {
	out := []string{}
	seen := make(map[string]struct{})

	for _, word := range splitWords(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) < a.minLength {
			continue
		}
		if _, stop := a.stopwords[word]; stop {
			continue
		}
		stem := english.Stem(word, false)
		if stem == "" {
			continue
		}
		if _, dup := seen[stem]; dup {
			continue
		}
		seen[stem] = struct{}{}
		out = append(out, stem)
	}
	return out
}

// StemField derives the stemmed form of a single text. Empty text gives empty tokens.
func (a *Analyzer) StemField(text string) document.StemmedField {
	return document.StemmedField{Original: text, Tokens: a.Tokens(text)}
}

// StemKeywords stems a keyword list as one space-joined text.
func (a *Analyzer) StemKeywords(keywords []string) document.StemmedField {
	return a.StemField(strings.Join(keywords, " "))
}

// Apply stems a record in place. Records whose stems already match their text are left alone;
// stale stems are overwritten, never extended. Reports whether the record changed.
func (a *Analyzer) Apply(r *document.Record) bool {
	if r.StemsCurrent() {
		return false
	}
	r.Stems = &document.Stems{
		Description: a.StemField(r.Description),
		Keywords:    a.StemKeywords(r.Keywords),
	}
	return true
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = struct{}{}
	}
	return m
}

var defaultStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for",
	"from", "has", "he", "in", "is", "it", "its", "of", "on",
	"that", "the", "to", "was", "were", "will", "with", "this",
	"have", "had", "but", "not", "you", "your", "we", "our",
	"they", "their", "she", "her", "his", "if", "or", "so",
	"no", "can", "do", "does", "did", "been", "being", "would",
	"could", "should", "may", "might", "must", "shall", "which",
	"who", "whom", "what", "when", "where", "why", "how", "all",
	"each", "every", "both", "few", "more", "most", "other",
	"some", "such", "than", "too", "very", "just", "also",
}
