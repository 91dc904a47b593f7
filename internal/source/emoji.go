package source

import (
	"context"
	"errors"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

type emojiEntry struct {
	Slug        string   `json:"slug"`
	Emoji       string   `json:"emoji"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Group       string   `json:"group"`
	Shortcodes  []string `json:"shortcodes"`
	Keywords    []string `json:"keywords"`
}

type emojiFile struct {
	Emojis []emojiEntry `json:"emojis"`
}

// EmojiBuilder builds emoji documents from an emoji catalog file.
type EmojiBuilder struct {
	path string
}

// NewEmoji creates the emoji builder.
func NewEmoji(path string) *EmojiBuilder { return &EmojiBuilder{path: path} }

// Category returns the builder's category.
func (b *EmojiBuilder) Category() category.Category { return category.Emoji }

// Build emits one Snippet per catalog entry, carrying the emoji character as code.
func (b *EmojiBuilder) Build(ctx context.Context) ([]document.Document, error) {
	var f emojiFile
	if err := readJSON(category.Emoji, b.path, &f); err != nil {
		return nil, err
	}
	if f.Emojis == nil {
		return nil, domain.NewSourceReadError(string(category.Emoji), b.path, errors.New(`missing "emojis" array`))
	}

	docs := make([]document.Document, 0, len(f.Emojis))
	for _, e := range f.Emojis {
		keywords := make([]string, 0, len(e.Keywords)+len(e.Shortcodes)+1)
		keywords = append(keywords, e.Keywords...)
		keywords = append(keywords, e.Shortcodes...)
		keywords = append(keywords, e.Group)

		docs = append(docs, document.Snippet{
			Base: base(ctx, category.Emoji, record{
				slug:        e.Slug,
				name:        e.Title,
				description: e.Description,
				keywords:    keywords,
				segments:    []string{e.Slug},
			}),
			Code: e.Emoji,
		})
	}
	return docs, nil
}
