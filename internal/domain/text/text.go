// Package text formats display names and descriptions of source records.
package text

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/kailas-cloud/devindex/internal/domain/category"
)

// marker is the leading character some source filenames carry.
const marker = "_"

var knownExtensions = []string{".svg", ".png", ".md", ".json", ".yaml", ".yml"}

// DisplayName turns a filename or slug into a title-cased display name.
// DisplayName(DisplayName(x)) == DisplayName(x).
func DisplayName(raw string) string {
	name := strings.TrimPrefix(strings.TrimSpace(raw), marker)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	// Separators and extensions can hide each other ("a.svg_", "a.svg .png").
	words := strings.Fields(name)
	for {
		joined := strings.Join(words, " ")
		trimmed := trimExtensions(joined)
		if trimmed == joined {
			break
		}
		words = strings.Fields(trimmed)
	}
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// trimExtensions strips known extensions until none is left ("a.svg.svg" -> "a").
func trimExtensions(name string) string {
	for {
		lower := strings.ToLower(name)
		trimmed := false
		for _, ext := range knownExtensions {
			if strings.HasSuffix(lower, ext) {
				name = name[:len(name)-len(ext)]
				trimmed = true
				break
			}
		}
		if !trimmed {
			return name
		}
	}
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

var descriptionTemplates = map[category.Category]string{
	category.SVGIcons:    "SVG icon for %s",
	category.PNGIcons:    "PNG icon for %s",
	category.Emoji:       "%s emoji meaning, shortcodes and copy-paste character",
	category.Cheatsheets: "%s cheatsheet with commonly used commands and syntax",
	category.TLDR:        "%s command usage examples",
	category.MCP:         "%s MCP server",
	category.Tools:       "%s online developer tool",
}

// DefaultDescription synthesizes a description for records that do not carry one.
func DefaultDescription(name string, c category.Category) string {
	if tmpl, ok := descriptionTemplates[c]; ok {
		return fmt.Sprintf(tmpl, name)
	}
	return fmt.Sprintf("%s (%s)", name, c)
}

// Description returns the cleaned raw description, or the default when nothing is left.
func Description(raw, name string, c category.Category) string {
	if d := StripMarkup(raw); d != "" {
		return d
	}
	return DefaultDescription(name, c)
}

// StripMarkup removes HTML tags, decodes entities and collapses whitespace.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapse(b.String())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
