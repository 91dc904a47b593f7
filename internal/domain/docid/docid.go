// Package docid derives stable document identifiers from canonical display paths.
package docid

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/devindex/internal/domain/category"
)

var invalidChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// Scheme is the id recipe of one category: the path prefix to strip and the id prefix to prepend.
type Scheme struct {
	BasePath string
	Prefix   string
}

var schemes = map[category.Category]Scheme{
	category.SVGIcons:    {BasePath: "/freedevtools/svg_icons/", Prefix: "svg-icons-"},
	category.PNGIcons:    {BasePath: "/freedevtools/png_icons/", Prefix: "png-icons-"},
	category.Emoji:       {BasePath: "/freedevtools/emojis/", Prefix: "emoji-"},
	category.Cheatsheets: {BasePath: "/freedevtools/c/", Prefix: "cheatsheets-"},
	category.TLDR:        {BasePath: "/freedevtools/tldr/", Prefix: "tldr-"},
	category.MCP:         {BasePath: "/freedevtools/mcp/", Prefix: "mcp-"},
	category.Tools:       {BasePath: "/freedevtools/t/", Prefix: "tools-"},
}

// For returns the scheme of a category. Unknown categories get an empty scheme.
func For(c category.Category) Scheme {
	return schemes[c]
}

// Generate maps a display path to an id. It is pure and never fails:
// an empty or foreign path yields the bare prefix (see Degenerate).
func (s Scheme) Generate(path string) string {
	clean := strings.TrimPrefix(path, s.BasePath)
	clean = strings.TrimSuffix(clean, "/")
	clean = strings.ReplaceAll(clean, "/", "-")
	clean = invalidChars.ReplaceAllString(clean, "_")
	return s.Prefix + clean
}

// Degenerate reports whether id carries nothing beyond the scheme prefix.
func (s Scheme) Degenerate(id string) bool {
	return id == s.Prefix
}

// Path joins segments under the scheme base path with a trailing slash.
func (s Scheme) Path(segments ...string) string {
	return s.BasePath + strings.Join(segments, "/") + "/"
}
