package devindex

import "github.com/kailas-cloud/devindex/internal/domain/category"

// Category literals stored in the index.
const (
	CategorySVGIcons    = string(category.SVGIcons)
	CategoryPNGIcons    = string(category.PNGIcons)
	CategoryEmoji       = string(category.Emoji)
	CategoryCheatsheets = string(category.Cheatsheets)
	CategoryTLDR        = string(category.TLDR)
	CategoryMCP         = string(category.MCP)
	CategoryTools       = string(category.Tools)
)

// Hit is one search result. Image is set for icons, Code for emoji and MCP servers.
type Hit struct {
	ID          string
	Name        string
	Description string
	Category    string
	Path        string
	Image       string
	Code        string
	Keywords    []string
}

// Page is one page of results plus the counts for the whole result set.
type Page struct {
	Number  int
	Hits    []Hit
	Total   int
	HasMore bool
	// Facets counts matches per category literal over the filtered set.
	Facets map[string]int
}
