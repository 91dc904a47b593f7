package category

import "sort"

// Category is the stored category literal of a document.
type Category string

// Category constants. The values are the literals stored in the engine.
const (
	SVGIcons    Category = "svg_icons"
	PNGIcons    Category = "png_icons"
	Emoji       Category = "emoji"
	Cheatsheets Category = "cheatsheets"
	TLDR        Category = "tldr"
	MCP         Category = "mcp"
	Tools       Category = "tools"
)

var all = []Category{SVGIcons, PNGIcons, Emoji, Cheatsheets, TLDR, MCP, Tools}

// All returns every category in declaration order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	for _, v := range all {
		if c == v {
			return true
		}
	}
	return false
}

// Parse converts a stored literal into a Category.
func Parse(s string) (Category, bool) {
	c := Category(s)
	return c, c.IsValid()
}

// String returns the stored literal.
func (c Category) String() string { return string(c) }

// Sorted returns a copy of cs sorted by literal.
func Sorted(cs []Category) []Category {
	out := make([]Category, len(cs))
	copy(out, cs)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
