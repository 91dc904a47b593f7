package docid

import (
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain/category"
)

func TestGenerate(t *testing.T) {
	svg := For(category.SVGIcons)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"simple", "/freedevtools/svg_icons/arrows/left-arrow/", "svg-icons-arrows-left-arrow"},
		{"no trailing slash", "/freedevtools/svg_icons/arrows/left-arrow", "svg-icons-arrows-left-arrow"},
		{"underscore kept", "/freedevtools/svg_icons/arrows/_left-arrow.svg/", "svg-icons-arrows-_left-arrow_svg"},
		{"spaces and unicode", "/freedevtools/svg_icons/my set/café/", "svg-icons-my_set-caf_"},
		{"empty", "", "svg-icons-"},
		{"prefix only", "/freedevtools/svg_icons/", "svg-icons-"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := svg.Generate(tc.path)
			if got != tc.want {
				t.Errorf("Generate(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestGenerate_Stable(t *testing.T) {
	s := For(category.SVGIcons)
	path := "/freedevtools/svg_icons/arrows/_left-arrow.svg/"
	first := s.Generate(path)
	for range 5 {
		if got := s.Generate(path); got != first {
			t.Fatalf("Generate not stable: %q vs %q", got, first)
		}
	}
}

func TestDegenerate(t *testing.T) {
	s := For(category.TLDR)
	if !s.Degenerate(s.Generate("")) {
		t.Error("empty path should produce a degenerate id")
	}
	if s.Degenerate(s.Generate(s.Path("common", "tar"))) {
		t.Error("regular path should not be degenerate")
	}
}

func TestPath(t *testing.T) {
	s := For(category.SVGIcons)
	if got := s.Path("arrows", "left"); got != "/freedevtools/svg_icons/arrows/left/" {
		t.Errorf("Path = %q", got)
	}
}

func TestFor_DistinctPrefixes(t *testing.T) {
	seen := map[string]category.Category{}
	for _, c := range category.All() {
		p := For(c).Prefix
		if p == "" {
			t.Errorf("category %q has no scheme", c)
		}
		if other, dup := seen[p]; dup {
			t.Errorf("prefix %q shared by %q and %q", p, c, other)
		}
		seen[p] = c
	}
}
