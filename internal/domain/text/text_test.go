package text

import (
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain/category"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"_left-arrow.svg", "Left Arrow"},
		{"left_arrow", "Left Arrow"},
		{"ARROW-UP", "Arrow Up"},
		{"arrow--up__down", "Arrow Up Down"},
		{"icon.svg.svg", "Icon"},
		{"Logo.PNG", "Logo"},
		{"git-commit.md", "Git Commit"},
		{"écran", "Écran"},
		{"", ""},
		{"_", ""},
		{"  spaced  ", "Spaced"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName_Idempotent(t *testing.T) {
	inputs := []string{
		"_left-arrow.svg", "file.svg.svg", "Already Normal", "MiXeD_case-name",
		"a", "__double", "x.md.svg", "ümlaut_WORD", "123-abc",
		"a.svg_", "guide.md-", "x-a.md-", "a.svg .png", "b.SVG__-", "_ .svg",
	}
	for _, in := range inputs {
		once := DisplayName(in)
		if twice := DisplayName(once); twice != once {
			t.Errorf("DisplayName not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestDisplayName_TrailingSeparators(t *testing.T) {
	tests := map[string]string{
		"a.svg_":     "A",
		"guide.md-":  "Guide",
		"x-a.md-":    "X A",
		"a.svg .png": "A",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultDescription(t *testing.T) {
	if got := DefaultDescription("Left Arrow", category.SVGIcons); got != "SVG icon for Left Arrow" {
		t.Errorf("svg default = %q", got)
	}
	if got := DefaultDescription("Tar", category.TLDR); got != "Tar command usage examples" {
		t.Errorf("tldr default = %q", got)
	}
	if got := DefaultDescription("X", category.Category("other")); got != "X (other)" {
		t.Errorf("fallback default = %q", got)
	}
}

func TestDescription(t *testing.T) {
	if got := Description("  An   arrow ", "Arrow", category.SVGIcons); got != "An arrow" {
		t.Errorf("Description trimmed = %q", got)
	}
	if got := Description("", "Arrow", category.SVGIcons); got != "SVG icon for Arrow" {
		t.Errorf("Description default = %q", got)
	}
	if got := Description("<p> </p>", "Arrow", category.PNGIcons); got != "PNG icon for Arrow" {
		t.Errorf("Description markup-only = %q", got)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b> move", "bold move"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<p>one</p><p>two</p>", "one two"},
		{"keep<script>alert(1)</script> this", "keep this"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := StripMarkup(tc.in); got != tc.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
