package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const clusterJSON = `{
  "clusters": {
    "arrows": {
      "name": "Arrows",
      "source_folder": "arrows",
      "keywords": ["direction"],
      "fileNames": [
        {"fileName": "_left-arrow.svg", "description": "Arrow pointing left", "tags": ["left"], "synonyms": ["back"]},
        {"fileName": "up_arrow.svg"}
      ]
    },
    "brands": {
      "fileNames": [{"fileName": "github.svg", "description": "<b>GitHub</b> logo"}]
    }
  }
}`

func TestIconBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cluster_svg.json", clusterJSON)

	docs, err := NewSVGIcons(p).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	left, ok := docs[0].(document.Icon)
	require.True(t, ok, "expected Icon variant, got %T", docs[0])
	assert.Equal(t, "svg-icons-arrows-left-arrow", left.ID)
	assert.Equal(t, "Left Arrow", left.Name)
	assert.Equal(t, "Arrow pointing left", left.Description)
	assert.Equal(t, category.SVGIcons, left.Category)
	assert.Equal(t, "/freedevtools/svg_icons/arrows/left-arrow/", left.Path)
	assert.Equal(t, "/svg_icons/arrows/_left-arrow.svg", left.Image)
	assert.Equal(t, []string{"left", "back", "direction"}, left.Keywords)

	up := docs[1].(document.Icon)
	assert.Equal(t, "Up Arrow", up.Name)
	assert.Equal(t, "SVG icon for Up Arrow", up.Description, "missing description gets the default")

	gh := docs[2].(document.Icon)
	assert.Equal(t, "svg-icons-brands-github", gh.ID, "source folder falls back to the cluster key")
	assert.Equal(t, "GitHub logo", gh.Description)
}

func TestIconBuilder_PNG(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cluster_png.json", `{"clusters": {"misc": {"fileNames": [{"fileName": "cat.png"}]}}}`)

	docs, err := NewPNGIcons(p).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	icon := docs[0].(document.Icon)
	assert.Equal(t, "png-icons-misc-cat", icon.ID)
	assert.Equal(t, "/png_icons/misc/cat.png", icon.Image)
	assert.Equal(t, "PNG icon for Cat", icon.Description)
}

func TestIconBuilder_Deterministic(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cluster_svg.json", clusterJSON)

	first, err := NewSVGIcons(p).Build(context.Background())
	require.NoError(t, err)
	second, err := NewSVGIcons(p).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuilders_SourceErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{not json`)
	empty := writeFile(t, dir, "empty.json", `{}`)
	badYAML := writeFile(t, dir, "bad.yaml", "tools: [unclosed")
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		name    string
		builder Builder
	}{
		{"icons missing file", NewSVGIcons(missing)},
		{"icons bad json", NewSVGIcons(bad)},
		{"icons no clusters", NewSVGIcons(empty)},
		{"emoji no array", NewEmoji(empty)},
		{"mcp no servers", NewMCP(empty)},
		{"tools bad yaml", NewTools(badYAML)},
		{"tools missing", NewTools(missing)},
		{"tldr missing root", NewTLDR(filepath.Join(dir, "nope"), "")},
		{"tldr root is file", NewTLDR(bad, "")},
		{"cheatsheets no matches", NewCheatsheets(t.TempDir(), "")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			docs, err := tc.builder.Build(context.Background())
			require.Error(t, err)
			assert.Nil(t, docs)
			assert.True(t, errors.Is(err, domain.ErrSourceRead), "want ErrSourceRead, got %v", err)

			var sre *domain.SourceReadError
			require.ErrorAs(t, err, &sre)
			assert.Equal(t, string(tc.builder.Category()), sre.Category)
		})
	}
}

func TestEmojiBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "emojis.json", `{"emojis": [
		{"slug": "grinning-face", "emoji": "😀", "description": "A happy face", "group": "smileys", "shortcodes": [":grinning:"]},
		{"slug": "red_heart", "emoji": "❤️", "title": "Red Heart"}
	]}`)

	docs, err := NewEmoji(p).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	face := docs[0].(document.Snippet)
	assert.Equal(t, "emoji-grinning-face", face.ID)
	assert.Equal(t, "Grinning Face", face.Name)
	assert.Equal(t, "😀", face.Code)
	assert.Equal(t, "/freedevtools/emojis/grinning-face/", face.Path)
	assert.Equal(t, []string{":grinning:", "smileys"}, face.Keywords)

	heart := docs[1].(document.Snippet)
	assert.Equal(t, "emoji-red_heart", heart.ID)
	assert.Equal(t, "Red Heart", heart.Name)
	assert.Contains(t, heart.Description, "Red Heart")
}

func TestMCPBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "mcp.json", `{"servers": {
		"zeta-fs": {"name": "zeta fs", "category": "filesystem", "install_command": "npx zeta-fs"},
		"alpha-db": {"description": "Query databases", "tags": ["sql"]}
	}}`)

	docs, err := NewMCP(p).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	first := docs[0].(document.Snippet)
	assert.Equal(t, "mcp-other-alpha-db", first.ID, "servers are emitted in key order")
	assert.Equal(t, []string{"other", "sql"}, first.Keywords)

	second := docs[1].(document.Snippet)
	assert.Equal(t, "mcp-filesystem-zeta-fs", second.ID)
	assert.Equal(t, "Zeta Fs", second.Name)
	assert.Equal(t, "npx zeta-fs", second.Code)
	assert.Equal(t, "Zeta Fs MCP server", second.Description)
}

func TestToolsBuilder_Build(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tools.yaml", `
tools:
  - slug: json-formatter
    title: JSON Formatter
    description: Format and validate JSON
    keywords: [json, pretty]
  - slug: base64
`)

	docs, err := NewTools(p).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	first := docs[0].(document.Entry)
	assert.Equal(t, "tools-json-formatter", first.ID)
	assert.Equal(t, "Json Formatter", first.Name)
	assert.Equal(t, category.Tools, first.Category)

	second := docs[1].(document.Entry)
	assert.Equal(t, "Base64 online developer tool", second.Description)
}

func TestTLDRBuilder_Build(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "common/tar.md", `# tar

> Archiving utility.
> Often combined with a compression method.
> More information: <https://www.gnu.org/software/tar>.

- Create an archive:

`+"`tar cf {{target.tar}} {{file1}}`"+`
`)
	writeFile(t, root, "linux/apt.md", "# apt\n\n> Package manager.\n")
	writeFile(t, root, "README.txt", "ignored")

	docs, err := NewTLDR(root, "").Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	tar := docs[0].(document.Entry)
	assert.Equal(t, "tldr-common-tar", tar.ID)
	assert.Equal(t, "Tar", tar.Name)
	assert.Equal(t, "Archiving utility. Often combined with a compression method.", tar.Description)
	assert.Equal(t, "/freedevtools/tldr/common/tar/", tar.Path)

	apt := docs[1].(document.Entry)
	assert.Equal(t, "tldr-linux-apt", apt.ID)
}

func TestCheatsheetsBuilder_FrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "git.md", `---
title: git basics
description: Everyday Git commands
keywords: [vcs, scm]
---
# Ignored heading

Some intro.
`)
	writeFile(t, root, "lang/go.md", "# go\n\nThe Go programming language.\n")

	docs, err := NewCheatsheets(root, "").Build(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	git := docs[0].(document.Entry)
	assert.Equal(t, "cheatsheets-general-git", git.ID)
	assert.Equal(t, "Git Basics", git.Name)
	assert.Equal(t, "Everyday Git commands", git.Description)
	assert.Equal(t, []string{"vcs", "scm"}, git.Keywords)

	goDoc := docs[1].(document.Entry)
	assert.Equal(t, "cheatsheets-lang-go", goDoc.ID)
	assert.Equal(t, "The Go programming language.", goDoc.Description)
}

func TestCheatsheetsBuilder_BadFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.md", "---\ntitle: [unclosed\n---\n")

	_, err := NewCheatsheets(root, "").Build(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceRead)
}

func TestBuild_Canceled(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cluster_svg.json", clusterJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSVGIcons(p).Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCleanKeywords(t *testing.T) {
	got := cleanKeywords([]string{" Go ", "", "go", "Rust", "rust ", "zig"})
	assert.Equal(t, []string{"Go", "Rust", "zig"}, got)
	assert.Nil(t, cleanKeywords(nil))
}
