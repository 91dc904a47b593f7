package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/devindex/internal/client/planner"
	"github.com/kailas-cloud/devindex/internal/config"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	"github.com/kailas-cloud/devindex/internal/repository/corpus"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func writeConfig(t *testing.T, dir string, sources string) string {
	t.Helper()
	return writeFile(t, dir, "test.yaml", fmt.Sprintf(`
database:
  addrs: ["localhost:6379"]
build:
  output: %s
  workers: 2
  sources:
%s
`, filepath.Join(dir, "out", "corpus.json"), sources))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand_WritesStemmedCorpus(t *testing.T) {
	dir := t.TempDir()
	emoji := writeFile(t, dir, "emoji.json", `{"emojis": [
		{"slug": "rocket", "emoji": "🚀", "description": "Launching rockets quickly", "keywords": ["launch"]}
	]}`)
	tools := writeFile(t, dir, "tools.yaml", `
tools:
  - slug: json-formatter
    title: JSON Formatter
    description: Formatting JSON documents
    keywords: [json, pretty]
`)
	cfg := writeConfig(t, dir, fmt.Sprintf("    emoji: %s\n    tools: %s", emoji, tools))

	out, err := execute(t, "--config", cfg, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "emoji")
	assert.Contains(t, out, "total")

	records, err := corpus.ReadFile(filepath.Join(dir, "out", "corpus.json"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "emoji-rocket", records[0].ID, "records are sorted by id")
	assert.Equal(t, "tools-json-formatter", records[1].ID)
	for _, r := range records {
		assert.True(t, r.StemsCurrent(), "record %s carries stems", r.ID)
	}

	// The stem pass is idempotent.
	out, err = execute(t, "--config", cfg, "stem")
	require.NoError(t, err)
	assert.Contains(t, out, "stemmed: 0")
}

func TestBuildCommand_NoStem(t *testing.T) {
	dir := t.TempDir()
	tools := writeFile(t, dir, "tools.yaml", "tools:\n  - slug: base64\n")
	cfg := writeConfig(t, dir, "    tools: "+tools)

	_, err := execute(t, "--config", cfg, "build", "--no-stem")
	require.NoError(t, err)

	records, err := corpus.ReadFile(filepath.Join(dir, "out", "corpus.json"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Stems)
}

func TestBuildCommand_SourceErrorFails(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "    mcp: "+filepath.Join(dir, "missing.json"))

	_, err := execute(t, "--config", cfg, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source read failed")

	_, statErr := os.Stat(filepath.Join(dir, "out", "corpus.json"))
	assert.True(t, os.IsNotExist(statErr), "no corpus is written on failure")
}

func TestBuildCommand_NoSources(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "    emoji: \"\"")

	_, err := execute(t, "--config", cfg, "build")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "devindex "))
}

func TestBuildersFromConfig(t *testing.T) {
	builders := buildersFromConfig(config.SourcesConfig{
		SVGIcons: "a.json",
		Emoji:    "e.json",
		TLDR:     config.MarkdownSource{Root: "pages"},
	})
	got := make([]category.Category, len(builders))
	for i, b := range builders {
		got[i] = b.Category()
	}
	assert.Equal(t, []category.Category{category.SVGIcons, category.Emoji, category.TLDR}, got)
}

// --- Terminal client ---

type corpusFetcher struct {
	mu   sync.Mutex
	docs []document.Document
}

func (f *corpusFetcher) Search(_ context.Context, p request.Params) (result.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []document.Document
	cats := p.Filter.Values(result.CategoryField)
	for _, d := range f.docs {
		if len(cats) > 0 && !containsString(cats, string(d.Common().Category)) {
			continue
		}
		matched = append(matched, d)
	}
	counts := map[string]int{}
	for _, d := range matched {
		counts[string(d.Common().Category)]++
	}

	end := min(p.Offset+p.Limit, len(matched))
	var hits []document.Document
	if p.Offset < end {
		hits = matched[p.Offset:end]
	}
	return result.Response{
		Hits:               hits,
		EstimatedTotalHits: len(matched),
		FacetDistribution:  map[string]map[string]int{result.CategoryField: counts},
	}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func testDocs() []document.Document {
	var docs []document.Document
	for i := 0; i < 150; i++ {
		docs = append(docs, document.Entry{Base: document.Base{
			ID: fmt.Sprintf("tools-%03d", i), Name: fmt.Sprintf("tool %d", i), Category: category.Tools,
		}})
	}
	for i := 0; i < 100; i++ {
		docs = append(docs, document.Snippet{Base: document.Base{
			ID: fmt.Sprintf("emoji-%03d", i), Name: fmt.Sprintf("emoji %d", i), Category: category.Emoji,
		}, Code: "🙂"})
	}
	return docs
}

func newTestREPL(t *testing.T, out *bytes.Buffer) *repl {
	t.Helper()
	p, err := planner.New(planner.DefaultAliases(), 100)
	require.NoError(t, err)
	// A long debounce leaves every fetch to the explicit Flush.
	r := newREPL(context.Background(), p, &corpusFetcher{docs: testDocs()}, out, time.Hour)
	t.Cleanup(r.close)
	return r
}

func TestREPL_OnceLoadsAllPages(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(t, &out)

	require.NoError(t, r.once("tool", nil, 5))
	assert.Contains(t, out.String(), "250 of 250 results")
	assert.Contains(t, out.String(), "link: #search=tool")
	assert.NotContains(t, out.String(), ":more")
}

func TestREPL_OnceWithAlias(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(t, &out)

	require.NoError(t, r.once("face", []string{"emojis"}, 1))
	assert.Contains(t, out.String(), "100 of 100 results")
	assert.Contains(t, out.String(), "🙂")
}

func TestREPL_Run(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(t, &out)

	in := strings.NewReader(strings.Join([]string{
		"tool",
		":more",
		":more",
		":toggle emojis",
		":add tools",
		":quit",
		"never reached",
	}, "\n"))
	require.NoError(t, r.run(in))

	text := out.String()
	assert.Contains(t, text, "100 of 250 results (:more for next page)")
	assert.Contains(t, text, "200 of 250 results")
	assert.Contains(t, text, "250 of 250 results")
	assert.Contains(t, text, "100 of 100 results", "emoji only")
	// tool x3 pages, then emoji+tools page 1
	assert.Equal(t, 4, strings.Count(text, "of 250 results"))
}

func TestREPL_UnknownCategory(t *testing.T) {
	var out bytes.Buffer
	r := newTestREPL(t, &out)

	err := r.once("x", []string{"fonts"}, 1)
	require.Error(t, err)
	assert.Contains(t, out.String(), "search failed")
}
