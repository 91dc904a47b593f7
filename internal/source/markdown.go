package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
)

// DefaultMarkdownPattern matches every markdown file below the root.
const DefaultMarkdownPattern = "**/*.md"

// MarkdownBuilder builds Entry documents from a tree of markdown pages.
// The directory of a page below the root becomes its path group.
type MarkdownBuilder struct {
	category     category.Category
	root         string
	pattern      string
	defaultGroup string
}

// NewTLDR creates the tldr builder; groups are platforms (common, linux, osx...).
func NewTLDR(root, pattern string) *MarkdownBuilder {
	return newMarkdown(category.TLDR, root, pattern, "common")
}

// NewCheatsheets creates the cheatsheet builder; groups are cheatsheet sections.
func NewCheatsheets(root, pattern string) *MarkdownBuilder {
	return newMarkdown(category.Cheatsheets, root, pattern, "general")
}

func newMarkdown(c category.Category, root, pattern, defaultGroup string) *MarkdownBuilder {
	if pattern == "" {
		pattern = DefaultMarkdownPattern
	}
	return &MarkdownBuilder{category: c, root: root, pattern: pattern, defaultGroup: defaultGroup}
}

// Category returns the builder's category.
func (b *MarkdownBuilder) Category() category.Category { return b.category }

// Build emits one Entry per matched page, pages in path order.
func (b *MarkdownBuilder) Build(ctx context.Context) ([]document.Document, error) {
	info, err := os.Stat(b.root)
	if err != nil {
		return nil, domain.NewSourceReadError(string(b.category), b.root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewSourceReadError(string(b.category), b.root, errors.New("not a directory"))
	}

	fsys := os.DirFS(b.root)
	matches, err := doublestar.Glob(fsys, b.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, domain.NewSourceReadError(string(b.category), b.root, fmt.Errorf("glob %q: %w", b.pattern, err))
	}
	if len(matches) == 0 {
		return nil, domain.NewSourceReadError(string(b.category), b.root, fmt.Errorf("no files match %q", b.pattern))
	}
	sort.Strings(matches)

	docs := make([]document.Document, 0, len(matches))
	for _, rel := range matches {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		data, err := fs.ReadFile(fsys, rel)
		if err != nil {
			return nil, domain.NewSourceReadError(string(b.category), path.Join(b.root, rel), err)
		}
		p, err := parsePage(data)
		if err != nil {
			return nil, domain.NewSourceReadError(string(b.category), path.Join(b.root, rel), err)
		}

		slug := stripExt(path.Base(rel))
		segments := []string{b.defaultGroup}
		if dir := path.Dir(rel); dir != "." {
			segments = strings.Split(dir, "/")
		}
		segments = append(segments, slug)

		docs = append(docs, document.Entry{
			Base: base(ctx, b.category, record{
				slug:        slug,
				name:        p.Title,
				description: p.Description,
				keywords:    p.Keywords,
				segments:    segments,
			}),
		})
	}
	return docs, nil
}

// page is the metadata extracted from a markdown file.
type page struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

var frontMatterDelim = []byte("---")

// parsePage reads optional YAML front matter, then fills gaps from the body:
// the first "# " heading is the title, "> " lines (minus the tldr "More information" link)
// or else the first plain line form the description.
func parsePage(data []byte) (page, error) {
	var p page

	body := data
	if bytes.HasPrefix(data, frontMatterDelim) {
		rest := data[len(frontMatterDelim):]
		end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
		if end < 0 {
			return page{}, errors.New("unterminated front matter")
		}
		if err := yaml.Unmarshal(rest[:end], &p); err != nil {
			return page{}, fmt.Errorf("front matter: %w", err)
		}
		body = rest[end+1+len(frontMatterDelim):]
	}

	var quoted []string
	var firstPlain string
	inCode := false

	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "```"):
			inCode = !inCode
		case inCode || line == "":
		case strings.HasPrefix(line, "# "):
			if p.Title == "" {
				p.Title = strings.TrimSpace(line[2:])
			}
		case strings.HasPrefix(line, ">"):
			q := strings.TrimSpace(strings.TrimPrefix(line, ">"))
			if q != "" && !strings.HasPrefix(q, "More information") {
				quoted = append(quoted, q)
			}
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, "-"), strings.HasPrefix(line, "`"):
		default:
			if firstPlain == "" {
				firstPlain = line
			}
		}
	}
	if err := sc.Err(); err != nil {
		return page{}, fmt.Errorf("scan: %w", err)
	}

	if p.Description == "" {
		if len(quoted) > 0 {
			p.Description = strings.Join(quoted, " ")
		} else {
			p.Description = firstPlain
		}
	}
	return p, nil
}
