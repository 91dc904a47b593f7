package analyzer

import (
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain/document"
)

func contains(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func TestTokens_Stemming(t *testing.T) {
	a := New()

	tokens := a.Tokens("Running dogs are playing")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if !contains(tokens, "run") {
		t.Errorf("expected 'running' to be stemmed to 'run', got %v", tokens)
	}
	if !contains(tokens, "dog") {
		t.Errorf("expected 'dogs' to be stemmed to 'dog', got %v", tokens)
	}
}

func TestTokens_StopwordsAndShortWords(t *testing.T) {
	a := New()

	tokens := a.Tokens("the x of a git")
	if len(tokens) != 1 || tokens[0] != "git" {
		t.Errorf("expected [git], got %v", tokens)
	}
}

func TestTokens_SplitsOnPunctuation(t *testing.T) {
	a := New()

	tokens := a.Tokens("arrow-left/right_up")
	for _, want := range []string{"arrow", "left", "right", "up"} {
		if !contains(tokens, want) {
			t.Errorf("missing %q in %v", want, tokens)
		}
	}
}

func TestTokens_DedupPreservesOrder(t *testing.T) {
	a := New()

	tokens := a.Tokens("icons icon ICON arrows arrow")
	if len(tokens) != 2 || tokens[0] != "icon" || tokens[1] != "arrow" {
		t.Errorf("expected [icon arrow], got %v", tokens)
	}
}

func TestTokens_Empty(t *testing.T) {
	a := New()

	tokens := a.Tokens("")
	if tokens == nil || len(tokens) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tokens)
	}
}

func TestOptions(t *testing.T) {
	a := New(WithMinLength(4), WithStopwords([]string{"GIT"}))

	tokens := a.Tokens("git tag commit")
	if len(tokens) != 1 || tokens[0] != "commit" {
		t.Errorf("expected [commit], got %v", tokens)
	}
}

func TestApply_Idempotent(t *testing.T) {
	a := New()
	r := document.Record{
		ID:          "svg-icons-arrows-left",
		Description: "Arrow pointing left for navigation",
		Keywords:    []string{"navigation", "back"},
	}

	if !a.Apply(&r) {
		t.Fatal("first Apply should stem the record")
	}
	first := r.SearchTokens()

	if a.Apply(&r) {
		t.Error("second Apply on an unchanged record should be a no-op")
	}
	second := r.SearchTokens()

	if len(first) != len(second) {
		t.Fatalf("tokens changed: %v -> %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tokens changed: %v -> %v", first, second)
		}
	}
}

func TestApply_OverwritesStaleStems(t *testing.T) {
	a := New()
	r := document.Record{Description: "old words here"}
	a.Apply(&r)

	r.Description = "brand new text"
	if !a.Apply(&r) {
		t.Fatal("changed text should be re-stemmed")
	}
	if contains(r.Stems.Description.Tokens, "old") {
		t.Errorf("stale tokens must be replaced, got %v", r.Stems.Description.Tokens)
	}
	if r.Stems.Description.Original != "brand new text" {
		t.Errorf("original = %q", r.Stems.Description.Original)
	}
}

func TestApply_EmptyFields(t *testing.T) {
	a := New()
	r := document.Record{}

	a.Apply(&r)
	if r.Stems == nil {
		t.Fatal("expected stems to be set")
	}
	if len(r.Stems.Description.Tokens) != 0 || len(r.Stems.Keywords.Tokens) != 0 {
		t.Errorf("expected empty tokens, got %+v", r.Stems)
	}
}

func TestStemKeywords(t *testing.T) {
	a := New()

	f := a.StemKeywords([]string{"arrows", "git", "branching"})
	if f.Original != "arrows git branching" {
		t.Errorf("original = %q", f.Original)
	}
	if len(f.Tokens) != 3 || f.Tokens[0] != "arrow" || f.Tokens[2] != "branch" {
		t.Errorf("tokens = %v", f.Tokens)
	}
	if r := (document.Record{Keywords: []string{"arrows", "git", "branching"}}); r.KeywordText() != f.Original {
		t.Errorf("keyword text %q does not match %q", r.KeywordText(), f.Original)
	}
}
