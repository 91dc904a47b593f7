package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/devindex/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("json", []string{"tools", " tldr ", "tools", ""}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "json" || r.Page() != 2 {
		t.Errorf("got query=%q page=%d", r.Query(), r.Page())
	}
	if got := strings.Join(r.Categories(), ","); got != "tools,tldr" {
		t.Errorf("Categories() = %q", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cats  []string
		page  int
	}{
		{"page zero", "q", nil, 0},
		{"negative page", "q", nil, -1},
		{"query too long", strings.Repeat("x", MaxQueryLength+1), nil, 1},
		{"too many categories", "q", manyLabels(MaxCategories + 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, tt.cats, tt.page)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	r, _ := New("q", []string{"tools"}, 1)
	c := r.Categories()
	c[0] = "mutated"
	if r.Categories()[0] != "tools" {
		t.Error("Categories() leaked internal slice")
	}
}

func TestSignature(t *testing.T) {
	a, _ := New("q", []string{"tools", "tldr"}, 1)
	b, _ := New("q", []string{"tldr", "tools"}, 3)
	c, _ := New("q", []string{"tools"}, 1)
	d, _ := New("Q", []string{"tools", "tldr"}, 1)

	if a.Signature() != b.Signature() {
		t.Error("selection order or page must not change the signature")
	}
	if a.Signature() == c.Signature() {
		t.Error("different selections must differ")
	}
	if a.Signature() == d.Signature() {
		t.Error("different queries must differ")
	}
}

func TestParams_Validate(t *testing.T) {
	if err := (Params{Limit: DefaultPageSize}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, p := range []Params{
		{Limit: -1},
		{Limit: MaxLimit + 1},
		{Limit: 10, Offset: -5},
		{Query: strings.Repeat("x", MaxQueryLength+1)},
	} {
		if err := p.Validate(); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("Validate(%+v) = %v", p, err)
		}
	}
}

func manyLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat("c", i+1)
	}
	return out
}
