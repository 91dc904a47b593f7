package filter

import (
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		`category = "tools"`,
		`category = "tools" OR category = "tldr"`,
		`lang = "en" AND (category = "tools" OR category = "tldr") AND NOT category = "emoji"`,
		`name = "say \"hi\""`,
		`a = "1" AND b = "2"`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			e, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := e.String(); got != in {
				t.Errorf("String() = %q, want %q", got, in)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	e, err := Parse("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsEmpty() {
		t.Error("expected empty expression")
	}
}

func TestParse_Groups(t *testing.T) {
	e, err := Parse(`category = "a" OR category = "b" OR category = "c"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Should()) != 3 || len(e.Must()) != 0 {
		t.Errorf("must=%d should=%d", len(e.Must()), len(e.Should()))
	}

	e, err = Parse(`NOT category = "a"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.MustNot()) != 1 {
		t.Errorf("must_not=%d", len(e.MustNot()))
	}
}

func TestParse_Errors(t *testing.T) {
	inputs := []string{
		`category`,
		`category =`,
		`category = tools`,
		`category = "tools`,
		`= "tools"`,
		`category = "a" OR`,
		`category = "a" AND category = "b" OR category = "c"`,
		`NOT category = "a" OR category = "b"`,
		`(category = "a" OR category = "b") AND (category = "c" OR category = "d")`,
		`(category = "a"`,
		`category = "a" category = "b"`,
		`category = ""`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q) expected error", in)
			}
		})
	}
}
