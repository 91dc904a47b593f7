package db

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// FieldKind is the FT schema type of an index field.
type FieldKind int

const (
	// FieldTag is an exact-match field used for filters and facets.
	FieldTag FieldKind = iota
	// FieldText is a full-text field.
	FieldText
)

// Field is one schema entry of a hash-backed FT index.
type Field struct {
	Name string
	Kind FieldKind
	// Weight scales TEXT matches; 0 keeps the engine default of 1.
	Weight float64
	// NoStem marks TEXT fields that already hold stemmed tokens.
	NoStem bool
}

// IndexDefinition describes an FT index over the hashes under Prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []Field
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_:-]+$`)

// IsValidIdentifier reports whether s is usable as an index name.
func IsValidIdentifier(s string) bool { return identRe.MatchString(s) }

// Validate reports every problem in the definition.
func (idx *IndexDefinition) Validate() error {
	var errs []error
	switch {
	case idx.Name == "":
		errs = append(errs, errors.New("index name is required"))
	case !IsValidIdentifier(idx.Name):
		errs = append(errs, fmt.Errorf("index name %q contains invalid characters", idx.Name))
	}
	if len(idx.Fields) == 0 {
		errs = append(errs, errors.New("at least one field is required"))
	}

	seen := make(map[string]bool, len(idx.Fields))
	for i, f := range idx.Fields {
		switch {
		case f.Name == "":
			errs = append(errs, fmt.Errorf("field %d: name is required", i))
			continue
		case seen[f.Name]:
			errs = append(errs, fmt.Errorf("duplicate field name: %s", f.Name))
		}
		seen[f.Name] = true

		if f.Kind != FieldTag && f.Kind != FieldText {
			errs = append(errs, fmt.Errorf("field %s: unknown kind %d", f.Name, f.Kind))
		}
		if f.Weight < 0 {
			errs = append(errs, fmt.Errorf("negative weight for field: %s", f.Name))
		}
	}
	return errors.Join(errs...)
}

// Args renders the FT.CREATE arguments that follow the command name.
func (idx *IndexDefinition) Args() []string {
	args := []string{idx.Name, "ON", "HASH"}
	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}
	args = append(args, "SCHEMA")
	for _, f := range idx.Fields {
		args = append(args, f.args()...)
	}
	return args
}

// String renders the full FT.CREATE command, for logs.
func (idx *IndexDefinition) String() string {
	return "FT.CREATE " + strings.Join(idx.Args(), " ")
}

func (f Field) args() []string {
	if f.Kind == FieldTag {
		return []string{f.Name, "TAG"}
	}
	args := []string{f.Name, "TEXT"}
	if f.Weight > 0 {
		args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'g', -1, 64))
	}
	if f.NoStem {
		args = append(args, "NOSTEM")
	}
	return args
}

// IndexBuilder assembles an IndexDefinition field by field.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts a definition named name.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix adds key prefixes the index covers.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Tag adds a TAG field.
func (b *IndexBuilder) Tag(name string) *IndexBuilder {
	return b.add(Field{Name: name, Kind: FieldTag})
}

// Text adds a TEXT field.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	return b.add(Field{Name: name, Kind: FieldText})
}

// TextWeighted adds a TEXT field whose matches count weight times a plain field.
func (b *IndexBuilder) TextWeighted(name string, weight float64) *IndexBuilder {
	return b.add(Field{Name: name, Kind: FieldText, Weight: weight})
}

// TextNoStem adds a TEXT field holding pre-stemmed tokens.
func (b *IndexBuilder) TextNoStem(name string) *IndexBuilder {
	return b.add(Field{Name: name, Kind: FieldText, NoStem: true})
}

func (b *IndexBuilder) add(f Field) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Build validates and returns a copy of the definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, fmt.Errorf("index %q: %w", b.def.Name, err)
	}
	def := IndexDefinition{
		Name:     b.def.Name,
		Prefixes: slices.Clone(b.def.Prefixes),
		Fields:   slices.Clone(b.def.Fields),
	}
	return &def, nil
}
