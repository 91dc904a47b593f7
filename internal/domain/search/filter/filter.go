// Package filter models boolean combinations of tag equality predicates.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
// Should conditions form a single OR group that must hold alongside every must condition.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// AnyOf builds the filter for key matching any of values, keeping their order.
// No values gives the empty expression, one value a single equality, more an OR group.
func AnyOf(key string, values ...string) (Expression, error) {
	conds := make([]Condition, 0, len(values))
	for _, v := range values {
		c, err := NewMatch(key, v)
		if err != nil {
			return Expression{}, err
		}
		conds = append(conds, c)
	}
	switch len(conds) {
	case 0:
		return Expression{}, nil
	case 1:
		return NewExpression(conds, nil, nil)
	default:
		return NewExpression(nil, conds, nil)
	}
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Values returns the match values of every positive condition on key.
func (e Expression) Values(key string) []string {
	var out []string
	for _, group := range [][]Condition{e.must, e.should} {
		for _, c := range group {
			if c.key == key {
				out = append(out, c.match)
			}
		}
	}
	return out
}

// String renders the expression as `key = "value"` predicates joined by AND, OR and NOT.
func (e Expression) String() string {
	var parts []string
	for _, c := range e.must {
		parts = append(parts, c.String())
	}
	if len(e.should) > 0 {
		group := make([]string, len(e.should))
		for i, c := range e.should {
			group[i] = c.String()
		}
		joined := strings.Join(group, " OR ")
		if len(e.must) > 0 || len(e.mustNot) > 0 {
			joined = "(" + joined + ")"
		}
		parts = append(parts, joined)
	}
	for _, c := range e.mustNot {
		parts = append(parts, "NOT "+c.String())
	}
	return strings.Join(parts, " AND ")
}

// Condition is a single tag equality clause.
type Condition struct {
	key   string
	match string
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if !isIdent(key) {
		return Condition{}, fmt.Errorf("invalid filter key %q", key)
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// String renders the condition as `key = "value"`.
func (c Condition) String() string {
	return c.key + " = " + strconv.Quote(c.match)
}

func isIdent(s string) bool {
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if !isAlpha && (!isDigit || i == 0) {
			return false
		}
	}
	return s != ""
}
