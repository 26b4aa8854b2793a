package filter

import (
	"fmt"
	"strings"
)

// MaxConditions caps the number of pre-filter conditions on a single query.
const MaxConditions = 8

// Expression is a conjunction of exact tag matches applied before ranking.
// The zero value matches everything.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// Must returns the conditions, all of which must hold.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Condition is an exact tag match on an indexed TAG field.
type Condition struct {
	key   string
	match string
}

// NewMatch creates an exact tag match condition. Surrounding whitespace is trimmed from match.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	match = strings.TrimSpace(match)
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the TAG field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }
