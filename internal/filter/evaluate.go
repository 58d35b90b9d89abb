package filter

import (
	"fmt"
	"strings"

	"nichefeed/internal/vocab"
)

// FailedConstraint describes one constraint a candidate did not satisfy.
type FailedConstraint struct {
	Group    vocab.Group
	Field    string
	Expected string
	Actual   string
}

func (f FailedConstraint) String() string {
	return fmt.Sprintf("%s.%s: expected %s, got %s", f.Group, f.Field, f.Expected, f.Actual)
}

// Evaluate tests one candidate snapshot against one rule tree. A candidate
// matches iff every field constraint in every group is satisfied; there is
// no OR and no negation. A field the rules reference but the snapshot lacks
// fails closed. The returned failures follow Walk order, so diagnostics are
// stable across runs; an empty list implies a match.
//
// Evaluate mutates nothing and is safe to call concurrently.
func Evaluate(snap Snapshot, rules RuleSet) (bool, []FailedConstraint) {
	var failed []FailedConstraint
	rules.Walk(func(g vocab.Group, field string, c Constraint) {
		value, ok := snap.Value(g, field)
		if !ok {
			failed = append(failed, FailedConstraint{
				Group: g, Field: field,
				Expected: c.Describe(),
				Actual:   "(absent)",
			})
			return
		}
		if !satisfies(c, value) {
			failed = append(failed, FailedConstraint{
				Group: g, Field: field,
				Expected: c.Describe(),
				Actual:   renderValue(value),
			})
		}
	})
	return len(failed) == 0, failed
}

// satisfies applies one constraint to one candidate value. A value of the
// wrong shape for the constraint kind fails closed rather than erroring.
func satisfies(c Constraint, value any) bool {
	switch c := c.(type) {
	case AnyOf:
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, v := range c.Values {
			if s == v {
				return true
			}
		}
		return false

	case Contains:
		switch v := value.(type) {
		case string:
			return containsAny(v, c.Tokens)
		case []string:
			for _, elem := range v {
				if containsAny(elem, c.Tokens) {
					return true
				}
			}
			return false
		case []any:
			for _, elem := range v {
				if s, ok := elem.(string); ok && containsAny(s, c.Tokens) {
					return true
				}
			}
			return false
		}
		return false

	case NumericRange:
		n, ok := asFloat(value)
		if !ok {
			return false
		}
		if c.Min != nil && n < *c.Min {
			return false
		}
		if c.Max != nil && n > *c.Max {
			return false
		}
		return true

	case BoolEquals:
		b, ok := value.(bool)
		return ok && b == c.Value
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return trimFloat(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
