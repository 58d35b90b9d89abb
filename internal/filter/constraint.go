// Package filter implements the multi-table predicate evaluator: the typed
// constraint model for filter rules, the read-only candidate snapshot, and
// the pure evaluation function that tests one candidate against one rule
// tree. Evaluation is strict AND across every group and field in the tree,
// and missing candidate values fail closed.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Constraint is the sealed set of per-field constraint shapes. Generated
// templates carry these as free-form YAML; decoding resolves each node into
// exactly one concrete shape so adding a new kind forces every switch in
// this package to be revisited.
type Constraint interface {
	// Describe renders the expected side of a failed-constraint diagnostic.
	Describe() string

	constraint()
}

// AnyOf matches when the candidate's scalar value is one of the listed
// values. Comparison is case-sensitive exact match on registry-normalized
// values.
type AnyOf struct {
	Values []string
}

func (AnyOf) constraint() {}

func (c AnyOf) Describe() string {
	return fmt.Sprintf("one of [%s]", strings.Join(c.Values, ", "))
}

// Contains matches when any listed token appears as a substring of the
// candidate's value; for list-valued candidate fields each element is
// tested.
type Contains struct {
	Tokens []string
}

func (Contains) constraint() {}

func (c Contains) Describe() string {
	return fmt.Sprintf("contains any of [%s]", strings.Join(c.Tokens, ", "))
}

// NumericRange matches when the candidate's numeric value lies within the
// bounds. Bounds are inclusive; a nil bound leaves that side unbounded.
type NumericRange struct {
	Min *float64
	Max *float64
}

func (NumericRange) constraint() {}

func (c NumericRange) Describe() string {
	switch {
	case c.Min != nil && c.Max != nil:
		return fmt.Sprintf("%s <= n <= %s", trimFloat(*c.Min), trimFloat(*c.Max))
	case c.Min != nil:
		return fmt.Sprintf(">= %s", trimFloat(*c.Min))
	case c.Max != nil:
		return fmt.Sprintf("<= %s", trimFloat(*c.Max))
	default:
		return "any number"
	}
}

// BoolEquals matches when the candidate's boolean value equals Value.
type BoolEquals struct {
	Value bool
}

func (BoolEquals) constraint() {}

func (c BoolEquals) Describe() string {
	return strconv.FormatBool(c.Value)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// decodeConstraint resolves one free-form rule node into a concrete
// Constraint. Recognized shapes:
//
//	[a, b, c]            -> AnyOf
//	{contains: [x, y]}   -> Contains
//	{min: 1, max: 9}     -> NumericRange (either bound optional)
//	true / false         -> BoolEquals
func decodeConstraint(node *yaml.Node) (Constraint, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return nil, fmt.Errorf("value list: %w", err)
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("empty value list")
		}
		return AnyOf{Values: values}, nil

	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("scalar constraint must be a boolean, got %q", node.Value)
		}
		return BoolEquals{Value: b}, nil

	case yaml.MappingNode:
		var body struct {
			Contains []string `yaml:"contains"`
			Min      *float64 `yaml:"min"`
			Max      *float64 `yaml:"max"`
		}
		if err := node.Decode(&body); err != nil {
			return nil, fmt.Errorf("constraint mapping: %w", err)
		}
		if body.Contains != nil {
			if body.Min != nil || body.Max != nil {
				return nil, fmt.Errorf("constraint mixes contains with numeric bounds")
			}
			if len(body.Contains) == 0 {
				return nil, fmt.Errorf("contains constraint with no tokens")
			}
			return Contains{Tokens: body.Contains}, nil
		}
		if body.Min == nil && body.Max == nil {
			return nil, fmt.Errorf("constraint mapping has neither bounds nor contains")
		}
		if body.Min != nil && body.Max != nil && *body.Min > *body.Max {
			return nil, fmt.Errorf("min %s exceeds max %s", trimFloat(*body.Min), trimFloat(*body.Max))
		}
		return NumericRange{Min: body.Min, Max: body.Max}, nil
	}
	return nil, fmt.Errorf("unrecognized constraint shape")
}

// MarshalYAML renders constraints back into the generator's wire shapes so
// templates and topics round-trip through YAML.
func marshalConstraint(c Constraint) any {
	switch v := c.(type) {
	case AnyOf:
		return v.Values
	case Contains:
		return map[string][]string{"contains": v.Tokens}
	case NumericRange:
		out := map[string]float64{}
		if v.Min != nil {
			out["min"] = *v.Min
		}
		if v.Max != nil {
			out["max"] = *v.Max
		}
		return out
	case BoolEquals:
		return v.Value
	}
	return nil
}
