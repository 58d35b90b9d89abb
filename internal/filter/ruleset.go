package filter

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"nichefeed/internal/vocab"
)

// RuleSet is a filter-rule tree: group -> field -> constraint. Decoding
// preserves whatever group and field names the generator produced, known or
// not; resolving them against the vocabulary registry is the template
// validator's job, so unknown names surface as validation errors instead of
// being dropped here.
type RuleSet map[vocab.Group]map[string]Constraint

// UnmarshalYAML decodes the generator's free-form nested mapping into typed
// constraints.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("filter_rules must be a mapping of groups")
	}
	out := make(RuleSet)
	for i := 0; i < len(node.Content); i += 2 {
		groupNode, fieldsNode := node.Content[i], node.Content[i+1]
		group := vocab.Group(groupNode.Value)
		if fieldsNode.Kind != yaml.MappingNode {
			return fmt.Errorf("group %s: expected a mapping of fields", group)
		}
		fields := make(map[string]Constraint)
		for j := 0; j < len(fieldsNode.Content); j += 2 {
			fieldNode, constraintNode := fieldsNode.Content[j], fieldsNode.Content[j+1]
			c, err := decodeConstraint(constraintNode)
			if err != nil {
				return fmt.Errorf("group %s, field %s: %w", group, fieldNode.Value, err)
			}
			fields[fieldNode.Value] = c
		}
		out[group] = fields
	}
	*rs = out
	return nil
}

// MarshalYAML renders the tree back into the generator's wire shape.
func (rs RuleSet) MarshalYAML() (any, error) {
	out := make(map[string]map[string]any, len(rs))
	for group, fields := range rs {
		rendered := make(map[string]any, len(fields))
		for field, c := range fields {
			rendered[field] = marshalConstraint(c)
		}
		out[string(group)] = rendered
	}
	return out, nil
}

// Walk visits every (group, field, constraint) triple in deterministic
// order: registry group order first, unknown groups sorted after, fields
// sorted within each group.
func (rs RuleSet) Walk(fn func(g vocab.Group, field string, c Constraint)) {
	for _, g := range rs.orderedGroups() {
		fields := rs[g]
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fn(g, name, fields[name])
		}
	}
}

func (rs RuleSet) orderedGroups() []vocab.Group {
	var ordered []vocab.Group
	seen := make(map[vocab.Group]bool)
	for _, g := range vocab.GroupOrder {
		if _, ok := rs[g]; ok {
			ordered = append(ordered, g)
			seen[g] = true
		}
	}
	var unknown []vocab.Group
	for g := range rs {
		if !seen[g] {
			unknown = append(unknown, g)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(ordered, unknown...)
}

// RevenueField returns the first numeric-range-constrained field whose name
// looks revenue-like, in Walk order. The topic assembler uses it as the
// primary sort key when truncating oversized match sets.
func (rs RuleSet) RevenueField() (vocab.Group, string, bool) {
	var (
		foundGroup vocab.Group
		foundField string
		found      bool
	)
	rs.Walk(func(g vocab.Group, field string, c Constraint) {
		if found {
			return
		}
		if _, ok := c.(NumericRange); !ok {
			return
		}
		lower := strings.ToLower(field)
		if strings.Contains(lower, "revenue") || strings.Contains(lower, "mrr") {
			foundGroup, foundField, found = g, field, true
		}
	})
	return foundGroup, foundField, found
}
