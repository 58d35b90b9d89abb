package judgment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValuePair names two judgment values that contradict each other when they
// appear together on the two themes of a tension rule.
type ValuePair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// TensionRule couples two theme keys known to be semantically related and
// lists the value combinations considered contradictory. Rules are evaluated
// in declaration order.
type TensionRule struct {
	ThemeA         string      `yaml:"theme_a"`
	ThemeB         string      `yaml:"theme_b"`
	Contradictions []ValuePair `yaml:"contradictions"`
}

// ConsistencyTable is the operator-supplied set of tension rules. Loaded
// once at startup and immutable afterwards; the engine invents no rules
// beyond what is configured here.
type ConsistencyTable struct {
	rules []TensionRule
}

// NewConsistencyTable builds a table from explicit rules, preserving order.
func NewConsistencyTable(rules []TensionRule) *ConsistencyTable {
	return &ConsistencyTable{rules: rules}
}

// DefaultConsistencyTable returns the minimal built-in table so the CLI
// works without operator configuration. Production deployments ship their
// own YAML (see LoadConsistencyFile).
func DefaultConsistencyTable() *ConsistencyTable {
	return NewConsistencyTable([]TensionRule{
		{
			ThemeA: "entry_barrier",
			ThemeB: "compliance_load",
			Contradictions: []ValuePair{
				{A: "low", B: "heavy"},
			},
		},
		{
			ThemeA: "action_speed",
			ThemeB: "replication_difficulty",
			Contradictions: []ValuePair{
				{A: "weekend", B: "hard"},
			},
		},
	})
}

// consistencyFile is the on-disk shape of a tension-rule document.
type consistencyFile struct {
	Tensions []TensionRule `yaml:"tensions"`
}

// LoadConsistencyFile reads a YAML tension-rule document.
func LoadConsistencyFile(path string) (*ConsistencyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read consistency table: %w", err)
	}
	var file consistencyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse consistency table: %w", err)
	}
	for i, rule := range file.Tensions {
		if rule.ThemeA == "" || rule.ThemeB == "" {
			return nil, fmt.Errorf("consistency table: tension %d is missing a theme key", i)
		}
	}
	return NewConsistencyTable(file.Tensions), nil
}

// Rules returns the rules in declaration order.
func (t *ConsistencyTable) Rules() []TensionRule {
	return t.rules
}

// Check computes the consistency warnings for one record's judgments. It
// never fails: absent themes are skipped, and the result depends only on the
// rule order and the judgment values, never on insertion order. Calling it
// twice on the same mapping yields the same warnings.
func (t *ConsistencyTable) Check(p *ProductJudgments) []string {
	var warnings []string
	for _, rule := range t.rules {
		ja, okA := p.Get(rule.ThemeA)
		jb, okB := p.Get(rule.ThemeB)
		if !okA || !okB {
			continue
		}
		for _, pair := range rule.Contradictions {
			if ja.Judgment == pair.A && jb.Judgment == pair.B {
				warnings = append(warnings, fmt.Sprintf(
					"%s=%s conflicts with %s=%s",
					rule.ThemeA, pair.A, rule.ThemeB, pair.B))
			}
		}
	}
	return warnings
}

// Apply runs Check and attaches the result to the mapping, replacing any
// previous warnings. Call after every Put that replaces a judgment.
func (t *ConsistencyTable) Apply(p *ProductJudgments) {
	p.ConsistencyWarnings = t.Check(p)
}
