package judgment

import (
	"sort"

	"nichefeed/internal/vocab"
)

// ProductJudgments owns the full theme_key -> ThemeJudgment mapping for one
// record, plus the consistency warnings computed across that mapping. Theme
// keys are unique within the mapping; lookup by key is the only public read
// path into individual judgments.
type ProductJudgments struct {
	ProductID string

	judgments map[string]ThemeJudgment

	// ConsistencyWarnings is recomputed by ConsistencyTable.Apply whenever a
	// judgment is replaced. Advisory only; never blocks evaluation.
	ConsistencyWarnings []string
}

// NewProductJudgments returns an empty mapping for one record.
func NewProductJudgments(productID string) *ProductJudgments {
	return &ProductJudgments{
		ProductID: productID,
		judgments: make(map[string]ThemeJudgment),
	}
}

// Put stores a judgment under its theme key, superseding any previous
// judgment for that theme. Regeneration is replace-by-key, never in-place
// mutation of the previous value.
func (p *ProductJudgments) Put(j ThemeJudgment) {
	if p.judgments == nil {
		p.judgments = make(map[string]ThemeJudgment)
	}
	p.judgments[j.ThemeKey] = j
}

// Get returns the judgment for a theme key.
func (p *ProductJudgments) Get(themeKey string) (ThemeJudgment, bool) {
	j, ok := p.judgments[themeKey]
	return j, ok
}

// Keys returns the theme keys present in the mapping, sorted. Sorting keeps
// every consumer deterministic regardless of insertion order.
func (p *ProductJudgments) Keys() []string {
	keys := make([]string, 0, len(p.judgments))
	for k := range p.judgments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of judgments in the mapping.
func (p *ProductJudgments) Len() int {
	return len(p.judgments)
}

// Flatten projects the mapping into field -> judgment value, the shape the
// snapshot builder mounts under the mother_theme group.
func (p *ProductJudgments) Flatten() map[string]any {
	out := make(map[string]any, len(p.judgments))
	for k, j := range p.judgments {
		out[k] = j.Judgment
	}
	return out
}

// ValidateAll runs Validate on every judgment, replacing each entry with its
// validated copy, and returns the theme keys that produced errors, sorted.
func (p *ProductJudgments) ValidateAll(reg *vocab.Registry) []string {
	var failed []string
	for _, key := range p.Keys() {
		validated := p.judgments[key].Validate(reg)
		p.judgments[key] = validated
		if len(validated.ValidationErrors) > 0 {
			failed = append(failed, key)
		}
	}
	return failed
}
