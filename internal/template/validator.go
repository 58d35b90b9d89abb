package template

import (
	"fmt"
	"strings"
	"unicode"

	"nichefeed/internal/filter"
	"nichefeed/internal/vocab"
)

// Validator statically checks generated templates against the vocabulary
// registry. All checks run and all errors are collected, so the generator
// gets a complete correction list in one pass.
type Validator struct {
	reg *vocab.Registry
}

// NewValidator builds a validator over a registry.
func NewValidator(reg *vocab.Registry) *Validator {
	return &Validator{reg: reg}
}

// Accepted wraps a template that passed validation. The topic assembler
// only takes *Accepted, so an unvalidated template cannot reach assembly
// by construction. The unexported marker is set only by Accept; a zero
// Accepted built elsewhere reports as unvalidated.
type Accepted struct {
	tpl       CurationTemplate
	validated bool
}

// Template returns the validated template.
func (a *Accepted) Template() CurationTemplate {
	return a.tpl
}

// Validated reports whether the wrapper came out of Accept.
func (a *Accepted) Validated() bool {
	return a != nil && a.validated
}

// Accept validates a template and, when it is clean, returns the accepted
// wrapper. A non-empty error list means the template is rejected outright.
func (v *Validator) Accept(t CurationTemplate) (*Accepted, []string) {
	if errs := v.Validate(t); len(errs) > 0 {
		return nil, errs
	}
	return &Accepted{tpl: t, validated: true}, nil
}

// Validate runs every check and returns the collected error strings in
// check order. An empty list means the template is accepted.
func (v *Validator) Validate(t CurationTemplate) []string {
	var errs []string

	errs = append(errs, checkRequired(t)...)

	if t.Key != "" && (t.Key != strings.ToLower(t.Key) || strings.IndexFunc(t.Key, unicode.IsSpace) >= 0) {
		errs = append(errs, fmt.Sprintf("Template key must be lowercase with no spaces: %q", t.Key))
	}

	if t.CurationType != "" {
		if _, ok := ParseCurationType(string(t.CurationType)); !ok {
			errs = append(errs, fmt.Sprintf("Invalid curation_type: %q", t.CurationType))
		}
	}

	if t.TagColor != "" && !PaletteHas(t.TagColor) {
		errs = append(errs, fmt.Sprintf("Invalid tag_color: %q (palette: %s)", t.TagColor, strings.Join(TagPalette, ", ")))
	}

	errs = append(errs, v.checkFilterRules(t.FilterRules)...)

	if t.Priority < 1 || t.Priority > 10 {
		errs = append(errs, fmt.Sprintf("Priority must be between 1 and 10, got %d", t.Priority))
	}

	if t.MinProducts < 1 || t.MinProducts > t.MaxProducts {
		errs = append(errs, fmt.Sprintf("Invalid product bounds: min_products=%d, max_products=%d", t.MinProducts, t.MaxProducts))
	}

	errs = append(errs, checkBilingual(t)...)

	return errs
}

// requiredBilingual lists the text pairs a template must carry.
var requiredBilingual = []struct {
	name string
	get  func(CurationTemplate) Bilingual
}{
	{"title", func(t CurationTemplate) Bilingual { return t.Title }},
	{"description", func(t CurationTemplate) Bilingual { return t.Description }},
	{"insight", func(t CurationTemplate) Bilingual { return t.Insight }},
	{"tag", func(t CurationTemplate) Bilingual { return t.Tag }},
}

func checkRequired(t CurationTemplate) []string {
	var errs []string
	missing := func(name string) {
		errs = append(errs, fmt.Sprintf("Missing required field: %s", name))
	}

	if t.Key == "" {
		missing("key")
	}
	for _, pair := range requiredBilingual {
		if pair.get(t).Empty() {
			missing(pair.name)
		}
	}
	if t.TagColor == "" {
		missing("tag_color")
	}
	if t.CurationType == "" {
		missing("curation_type")
	}
	if len(t.FilterRules) == 0 {
		missing("filter_rules")
	}
	if len(t.ConflictDimensions) == 0 {
		missing("conflict_dimensions")
	}
	return errs
}

// checkFilterRules resolves every (group, field) pair against the registry
// and checks constraint shapes against field kinds, including enum value
// membership.
func (v *Validator) checkFilterRules(rules filter.RuleSet) []string {
	var errs []string
	rules.Walk(func(g vocab.Group, field string, c filter.Constraint) {
		if _, ok := vocab.ParseGroup(string(g)); !ok {
			errs = append(errs, fmt.Sprintf("Unknown filter group: %q", g))
			return
		}
		spec, ok := v.reg.Lookup(g, field)
		if !ok {
			errs = append(errs, fmt.Sprintf("Unknown field %s.%s", g, field))
			return
		}
		errs = append(errs, checkConstraintShape(g, spec, c)...)
	})
	return errs
}

// checkConstraintShape verifies one constraint suits the kind of the field
// it targets.
func checkConstraintShape(g vocab.Group, spec vocab.FieldSpec, c filter.Constraint) []string {
	var errs []string
	ref := fmt.Sprintf("%s.%s", g, spec.Name)

	switch c := c.(type) {
	case filter.AnyOf:
		if spec.Kind != vocab.KindEnum && spec.Kind != vocab.KindText {
			errs = append(errs, fmt.Sprintf("Value list on %s field %s", spec.Kind, ref))
			break
		}
		if spec.Kind == vocab.KindEnum {
			for _, val := range c.Values {
				if !spec.AllowsValue(val) {
					errs = append(errs, fmt.Sprintf("Invalid value %q for %s (allowed: %s)",
						val, ref, strings.Join(spec.Allowed, ", ")))
				}
			}
		}
	case filter.Contains:
		if spec.Kind != vocab.KindText && spec.Kind != vocab.KindEnum {
			errs = append(errs, fmt.Sprintf("Contains constraint on %s field %s", spec.Kind, ref))
		}
	case filter.NumericRange:
		if spec.Kind != vocab.KindNumber {
			errs = append(errs, fmt.Sprintf("Numeric bounds on %s field %s", spec.Kind, ref))
		}
	case filter.BoolEquals:
		if spec.Kind != vocab.KindBoolean {
			errs = append(errs, fmt.Sprintf("Boolean constraint on %s field %s", spec.Kind, ref))
		}
	}
	return errs
}

// checkBilingual enforces pair completeness: for every bilingual pair both
// sides must be simultaneously present or simultaneously absent. Missing
// pairs are already reported by checkRequired, so only half-filled pairs
// are flagged here.
func checkBilingual(t CurationTemplate) []string {
	pairs := []struct {
		name string
		b    Bilingual
	}{
		{"title", t.Title},
		{"description", t.Description},
		{"insight", t.Insight},
		{"cta", t.CTA},
		{"tag", t.Tag},
	}

	var errs []string
	for _, p := range pairs {
		if p.b.Empty() || p.b.Complete() {
			continue
		}
		side := "en"
		if p.b.ZH == "" {
			side = "zh"
		}
		errs = append(errs, fmt.Sprintf("Bilingual pair incomplete: %s is missing its %s side", p.name, side))
	}
	return errs
}
