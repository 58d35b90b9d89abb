// Package judgment holds the theme-judgment data model: per-record judgments
// across the screening, action, and attribution layers, plus the consistency
// pass that flags contradictory judgment pairs. Judgments arrive from an
// external producer as structured payloads; this package never generates
// judgment text itself.
package judgment

import (
	"fmt"

	"nichefeed/internal/vocab"
)

// Confidence grades how sure the producer was about a judgment.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence returns the Confidence for a raw string, or false when
// the string names no known grade.
func ParseConfidence(s string) (Confidence, bool) {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s), true
	}
	return "", false
}

// Layer is the judgment layer a theme belongs to.
type Layer string

const (
	LayerScreening   Layer = "screening"
	LayerAction      Layer = "action"
	LayerAttribution Layer = "attribution"
)

// themeLayers maps each built-in theme key to its layer. Themes not listed
// here are still accepted (the producer may ship new dimensions ahead of a
// vocabulary update) but carry no layer information.
var themeLayers = map[string]Layer{
	"entry_barrier":          LayerScreening,
	"compliance_load":        LayerScreening,
	"demand_proof":           LayerScreening,
	"replication_difficulty": LayerAction,
	"action_speed":           LayerAction,
	"audience_leverage":      LayerAction,
	"attribution_driver":     LayerAttribution,
}

// LayerOf returns the layer a theme key belongs to, or false for themes
// outside the built-in set.
func LayerOf(themeKey string) (Layer, bool) {
	l, ok := themeLayers[themeKey]
	return l, ok
}

// ThemeJudgment is one judgment for one (record, theme) pair. Instances are
// immutable once produced; a regenerated judgment replaces the old one by
// theme key rather than mutating it. The only exception is a re-validation
// pass, which replaces the ValidationErrors/ValidationWarnings lists.
type ThemeJudgment struct {
	ThemeKey       string     `yaml:"theme_key" json:"theme_key"`
	Judgment       string     `yaml:"judgment" json:"judgment"`
	Confidence     Confidence `yaml:"confidence" json:"confidence"`
	Reasons        []string   `yaml:"reasons,omitempty" json:"reasons,omitempty"`
	EvidenceFields []string   `yaml:"evidence_fields,omitempty" json:"evidence_fields,omitempty"`
	Uncertainties  []string   `yaml:"uncertainties,omitempty" json:"uncertainties,omitempty"`

	// Attached by Validate; replaced wholesale on each pass.
	ValidationErrors   []string `yaml:"validation_errors,omitempty" json:"validation_errors,omitempty"`
	ValidationWarnings []string `yaml:"validation_warnings,omitempty" json:"validation_warnings,omitempty"`
}

// Validate checks a judgment against the vocabulary registry and returns a
// copy with ValidationErrors and ValidationWarnings replaced. When the theme
// key is enum-backed in the mother_theme group, the judgment value must be a
// registered allowed value. Evidence fields that resolve against no group
// produce warnings, not errors: evidence is advisory.
func (j ThemeJudgment) Validate(reg *vocab.Registry) ThemeJudgment {
	out := j
	out.ValidationErrors = nil
	out.ValidationWarnings = nil

	if j.ThemeKey == "" {
		out.ValidationErrors = append(out.ValidationErrors, "judgment has no theme key")
		return out
	}
	if j.Judgment == "" {
		out.ValidationErrors = append(out.ValidationErrors, fmt.Sprintf("theme %s: empty judgment value", j.ThemeKey))
	}
	if _, ok := ParseConfidence(string(j.Confidence)); !ok {
		out.ValidationErrors = append(out.ValidationErrors, fmt.Sprintf("theme %s: unknown confidence %q", j.ThemeKey, j.Confidence))
	}

	if spec, ok := reg.Lookup(vocab.GroupMotherTheme, j.ThemeKey); ok {
		if spec.Kind == vocab.KindEnum && j.Judgment != "" && !spec.AllowsValue(j.Judgment) {
			out.ValidationErrors = append(out.ValidationErrors,
				fmt.Sprintf("theme %s: judgment %q is not an allowed value", j.ThemeKey, j.Judgment))
		}
	} else {
		out.ValidationWarnings = append(out.ValidationWarnings,
			fmt.Sprintf("theme %s is not in the vocabulary registry", j.ThemeKey))
	}

	for _, field := range j.EvidenceFields {
		if !fieldKnownAnywhere(reg, field) {
			out.ValidationWarnings = append(out.ValidationWarnings,
				fmt.Sprintf("theme %s: evidence field %s resolves against no group", j.ThemeKey, field))
		}
	}

	return out
}

func fieldKnownAnywhere(reg *vocab.Registry, field string) bool {
	for _, g := range vocab.GroupOrder {
		if _, ok := reg.Lookup(g, field); ok {
			return true
		}
	}
	return false
}
