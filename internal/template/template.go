// Package template defines curation templates — the bilingual, rule-bearing
// specifications of curated topics produced by the external generator — and
// the validator that gates them before they are allowed to drive topic
// assembly. A template with any validation error never reaches the
// assembler; there is no partial acceptance.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"nichefeed/internal/filter"
)

// Bilingual is a zh/en text pair. Completeness (both sides present or both
// absent) is enforced by the validator, not by this type.
type Bilingual struct {
	ZH string `yaml:"zh,omitempty" json:"zh,omitempty"`
	EN string `yaml:"en,omitempty" json:"en,omitempty"`
}

// Empty reports whether neither side carries text.
func (b Bilingual) Empty() bool {
	return b.ZH == "" && b.EN == ""
}

// Complete reports whether both sides carry text.
func (b Bilingual) Complete() bool {
	return b.ZH != "" && b.EN != ""
}

// Pick returns the side for a display language, defaulting to English for
// anything that is not "zh".
func (b Bilingual) Pick(lang string) string {
	if lang == "zh" {
		return b.ZH
	}
	return b.EN
}

// CurationType is the narrative pattern a template builds its topic around.
type CurationType string

const (
	TypeContrast  CurationType = "contrast"
	TypeCognitive CurationType = "cognitive"
	TypeAction    CurationType = "action"
	TypeNiche     CurationType = "niche"
)

// CurationTypes lists the valid values in display order.
var CurationTypes = []CurationType{TypeContrast, TypeCognitive, TypeAction, TypeNiche}

// ParseCurationType returns the CurationType for a raw string, or false
// when the string names no known type.
func ParseCurationType(s string) (CurationType, bool) {
	switch CurationType(s) {
	case TypeContrast, TypeCognitive, TypeAction, TypeNiche:
		return CurationType(s), true
	}
	return "", false
}

// curatorRoles maps each curation type to the curator persona a generated
// topic is presented under.
var curatorRoles = map[CurationType]Bilingual{
	TypeContrast:  {ZH: "反差侦探", EN: "Contrast Detective"},
	TypeCognitive: {ZH: "认知拆解人", EN: "Cognition Analyst"},
	TypeAction:    {ZH: "行动教练", EN: "Action Coach"},
	TypeNiche:     {ZH: "利基猎手", EN: "Niche Hunter"},
}

// CuratorRole returns the curator persona for a curation type.
func CuratorRole(ct CurationType) Bilingual {
	return curatorRoles[ct]
}

// TagPalette is the fixed set of colors a template tag may use.
var TagPalette = []string{"amber", "coral", "emerald", "indigo", "rose", "slate", "violet"}

// PaletteHas reports whether a color belongs to the palette.
func PaletteHas(color string) bool {
	for _, c := range TagPalette {
		if c == color {
			return true
		}
	}
	return false
}

// CurationTemplate is one generator-produced topic specification, in the
// wire shape the generator emits. Immutable once accepted by the validator.
type CurationTemplate struct {
	Key         string    `yaml:"key" json:"key"`
	Title       Bilingual `yaml:"title" json:"title"`
	Description Bilingual `yaml:"description" json:"description"`
	Insight     Bilingual `yaml:"insight" json:"insight"`
	CTA         Bilingual `yaml:"cta,omitempty" json:"cta,omitempty"`
	Tag         Bilingual `yaml:"tag" json:"tag"`
	TagColor    string    `yaml:"tag_color" json:"tag_color"`

	CurationType       CurationType   `yaml:"curation_type" json:"curation_type"`
	FilterRules        filter.RuleSet `yaml:"filter_rules" json:"filter_rules"`
	ConflictDimensions []string       `yaml:"conflict_dimensions" json:"conflict_dimensions"`

	MinProducts int `yaml:"min_products" json:"min_products"`
	MaxProducts int `yaml:"max_products" json:"max_products"`
	Priority    int `yaml:"priority" json:"priority"`
}

// LoadFile reads one template document from YAML.
func LoadFile(path string) (CurationTemplate, error) {
	var t CurationTemplate
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read template: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse template %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// LoadDir reads every .yaml/.yml template document in a directory, sorted
// by file name for deterministic processing order.
func LoadDir(dir string) ([]CurationTemplate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	templates := make([]CurationTemplate, 0, len(paths))
	for _, p := range paths {
		t, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
