// Package store provides candidate-population sources for the CLI. The
// engine core never touches I/O; these sources materialize populations from
// a SQLite database or a YAML fixture file and hand them to the assembler
// as ordered candidate slices.
package store

import (
	"context"

	"nichefeed/internal/assemble"
	"nichefeed/internal/judgment"
)

// PopulationSource materializes an ordered candidate population. Ordering
// must be stable across calls: the assembler's determinism guarantees build
// on it.
type PopulationSource interface {
	LoadPopulation(ctx context.Context) ([]assemble.Candidate, error)
}

// CandidateRecord is the storage shape of one candidate before snapshot
// assembly: per-group attribute maps plus the raw theme judgments.
type CandidateRecord struct {
	ProductID   string                   `yaml:"product_id" json:"product_id"`
	Startup     map[string]any           `yaml:"startup,omitempty" json:"startup,omitempty"`
	Selection   map[string]any           `yaml:"selection,omitempty" json:"selection,omitempty"`
	Judgments   []judgment.ThemeJudgment `yaml:"judgments,omitempty" json:"judgments,omitempty"`
	LandingPage map[string]any           `yaml:"landing_page,omitempty" json:"landing_page,omitempty"`
}

// ProductJudgments builds the theme-judgment mapping from the stored list.
func (r CandidateRecord) ProductJudgments() *judgment.ProductJudgments {
	pj := judgment.NewProductJudgments(r.ProductID)
	for _, j := range r.Judgments {
		pj.Put(j)
	}
	return pj
}
