package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nichefeed/internal/assemble"
	"nichefeed/internal/filter"
)

// FileSource reads a candidate population from a YAML document. Intended
// for fixtures and small operator-curated populations; document order is
// the population order.
type FileSource struct {
	path string
}

// NewFileSource wraps a YAML population file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type populationFile struct {
	Candidates []CandidateRecord `yaml:"candidates"`
}

// LoadPopulation reads and assembles the population.
func (f *FileSource) LoadPopulation(_ context.Context) ([]assemble.Candidate, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read population file: %w", err)
	}
	var file populationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse population file: %w", err)
	}

	population := make([]assemble.Candidate, 0, len(file.Candidates))
	for i, rec := range file.Candidates {
		if rec.ProductID == "" {
			return nil, fmt.Errorf("population file: candidate %d has no product_id", i)
		}
		population = append(population, assemble.Candidate{
			ProductID: rec.ProductID,
			Snapshot:  filter.BuildSnapshot(rec.Startup, rec.Selection, rec.ProductJudgments(), rec.LandingPage),
		})
	}
	return population, nil
}
