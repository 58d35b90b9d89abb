package main

import (
	"context"
	"strings"

	"nichefeed/internal/assemble"
	"nichefeed/internal/judgment"
	"nichefeed/internal/store"
	"nichefeed/internal/vocab"
)

// loadRegistry resolves the vocabulary for this run: the configured file
// when set, the built-in vocabulary otherwise.
func loadRegistry() (*vocab.Registry, error) {
	if cfg.Vocabulary == "" {
		return vocab.Default(), nil
	}
	return vocab.LoadFile(cfg.Vocabulary)
}

// loadConsistencyTable resolves the operator-supplied tension-rule table,
// falling back to the built-in default.
func loadConsistencyTable() (*judgment.ConsistencyTable, error) {
	if cfg.Consistency == "" {
		return judgment.DefaultConsistencyTable(), nil
	}
	return judgment.LoadConsistencyFile(cfg.Consistency)
}

// loadPopulation materializes the candidate population from the configured
// source: .db opens SQLite, anything else reads a YAML population file.
func loadPopulation(ctx context.Context) ([]assemble.Candidate, error) {
	if strings.HasSuffix(cfg.Population, ".db") {
		src, err := store.OpenSQLite(cfg.Population)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.LoadPopulation(ctx)
	}
	return store.NewFileSource(cfg.Population).LoadPopulation(ctx)
}
