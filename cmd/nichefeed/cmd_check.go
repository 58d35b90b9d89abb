package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"nichefeed/internal/store"
)

// checkCmd validates theme judgments and runs the consistency pass
var checkCmd = &cobra.Command{
	Use:   "check [judgments-file]",
	Short: "Validate theme judgments and report consistency warnings",
	Long: `Reads a YAML document of per-product theme judgments, validates each
judgment against the vocabulary registry, and runs the tension-pair
consistency pass. Validation errors and consistency warnings are printed
per product.

Consistency warnings are advisory; only judgment validation errors fail
the command.

Example:
  nichefeed check judgments.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// judgmentsFile is the wire shape the judgment producer hands over.
type judgmentsFile struct {
	Products []store.CandidateRecord `yaml:"products"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	table, err := loadConsistencyTable()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read judgments: %w", err)
	}
	var file judgmentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse judgments: %w", err)
	}

	failed := 0
	for _, rec := range file.Products {
		pj := rec.ProductJudgments()
		badThemes := pj.ValidateAll(reg)
		table.Apply(pj)

		if len(badThemes) == 0 && len(pj.ConsistencyWarnings) == 0 {
			fmt.Printf("ok      %s (%d themes)\n", rec.ProductID, pj.Len())
			continue
		}

		fmt.Printf("flag    %s\n", rec.ProductID)
		for _, key := range badThemes {
			failed++
			j, _ := pj.Get(key)
			for _, e := range j.ValidationErrors {
				fmt.Printf("        error: %s\n", e)
			}
		}
		for _, w := range pj.ConsistencyWarnings {
			fmt.Printf("        warn:  %s\n", w)
		}
	}

	logger.Info("judgment check finished",
		zap.Int("products", len(file.Products)),
		zap.Int("judgment_errors", failed))

	if failed > 0 {
		return fmt.Errorf("%d judgments failed validation", failed)
	}
	return nil
}
