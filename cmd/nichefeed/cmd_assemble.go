package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"nichefeed/internal/assemble"
	"nichefeed/internal/template"
)

var strictAssemble bool

// assembleCmd runs templates against the candidate population
var assembleCmd = &cobra.Command{
	Use:   "assemble [template-file...]",
	Short: "Assemble topics from templates and the candidate population",
	Long: `Validates each template, evaluates its filter rules against every
candidate in the configured population, and prints the assembled topics
as YAML.

Infeasible topics (fewer matches than min_products) are reported but do
not fail the command unless --strict is set; the generator may respond by
relaxing the template. Rejected templates always fail the command.

Example:
  nichefeed assemble templates/quiet_earners.yaml
  nichefeed assemble --lang zh`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().BoolVar(&strictAssemble, "strict", false, "treat infeasible topics as failures")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	validator := template.NewValidator(reg)

	templates, err := resolveTemplates(args)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return fmt.Errorf("no templates to assemble")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	population, err := loadPopulation(ctx)
	if err != nil {
		return err
	}
	logger.Info("population loaded", zap.Int("candidates", len(population)))

	assembler := assemble.NewAssembler(logger, cfg.Assembly.Concurrency)

	rejected, infeasible := 0, 0
	for _, tpl := range templates {
		accepted, errs := validator.Accept(tpl)
		if len(errs) > 0 {
			rejected++
			logger.Warn("template rejected", zap.String("template", tpl.Key), zap.Strings("errors", errs))
			continue
		}

		topic, err := assembler.Assemble(ctx, accepted, population, cfg.Assembly.Language)
		if err != nil {
			var inf *assemble.InfeasibleError
			if errors.As(err, &inf) {
				infeasible++
				logger.Warn("topic infeasible",
					zap.String("template", inf.TemplateKey),
					zap.Int("matched", inf.Matched),
					zap.Int("required", inf.MinRequired))
				continue
			}
			return err
		}

		out, err := yaml.Marshal(topic)
		if err != nil {
			return fmt.Errorf("encode topic %s: %w", topic.TopicKey, err)
		}
		fmt.Printf("---\n%s", out)
	}

	logger.Info("assembly finished",
		zap.Int("templates", len(templates)),
		zap.Int("rejected", rejected),
		zap.Int("infeasible", infeasible))

	if rejected > 0 {
		return fmt.Errorf("%d templates rejected", rejected)
	}
	if strictAssemble && infeasible > 0 {
		return fmt.Errorf("%d topics infeasible", infeasible)
	}
	return nil
}
