package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nichefeed/internal/template"
)

// validateCmd statically checks generated template documents
var validateCmd = &cobra.Command{
	Use:   "validate [template-file...]",
	Short: "Validate generated curation templates",
	Long: `Runs the template validator over one or more template documents and
prints every error found. All checks run on every template; nothing stops
at the first error, so the generator gets a complete correction list.

With no arguments, validates every template in the configured template
directory.

Example:
  nichefeed validate templates/quiet_earners.yaml`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no templates to validate")
	}

	rejected := 0
	for _, tpl := range templates {
		errs := validator.Validate(tpl)
		if len(errs) == 0 {
			fmt.Printf("ok      %s\n", tpl.Key)
			continue
		}
		rejected++
		fmt.Printf("reject  %s\n", tpl.Key)
		for _, e := range errs {
			fmt.Printf("        - %s\n", e)
		}
	}

	logger.Info("validation finished",
		zap.Int("templates", len(templates)),
		zap.Int("rejected", rejected))

	if rejected > 0 {
		return fmt.Errorf("%d of %d templates rejected", rejected, len(templates))
	}
	return nil
}

// resolveTemplates loads the named template files, or the configured
// template directory when none are named.
func resolveTemplates(args []string) ([]template.CurationTemplate, error) {
	if len(args) == 0 {
		return template.LoadDir(cfg.Templates)
	}
	templates := make([]template.CurationTemplate, 0, len(args))
	for _, path := range args {
		tpl, err := template.LoadFile(path)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}
