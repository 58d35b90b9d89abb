package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nichefeed/internal/template"
)

// watchCmd revalidates template files as they change
var watchCmd = &cobra.Command{
	Use:   "watch [template-dir]",
	Short: "Revalidate template files on change",
	Long: `Watches a template directory and reruns the validator whenever a
template document is written or created. Useful while iterating on
generator prompts or hand-editing templates.

With no argument, watches the configured template directory. Stop with
Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := cfg.Templates
	if len(args) == 1 {
		dir = args[0]
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	validator := template.NewValidator(reg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching templates", zap.String("dir", dir))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			revalidate(validator, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-sigCh:
			logger.Info("stopping watch")
			return nil
		}
	}
}

func revalidate(validator *template.Validator, path string) {
	tpl, err := template.LoadFile(path)
	if err != nil {
		logger.Warn("template unreadable", zap.String("path", path), zap.Error(err))
		return
	}
	errs := validator.Validate(tpl)
	if len(errs) == 0 {
		logger.Info("template ok", zap.String("template", tpl.Key), zap.String("path", path))
		return
	}
	logger.Warn("template rejected",
		zap.String("template", tpl.Key),
		zap.String("path", path),
		zap.Strings("errors", errs))
}
