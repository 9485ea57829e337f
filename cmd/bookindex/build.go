package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/bookindex/internal/config"
	"github.com/coolbeans/bookindex/pkg/render"
	"github.com/coolbeans/bookindex/pkg/watch"
)

var errUnclassified = errors.New("some index terms fit no group")

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <document>",
		Short: "Build the index of a document",
		Long: `Build the grouped index of a document and write it as XML, JSON or YAML.

Example:
  bookindex build --groups groups.yaml book.xml
  bookindex build -g index-config.xml --locale de_DE --format json -o index.json book.xml
  bookindex build -g groups.yaml --watch -o index.xml book.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			document := args[0]
			watching, _ := cmd.Flags().GetBool("watch")

			err = build(cfg, logger, document, cmd.OutOrStdout())
			if !watching {
				return err
			}
			if err != nil {
				logger.Error("build failed", "error", err)
			}

			return watchAndBuild(cmd, cfg, logger, document)
		},
	}

	addIndexFlags(cmd)
	cmd.Flags().StringP("format", "f", "", "Output format: xml, json or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when the document or group configuration changes")

	return cmd
}

// build runs the pipeline once and writes the rendered index.
func build(cfg *config.Config, logger *slog.Logger, document string, stdout io.Writer) error {
	result, collator, err := runIndex(cfg, logger, document)
	if err != nil {
		return err
	}

	doc := render.Build(result.Store, result.Groups, collator)
	format := render.Format(cfg.Output.Format)

	if cfg.Output.Path == "" {
		if err := render.Write(stdout, doc, format); err != nil {
			return err
		}
	} else if err := writeFile(cfg.Output.Path, doc, format); err != nil {
		return err
	}

	logger.Info("index built",
		"markers", result.Markers,
		"terms", len(result.Entries),
		"groups", len(result.Groups),
		"unclassified", len(result.Unclassified))

	if !result.OK {
		return errUnclassified
	}
	return nil
}

// writeFile renders into a temporary file next to path and renames it into
// place.
func writeFile(path string, doc *render.Document, format render.Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bookindex-*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render.Write(tmp, doc, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func watchAndBuild(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, document string) error {
	paths := []string{document}
	if cfg.Index.Groups != "" {
		paths = append(paths, cfg.Index.Groups)
	}

	w, err := watch.New(paths, logger)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Debounce = cfg.Watch.Debounce

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "files", w.Files())
	return w.Run(ctx, func(_ context.Context, changed []string) {
		logger.Info("rebuilding index", "changed", changed)
		if err := build(cfg, logger, document, cmd.OutOrStdout()); err != nil {
			logger.Error("build failed", "error", err)
		}
	})
}
