package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolbeans/bookindex/internal/config"
	"github.com/coolbeans/bookindex/internal/logging"
	"github.com/coolbeans/bookindex/pkg/collation"
	"github.com/coolbeans/bookindex/pkg/groupconfig"
	"github.com/coolbeans/bookindex/pkg/index"
)

// addIndexFlags registers the flags shared by commands that run the index
// pipeline. Flags that are set override the settings file.
func addIndexFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("groups", "g", "", "Group configuration file (.yaml, .toml or .xml)")
	cmd.Flags().StringP("locale", "l", "", "Collation locale, e.g. en or de_DE")
	cmd.Flags().Bool("strict", false, "Fail when a term fits no group")
	cmd.Flags().Bool("draft", false, "Include markers inside draft-comment and required-cleanup")
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	overrides := []struct {
		flag   string
		target *string
	}{
		{"groups", &cfg.Index.Groups},
		{"locale", &cfg.Index.Locale},
		{"format", &cfg.Output.Format},
		{"output", &cfg.Output.Path},
	}
	for _, o := range overrides {
		if cmd.Flags().Lookup(o.flag) != nil && cmd.Flags().Changed(o.flag) {
			*o.target, _ = cmd.Flags().GetString(o.flag)
		}
	}
	if cmd.Flags().Changed("strict") {
		cfg.Index.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("draft") {
		cfg.Index.IncludeDraft, _ = cmd.Flags().GetBool("draft")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := logging.NewLogger(cfg.Log, os.Stderr)
	return cfg, logger, nil
}

func loadGroups(cfg *config.Config) (*groupconfig.Configuration, error) {
	if cfg.Index.Groups == "" {
		return nil, fmt.Errorf("no group configuration: use --groups or set index.groups")
	}
	groups, err := groupconfig.Load(cfg.Index.Groups)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}
	return groups, nil
}

// runIndex loads the groups and processes one document.
func runIndex(cfg *config.Config, logger *slog.Logger, document string) (*index.Result, collation.Collator, error) {
	groups, err := loadGroups(cfg)
	if err != nil {
		return nil, nil, err
	}

	collator, err := collation.New(cfg.Index.Locale)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(document)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	processor := index.NewProcessor(collator, logger.With("document", document))
	processor.IncludeDraft = cfg.Index.IncludeDraft
	processor.Strict = cfg.Index.Strict

	result, err := processor.ProcessReader(f, groups.Groups)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", document, err)
	}
	return result, collator, nil
}
