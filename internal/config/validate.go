package config

import (
	"fmt"
	"strings"

	"github.com/coolbeans/bookindex/pkg/collation"
	"github.com/coolbeans/bookindex/pkg/render"
)

// Validate checks the loaded configuration and normalizes the output
// format name. Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := collation.ParseLocale(c.Index.Locale); err != nil {
		return fmt.Errorf("index.locale: %w", err)
	}

	format, err := render.ParseFormat(c.Output.Format)
	if err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	c.Output.Format = string(format)

	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be > 0 (got %v)", c.Watch.Debounce)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json (got %q)", l.Format)
	}
	return nil
}
