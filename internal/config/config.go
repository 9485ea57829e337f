// Package config loads the bookindex application settings.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Index  IndexConfig  `yaml:"index"`
	Output OutputConfig `yaml:"output"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

// IndexConfig holds the index pipeline settings.
type IndexConfig struct {
	Locale       string `yaml:"locale"        env:"BOOKINDEX_LOCALE"        env-default:"en"`
	Groups       string `yaml:"groups"        env:"BOOKINDEX_GROUPS"`
	IncludeDraft bool   `yaml:"include_draft" env:"BOOKINDEX_INCLUDE_DRAFT" env-default:"false"`
	Strict       bool   `yaml:"strict"        env:"BOOKINDEX_STRICT"        env-default:"false"`
}

// OutputConfig holds rendering settings. An empty Path writes to stdout.
type OutputConfig struct {
	Format string `yaml:"format" env:"BOOKINDEX_FORMAT" env-default:"xml"`
	Path   string `yaml:"path"   env:"BOOKINDEX_OUTPUT"`
}

// WatchConfig holds settings for rebuild-on-change.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"BOOKINDEX_WATCH_DEBOUNCE" env-default:"200ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"BOOKINDEX_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"BOOKINDEX_LOG_FORMAT" env-default:"text"`
}
