// Package config loads curator configuration from defaults, an optional
// config file, and CURATOR_* environment variables, in that precedence order.
// Command-line flags override on top; the command layer applies them.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for curator.
type Config struct {
	Database string        `mapstructure:"database"`
	Scan     ScanConfig    `mapstructure:"scan"`
	Archive  ArchiveConfig `mapstructure:"archive"`
	Prefix   PrefixConfig  `mapstructure:"prefix"`
	Unify    UnifyConfig   `mapstructure:"unify"`
}

// ScanConfig holds the shared scan-phase options.
type ScanConfig struct {
	Scope              string   `mapstructure:"scope"`
	Recursive          bool     `mapstructure:"recursive"`
	Include            []string `mapstructure:"include"`
	Exclude            []string `mapstructure:"exclude"`
	Concurrency        int      `mapstructure:"concurrency"`
	ConcurrencyPercent int      `mapstructure:"concurrency_percent"`
}

// ArchiveConfig holds orphan-archive options.
type ArchiveConfig struct {
	Root string `mapstructure:"root"`
}

// PrefixConfig holds prefix-enforcement options.
type PrefixConfig struct {
	// Rules is a path to a YAML or TOML rules file; empty uses the
	// built-in table.
	Rules string `mapstructure:"rules"`
}

// UnifyConfig holds duplicate-consolidation options.
type UnifyConfig struct {
	GroupBy string `mapstructure:"group_by"` // "name" or "name_type"
}

var defaultConfig = Config{
	Database: ".",
	Scan: ScanConfig{
		Scope:              "/Game",
		Recursive:          true,
		Concurrency:        0,
		ConcurrencyPercent: 50,
	},
	Archive: ArchiveConfig{Root: "/Game/_ARCHIVE"},
	Unify:   UnifyConfig{GroupBy: "name"},
}

// Load builds the effective configuration from defaults, an optional
// .curator.yaml, and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("database", defaultConfig.Database)
	v.SetDefault("scan.scope", defaultConfig.Scan.Scope)
	v.SetDefault("scan.recursive", defaultConfig.Scan.Recursive)
	v.SetDefault("scan.include", defaultConfig.Scan.Include)
	v.SetDefault("scan.exclude", defaultConfig.Scan.Exclude)
	v.SetDefault("scan.concurrency", defaultConfig.Scan.Concurrency)
	v.SetDefault("scan.concurrency_percent", defaultConfig.Scan.ConcurrencyPercent)
	v.SetDefault("archive.root", defaultConfig.Archive.Root)
	v.SetDefault("prefix.rules", defaultConfig.Prefix.Rules)
	v.SetDefault("unify.group_by", defaultConfig.Unify.GroupBy)

	v.SetConfigName(".curator")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("CURATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}
	return &cfg, nil
}
