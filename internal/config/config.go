// Package config loads runtime settings from a config file, environment
// variables and defaults, in that order of increasing precedence for
// env over file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDrillCount   = 10
	DefaultCaseCount    = 5
	DefaultSnapshotKeep = 10
)

// Config is the resolved runtime configuration.
type Config struct {
	// DataDir points at an external dataset directory holding
	// diseases.json and syndromes.json. Empty means the embedded
	// starter dataset.
	DataDir string `mapstructure:"data_dir"`

	// DBPath overrides the default database location.
	DBPath string `mapstructure:"db_path"`

	// DrillCount is the number of questions per drill session.
	DrillCount int `mapstructure:"drill_count"`

	// CaseCount is the number of cases per case session.
	CaseCount int `mapstructure:"case_count"`

	// Types restricts drills to a subset of question archetype tags.
	// Empty means all six.
	Types []string `mapstructure:"types"`

	// SnapshotKeep is how many state snapshots to retain.
	SnapshotKeep int `mapstructure:"snapshot_keep"`
}

// Load reads the config file (if present) and environment, returning
// the resolved configuration. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir, err := defaultConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("BIANZHENG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", "")
	v.SetDefault("db_path", "")
	v.SetDefault("drill_count", DefaultDrillCount)
	v.SetDefault("case_count", DefaultCaseCount)
	v.SetDefault("types", []string{})
	v.SetDefault("snapshot_keep", DefaultSnapshotKeep)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DrillCount < 1 {
		return nil, fmt.Errorf("drill_count must be positive, got %d", cfg.DrillCount)
	}
	if cfg.CaseCount < 1 {
		return nil, fmt.Errorf("case_count must be positive, got %d", cfg.CaseCount)
	}
	if cfg.SnapshotKeep < 1 {
		return nil, fmt.Errorf("snapshot_keep must be positive, got %d", cfg.SnapshotKeep)
	}
	return &cfg, nil
}

// defaultConfigDir resolves $XDG_CONFIG_HOME/bianzheng, falling back to
// ~/.config/bianzheng.
func defaultConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bianzheng"), nil
}
