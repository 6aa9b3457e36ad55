// Package config handles loading, saving, and defining the application's configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrConfigNotFound is returned by LoadConfig when no config file is found.
var ErrConfigNotFound = errors.New("configuration file not found")

const (
	defaultConfigDir   = "git-reap"
	defaultConfigFile  = "config.toml"
	defaultAgeDays     = 30
	defaultTrunkBranch = "main"
)

// defaultProtected is the out-of-the-box protected set. Matching is
// case-sensitive and exact.
var defaultProtected = []string{"main", "develop", "master", "production"}

// Config holds the application configuration settings.
// Tags correspond to the keys in the TOML configuration file.
type Config struct {
	AgeDays            int      `toml:"age_days"`
	TrunkBranch        string   `toml:"trunk_branch"`
	ProtectedBranches  []string `toml:"protected_branches"`
	LegacyMergeMatch   bool     `toml:"legacy_merge_match"` // suffix-style merged matching; off by default
	LastVersionCheck   int64    `toml:"last_version_check"` // Unix timestamp of last check
	LatestKnownVersion string   `toml:"latest_known_version"`

	// Internal map for faster lookups, not loaded from TOML directly.
	ProtectedBranchMap map[string]bool `toml:"-"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	cfg := Config{
		AgeDays:           defaultAgeDays,
		TrunkBranch:       defaultTrunkBranch,
		ProtectedBranches: append([]string{}, defaultProtected...),
	}
	cfg.RebuildProtectedMap()
	return cfg
}

// RebuildProtectedMap refreshes the lookup map from ProtectedBranches
// and the trunk. The trunk is always protected, whether or not it is
// listed explicitly.
func (c *Config) RebuildProtectedMap() {
	c.ProtectedBranchMap = make(map[string]bool, len(c.ProtectedBranches)+1)
	for _, branch := range c.ProtectedBranches {
		c.ProtectedBranchMap[branch] = true
	}
	if c.TrunkBranch != "" {
		c.ProtectedBranchMap[c.TrunkBranch] = true
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(userConfigDir, defaultConfigDir, defaultConfigFile), nil
}

// LoadConfig loads configuration from the specified path or falls back
// to the default location. If neither exists it returns the defaults
// together with ErrConfigNotFound; the caller can treat that as a
// normal first run. The ProtectedBranchMap is always populated.
func LoadConfig(customPath string) (Config, error) {
	cfg := DefaultConfig()
	configPath := customPath

	if configPath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return cfg, ErrConfigNotFound
		}
		configPath = defaultPath
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("error checking config path %q: %w", configPath, err)
	}

	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config file %q: %w", configPath, err)
	}

	// Re-apply defaults for missing or invalid values.
	if cfg.AgeDays <= 0 {
		cfg.AgeDays = defaultAgeDays
	}
	if cfg.TrunkBranch == "" {
		cfg.TrunkBranch = defaultTrunkBranch
	}
	if cfg.ProtectedBranches == nil {
		cfg.ProtectedBranches = append([]string{}, defaultProtected...)
	}
	cfg.RebuildProtectedMap()

	return cfg, nil
}

// SaveConfig saves the provided configuration to the specified path or
// the default location, creating directories as needed. It returns the
// path where the file was saved.
func SaveConfig(cfg Config, customPath string) (string, error) {
	savePath := customPath
	if savePath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return "", err
		}
		savePath = defaultPath
	}

	dir := filepath.Dir(savePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return savePath, fmt.Errorf("could not create config directory %q: %w", dir, err)
	}

	file, err := os.Create(savePath)
	if err != nil {
		return savePath, fmt.Errorf("could not create config file %q: %w", savePath, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close config file %q: %w", savePath, closeErr)
		}
	}()

	// The lookup map is rebuilt on load; keep it out of the file.
	configToSave := struct {
		AgeDays            int      `toml:"age_days"`
		TrunkBranch        string   `toml:"trunk_branch"`
		ProtectedBranches  []string `toml:"protected_branches"`
		LegacyMergeMatch   bool     `toml:"legacy_merge_match"`
		LastVersionCheck   int64    `toml:"last_version_check"`
		LatestKnownVersion string   `toml:"latest_known_version"`
	}{
		AgeDays:            cfg.AgeDays,
		TrunkBranch:        cfg.TrunkBranch,
		ProtectedBranches:  cfg.ProtectedBranches,
		LegacyMergeMatch:   cfg.LegacyMergeMatch,
		LastVersionCheck:   cfg.LastVersionCheck,
		LatestKnownVersion: cfg.LatestKnownVersion,
	}

	if err := toml.NewEncoder(file).Encode(configToSave); err != nil {
		return savePath, fmt.Errorf("could not encode config to TOML file %q: %w", savePath, err)
	}

	return savePath, nil
}
