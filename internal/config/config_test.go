package config

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfig_NotFound(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadConfig(nonExistentPath)

	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got: %v", err)
	}

	defaultCfg := DefaultConfig()
	if !reflect.DeepEqual(cfg, defaultCfg) {
		t.Errorf("Expected default config when file not found, got %+v", cfg)
	}
	if cfg.ProtectedBranchMap == nil {
		t.Error("Expected ProtectedBranchMap to be initialized on default config, got nil")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.AgeDays != 30 {
		t.Errorf("Expected default age threshold 30, got %d", cfg.AgeDays)
	}
	if cfg.TrunkBranch != "main" {
		t.Errorf("Expected default trunk 'main', got %q", cfg.TrunkBranch)
	}
	if cfg.LegacyMergeMatch {
		t.Error("Legacy merge matching must be off by default")
	}
	for _, name := range []string{"main", "develop", "master", "production"} {
		if !cfg.ProtectedBranchMap[name] {
			t.Errorf("Expected %q in the default protected set", name)
		}
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	customPath := filepath.Join(tempDir, "test_config.toml")

	configToSave := Config{
		AgeDays:           60,
		TrunkBranch:       "develop",
		ProtectedBranches: []string{"main", "release/v1"},
		LegacyMergeMatch:  true,
	}

	savedPath, err := SaveConfig(configToSave, customPath)
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if savedPath != customPath {
		t.Errorf("SaveConfig returned unexpected path: got %q, want %q", savedPath, customPath)
	}

	loadedCfg, err := LoadConfig(customPath)
	if err != nil {
		t.Fatalf("LoadConfig failed after save: %v", err)
	}

	if loadedCfg.AgeDays != configToSave.AgeDays {
		t.Errorf("Loaded AgeDays mismatch: got %d, want %d", loadedCfg.AgeDays, configToSave.AgeDays)
	}
	if loadedCfg.TrunkBranch != configToSave.TrunkBranch {
		t.Errorf("Loaded TrunkBranch mismatch: got %q, want %q", loadedCfg.TrunkBranch, configToSave.TrunkBranch)
	}
	if !loadedCfg.LegacyMergeMatch {
		t.Error("Expected LegacyMergeMatch to round-trip as true")
	}
	if !reflect.DeepEqual(loadedCfg.ProtectedBranches, configToSave.ProtectedBranches) {
		t.Errorf("Loaded ProtectedBranches mismatch: got %v, want %v",
			loadedCfg.ProtectedBranches, configToSave.ProtectedBranches)
	}

	// The lookup map is rebuilt on load and always includes the trunk.
	expectedMap := map[string]bool{"main": true, "release/v1": true, "develop": true}
	if !reflect.DeepEqual(loadedCfg.ProtectedBranchMap, expectedMap) {
		t.Errorf("Loaded ProtectedBranchMap mismatch: got %v, want %v", loadedCfg.ProtectedBranchMap, expectedMap)
	}
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	tempDir := t.TempDir()
	customPath := filepath.Join(tempDir, "partial_config.toml")

	partialContent := `
age_days = 0      # invalid, should use default
trunk_branch = "" # empty, should use default
`
	if err := os.WriteFile(customPath, []byte(partialContent), 0o644); err != nil {
		t.Fatalf("Failed to write partial config file: %v", err)
	}

	loadedCfg, err := LoadConfig(customPath)
	if err != nil {
		t.Fatalf("LoadConfig failed for partial config: %v", err)
	}

	if loadedCfg.AgeDays != 30 {
		t.Errorf("Expected default age threshold, got %d", loadedCfg.AgeDays)
	}
	if loadedCfg.TrunkBranch != "main" {
		t.Errorf("Expected default trunk, got %q", loadedCfg.TrunkBranch)
	}
	if len(loadedCfg.ProtectedBranches) == 0 {
		t.Error("Expected default protected branches when omitted")
	}
}

func TestRebuildProtectedMap_TrunkAlwaysProtected(t *testing.T) {
	cfg := Config{
		TrunkBranch:       "trunk",
		ProtectedBranches: []string{"keep-me"},
	}
	cfg.RebuildProtectedMap()

	if !cfg.ProtectedBranchMap["trunk"] {
		t.Error("Expected the trunk to be protected even when unlisted")
	}
	if !cfg.ProtectedBranchMap["keep-me"] {
		t.Error("Expected listed branch in the protected map")
	}
}

func TestFirstRunSetup(t *testing.T) {
	input := "45\nmaster\nrelease, staging\n"
	reader := bufio.NewReader(strings.NewReader(input))
	var out bytes.Buffer

	cfg, err := FirstRunSetup(reader, &out)
	if err != nil {
		t.Fatalf("FirstRunSetup failed: %v", err)
	}

	if cfg.AgeDays != 45 {
		t.Errorf("Expected age 45, got %d", cfg.AgeDays)
	}
	if cfg.TrunkBranch != "master" {
		t.Errorf("Expected trunk 'master', got %q", cfg.TrunkBranch)
	}
	if !reflect.DeepEqual(cfg.ProtectedBranches, []string{"release", "staging"}) {
		t.Errorf("Expected trimmed protected list, got %v", cfg.ProtectedBranches)
	}
	if !cfg.ProtectedBranchMap["master"] {
		t.Error("Expected the chosen trunk in the protected map")
	}
}

func TestFirstRunSetup_DefaultsOnEmptyInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\n\n\n"))
	var out bytes.Buffer

	cfg, err := FirstRunSetup(reader, &out)
	if err != nil {
		t.Fatalf("FirstRunSetup failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults for empty input, got %+v", cfg)
	}
}

func TestFirstRunSetup_InvalidAge(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("not-a-number\n\n\n"))
	var out bytes.Buffer

	cfg, err := FirstRunSetup(reader, &out)
	if err != nil {
		t.Fatalf("FirstRunSetup failed: %v", err)
	}
	if cfg.AgeDays != 30 {
		t.Errorf("Expected default age after invalid input, got %d", cfg.AgeDays)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Error("Expected an invalid-input notice in the prompt output")
	}
}
