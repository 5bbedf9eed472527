package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petrarca/file-summary/internal/validation"
)

// ProjectConfigName is the config file discovered at the scan root when no
// explicit config is given.
const ProjectConfigName = ".file-summary.yml"

// ScanConfigFile represents the external configuration file
type ScanConfigFile struct {
	OutputDir string            `yaml:"output_dir,omitempty" json:"output_dir,omitempty"`
	DryRun    bool              `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	Scan      ScanSection       `yaml:"scan,omitempty" json:"scan,omitempty"`
	Languages *LanguagesSection `yaml:"languages,omitempty" json:"languages,omitempty"`
}

// ScanSection contains the file selection options
type ScanSection struct {
	IncludePatterns []string `yaml:"include_patterns,omitempty" json:"include_patterns,omitempty"`
	ExcludeDirs     []string `yaml:"exclude_dirs,omitempty" json:"exclude_dirs,omitempty"`
}

// LanguagesSection narrows the catalogue to selected languages. A nil
// Enabled list means auto-detect from the repository; an explicit list, even
// an empty one, is used as given. Disabled names are removed afterwards.
type LanguagesSection struct {
	Enabled  []string `yaml:"enabled" json:"enabled"`
	Disabled []string `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// LoadScanConfig loads configuration from a file path or inline JSON. The
// content is checked against the embedded config schema before use.
func LoadScanConfig(configPath string) (*ScanConfigFile, error) {
	if configPath == "" {
		return nil, nil
	}

	// Inline JSON starts with {
	if strings.HasPrefix(strings.TrimSpace(configPath), "{") {
		return parseScanConfig([]byte(configPath))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseScanConfig(data)
}

// LoadProjectConfig looks for .file-summary.yml at the scan root. A missing
// file is not an error: it returns nil.
func LoadProjectConfig(scanPath string) (*ScanConfigFile, error) {
	configPath := filepath.Join(scanPath, ProjectConfigName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ProjectConfigName, err)
	}

	cfg, err := parseScanConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProjectConfigName, err)
	}
	return cfg, nil
}

// parseScanConfig validates raw config content against the schema and then
// unmarshals it. YAML is tried first; JSON input parses as YAML too.
func parseScanConfig(data []byte) (*ScanConfigFile, error) {
	if err := validation.ValidateYAML(validation.SchemaConfig, data); err != nil {
		return nil, err
	}

	var cfg ScanConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse config as YAML (%v) or JSON (%v)", err, jsonErr)
		}
	}

	return &cfg, nil
}

// MergeWithSettings merges the config file into settings.
// CLI flags take precedence over config file settings.
func (c *ScanConfigFile) MergeWithSettings(settings *Settings) {
	if c == nil || settings == nil {
		return
	}

	// Only merge if settings haven't been explicitly set via CLI flags
	// (we assume non-default values come from CLI)

	if c.OutputDir != "" && settings.OutputDir == DefaultOutputDir {
		settings.OutputDir = c.OutputDir
	}
	if c.DryRun && !settings.DryRun {
		settings.DryRun = c.DryRun
	}

	if len(settings.IncludePatterns) == 0 && len(c.Scan.IncludePatterns) > 0 {
		settings.IncludePatterns = c.Scan.IncludePatterns
	}
	if len(settings.ExcludeDirs) == 0 && len(c.Scan.ExcludeDirs) > 0 {
		settings.ExcludeDirs = c.Scan.ExcludeDirs
	}
}
