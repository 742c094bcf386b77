// Package projectconfig provides the ProjectConfig struct and loader for
// .cmseval.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file searched for by Load.
const ConfigFileName = ".cmseval.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultProviderType = "ollama"

	DefaultReportTitle = "CMS Platform Evaluation Report"
)

// ProviderConfig holds the default LLM backend selection.
type ProviderConfig struct {
	Type  string `yaml:"type,omitempty"`
	Model string `yaml:"model,omitempty"`
	Host  string `yaml:"host,omitempty"`
}

// EvaluationConfig holds scoring and assessment defaults.
type EvaluationConfig struct {
	UseCases          []string `yaml:"use_cases,omitempty"`
	RequirementsBrief string   `yaml:"requirements_brief,omitempty"`
}

// ReportConfig holds report rendering defaults.
type ReportConfig struct {
	Title string `yaml:"title,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .cmseval.yaml.
type ProjectConfig struct {
	Provider   ProviderConfig   `yaml:"provider,omitempty"`
	Evaluation EvaluationConfig `yaml:"evaluation,omitempty"`
	Report     ReportConfig     `yaml:"report,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
// Model and host are left empty so the provider factory's env-var and
// built-in fallbacks still apply.
func New() *ProjectConfig {
	return &ProjectConfig{
		Provider: ProviderConfig{
			Type: DefaultProviderType,
		},
		Report: ReportConfig{
			Title: DefaultReportTitle,
		},
	}
}

// Load finds .cmseval.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .cmseval.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Provider.Type != "" {
		dst.Provider.Type = src.Provider.Type
	}
	if src.Provider.Model != "" {
		dst.Provider.Model = src.Provider.Model
	}
	if src.Provider.Host != "" {
		dst.Provider.Host = src.Provider.Host
	}

	if len(src.Evaluation.UseCases) > 0 {
		dst.Evaluation.UseCases = src.Evaluation.UseCases
	}
	if src.Evaluation.RequirementsBrief != "" {
		dst.Evaluation.RequirementsBrief = src.Evaluation.RequirementsBrief
	}

	if src.Report.Title != "" {
		dst.Report.Title = src.Report.Title
	}
}
