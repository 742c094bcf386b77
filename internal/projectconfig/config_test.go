package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Provider.Type", "ollama", cfg.Provider.Type)
	assertEqual(t, "Provider.Model", "", cfg.Provider.Model)
	assertEqual(t, "Provider.Host", "", cfg.Provider.Host)
	assertEqual(t, "Report.Title", DefaultReportTitle, cfg.Report.Title)
	if len(cfg.Evaluation.UseCases) != 0 {
		t.Errorf("Evaluation.UseCases = %v, want empty", cfg.Evaluation.UseCases)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
provider:
  type: anthropic
  model: claude-3-5-sonnet-20241022
  host: http://localhost:12000
evaluation:
  use_cases:
    - enrollment_funnel
    - landing_pages
  requirements_brief: "High-traffic site, 50k visits/mo."
report:
  title: "Platform Shortlist"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Provider.Type", "anthropic", cfg.Provider.Type)
	assertEqual(t, "Provider.Model", "claude-3-5-sonnet-20241022", cfg.Provider.Model)
	assertEqual(t, "Provider.Host", "http://localhost:12000", cfg.Provider.Host)
	if len(cfg.Evaluation.UseCases) != 2 || cfg.Evaluation.UseCases[0] != "enrollment_funnel" {
		t.Errorf("Evaluation.UseCases = %v", cfg.Evaluation.UseCases)
	}
	assertEqual(t, "Evaluation.RequirementsBrief", "High-traffic site, 50k visits/mo.", cfg.Evaluation.RequirementsBrief)
	assertEqual(t, "Report.Title", "Platform Shortlist", cfg.Report.Title)
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
provider:
  model: llama3.2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Overridden
	assertEqual(t, "Provider.Model", "llama3.2", cfg.Provider.Model)

	// Defaults preserved
	assertEqual(t, "Provider.Type", "ollama", cfg.Provider.Type)
	assertEqual(t, "Report.Title", DefaultReportTitle, cfg.Report.Title)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	defaults := New()
	assertEqual(t, "Provider.Type", defaults.Provider.Type, cfg.Provider.Type)
	assertEqual(t, "Report.Title", defaults.Report.Title, cfg.Report.Title)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
provider:
  type: [not valid yaml
    this is broken
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() should return error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ConfigFileName, `
provider:
  type: openai
`)

	child := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(child)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Provider.Type", "openai", cfg.Provider.Type)
	// Other defaults still populated
	assertEqual(t, "Report.Title", DefaultReportTitle, cfg.Report.Title)
}

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}
