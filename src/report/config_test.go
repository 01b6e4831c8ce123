package report

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "title: Devnet soak report\nblock_time: 12\ncontinue_on_chart_error: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "Devnet soak report" {
		t.Fatalf("title: got %q", cfg.Title)
	}
	if cfg.BlockTime != 12 {
		t.Fatalf("block_time: got %v", cfg.BlockTime)
	}
	if !cfg.ContinueOnChartError {
		t.Fatalf("continue_on_chart_error not set")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != DefaultTitle {
		t.Fatalf("expected default title got %q", cfg.Title)
	}
	if cfg.BlockTime != 0 {
		t.Fatalf("block_time should stay unset, got %v", cfg.BlockTime)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
