package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Path != "Tesla Stock Data.csv" {
		t.Errorf("unexpected default path %q", cfg.Data.Path)
	}
	if !cfg.Strict() {
		t.Error("expected strict date checks by default")
	}
	if got := cfg.Dashboard.DefaultColumns; len(got) != 4 || got[0] != "Date" || got[3] != "Volume" {
		t.Errorf("unexpected default columns %v", got)
	}
	if cfg.Dashboard.Window != 30 {
		t.Errorf("expected window 30, got %d", cfg.Dashboard.Window)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data:
  path: data/prices.csv
  strict_dates: false
dashboard:
  asset: Apple
  default_columns: [Date, High]
server:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCKDASH_SERVER_ADDR", ":9100")
	t.Setenv("STOCKDASH_DASHBOARD_WINDOW", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Path != "data/prices.csv" {
		t.Errorf("expected file path, got %q", cfg.Data.Path)
	}
	if cfg.Strict() {
		t.Error("expected strict_dates false from file")
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("expected env override :9100, got %q", cfg.Server.Addr)
	}
	if cfg.Dashboard.Window != 10 {
		t.Errorf("expected env window 10, got %d", cfg.Dashboard.Window)
	}
	if cfg.Dashboard.Title != "Apple Stock Data Visualization Dashboard" {
		t.Errorf("unexpected title %q", cfg.Dashboard.Title)
	}
	if len(cfg.Dashboard.DefaultColumns) != 2 {
		t.Errorf("expected 2 default columns, got %v", cfg.Dashboard.DefaultColumns)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected invalid log level to fail")
	}
	cfg.Log.Level = "debug"
	cfg.Dashboard.Window = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative window to fail")
	}
}
