package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"wright/eval"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != eval.DefaultMaxDepth {
		t.Errorf("Expected max depth %d, got %d", eval.DefaultMaxDepth, cfg.MaxDepth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %s", cfg.Level())
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
max_depth: 500
trace:
  enabled: true
  filters: ["text*", "greet"]
log:
  level: debug
  format: json
metrics:
  enabled: true
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.MaxDepth != 500 {
		t.Errorf("Expected 500, got %d", cfg.MaxDepth)
	}
	if !cfg.Trace.Enabled || len(cfg.Trace.Filters) != 2 {
		t.Errorf("Unexpected trace config %+v", cfg.Trace)
	}
	if cfg.Log.Output != "stderr" {
		t.Errorf("Expected the default output to survive, got %q", cfg.Log.Output)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", cfg.Level())
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics to be enabled")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"negative depth", "max_depth: -1", "MaxDepth"},
		{"bad level", "log: {level: loud}", "Level"},
		{"bad format", "log: {format: xml}", "Format"},
		{"empty filter", `trace: {filters: [""]}`, "Filters"},
		{"not yaml", "max_depth: [", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q in %v", tt.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wright.yaml")
	if err := os.WriteFile(path, []byte("max_depth: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxDepth != 42 {
		t.Errorf("Expected 42, got %d", cfg.MaxDepth)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected a missing file to fail")
	}
}
