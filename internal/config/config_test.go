package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidFormat(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Format: "xml"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid log format")
	}

	expected := `logging.format must be "json" or "console", got "xml"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_Levels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		t.Run("level="+level, func(t *testing.T) {
			cfg := Config{Logging: LoggingConfig{Level: level}}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid level %q: %v", level, err)
			}
		})
	}

	cfg := Config{Logging: LoggingConfig{Level: "verbose"}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestValidate_NegativeMaxEntries(t *testing.T) {
	cfg := Config{Interning: InterningConfig{MaxEntries: -1}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative max_entries")
	}
}

func TestValidate_TooManyShards(t *testing.T) {
	cfg := Config{Interning: InterningConfig{Shards: 1 << 20}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for oversized shard count")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Interning.Shards != 16 {
		t.Errorf("expected Shards=16, got %d", cfg.Interning.Shards)
	}
	if cfg.Interning.MaxEntries != 0 {
		t.Errorf("expected MaxEntries=0, got %d", cfg.Interning.MaxEntries)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected Format='console', got %q", cfg.Logging.Format)
	}
	if cfg.Metrics.Namespace != "geocoord" {
		t.Errorf("expected Namespace='geocoord', got %q", cfg.Metrics.Namespace)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("expected empty metrics addr, got %q", cfg.Metrics.Addr)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Interning: InterningConfig{Shards: 4, MaxEntries: 1000},
		Logging:   LoggingConfig{Level: "warn", Format: "json"},
		Metrics:   MetricsConfig{Addr: ":9100", Namespace: "custom"},
	}
	cfg.ApplyDefaults()

	if cfg.Interning.Shards != 4 {
		t.Errorf("expected Shards=4, got %d", cfg.Interning.Shards)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected Format='json', got %q", cfg.Logging.Format)
	}
	if cfg.Metrics.Namespace != "custom" {
		t.Errorf("expected Namespace='custom', got %q", cfg.Metrics.Namespace)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("GEOCOORD_TEST_SHARDS", "8")

	cfg, err := Parse([]byte(`
interning:
  shards: ${GEOCOORD_TEST_SHARDS}
  max_entries: ${GEOCOORD_TEST_UNSET:-500}
logging:
  format: json
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interning.Shards != 8 {
		t.Errorf("expected Shards=8, got %d", cfg.Interning.Shards)
	}
	if cfg.Interning.MaxEntries != 500 {
		t.Errorf("expected MaxEntries=500, got %d", cfg.Interning.MaxEntries)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected Format='json', got %q", cfg.Logging.Format)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("interning: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("logging:\n  format: xml\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("interning:\n  max_entries: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interning.MaxEntries != 42 {
		t.Errorf("expected MaxEntries=42, got %d", cfg.Interning.MaxEntries)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_BundledEnvironments(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("load %s: %v", env, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected 'local', got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected 'prod', got %q", got)
	}
}
