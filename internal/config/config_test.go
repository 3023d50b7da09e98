package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, info, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if info.Path != "" || info.PortSpecified {
		t.Fatalf("info want empty got=%+v", info)
	}
	def := DefaultConfig()
	if cfg.Server.Port != def.Server.Port || cfg.Engine.HeaderRows != 7 || cfg.Engine.NoiseMaxCols != 100 {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
	if cfg.Engine.TotalPolicy != "computed" || !cfg.Export.ChecksSheet || cfg.Export.RatioDecimals != 2 {
		t.Fatalf("engine/export defaults mismatch: %+v %+v", cfg.Engine, cfg.Export)
	}
	if len(cfg.Engine.NoiseMarkers) != 3 {
		t.Fatalf("noise markers want=3 got=%v", cfg.Engine.NoiseMarkers)
	}
}

func TestLoadConfigFrom_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9000

[engine]
header_rows = 10
noise_markers = ["tb", "adj"]
total_policy = "reported"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, info, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if !info.PortSpecified || info.Path != path {
		t.Fatalf("info mismatch: %+v", info)
	}
	if cfg.Server.Port != 9000 || cfg.Engine.HeaderRows != 10 || cfg.Engine.TotalPolicy != "reported" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Engine.HeaderMaxCols != 100 {
		t.Fatalf("unspecified value should keep default, got=%d", cfg.Engine.HeaderMaxCols)
	}
	if len(cfg.Engine.NoiseMarkers) != 2 || cfg.Engine.NoiseMarkers[1] != "adj" {
		t.Fatalf("noise markers mismatch: %v", cfg.Engine.NoiseMarkers)
	}
}

func TestLoadConfigFrom_InvalidToml(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := LoadConfigFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "18080")
	t.Setenv(EnvDataDir, "/srv/reportconv")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTotalPolicy, "reported")

	cfg, info, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Server.Port != 18080 || !info.PortSpecified {
		t.Fatalf("port override want=18080 got=%d (specified=%v)", cfg.Server.Port, info.PortSpecified)
	}
	if cfg.Data.DataDir != "/srv/reportconv" || cfg.Log.Level != "debug" || cfg.Engine.TotalPolicy != "reported" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if DataDir(cfg) != "/srv/reportconv" {
		t.Fatalf("absolute data dir should be kept, got=%s", DataDir(cfg))
	}
}

func TestSaveConfigToRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 12345
	cfg.Engine.EvaluateFormulas = true
	if err := SaveConfigTo(cfg, path); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}
	got, _, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if got.Server.Port != 12345 || !got.Engine.EvaluateFormulas {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEnsureDataDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")
	dir, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	for _, sub := range []string{"uploads", "exports", "backups"} {
		if st, err := os.Stat(filepath.Join(dir, sub)); err != nil || !st.IsDir() {
			t.Fatalf("subdir %s missing: %v", sub, err)
		}
	}
}
