package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Source.MaxFiles != 500 || cfg.Source.MaxFileSize != 1<<20 {
		t.Errorf("Source = %+v", cfg.Source)
	}
}

func TestLoadOverridesOnlySetKeys(t *testing.T) {
	path := writeConfig(t, `
[layout]
direction = "TB"
node_width = 200

[code]
scope = "relative"
dedupe_edges = true

[source]
extensions = ["py"]

[server]
cache = "none"
cache_ttl = "90m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.Direction != layout.TopToBottom || cfg.Layout.NodeWidth != 200 {
		t.Errorf("layout overrides not applied: %+v", cfg.Layout)
	}
	if cfg.Layout.NodeHeight != layout.DefaultNodeHeight || cfg.Layout.RankSeparation != layout.DefaultRankSeparation {
		t.Errorf("unset layout keys lost their defaults: %+v", cfg.Layout)
	}
	if cfg.Code.Scope != build.ScopeRelative || !cfg.Code.DedupeEdges {
		t.Errorf("Code = %+v", cfg.Code)
	}
	if len(cfg.Source.Extensions) != 1 || cfg.Source.Extensions[0] != "py" {
		t.Errorf("Extensions = %v", cfg.Source.Extensions)
	}
	if !cfg.Source.RespectGitignore {
		t.Error("RespectGitignore default lost")
	}
	if cfg.Server.Cache != CacheNone || cfg.Server.CacheTTL != 90*time.Minute {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\nwidth = 3\n", errors.ErrCodeInvalidConfig},
		{"bad scope", "[code]\nscope = \"everything\"\n", errors.ErrCodeInvalidConfig},
		{"bad direction", "[layout]\ndirection = \"up\"\n", errors.ErrCodeInvalidConfig},
		{"negative separation", "[layout]\nrank_separation = -1\n", errors.ErrCodeInvalidConfig},
		{"bad cache", "[server]\ncache = \"disk\"\n", errors.ErrCodeInvalidConfig},
		{"redis without url", "[server]\ncache = \"redis\"\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without file: %v", err)
	}
	if cfg.Layout.Direction != layout.LeftToRight {
		t.Errorf("Direction = %s", cfg.Layout.Direction)
	}

	if err := os.WriteFile(FileName, []byte("[layout]\ndirection = \"RL\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Direction != layout.RightToLeft {
		t.Errorf("Direction = %s, want RL from %s", cfg.Layout.Direction, FileName)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("REPOGRAPH_ADDR", ":9999")
	t.Setenv("REPOGRAPH_CACHE", "redis")
	t.Setenv("REPOGRAPH_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("REPOGRAPH_CACHE_TTL", "5m")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.Cache != CacheRedis || cfg.Server.CacheTTL != 5*time.Minute {
		t.Errorf("Server = %+v", cfg.Server)
	}

	t.Setenv("REPOGRAPH_CACHE_TTL", "soon")
	cfg = Default()
	if err := cfg.ApplyEnv(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad ttl: %v", err)
	}
}
