package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nukigor/ai-voxarena/internal/data/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "TAXONOMY_CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "OTEL_SAMPLER_RATIO"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(nil)
	if cfg.Port != "8080" || cfg.DB.Driver != db.DriverPostgres {
		t.Fatalf("unexpected defaults: port=%q driver=%q", cfg.Port, cfg.DB.Driver)
	}
	if cfg.TermsCacheTTL != 5*time.Minute {
		t.Fatalf("TermsCacheTTL=%s", cfg.TermsCacheTTL)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("CORSOrigins=%v", cfg.CORSOrigins)
	}
	if cfg.Otel.SampleRatio != 0.1 {
		t.Fatalf("SampleRatio=%v", cfg.Otel.SampleRatio)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("VOX_DOTENV_PROBE=sqlite\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VOX_DOTENV_PROBE", "")
	os.Unsetenv("VOX_DOTENV_PROBE")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("VOX_DOTENV_PROBE"); got != "sqlite" {
		t.Fatalf("VOX_DOTENV_PROBE=%q", got)
	}
}
