package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379",
	})
	if err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":        "postgres://localhost:5432/dukaan",
		"REDIS_URL":           "redis://localhost:6379",
		"PORT":                "",
		"DEFAULT_LANGUAGE":    "",
		"REPORT_CACHE_TTL":    "",
		"ANALYTICS_CACHE_TTL": "",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr())
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("unexpected default language %q", cfg.DefaultLanguage)
	}
	if cfg.ReportCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected report TTL %v", cfg.ReportCacheTTL)
	}
}

func TestLoadLanguageGuard(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":     "postgres://localhost:5432/dukaan",
		"REDIS_URL":        "redis://localhost:6379",
		"DEFAULT_LANGUAGE": "fr",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("expected unsupported language to fall back to en, got %q", cfg.DefaultLanguage)
	}
}
