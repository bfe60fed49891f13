package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "APP_ENV", "TOKEN_TTL_HOURS", "CORS_ORIGINS", "PAYMENT_CURRENCY"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development by default")
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.PaymentCurrency != "usd" {
		t.Fatalf("unexpected currency %q", cfg.PaymentCurrency)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PAYMENT_CURRENCY", "EUR")

	cfg := FromEnv()
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected durations %s %s", cfg.TokenTTL, cfg.ShutdownTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.PaymentCurrency != "eur" {
		t.Fatalf("unexpected currency %q", cfg.PaymentCurrency)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STOREFRONT_TEST_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("STOREFRONT_TEST_KEY", "")
	os.Unsetenv("STOREFRONT_TEST_KEY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("STOREFRONT_TEST_KEY"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
