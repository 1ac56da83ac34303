package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("DB_NAME", "")

	cfg := Load()
	if cfg.JWTSecret != "" {
		t.Fatalf("expected empty secret by default, got %q", cfg.JWTSecret)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("expected 3600s token ttl, got %v", cfg.JWTTTL)
	}
	if cfg.DBName != "ecommerce" {
		t.Errorf("expected default db name ecommerce, got %q", cfg.DBName)
	}
	if cfg.MaxBodyBytes != 20<<20 {
		t.Errorf("expected 20MiB body limit, got %d", cfg.MaxBodyBytes)
	}
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	t.Setenv("JWT_TTL", "90s")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg := Load()
	if cfg.JWTTTL != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.JWTTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected fallback cost 10, got %d", cfg.BcryptCost)
	}
	if !cfg.UseMemoryStore() {
		t.Errorf("expected memory store to be selected")
	}
	if cfg.PublicBaseURL != "https://cdn.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %#v", got)
	}
}
