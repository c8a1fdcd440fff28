package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port: want 8080, got %q", cfg.Port)
	}
	if cfg.DirectoryBackend != BackendMongo {
		t.Errorf("DirectoryBackend: want mongo, got %q", cfg.DirectoryBackend)
	}
	if cfg.Session.Backend != BackendMemory {
		t.Errorf("Session.Backend: want memory, got %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL: want 30m, got %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "SESSION" {
		t.Errorf("CookieName: want SESSION, got %q", cfg.Session.CookieName)
	}
	if cfg.Session.BcryptCost != 10 {
		t.Errorf("BcryptCost: want 10, got %d", cfg.Session.BcryptCost)
	}
	if !cfg.IsDevelopment() || !cfg.NeedsMongo() || cfg.NeedsRedis() {
		t.Errorf("unexpected derived flags: %+v", cfg)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "production",
		"DIRECTORY_BACKEND": "memory",
		"SESSION_BACKEND":   "redis",
		"SESSION_TTL":       "2h",
		"REDIS_ADDR":        "redis:6379",
		"AUDIT_WORKERS":     "8",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.NeedsMongo() || !cfg.NeedsRedis() {
		t.Errorf("unexpected backends: %+v", cfg)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("TTL: want 2h, got %v", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Audit.Workers != 8 {
		t.Errorf("unexpected values: %+v", cfg)
	}
}

func TestLoadWith_RejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown directory": {"DIRECTORY_BACKEND": "postgres"},
		"unknown session":   {"SESSION_BACKEND": "memcached"},
		"bad env":           {"ENV": "qa"},
		"bcrypt too low":    {"BCRYPT_COST": "2"},
		"bad duration":      {"SESSION_TTL": "soon"},
	}
	for name, env := range cases {
		if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
