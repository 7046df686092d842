package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if !cfg.KV.IsRedis() {
		t.Fatalf("expected redis kv backend, got %q", cfg.KV.Backend)
	}

	if got := cfg.Auth.LoginDelay; got != 2*time.Second {
		t.Fatalf("expected default login delay 2s, got %v", got)
	}

	if got := cfg.Photos.MaxBytes; got != 1048576 {
		t.Fatalf("expected default photo cap 1MiB, got %d", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownKVBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvKVBackend, "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown kv backend to return an error")
	}
}

func TestLoad_RejectsUnknownAuthScheme(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAuthScheme, "bcrypt")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown auth scheme to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvKVBackend, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}
