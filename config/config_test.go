package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadEnv(t *testing.T) {
	// LoadEnv returns nil when no .env file exists
	err := LoadEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvAllSet(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvMissingJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing JWT_SECRET")
	}
}

func TestValidateEnvMissingDatabaseURL(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("JWT_SECRET")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidateEnvMissingBoth(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing both")
	}
}

func TestGetEnvExisting(t *testing.T) {
	os.Setenv("TEST_GET_ENV_KEY", "test-value")
	defer os.Unsetenv("TEST_GET_ENV_KEY")

	result := GetEnv("TEST_GET_ENV_KEY", "default")
	if result != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", result)
	}
}

func TestGetEnvMissing(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV_MISSING")
	result := GetEnv("TEST_GET_ENV_MISSING", "fallback")
	if result != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", result)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "PORT", "DATABASE_URL", "REDIS_URL", "CORS_ORIGINS", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "LOCK_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RateLimit.Requests != 120 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected default rate limit: %+v", cfg.RateLimit)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("expected localhost CORS fallback, got %v", cfg.CORSOrigins)
	}
}

func TestLoadYAMLOverlayThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `port: "9000"
database_url: "file:loyalty.db"
log_level: debug
cors_origins:
  - https://backoffice.example.com
rate_limit:
  requests: 30
  window: 30s
lock_ttl: 5s
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("LOCK_TTL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("expected env to override yaml port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "file:loyalty.db" {
		t.Errorf("expected yaml database url, got %s", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected yaml log level, got %s", cfg.LogLevel)
	}
	if cfg.RateLimit.Requests != 30 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if cfg.LockTTL != 5*time.Second {
		t.Errorf("expected lock ttl 5s, got %s", cfg.LockTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://backoffice.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadEnvList(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CORS_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric RATE_LIMIT_REQUESTS")
	}

	t.Setenv("RATE_LIMIT_REQUESTS", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing CONFIG_FILE")
	}
}
