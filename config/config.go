package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration. Values come from defaults, then the
// optional YAML file named by CONFIG_FILE, then environment variables.
type Config struct {
	Port        string          `yaml:"port"`
	DatabaseURL string          `yaml:"database_url"`
	RedisURL    string          `yaml:"redis_url"`
	LogLevel    string          `yaml:"log_level"`
	LogFile     string          `yaml:"log_file"`
	CORSOrigins []string        `yaml:"cors_origins"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	// LockTTL bounds how long a Redis customer lock survives a crashed holder.
	LockTTL time.Duration `yaml:"lock_ttl"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
		LockTTL: 10 * time.Second,
	}
}

func LoadEnv() error {
	// A missing .env is fine: in production the variables are set directly.
	if err := godotenv.Load(); err != nil {
		return nil
	}
	return nil
}

// Load builds the configuration. It fails only when CONFIG_FILE is set but
// cannot be read or parsed, or when a numeric variable is malformed.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.DatabaseURL = GetEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = GetEnv("REDIS_URL", cfg.RedisURL)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = GetEnv("LOG_FILE", cfg.LogFile)

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}
	if raw := os.Getenv("RATE_LIMIT_REQUESTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q", raw)
		}
		cfg.RateLimit.Requests = n
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", raw)
		}
		cfg.RateLimit.Window = d
	}
	if raw := os.Getenv("LOCK_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid LOCK_TTL %q", raw)
		}
		cfg.LockTTL = d
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
		log.Warn("no CORS origins configured, defaulting to http://localhost:3000")
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("REDIS_URL") == "" {
		log.Warn("REDIS_URL not set - customer balance locks are local to this process")
	}
	if os.Getenv("CORS_ORIGINS") == "" {
		log.Warn("CORS_ORIGINS not set - CORS may not work correctly")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
