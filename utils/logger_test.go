package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupLoggerLevel(t *testing.T) {
	defer SetupLogger("info", "")

	SetupLogger("debug", "")
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}

	SetupLogger("not-a-level", "")
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("expected fallback to info level, got %s", log.GetLevel())
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	defer SetupLogger("info", "")

	path := filepath.Join(t.TempDir(), "api.log")
	SetupLogger("info", path)
	log.Info("loyalty logger test line")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "loyalty logger test line") {
		t.Errorf("expected log line in file, got: %s", data)
	}
}
