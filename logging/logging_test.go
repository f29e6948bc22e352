package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/config"
)

func TestNewWithoutSinkIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info"}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected no-op logger")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	logger, err := New(config.LogConfig{File: path, Level: "debug"}, "stderr")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("products loaded", zap.Int("count", 3))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"products loaded"`) || !strings.Contains(string(b), `"count":3`) {
		t.Fatalf("unexpected log output: %s", b)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	if _, err := New(config.LogConfig{File: path, Level: "loud"}, ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
