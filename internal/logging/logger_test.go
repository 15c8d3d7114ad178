package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInit_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, true); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer SetLogger(zap.NewNop())

	Named("api").Info("catalog fetch", zap.Int("count", 3))
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "yarnly.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "catalog fetch") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestInit_EmptyDir(t *testing.T) {
	if err := Init("", false); err == nil {
		t.Error("expected error for empty state dir")
	}
}

func TestL_NoopBeforeInit(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	L().Info("dropped")
	Named("ui").Debug("dropped")
}
