package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("WW_TEST_CURRENCY=EUR\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("WW_TEST_CURRENCY", "")
	os.Unsetenv("WW_TEST_CURRENCY")

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("WW_TEST_CURRENCY"); got != "EUR" {
		t.Fatalf("WW_TEST_CURRENCY = %q, want EUR", got)
	}
}

func TestSetupLoggerFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("chatty", &buf)
	logger.InfoContext(context.Background(), "hello")
	logger.DebugContext(context.Background(), "hidden")

	out := buf.String()
	if !strings.Contains(out, "Falling back to info level") || !strings.Contains(out, "msg=hello") {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line logged at info level: %s", out)
	}
}

func TestInitBackendMemory(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("MEMORY_SNAPSHOT_PATH", filepath.Join(t.TempDir(), "snap.json"))

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	result, err := InitBackend(context.Background(), SetupLogger("error", &bytes.Buffer{}), cfg)
	if err != nil {
		t.Fatalf("init backend: %v", err)
	}
	defer result.Close()
	if result.Store == nil {
		t.Fatal("nil store")
	}
}
