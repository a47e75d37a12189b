package envutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTypedLookups(t *testing.T) {
	t.Setenv("EU_STR", "  value ")
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "x")
	t.Setenv("EU_BOOL", "off")
	t.Setenv("EU_SECONDS", "30")

	if got := String("EU_STR", "d"); got != "value" {
		t.Fatalf("String: %q", got)
	}
	if got := String("EU_MISSING", "d"); got != "d" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("EU_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("EU_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if got := Bool("EU_BOOL", true); got {
		t.Fatalf("Bool: expected false")
	}
	if got := Seconds("EU_SECONDS", time.Minute); got != 30*time.Second {
		t.Fatalf("Seconds: %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("EU_DOTENV_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("EU_DOTENV_VALUE", "")
	os.Unsetenv("EU_DOTENV_VALUE")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("EU_DOTENV_VALUE"); got != "from-file" {
		t.Fatalf("dotenv value: %q", got)
	}
	os.Unsetenv("EU_DOTENV_VALUE")
}
