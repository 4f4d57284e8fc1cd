package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// unsetEnv clears keys for the test; godotenv skips keys that are already set,
// even when empty.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var envKeys = []string{"APP_ENV", "PORT", "DB_PATH", "JWT_SECRET", "SUPER_ADMINS"}

func TestLoadFrom_ReadsDotEnv(t *testing.T) {
	unsetEnv(t, envKeys...)

	path := filepath.Join(t.TempDir(), ".env")
	content := []byte(`
# comment

export APP_ENV=production
PORT=9090
DB_PATH="/data/configurador.db"
JWT_SECRET='s3cret'
SUPER_ADMINS= Diretoria@LittleMaker.com.br, ,ti@littlemaker.com.br
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	cfg := LoadFrom(path)

	if cfg.Env != "production" || cfg.IsDev() {
		t.Fatalf("Env=%q IsDev=%v", cfg.Env, cfg.IsDev())
	}
	if cfg.Port != "9090" || cfg.DBPath != "/data/configurador.db" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := strings.Join(cfg.SuperAdmins, ","); got != "diretoria@littlemaker.com.br,ti@littlemaker.com.br" {
		t.Fatalf("SuperAdmins=%q", got)
	}
}

func TestLoadFrom_DoesNotOverwriteExistingEnv(t *testing.T) {
	unsetEnv(t, envKeys...)
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9090\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if got := LoadFrom(path).Port; got != "7000" {
		t.Fatalf("Port=%q, want %q", got, "7000")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg := LoadFrom(filepath.Join(t.TempDir(), "absent.env"))

	if cfg.Port != defaultPort || cfg.DBPath != defaultDBPath || !cfg.IsDev() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SuperAdmins != nil {
		t.Fatalf("SuperAdmins=%v, want none", cfg.SuperAdmins)
	}
}
