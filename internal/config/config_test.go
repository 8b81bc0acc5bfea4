package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.ScryptN != 32768 || cfg.Auth.ScryptR != 8 || cfg.Auth.ScryptP != 1 {
		t.Errorf("unexpected scrypt defaults: N=%d r=%d p=%d", cfg.Auth.ScryptN, cfg.Auth.ScryptR, cfg.Auth.ScryptP)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis cache should be disabled without REDIS_URL")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_DOMAIN", "127.0.0.1")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("SCRYPT_N", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.CookieDomain != "127.0.0.1" {
		t.Errorf("unexpected cookie domain %q", cfg.Auth.CookieDomain)
	}
	if !cfg.Redis.Enabled() {
		t.Error("expected redis cache enabled")
	}
	if cfg.Auth.ScryptN != 1024 {
		t.Errorf("expected N=1024, got %d", cfg.Auth.ScryptN)
	}
}

func TestLoad_RejectsBadScryptN(t *testing.T) {
	t.Setenv("SCRYPT_N", "1000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non power-of-two N")
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "-1h")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative TTL")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "fit", Password: "p@ss:word", Name: "fitcoach"}
	dsn := d.DSN()
	if !strings.Contains(dsn, "tcp(db:3306)") {
		t.Errorf("expected default port appended, got %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime, got %s", dsn)
	}

	d.dsnOverride = "root@tcp(other:3307)/x"
	if d.DSN() != "root@tcp(other:3307)/x" {
		t.Errorf("expected override DSN, got %s", d.DSN())
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "FITCOACH_TEST_FROM_FILE=loaded\nFITCOACH_TEST_PRESET=replaced\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FITCOACH_TEST_PRESET", "kept")
	t.Cleanup(func() { os.Unsetenv("FITCOACH_TEST_FROM_FILE") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("FITCOACH_TEST_FROM_FILE"); got != "loaded" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("FITCOACH_TEST_PRESET"); got != "kept" {
		t.Errorf("expected existing variable to win, got %q", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoad_DatabaseURLGetsRequiredParams(t *testing.T) {
	t.Setenv("DATABASE_URL", "fit:secret@tcp(db:3306)/fitcoach")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	dsn := cfg.Database.DSN()
	for _, want := range []string{"tcp(db:3306)/fitcoach", "parseTime=true", "multiStatements=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("expected %q in %s", want, dsn)
		}
	}
}

func TestLoad_RejectsBadDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "not a dsn")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for an unparseable DATABASE_URL")
	}
}
