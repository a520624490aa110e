package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5001 {
		t.Errorf("expected port 5001, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Enabled {
		t.Error("auth must be disabled by default")
	}
	if cfg.Restaurant.SeatingDuration != 2*time.Hour {
		t.Errorf("expected 2h seating, got %s", cfg.Restaurant.SeatingDuration)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimit.Window)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("server:\n  port: 9000\nrestaurant:\n  name: Test Bistro\n  timezone: America/New_York\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESERVE_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("environment should win, got port %d", cfg.Server.Port)
	}
	if cfg.Restaurant.Name != "Test Bistro" {
		t.Errorf("expected file value, got %q", cfg.Restaurant.Name)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RESERVE_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("RESERVE_LOG_LEVEL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected .env value debug, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 5001},
			RateLimit: RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"auth short secret", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, JWTSecret: "short", StaffPasswordHash: "$2a$"}
		}, true},
		{"auth without hash", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, JWTSecret: "0123456789abcdef0123"}
		}, true},
		{"auth ok", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, JWTSecret: "0123456789abcdef0123", StaffPasswordHash: "$2a$"}
		}, false},
		{"bad timezone", func(c *Config) { c.Restaurant.Timezone = "Mars/Olympus" }, true},
		{"zero limit", func(c *Config) { c.RateLimit.Limit = 0 }, true},
		{"limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
