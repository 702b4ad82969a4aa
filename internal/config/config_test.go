package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
server:
  port: "9090"
livingapps:
  base_url: https://my.living-apps.de/rest
  request_timeout: 10s
  apps:
    dozenten: app-d
    raeume: app-r
    teilnehmer: app-t
    kurse: app-k
    anmeldungen: app-a
`

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if got := cfg.RequestTimeoutDuration(); got != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", got)
	}

	ids := cfg.AppIDs()
	if len(ids) != 5 {
		t.Fatalf("len(AppIDs) = %d, want 5", len(ids))
	}
	if ids["kurse"] != "app-k" {
		t.Errorf("AppIDs[kurse] = %q, want app-k", ids["kurse"])
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LIVINGAPPS_APP_KURSE", "env-kurse")

	cfg, err := LoadConfig(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want env override 3000", cfg.Server.Port)
	}
	if cfg.AppIDs()["kurse"] != "env-kurse" {
		t.Errorf("AppIDs[kurse] = %q, want env-kurse", cfg.AppIDs()["kurse"])
	}
}

func TestLoadConfigMissingAppID(t *testing.T) {
	incomplete := `
livingapps:
  apps:
    dozenten: app-d
    raeume: app-r
    teilnehmer: app-t
    kurse: app-k
`
	if _, err := LoadConfig(writeConfigFile(t, incomplete)); err == nil {
		t.Fatal("LoadConfig succeeded without all app IDs")
	}
}

func TestLoadConfigBadTimeout(t *testing.T) {
	cfgPath := writeConfigFile(t, `
livingapps:
  request_timeout: soon
  apps:
    dozenten: app-d
    raeume: app-r
    teilnehmer: app-t
    kurse: app-k
    anmeldungen: app-a
`)
	if _, err := LoadConfig(cfgPath); err == nil {
		t.Fatal("LoadConfig accepted unparseable timeout")
	}
}
