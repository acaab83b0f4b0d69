package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/app"
)

// writeConfig drops a TOML config into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func noEnv() []string { return nil }

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := loadConfig(path, nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.API.BaseURL != app.DefaultConfigBaseURL {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.LogFormat != app.LogFormatText {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if cfg.Defaults.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Defaults.Timezone)
	}
	if cfg.Auth.Storage != app.TokenStorageTypeFile {
		t.Errorf("Storage = %q", cfg.Auth.Storage)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_format = "json"

[api]
base_url = "https://cal.example.com"
timeout = "45s"

[defaults]
timezone = "Europe/Zagreb"
`)

	cfg, err := loadConfig(path, nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.API.BaseURL != "https://cal.example.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.LogFormat != app.LogFormatJSON {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if cfg.Defaults.Timezone != "Europe/Zagreb" {
		t.Errorf("Timezone = %q", cfg.Defaults.Timezone)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://file.example.com"
`)

	environ := func() []string {
		return []string{
			"ANYMOMENT_API__BASE_URL=https://env.example.com",
			"ANYMOMENT_LOG_LEVEL=debug",
			"UNRELATED_VAR=ignored",
		}
	}

	cfg, err := loadConfig(path, nil, environ)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want the environment value", cfg.API.BaseURL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigFlagOverridesEnv(t *testing.T) {
	path := writeConfig(t, "")
	environ := func() []string {
		return []string{"ANYMOMENT_API__BASE_URL=https://env.example.com"}
	}

	var cfg *app.Config
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api--base-url"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var err error
			cfg, err = loadConfig(path, cmd, environ)
			return err
		},
	}

	if err := cmd.Run(context.Background(), []string{"test", "--api--base-url", "https://flag.example.com"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if cfg.API.BaseURL != "https://flag.example.com" {
		t.Errorf("BaseURL = %q, want the flag value", cfg.API.BaseURL)
	}
}

func TestLoadConfigUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://file.example.com"
`)

	var cfg *app.Config
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api--base-url", Value: "https://default.example.com"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var err error
			cfg, err = loadConfig(path, cmd, noEnv)
			return err
		},
	}

	if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if cfg.API.BaseURL != "https://file.example.com" {
		t.Errorf("BaseURL = %q, flag default clobbered the file value", cfg.API.BaseURL)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `log_format = "yaml"`)
	if _, err := loadConfig(path, nil, noEnv); err == nil {
		t.Error("invalid log format accepted")
	}

	path = writeConfig(t, `
[api]
base_url = "not a url"
`)
	if _, err := loadConfig(path, nil, noEnv); err == nil {
		t.Error("invalid base URL accepted")
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	if _, err := loadConfig(missing, nil, noEnv); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestSetConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := setConfigValue(path, "api.base_url", "https://set.example.com"); err != nil {
		t.Fatalf("setConfigValue: %v", err)
	}
	if err := setConfigValue(path, "defaults.timezone", "Europe/Zagreb"); err != nil {
		t.Fatalf("setConfigValue: %v", err)
	}

	cfg, err := loadConfig(path, nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.API.BaseURL != "https://set.example.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Defaults.Timezone != "Europe/Zagreb" {
		t.Errorf("second set lost the first key or its own: Timezone = %q", cfg.Defaults.Timezone)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}
}
