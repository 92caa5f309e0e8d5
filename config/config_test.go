package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	result, err := Load(LoadOptions{ConfigFile: writeConfig(t, "# empty\n")})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, ToolkitAuto, cfg.Toolkit)
	assert.Equal(t, DefaultBannerDuration, cfg.BannerDuration)
	assert.Zero(t, cfg.WaitBudget)
	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.NotEmpty(t, result.ConfigFileUsed)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen: 0.0.0.0:4000
wait-budget: 30s
app:
  name: Lobster
  version: 2.1.0
logging:
  level: debug
  format: json
`)
	result, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "0.0.0.0:4000", cfg.Listen)
	assert.Equal(t, 30*time.Second, cfg.WaitBudget)
	assert.Equal(t, "Lobster", cfg.App.Name)
	assert.Equal(t, "2.1.0", cfg.App.Version)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, path, result.ConfigFileUsed)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "listen: file:1\ntoolkit: tui\n")
	t.Setenv("SYNCUX_LISTEN", "env:2")
	t.Setenv("SYNCUX_BANNER_DURATION", "250ms")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("toolkit", "", "")
	flags.String("listen", "", "")
	require.NoError(t, flags.Set("toolkit", "script"))
	flags.String("script", "", "")
	require.NoError(t, flags.Set("script", "auto.lua"))

	result, err := Load(LoadOptions{ConfigFile: path, Flags: flags})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "env:2", cfg.Listen, "env beats file when the flag is unset")
	assert.Equal(t, ToolkitScript, cfg.Toolkit, "a set flag beats the file")
	assert.Equal(t, "auto.lua", cfg.Script)
	assert.Equal(t, 250*time.Millisecond, cfg.BannerDuration)
}

func TestLoadCandidates(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(second, []byte("listen: second:1\n"), 0o600))

	result, err := Load(LoadOptions{ConfigFiles: []string{filepath.Join(dir, "missing.yaml"), dir, second}})
	require.NoError(t, err)
	assert.Equal(t, "second:1", result.Config.Listen)
	assert.Equal(t, second, result.ConfigFileUsed)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "toolkit: gui\nlogging:\n  level: loud\n")
	result, err := Load(LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToolkit)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
	assert.Equal(t, "gui", result.Config.Toolkit)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Toolkit = ToolkitScript
	assert.ErrorIs(t, cfg.Validate(), ErrScriptRequired)

	cfg = DefaultConfig()
	cfg.WaitBudget = -time.Second
	cfg.Listen = " "
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.ErrorIs(t, err, ErrEmptyListen)
}

func TestDirRespectsXDG(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("XDG only applies on Unix")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/syncux", Dir())
	assert.Equal(t, "/tmp/xdg/syncux/config.yaml", File())
}
