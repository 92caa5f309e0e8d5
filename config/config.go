// Package config locates the simulator's configuration directory and loads
// its settings from defaults, a YAML file, SYNCUX_* environment variables
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	DefaultListen         = "127.0.0.1:9999"
	DefaultToolkit        = "auto"
	DefaultBannerDuration = 1500 * time.Millisecond
	DefaultAppName        = "Crab"
	DefaultAppVersion     = "1.0.0"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Toolkit backends.
const (
	ToolkitAuto   = "auto"
	ToolkitTUI    = "tui"
	ToolkitScript = "script"
)

// Config is the full configuration schema.
type Config struct {
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Toolkit string `mapstructure:"toolkit" yaml:"toolkit"`

	// Script drives the script toolkit.
	Script string `mapstructure:"script" yaml:"script"`

	SettingsFile string `mapstructure:"settings-file" yaml:"settings-file"`
	Transcript   string `mapstructure:"transcript" yaml:"transcript"`

	// WaitBudget bounds every wait except the home screen's. Zero waits
	// forever.
	WaitBudget     time.Duration `mapstructure:"wait-budget" yaml:"wait-budget"`
	BannerDuration time.Duration `mapstructure:"banner-duration" yaml:"banner-duration"`

	App     AppConfig     `mapstructure:"app" yaml:"app"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AppConfig describes the sample application.
type AppConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Tagline string `mapstructure:"tagline" yaml:"tagline"`
	Version string `mapstructure:"version" yaml:"version"`
	Author  string `mapstructure:"author" yaml:"author"`
	Address string `mapstructure:"address" yaml:"address"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// DefaultConfig returns a config with all default values applied.
func DefaultConfig() Config {
	return Config{
		Listen:         DefaultListen,
		Toolkit:        DefaultToolkit,
		SettingsFile:   filepath.Join(Dir(), "settings.yaml"),
		BannerDuration: DefaultBannerDuration,
		App: AppConfig{
			Name:    DefaultAppName,
			Tagline: "This app enables signing transactions on the Crab network.",
			Version: DefaultAppVersion,
			Author:  "Crab Labs",
			Address: "crab1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

var (
	ErrInvalidToolkit   = errors.New("invalid toolkit")
	ErrScriptRequired   = errors.New("script toolkit needs a script")
	ErrInvalidDuration  = errors.New("duration must not be negative")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrEmptyListen      = errors.New("listen address is empty")
)

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Listen) == "" {
		errs = append(errs, ErrEmptyListen)
	}
	switch c.Toolkit {
	case ToolkitAuto, ToolkitTUI:
	case ToolkitScript:
		if c.Script == "" {
			errs = append(errs, ErrScriptRequired)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidToolkit, c.Toolkit))
	}
	if c.WaitBudget < 0 {
		errs = append(errs, fmt.Errorf("%w: wait-budget %s", ErrInvalidDuration, c.WaitBudget))
	}
	if c.BannerDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: banner-duration %s", ErrInvalidDuration, c.BannerDuration))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Dir returns the syncux configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "syncux")
}

// File returns the path to the default config file.
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}
