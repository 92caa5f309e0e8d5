package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ConfigFile must exist when set. Otherwise ConfigFiles, or the
	// default candidates, are tried in order and missing ones skipped.
	ConfigFile  string
	ConfigFiles []string
	Flags       *pflag.FlagSet
}

// LoadResult is the merged configuration.
type LoadResult struct {
	Config         Config
	ConfigFileUsed string
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"listen":          "listen",
	"toolkit":         "toolkit",
	"script":          "script",
	"settings-file":   "settings-file",
	"transcript":      "transcript",
	"wait-budget":     "wait-budget",
	"banner-duration": "banner-duration",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
	"log-file":        "logging.file",
}

// Load loads configuration from defaults, file, env and flags.
func Load(opts LoadOptions) (LoadResult, error) {
	v := viper.New()
	setDefaults(v)
	configureEnv(v)

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return LoadResult{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	path, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return LoadResult{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("unmarshal config: %w", err)
	}
	result := LoadResult{Config: cfg, ConfigFileUsed: v.ConfigFileUsed()}
	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid configuration: %w", err)
	}
	return result, nil
}

// BindFlags binds the flags present in flags to their configuration keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("listen", d.Listen)
	v.SetDefault("toolkit", d.Toolkit)
	v.SetDefault("script", d.Script)
	v.SetDefault("settings-file", d.SettingsFile)
	v.SetDefault("transcript", d.Transcript)
	v.SetDefault("wait-budget", d.WaitBudget)
	v.SetDefault("banner-duration", d.BannerDuration)

	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.tagline", d.App.Tagline)
	v.SetDefault("app.version", d.App.Version)
	v.SetDefault("app.author", d.App.Author)
	v.SetDefault("app.address", d.App.Address)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("SYNCUX")
	v.AutomaticEnv()
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		return opts.ConfigFile, nil
	}

	candidates := opts.ConfigFiles
	if len(candidates) == 0 {
		candidates = []string{"./syncux.yaml", File()}
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}
	return "", nil
}
