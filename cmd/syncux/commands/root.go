// Package commands provides the CLI command implementations for syncux.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/drake/syncux/config"
	"github.com/drake/syncux/internal/logger"
)

// version information set by build flags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

// RootOptions holds the global options for all commands
type RootOptions struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	LogFile    string

	// Config holds the loaded configuration
	Config config.Config

	Context    context.Context
	CancelFunc context.CancelFunc

	logFile io.Closer
}

// GlobalOptions is the singleton instance for root options
var GlobalOptions = &RootOptions{}

// NewRootCmd creates the root cobra command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "syncux",
		Short: "Secure-element UI simulator",
		Long: `syncux - secure-element UI simulator

Runs a sample signing application on a simulated device screen. A host
connects over TCP and sends APDUs; the device shows reviews, settings and
status banners in the terminal or answers them from a Lua script.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			cleanup()
		},
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSimCmd())

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&GlobalOptions.ConfigFile, "config", "",
		"config file (default: ./syncux.yaml, "+config.File()+")")
	flags.StringVar(&GlobalOptions.LogLevel, "log-level", "",
		"log level: debug, info, warn, error (default: info)")
	flags.StringVar(&GlobalOptions.LogFormat, "log-format", "",
		"log format: text, json (default: text)")
	flags.StringVar(&GlobalOptions.LogFile, "log-file", "",
		"log file path (default: stderr, or a file under the config directory with the terminal UI)")
}

// initializeGlobals loads configuration from flags, env, and config file.
// The logger is set up by each command once it knows where output goes.
func initializeGlobals(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	GlobalOptions.Context = ctx
	GlobalOptions.CancelFunc = cancel

	result, err := config.Load(config.LoadOptions{
		ConfigFile: GlobalOptions.ConfigFile,
		Flags:      buildFlagSet(cmd),
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	GlobalOptions.Config = result.Config

	if result.ConfigFileUsed != "" {
		logger.Debug("loaded configuration", "file", result.ConfigFileUsed)
	}
	return nil
}

// buildFlagSet collects the command's flags that map to config keys.
func buildFlagSet(cmd *cobra.Command) *pflag.FlagSet {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)

	addIfExists := func(name string) {
		if flags.Lookup(name) != nil {
			return
		}
		if f := cmd.Flags().Lookup(name); f != nil {
			flags.AddFlag(f)
		} else if f := cmd.InheritedFlags().Lookup(name); f != nil {
			flags.AddFlag(f)
		}
	}

	for _, name := range []string{
		"listen", "toolkit", "script", "settings-file", "transcript",
		"wait-budget", "banner-duration", "log-level", "log-format", "log-file",
	} {
		addIfExists(name)
	}
	return flags
}

// initLogger sets the default logger from the logging configuration.
// With toFile set and no log file configured, output goes to a file in
// the config directory so it does not draw over the terminal UI.
func initLogger(cfg config.LoggingConfig, toFile bool) error {
	path := cfg.File
	if path == "" && toFile {
		path = filepath.Join(config.Dir(), "syncux.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	var output io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		output = f
		GlobalOptions.logFile = f
	}

	format := logger.FormatText
	if cfg.Format == "json" {
		format = logger.FormatJSON
	}
	logger.SetDefault(logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Level),
		Format: format,
		Output: output,
	}))
	return nil
}

// cleanup performs any necessary cleanup before exit
func cleanup() {
	if GlobalOptions.CancelFunc != nil {
		GlobalOptions.CancelFunc()
	}
	if GlobalOptions.logFile != nil {
		_ = GlobalOptions.logFile.Close()
		GlobalOptions.logFile = nil
	}
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version, commit, and build date information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "syncux version %s\n", version)
			_, _ = fmt.Fprintf(out, "  commit:     %s\n", commit)
			_, _ = fmt.Fprintf(out, "  build date: %s\n", buildDate)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
