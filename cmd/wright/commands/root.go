package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wright/config"
	"wright/trace"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wright",
		Short: "Wright - dialogue scripting runtime",
		Long: `Wright runs dialogue scripts: sequences of statements with labels,
goto/resume detours, functions, entity templates and host natives.

Programs are YAML documents; see "wright check" for validating one
without running it.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, buildDate))

	return rootCmd
}

// loadConfig reads --config, applies the global flag overrides and
// validates the result
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging points the global logger and tracer at the configured
// output. The returned cleanup closes a log file, if one was opened.
func setupLogging(cfg *config.Config) (func(), error) {
	var out io.Writer
	cleanup := func() {}
	switch strings.ToLower(cfg.Log.Output) {
	case "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Log.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log output: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	}
	if cfg.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	level := cfg.Level()
	// Trace events are logged at debug
	if cfg.Trace.Enabled && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	trace.Init(cfg.Trace.Enabled, cfg.Trace.Filters, out)
	return cleanup, nil
}
