package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salarydash/internal/config"
	"salarydash/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	source    string
)

var rootCmd = &cobra.Command{
	Use:   "salarydash",
	Short: "Data-industry salary dashboard",
	Long: `Serves an interactive dashboard over a CSV dataset of data-industry salaries.

The dataset is filtered by year, seniority, contract type and company size and
summarized as headline metrics, a top-N roles chart, a salary histogram, the
remote-work split and a per-year country comparison for one target role.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "salarydash.yaml",
		"Path to configuration file (defaults apply when it does not exist)")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	rootCmd.PersistentFlags().StringVar(&source, "source", "",
		"Override dataset location (http(s) URL or file path)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Source    string
	Port      int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Source:    source,
		Port:      port,
	}
}

// setup loads and validates configuration and builds the logger shared by
// the subcommands.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadOptional(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.Source, o.Port)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
