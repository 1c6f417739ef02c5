// Package config provides configuration structures and loading for salarydash.
package config

import "time"

// DefaultSource is the public salary dataset the dashboard was built around.
const DefaultSource = "https://raw.githubusercontent.com/vqrca/dashboard_salarios_dados/refs/heads/main/dados-imersao-final.csv"

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig represents the HTTP listener.
type ServerConfig struct {
	Host      string  `yaml:"host" mapstructure:"host"`
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/second per client, 0 disables
}

// DataConfig locates the dataset.
type DataConfig struct {
	Source  string        `yaml:"source" mapstructure:"source"` // http(s) URL or file path
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DashboardConfig holds the control bounds and fixed view settings.
type DashboardConfig struct {
	TargetRole  string       `yaml:"target_role" mapstructure:"target_role"`
	PreviewRows int          `yaml:"preview_rows" mapstructure:"preview_rows"`
	TopN        SliderConfig `yaml:"top_n" mapstructure:"top_n"`
	Bins        SliderConfig `yaml:"bins" mapstructure:"bins"`
}

// SliderConfig bounds an integer control.
type SliderConfig struct {
	Min     int `yaml:"min" mapstructure:"min"`
	Max     int `yaml:"max" mapstructure:"max"`
	Default int `yaml:"default" mapstructure:"default"`
}

// Clamp limits v to [Min, Max].
func (s SliderConfig) Clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Data: DataConfig{
			Source:  DefaultSource,
			Timeout: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			TargetRole:  "Data Scientist",
			PreviewRows: 1000,
			TopN:        SliderConfig{Min: 5, Max: 20, Default: 10},
			Bins:        SliderConfig{Min: 10, Max: 50, Default: 30},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}
