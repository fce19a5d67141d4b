// Package config provides configuration loading for nscan.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (NSCAN_*) > config file (~/.nscan.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all nscan configuration options.
type Config struct {
	Scanner      string        `mapstructure:"scanner" yaml:"scanner"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
	ScanTimeout  time.Duration `mapstructure:"scan_timeout" yaml:"scan_timeout"`
	OutputDir    string        `mapstructure:"output_dir" yaml:"output_dir"`
	OutputFormat string        `mapstructure:"output_format" yaml:"output_format"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		Scanner:      "nuclei",
		ProbeTimeout: 5 * time.Second,
		ScanTimeout:  10 * time.Minute,
		OutputDir:    "outputs",
		OutputFormat: "table",
	}
}

// Load reads configuration from ~/.nscan.yaml and environment variables.
// It does NOT apply CLI flag overrides; call ApplyFlags for that.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName(".nscan")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return decode(v)
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("scanner") {
		val, _ := flags.GetString("scanner")
		cfg.Scanner = val
	}
	if flags.Changed("probe-timeout") {
		val, _ := flags.GetDuration("probe-timeout")
		cfg.ProbeTimeout = val
	}
	if flags.Changed("scan-timeout") {
		val, _ := flags.GetDuration("scan-timeout")
		cfg.ScanTimeout = val
	}
	if flags.Changed("output-dir") {
		val, _ := flags.GetString("output-dir")
		cfg.OutputDir = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
}

// Validate rejects values the scan pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Scanner == "" {
		return fmt.Errorf("scanner executable must not be empty")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.ScanTimeout <= 0 {
		return fmt.Errorf("scan_timeout must be positive, got %s", c.ScanTimeout)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// YAML renders the configuration in the same shape as the config file.
func (c *Config) YAML() (string, error) {
	out := struct {
		Scanner      string `yaml:"scanner"`
		ProbeTimeout string `yaml:"probe_timeout"`
		ScanTimeout  string `yaml:"scan_timeout"`
		OutputDir    string `yaml:"output_dir"`
		OutputFormat string `yaml:"output_format"`
	}{
		Scanner:      c.Scanner,
		ProbeTimeout: c.ProbeTimeout.String(),
		ScanTimeout:  c.ScanTimeout.String(),
		OutputDir:    c.OutputDir,
		OutputFormat: c.OutputFormat,
	}

	b, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(b), nil
}

// ConfigFilePath returns the default config file path (~/.nscan.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nscan.yaml"
	}
	return filepath.Join(home, ".nscan.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NSCAN")
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("scanner", d.Scanner)
	v.SetDefault("probe_timeout", d.ProbeTimeout)
	v.SetDefault("scan_timeout", d.ScanTimeout)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("output_format", d.OutputFormat)
}
