// Package config provides configuration management for inlinescripts using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// The configuration file (.inlinescripts.yml) names the base directory of
// script templates, output post-processing switches, and the bundles the CLI
// can render. Environment variables with the INLINESCRIPTS_ prefix override
// scalar settings.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default values applied by Load.
const (
	DefaultExtension = "js"
	DefaultDebounce  = 150 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	Scripts ScriptsConfig           `yaml:"scripts" mapstructure:"scripts"`
	Output  OutputConfig            `yaml:"output" mapstructure:"output"`
	Bundles map[string]BundleConfig `yaml:"bundles" mapstructure:"bundles"`
	Watch   WatchConfig             `yaml:"watch" mapstructure:"watch"`
	Log     LogConfig               `yaml:"log" mapstructure:"log"`
}

type ScriptsConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
	Extension string `yaml:"extension" mapstructure:"extension"`
}

type OutputConfig struct {
	Minify bool `yaml:"minify" mapstructure:"minify"`
	Check  bool `yaml:"check" mapstructure:"check"`
}

// BundleConfig describes one named bundle of template files.
type BundleConfig struct {
	TagID  string         `yaml:"tag_id" mapstructure:"tag_id"`
	NoHash bool           `yaml:"no_hash" mapstructure:"no_hash"`
	Files  []bundle.Entry `yaml:"files" mapstructure:"files"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load builds the configuration from the global viper instance, applies
// defaults and validates the result.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, "failed to decode configuration")
	}

	// viper lowercases map keys, which would corrupt placeholder tokens, so
	// bundles are read from the file itself when one is in use.
	if file := viper.ConfigFileUsed(); file != "" {
		bundles, err := loadBundles(file)
		if err != nil {
			return nil, err
		}
		if bundles != nil {
			config.Bundles = bundles
		}
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, errors.WrapConfig(err, "invalid configuration")
	}

	return &config, nil
}

func loadBundles(file string) (map[string]BundleConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WrapConfig(err, "failed to read configuration file").WithPath(file)
	}

	var raw struct {
		Bundles map[string]BundleConfig `yaml:"bundles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapConfig(err, "failed to parse bundles").WithPath(file)
	}

	return raw.Bundles, nil
}

func applyDefaults(config *Config) {
	config.Scripts.Directory = strings.TrimSpace(config.Scripts.Directory)

	config.Scripts.Extension = strings.TrimSpace(config.Scripts.Extension)
	if config.Scripts.Extension == "" {
		config.Scripts.Extension = DefaultExtension
	}

	if !viper.IsSet("watch.debounce") && config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}

	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = DefaultLogFormat
	}

	if config.Bundles == nil {
		config.Bundles = make(map[string]BundleConfig)
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateScriptsConfig(&config.Scripts); err != nil {
		return fmt.Errorf("scripts config: %w", err)
	}

	if config.Watch.Debounce < 0 {
		return fmt.Errorf("watch config: debounce %s cannot be negative", config.Watch.Debounce)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log config: unknown format %q", config.Log.Format)
	}

	for _, name := range config.BundleNames() {
		if err := validateBundleConfig(config.Bundles[name]); err != nil {
			return fmt.Errorf("bundle %q: %w", name, err)
		}
	}

	return nil
}

func validateScriptsConfig(config *ScriptsConfig) error {
	if config.Directory != "" {
		if err := validatePath(config.Directory); err != nil {
			return fmt.Errorf("invalid directory '%s': %w", config.Directory, err)
		}
	}

	if strings.HasPrefix(config.Extension, ".") {
		return fmt.Errorf("extension %q must not start with a dot", config.Extension)
	}
	if strings.ContainsAny(config.Extension, `/\`) {
		return fmt.Errorf("extension %q must not contain a path separator", config.Extension)
	}

	return nil
}

func validateBundleConfig(config BundleConfig) error {
	if len(config.Files) == 0 {
		return fmt.Errorf("no files configured")
	}

	for i, entry := range config.Files {
		if _, _, _, err := bundle.SplitPath(entry.Path); err != nil {
			return fmt.Errorf("file %d: %w", i, err)
		}
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(p string) error {
	cleanPath := filepath.Clean(p)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", p)
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// BundleNames returns the configured bundle names in sorted order.
func (c *Config) BundleNames() []string {
	names := make([]string, 0, len(c.Bundles))
	for name := range c.Bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bundle returns the named bundle configuration.
func (c *Config) Bundle(name string) (BundleConfig, error) {
	b, ok := c.Bundles[name]
	if !ok {
		return BundleConfig{}, errors.NewConfigError(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("bundle %q is not configured", name))
	}
	return b, nil
}

// Entries returns the bundle's files with the configured extension appended
// to paths that have none.
func (c *Config) Entries(b BundleConfig) []bundle.Entry {
	entries := make([]bundle.Entry, len(b.Files))
	for i, entry := range b.Files {
		p := strings.TrimSpace(entry.Path)
		if p != "" && path.Ext(filepath.ToSlash(p)) == "" {
			p += "." + c.Scripts.Extension
		}
		entries[i] = bundle.Entry{Path: p, Placeholders: entry.Placeholders.Clone()}
	}
	return entries
}

// LoggerConfig maps the log section onto logging.LoggerConfig.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.Log.Format
	return cfg
}
