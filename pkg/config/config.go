// Package config loads pwmeter settings from a YAML file, a .env file and
// the environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/praetorian-inc/pwmeter/pkg/source"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvDictionary      = "PWMETER_DICTIONARY"
	EnvHTTPAddr        = "PWMETER_HTTP_ADDR"
	EnvColor           = "PWMETER_COLOR"
	EnvNoColor         = "NO_COLOR"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvS3Endpoint      = "PWMETER_S3_ENDPOINT"
	EnvS3RoleARN       = "PWMETER_S3_ROLE_ARN"
	EnvAzureConnection = "AZURE_STORAGE_CONNECTION_STRING"
)

const (
	DefaultHTTPAddr     = "127.0.0.1:8080"
	DefaultColor        = "auto"
	defaultConfigSubdir = "pwmeter"
)

// Config holds all pwmeter settings.
type Config struct {
	// Dictionaries are extra common-password sources (paths or URIs).
	Dictionaries []string `yaml:"dictionaries"`
	// NoBuiltin drops the embedded list.
	NoBuiltin bool `yaml:"no_builtin"`
	// KeyboardPatterns replaces the default keyboard substrings.
	KeyboardPatterns []string `yaml:"keyboard_patterns"`

	HTTPAddr string `yaml:"http_addr"`
	// Color is auto, always or never.
	Color string `yaml:"color"`

	Sources SourcesConfig `yaml:"sources"`
}

// SourcesConfig holds credentials and endpoints for remote dictionaries.
type SourcesConfig struct {
	GitHubToken           string `yaml:"github_token"`
	GitHubBaseURL         string `yaml:"github_base_url"`
	S3Endpoint            string `yaml:"s3_endpoint"`
	S3Region              string `yaml:"s3_region"`
	S3RoleARN             string `yaml:"s3_role_arn"`
	AzureConnectionString string `yaml:"azure_connection_string"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		HTTPAddr: DefaultHTTPAddr,
		Color:    DefaultColor,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/pwmeter/config.yaml (or the platform
// equivalent). It returns "" when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defaultConfigSubdir, "config.yaml")
}

// Load builds a Config from defaults, the YAML file at path, and the
// environment. A missing file is an error only when explicit is true.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		// A missing default file means defaults
		if err := cfg.LoadFile(path); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path into c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment overrides using lookup (os.LookupEnv in
// production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if val, ok := lookup(EnvDictionary); ok && val != "" {
		c.Dictionaries = splitList(val)
	}
	if val, ok := lookup(EnvHTTPAddr); ok && val != "" {
		c.HTTPAddr = val
	}
	if val, ok := lookup(EnvColor); ok && val != "" {
		c.Color = val
	}
	// https://no-color.org: any value, including empty, disables color
	if _, ok := lookup(EnvNoColor); ok {
		c.Color = "never"
	}
	if val, ok := lookup(EnvGitHubToken); ok && val != "" {
		c.Sources.GitHubToken = val
	}
	if val, ok := lookup(EnvS3Endpoint); ok && val != "" {
		c.Sources.S3Endpoint = val
	}
	if val, ok := lookup(EnvS3RoleARN); ok && val != "" {
		c.Sources.S3RoleARN = val
	}
	if val, ok := lookup(EnvAzureConnection); ok && val != "" {
		c.Sources.AzureConnectionString = val
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	for _, p := range c.KeyboardPatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("keyboard_patterns must not contain empty entries")
		}
	}
	return nil
}

// SourceOptions converts the sources section for source.Parse.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		GitHubToken:           c.Sources.GitHubToken,
		GitHubBaseURL:         c.Sources.GitHubBaseURL,
		S3Endpoint:            c.Sources.S3Endpoint,
		S3Region:              c.Sources.S3Region,
		S3RoleARN:             c.Sources.S3RoleARN,
		AzureConnectionString: c.Sources.AzureConnectionString,
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
