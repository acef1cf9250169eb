// Package config handles CLI configuration loading and management.
//
// Settings come from ~/.perle/config.yaml and may be overridden by
// environment variables with the PERLE_ prefix, e.g. PERLE_SEARCH_LIMIT=5
// or PERLE_SERVER_ADDR=:9000.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PERLE"

// Config represents the CLI configuration.
type Config struct {
	DefaultModel string                    `mapstructure:"default_model" yaml:"default_model"`
	Premium      bool                      `mapstructure:"premium" yaml:"premium"`
	LogLevel     string                    `mapstructure:"log_level" yaml:"log_level"`
	Search       SearchConfig              `mapstructure:"search" yaml:"search"`
	Images       ImagesConfig              `mapstructure:"images" yaml:"images"`
	Server       ServerConfig              `mapstructure:"server" yaml:"server"`
	Providers    map[string]ProviderConfig `mapstructure:"providers" yaml:"providers,omitempty"`
}

// SearchConfig controls live web augmentation.
type SearchConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Limit   int           `mapstructure:"limit" yaml:"limit"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	BaseURL string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
}

// ImagesConfig controls image augmentation.
type ImagesConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ServerConfig holds the HTTP listener settings used by perle serve.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// ProviderConfig holds configuration for a specific provider.
type ProviderConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// FreeAPIKey is the gemini key used for free-tier requests.
	FreeAPIKey string `mapstructure:"free_api_key" yaml:"free_api_key,omitempty"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url,omitempty"`

	// Headers are extra HTTP headers sent with every request to the vendor.
	Headers map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DefaultModel: "auto",
		LogLevel:     "info",
		Search: SearchConfig{
			Enabled: true,
			Limit:   15,
			Timeout: 10 * time.Second,
		},
		Images: ImagesConfig{Enabled: true, Timeout: 30 * time.Second},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		Providers: make(map[string]ProviderConfig),
	}
}

// DefaultConfigPath returns the default configuration file path for the current platform.
// - macOS/Linux: ~/.perle/config.yaml
// - Windows: %USERPROFILE%\.perle\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".perle", "config.yaml")
}

// setDefaults registers every key so that environment overrides apply even
// when the file does not mention them.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("default_model", d.DefaultModel)
	v.SetDefault("premium", d.Premium)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("search.enabled", d.Search.Enabled)
	v.SetDefault("search.limit", d.Search.Limit)
	v.SetDefault("search.timeout", d.Search.Timeout)
	v.SetDefault("search.base_url", d.Search.BaseURL)
	v.SetDefault("images.enabled", d.Images.Enabled)
	v.SetDefault("images.timeout", d.Images.Timeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns the defaults without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Ensure Providers map is initialized
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return cfg, nil
}

// GetProvider returns the provider config for the given ID.
// Returns nil if the provider is not configured.
func (c *Config) GetProvider(id string) *ProviderConfig {
	if c.Providers == nil {
		return nil
	}
	if pc, ok := c.Providers[id]; ok {
		return &pc
	}
	return nil
}

// Write saves c as yaml at path, creating the directory.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
