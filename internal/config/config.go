package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/designpreview/internal/foundation"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "designpreview.yaml"

// Config represents the application configuration.
type Config struct {
	Root        string        `yaml:"root"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description,omitempty"`
	Output      string        `yaml:"output"` // manifest file path, "-" for stdout
	Server      ServerConfig  `yaml:"server"`
	Publish     PublishConfig `yaml:"publish,omitempty"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port"`
	Metrics bool   `yaml:"metrics"`
}

// PublishConfig configures periodic manifest publishing while serving.
type PublishConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"` // 0 disables
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Root:        ".",
		Title:       "Design Preview",
		Description: "HTML design documents",
		Output:      "manifest.json",
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    4173,
			Metrics: true,
		},
	}
}

// Load reads configPath on top of the defaults. Environment variables from
// .env files are loaded first and ${VAR} references in the file are expanded.
// A missing file is not an error unless required is set.
func Load(configPath string, required bool) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validators = foundation.NewValidatorChain(
	foundation.Field(func(c *Config) string { return c.Root }, foundation.NotEmpty("root")),
	foundation.Field(func(c *Config) string { return c.Output }, foundation.NotEmpty("output")),
	foundation.Field(func(c *Config) int { return c.Server.Port }, foundation.InRange("server.port", 0, 65535)),
	foundation.Field(func(c *Config) time.Duration { return c.Publish.Interval },
		foundation.NonNegative[time.Duration]("publish.interval")),
)

// Validate checks required fields and ranges.
func (c *Config) Validate() error {
	return validators.Validate(c).ToError(ferrors.CategoryConfig)
}

// Addr returns the host:port the preview server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Init writes a default configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
