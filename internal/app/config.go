package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds everything an App needs. It can be read from a TOML or YAML
// file with LoadConfigFile and is validated by NewConfig.
type Config struct {
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`

	ManifestPaths    []string `toml:"manifests" yaml:"manifests"`
	StrictDuplicates bool     `toml:"strict_duplicates" yaml:"strict_duplicates"`
	SnapshotPath     string   `toml:"snapshot" yaml:"snapshot"`
	ScopePath        string   `toml:"scope" yaml:"scope"`

	HealthcheckPort int          `toml:"healthcheck_port" yaml:"healthcheck_port"`
	Bridge          BridgeConfig `toml:"bridge" yaml:"bridge"`
}

// BridgeConfig locates the editor the bridge connects to.
type BridgeConfig struct {
	URL                string        `toml:"url" yaml:"url"`
	Namespace          string        `toml:"namespace" yaml:"namespace"`
	InsecureSkipVerify bool          `toml:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	ConnectTimeout     time.Duration `toml:"connect_timeout" yaml:"connect_timeout"`
}

// NewConfig fills in defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.Bridge.ConnectTimeout < 0 {
		return nil, errors.New("bridge connect timeout must not be negative")
	}
	return &cfg, nil
}

// LoadConfigFile reads a configuration file. The format follows the file
// extension: .toml, or .yaml/.yml.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return cfg, fmt.Errorf("TOML parse error in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("YAML parse error in %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}
