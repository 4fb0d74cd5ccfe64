package engine

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/germanamz/guessr/pkg/guess"
	"gopkg.in/yaml.v3"
)

// Config is the top-level engine configuration.
type Config struct {
	DefaultMode string    `yaml:"default_mode" env:"GUESSR_DEFAULT_MODE"`
	DefaultTier string    `yaml:"default_tier" env:"GUESSR_DEFAULT_TIER"`
	Seed        uint64    `yaml:"seed"         env:"GUESSR_SEED"` // 0 = nondeterministic secrets.
	Log         LogConfig `yaml:"log"`
	MCP         MCPConfig `yaml:"mcp"`
}

// LogConfig controls the engine's structured log output.
type LogConfig struct {
	Level string `yaml:"level" env:"GUESSR_LOG_LEVEL"` // debug, info, warn, error.
	File  string `yaml:"file"  env:"GUESSR_LOG_FILE"`  // Empty discards logs.
}

// MCPConfig names the server advertised by `guessr mcp`.
type MCPConfig struct {
	Name    string `yaml:"name"    env:"GUESSR_MCP_NAME"`
	Version string `yaml:"version" env:"GUESSR_MCP_VERSION"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		MCP: MCPConfig{Name: "guessr", Version: "0.1.0"},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and applies GUESSR_*
// environment overrides. References such as ${VAR} in the YAML are expanded
// before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	cfg := DefaultConfig()

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides cfg fields from GUESSR_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("engine: parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration names known modes, tiers and levels.
func (c Config) Validate() error {
	if c.DefaultMode != "" {
		if _, err := guess.ParseMode(c.DefaultMode); err != nil {
			return fmt.Errorf("engine: config: default_mode: %w", err)
		}
	}

	if c.DefaultTier != "" {
		if _, err := guess.ParseTier(c.DefaultTier); err != nil {
			return fmt.Errorf("engine: config: default_tier: %w", err)
		}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("engine: config: log: %w", err)
	}

	return nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("engine: marshal config: %w", err)
	}
	return data, nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return lvl, nil
}
