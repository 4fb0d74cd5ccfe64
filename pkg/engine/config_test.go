package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/germanamz/guessr/pkg/guess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default_mode: computer
default_tier: medium
seed: 7

log:
  level: debug
  file: guessr.log

mcp:
  name: guess-server
  version: 1.2.3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "computer", cfg.DefaultMode)
	assert.Equal(t, "medium", cfg.DefaultTier)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "guessr.log", cfg.Log.File)
	assert.Equal(t, "guess-server", cfg.MCP.Name)
	assert.Equal(t, "1.2.3", cfg.MCP.Version)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "default_tier: hard\n"))
	require.NoError(t, err)

	assert.Equal(t, "hard", cfg.DefaultTier)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "guessr", cfg.MCP.Name)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/no/such/file.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "default_mode: [unclosed"))
	assert.ErrorContains(t, err, "engine: parse config")
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("GUESSR_TEST_LOG_FILE", "/tmp/from-env.log")

	cfg, err := LoadConfig(writeConfig(t, "log:\n  file: ${GUESSR_TEST_LOG_FILE}\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.log", cfg.Log.File)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("GUESSR_DEFAULT_TIER", "easy")
	t.Setenv("GUESSR_SEED", "99")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "easy", cfg.DefaultTier)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "computer", cfg.DefaultMode)
}

func TestApplyEnv_InvalidSeed(t *testing.T) {
	t.Setenv("GUESSR_SEED", "lots")

	cfg := DefaultConfig()
	assert.ErrorContains(t, ApplyEnv(&cfg), "engine: parse env")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{name: "defaults"},
		{name: "bad mode", mutate: func(c *Config) { c.DefaultMode = "team" }, target: guess.ErrUnknownMode},
		{name: "bad tier", mutate: func(c *Config) { c.DefaultTier = "extreme" }, target: guess.ErrUnknownTier},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate == nil {
				assert.NoError(t, cfg.Validate())
				return
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultMode = "user"
	cfg.DefaultTier = "hard"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_tier: hard")

	loaded, err := LoadConfig(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
