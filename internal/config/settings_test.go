package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cria.config.yaml")

	configData := `
default_budget: 4096

logger:
  type: console
  level: info
  progress_display: true
  path: test.jsonl
  batch_size: 50

providers:
  default: claude
  configs:
    claude:
      protocol: anthropic
      model: claude-3-5-sonnet-20241022
      api_key_env: ANTHROPIC_API_KEY
`

	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	// Test loading the config
	settings, err := LoadSettings(configPath)
	require.NoError(t, err)

	// Verify the loaded settings
	assert.Equal(t, 4096, settings.DefaultBudget)

	// Verify logger settings
	assert.Equal(t, "console", settings.Logger.Type)
	assert.Equal(t, "info", settings.Logger.Level)
	assert.True(t, settings.Logger.ProgressDisplay)
	assert.Equal(t, "test.jsonl", settings.Logger.Path)
	assert.Equal(t, 50, settings.Logger.BatchSize)

	// Verify provider settings
	assert.Equal(t, "claude", settings.Providers.Default)
	provider, ok := settings.Providers.Configs["claude"]
	require.True(t, ok)
	assert.Equal(t, "anthropic", provider.Protocol)
	assert.Equal(t, "claude-3-5-sonnet-20241022", provider.Model)
	assert.Equal(t, "ANTHROPIC_API_KEY", provider.APIKeyEnv)
}

func TestLoadSettings_FileNotFound(t *testing.T) {
	// Test with nonexistent file - should return default settings
	settings, err := LoadSettings("nonexistent.yaml")
	assert.NoError(t, err)
	assert.NotNil(t, settings)

	// Verify default values
	assert.Equal(t, 8192, settings.DefaultBudget)
	assert.Equal(t, "file", settings.Logger.Type)
	assert.Equal(t, "warning", settings.Logger.Level)
	assert.True(t, settings.Logger.ProgressDisplay)
	assert.Equal(t, "cria.jsonl", settings.Logger.Path)
	assert.Equal(t, 100, settings.Logger.BatchSize)
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	// Create a temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
default_budget: 4096
logger:
  invalid yaml content
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadSettings(configPath)
	assert.Error(t, err)
}

func TestLoadSettings_EnvironmentOverrides(t *testing.T) {
	// Set up environment variables
	envVars := map[string]string{
		"CRIA_DEFAULT_BUDGET":            "2048",
		"CRIA_LOGGER_TYPE":               "console",
		"CRIA_LOGGER_LEVEL":              "debug",
		"CRIA_LOGGER_PROGRESS_DISPLAY":   "false",
		"CRIA_LOGGER_PATH":               "env.jsonl",
		"CRIA_LOGGER_BATCH_SIZE":         "200",
		"CRIA_DEFAULT_PROVIDER":          "test",
		"CRIA_PROVIDER_TEST_PROTOCOL":    "openai-chat",
		"CRIA_PROVIDER_TEST_MODEL":       "gpt-4o",
		"CRIA_PROVIDER_TEST_API_KEY_ENV": "OPENAI_API_KEY",
	}

	// Set environment variables
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Load settings without a config file
	settings, err := LoadSettings("")
	require.NoError(t, err)

	// Verify environment overrides
	assert.Equal(t, 2048, settings.DefaultBudget)
	assert.Equal(t, "console", settings.Logger.Type)
	assert.Equal(t, "debug", settings.Logger.Level)
	assert.False(t, settings.Logger.ProgressDisplay)
	assert.Equal(t, "env.jsonl", settings.Logger.Path)
	assert.Equal(t, 200, settings.Logger.BatchSize)
	assert.Equal(t, "test", settings.Providers.Default)

	// Verify provider settings from environment
	provider, ok := settings.Providers.Configs["test"]
	require.True(t, ok)
	assert.Equal(t, "openai-chat", provider.Protocol)
	assert.Equal(t, "gpt-4o", provider.Model)
	assert.Equal(t, "OPENAI_API_KEY", provider.APIKeyEnv)
}

func TestLoadSettings_EnvironmentOverridesWithFile(t *testing.T) {
	// Create a config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cria.config.yaml")

	configData := `
default_budget: 1024
logger:
  type: file
  level: info
  progress_display: true
  path: file.jsonl
  batch_size: 50
`

	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	// Set environment variables that should override the file
	t.Setenv("CRIA_DEFAULT_BUDGET", "9999")
	t.Setenv("CRIA_LOGGER_TYPE", "console")
	t.Setenv("CRIA_LOGGER_BATCH_SIZE", "200")

	// Load settings
	settings, err := LoadSettings(configPath)
	require.NoError(t, err)

	// Verify that environment variables override file settings
	assert.Equal(t, 9999, settings.DefaultBudget)
	assert.Equal(t, "console", settings.Logger.Type)
	assert.Equal(t, 200, settings.Logger.BatchSize)

	// Verify that unset environment variables retain file values
	assert.Equal(t, "info", settings.Logger.Level)
	assert.True(t, settings.Logger.ProgressDisplay)
	assert.Equal(t, "file.jsonl", settings.Logger.Path)
}
