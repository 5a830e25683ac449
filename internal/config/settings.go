package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Settings represents the root configuration structure for a cria render
// host: a default budget, logging, and the pool of providers a caller's
// prompt trees may name via Context.WithProvider.
type Settings struct {
	// DefaultBudget is used when a caller does not pass an explicit budget
	// to Render. Zero means "no default": the caller must supply one.
	DefaultBudget int `yaml:"default_budget" envconfig:"DEFAULT_BUDGET"`

	// Logger configuration
	Logger LoggerSettings `yaml:"logger" ignored:"true"`

	// Providers holds the configured provider pool.
	Providers ProviderRegistrySettings `yaml:"providers" ignored:"true"`
}

// LoggerSettings configures logging behavior
type LoggerSettings struct {
	// Type of logger to use
	Type string `yaml:"type" envconfig:"LOGGER_TYPE"`

	// Minimum logging level
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// Enable or disable progress display
	ProgressDisplay bool `yaml:"progress_display" envconfig:"LOGGER_PROGRESS_DISPLAY"`

	// Path to log file if Type is "file"
	Path string `yaml:"path" envconfig:"LOGGER_PATH"`

	// Number of events to accumulate before processing
	BatchSize int `yaml:"batch_size" envconfig:"LOGGER_BATCH_SIZE"`
}

// ProviderRegistrySettings names a default provider and configures every
// provider a render host can resolve by name.
type ProviderRegistrySettings struct {
	// Default is the provider name resolved when a render call does not
	// request one explicitly.
	Default string `yaml:"default" envconfig:"DEFAULT_PROVIDER"`

	// Configs maps a provider name to its configuration. It has no fixed
	// set of keys (provider names are caller-chosen), so envconfig can't
	// enumerate it the way it does a flat field; CRIA_PROVIDER_<name>_<field>
	// overrides are applied by applyProviderEnvOverrides instead.
	Configs map[string]ProviderSettings `yaml:"configs" ignored:"true"`
}

// ProviderSettings configures a single named provider: which protocol codec
// it renders through, which model it targets, and how to find its
// credentials.
type ProviderSettings struct {
	// Protocol selects the MessageCodec: "anthropic", "openai-chat", or
	// "openai-responses".
	Protocol string `yaml:"protocol" default:"anthropic"`

	// Model is the provider-native model identifier, e.g.
	// "claude-3-5-sonnet-20241022" or "gpt-4o".
	Model string `yaml:"model,omitempty"`

	// APIKeyEnv names the environment variable holding this provider's API
	// key. The key's value itself is never stored in Settings.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// BaseURL overrides the provider SDK's default endpoint, for proxies
	// and self-hosted gateways.
	BaseURL string `yaml:"base_url,omitempty"`
}

// LoadSettings loads configuration from a YAML file and environment variables
func LoadSettings(configPath string) (*Settings, error) {
	// Load a .env file if one is present in the working directory or an
	// ancestor, mirroring the teacher's fastagent.LoadConfig. Absence is
	// not an error -- env vars and the YAML file are both still honored.
	if envPath, err := findDotEnv(); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	// If no path specified, look in default locations
	if configPath == "" {
		configPath = "cria.config.yaml"
	}

	// Create settings with defaults
	settings := &Settings{
		DefaultBudget: 8192,
		Logger: LoggerSettings{
			Type:            "file",
			Level:           "warning",
			ProgressDisplay: true,
			Path:            "cria.jsonl",
			BatchSize:       100,
		},
		Providers: ProviderRegistrySettings{
			Configs: make(map[string]ProviderSettings),
		},
	}

	// Load from YAML if file exists
	if configPath != "" {
		// Resolve absolute path
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}

		// Read the config file if it exists
		if _, err := os.Stat(absPath); err == nil {
			data, err := os.ReadFile(absPath)
			if err != nil {
				return nil, err
			}

			if err := yaml.Unmarshal(data, settings); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables. envconfig only touches a field
	// when its env var is actually set (no `default` tags here -- the
	// defaults above and any YAML already loaded must survive an unset
	// var), so this only overrides what the environment names. The nested
	// structs are processed with the same prefix so their tags resolve to
	// CRIA_LOGGER_TYPE, CRIA_DEFAULT_PROVIDER, etc.
	for _, target := range []any{settings, &settings.Logger, &settings.Providers} {
		if err := envconfig.Process(envconfigPrefix, target); err != nil {
			return nil, fmt.Errorf("process environment overrides: %w", err)
		}
	}
	applyProviderEnvOverrides(settings)

	// Validate the settings
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return settings, nil
}

// findDotEnv looks for a .env file in the working directory and its
// ancestors, the same search fastagent.LoadConfig performs.
func findDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf(".env file not found in current or parent directories")
}

// providerEnvSetters maps each recognized CRIA_PROVIDER_<name>_<FIELD>
// suffix to the ProviderSettings field it overrides. Matching on a known
// suffix (rather than splitting the key on underscores) keeps provider
// names containing underscores addressable: CRIA_PROVIDER_MY_PROXY_MODEL
// reads as provider "my_proxy", field MODEL.
var providerEnvSetters = map[string]func(*ProviderSettings, string){
	"PROTOCOL":    func(p *ProviderSettings, v string) { p.Protocol = v },
	"MODEL":       func(p *ProviderSettings, v string) { p.Model = v },
	"API_KEY_ENV": func(p *ProviderSettings, v string) { p.APIKeyEnv = v },
	"BASE_URL":    func(p *ProviderSettings, v string) { p.BaseURL = v },
}

// applyProviderEnvOverrides overlays CRIA_PROVIDER_<name>_<FIELD>
// environment variables onto settings.Providers.Configs, creating config
// entries for provider names the YAML never mentioned. envconfig can't
// enumerate a map whose keys are caller-chosen, so this one dynamic piece
// of environment loading is done by hand.
func applyProviderEnvOverrides(settings *Settings) {
	prefix := EnvPrefix + "PROVIDER_"
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, found := strings.CutPrefix(key, prefix)
		if !found {
			continue
		}
		for suffix, set := range providerEnvSetters {
			name, matched := strings.CutSuffix(rest, "_"+suffix)
			if !matched || name == "" {
				continue
			}
			name = strings.ToLower(name)
			cfg, exists := settings.Providers.Configs[name]
			if !exists {
				cfg = ProviderSettings{Protocol: "anthropic"}
			}
			set(&cfg, value)
			settings.Providers.Configs[name] = cfg
			break
		}
	}
}
