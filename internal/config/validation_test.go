package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name        string
		settings    Settings
		wantErr     bool
		errContains string
	}{
		{
			name: "valid settings",
			settings: Settings{
				Logger: LoggerSettings{
					Type:            "file",
					Level:           "info",
					ProgressDisplay: true,
					Path:            "test.log",
					BatchSize:       100,
				},
				Providers: ProviderRegistrySettings{
					Default: "claude",
					Configs: map[string]ProviderSettings{
						"claude": {
							Protocol: "anthropic",
						},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "invalid logger type",
			settings: Settings{
				Logger: LoggerSettings{
					Type:  "invalid",
					Level: "info",
				},
			},
			wantErr:     true,
			errContains: "invalid logger type",
		},
		{
			name: "invalid log level",
			settings: Settings{
				Logger: LoggerSettings{
					Type:  "file",
					Level: "invalid",
				},
			},
			wantErr:     true,
			errContains: "invalid log level",
		},
		{
			name: "missing file path",
			settings: Settings{
				Logger: LoggerSettings{
					Type:  "file",
					Level: "info",
					Path:  "",
				},
			},
			wantErr:     true,
			errContains: "path is required for file logger",
		},
		{
			name: "invalid batch size",
			settings: Settings{
				Logger: LoggerSettings{
					Type:      "file",
					Level:     "info",
					Path:      "test.log",
					BatchSize: 0,
				},
			},
			wantErr:     true,
			errContains: "batch size must be greater than 0",
		},
		{
			name: "negative default budget",
			settings: Settings{
				DefaultBudget: -1,
				Logger: LoggerSettings{
					Type:      "file",
					Level:     "info",
					Path:      "test.log",
					BatchSize: 1,
				},
			},
			wantErr:     true,
			errContains: "default_budget must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderSettings_Validate(t *testing.T) {
	tests := []struct {
		name        string
		provider    ProviderSettings
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid anthropic provider",
			provider: ProviderSettings{Protocol: "anthropic"},
			wantErr:  false,
		},
		{
			name:     "valid openai chat provider",
			provider: ProviderSettings{Protocol: "openai-chat"},
			wantErr:  false,
		},
		{
			name:     "valid openai responses provider",
			provider: ProviderSettings{Protocol: "openai-responses"},
			wantErr:  false,
		},
		{
			name:        "invalid protocol",
			provider:    ProviderSettings{Protocol: "invalid"},
			wantErr:     true,
			errContains: "invalid protocol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.provider.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProviderRegistrySettings_Validate(t *testing.T) {
	t.Run("default without matching config", func(t *testing.T) {
		registry := ProviderRegistrySettings{
			Default: "missing",
			Configs: map[string]ProviderSettings{},
		}
		err := registry.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "has no matching config entry")
	})
}
