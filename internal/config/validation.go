package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks if the settings are valid
func (s *Settings) Validate() error {
	if s.DefaultBudget < 0 {
		return fmt.Errorf("default_budget must not be negative")
	}

	// Validate logger settings
	if err := s.Logger.Validate(); err != nil {
		return fmt.Errorf("invalid logger settings: %w", err)
	}

	// Validate provider settings
	if err := s.Providers.Validate(); err != nil {
		return fmt.Errorf("invalid provider settings: %w", err)
	}

	return nil
}

// Validate checks if the logger settings are valid
func (s *LoggerSettings) Validate() error {
	// Check logger type
	if !validLoggerTypes[s.Type] {
		return fmt.Errorf("invalid logger type %q, must be one of: %s",
			s.Type, strings.Join(mapKeys(validLoggerTypes), ", "))
	}

	// Check log level
	if !validLogLevels[s.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			s.Level, strings.Join(mapKeys(validLogLevels), ", "))
	}

	// Check file path if type is file
	if s.Type == "file" && s.Path == "" {
		return fmt.Errorf("path is required for file logger")
	}

	// Check batch size
	if s.BatchSize < 1 {
		return fmt.Errorf("batch size must be greater than 0")
	}

	return nil
}

// Validate checks if the provider registry settings are valid.
func (s *ProviderRegistrySettings) Validate() error {
	if s.Default != "" {
		if _, ok := s.Configs[s.Default]; !ok {
			return fmt.Errorf("default provider %q has no matching config entry", s.Default)
		}
	}
	for name, provider := range s.Configs {
		if err := provider.Validate(); err != nil {
			return fmt.Errorf("invalid provider %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks if a single provider's settings are valid.
func (s *ProviderSettings) Validate() error {
	if !validProtocols[s.Protocol] {
		return fmt.Errorf("invalid protocol %q, must be one of: %s",
			s.Protocol, strings.Join(mapKeys(validProtocols), ", "))
	}
	return nil
}

// mapKeys returns a sorted slice of map keys
func mapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
