package config

// EnvPrefix namespaces every environment-variable override LoadSettings
// recognizes, including the hand-rolled CRIA_PROVIDER_<name>_<field> scan.
const EnvPrefix = "CRIA_"

// envconfigPrefix is the same namespace without the trailing underscore
// envconfig.Process adds itself when building "PREFIX_FIELD" names.
const envconfigPrefix = "CRIA"

// Valid logger types
var validLoggerTypes = map[string]bool{
	"none":    true,
	"console": true,
	"file":    true,
}

// Valid log levels
var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

// Valid provider protocols: which MessageCodec a configured provider uses.
var validProtocols = map[string]bool{
	"anthropic":        true,
	"openai-chat":      true,
	"openai-responses": true,
}
