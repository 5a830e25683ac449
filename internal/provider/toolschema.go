package provider

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ToolSchemas maps a tool name to the JSON schema its ToolCallPart.Input
// must satisfy before a provider forwards it in a fresh request. Grounded
// directly on the teacher's tools.ValidateArgs: a missing or empty schema
// skips validation for that tool, same as there.
type ToolSchemas map[string]string

// validate runs input (already a Go value, or a raw JSON-argument string)
// against the schema registered for toolName, using loader to wrap input
// as a gojsonschema document.
func (s ToolSchemas) validate(toolName string, loader gojsonschema.JSONLoader) error {
	schema, ok := s[toolName]
	if !ok || schema == "" {
		return nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), loader)
	if err != nil {
		return fmt.Errorf("tool %q: schema validation error: %w", toolName, err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("tool %q: invalid input: %v", toolName, msgs)
	}
	return nil
}

// ValidateInput validates a ToolCallPart.Input value (still a Go value,
// not yet serialized) against the tool's registered schema.
func (s ToolSchemas) ValidateInput(toolName string, input any) error {
	return s.validate(toolName, gojsonschema.NewGoLoader(input))
}

// ValidateArguments validates a tool call's arguments already rendered to
// a JSON string (the shape Chat-Completions and Responses both use on the
// wire) against the tool's registered schema.
func (s ToolSchemas) ValidateArguments(toolName, argumentsJSON string) error {
	if argumentsJSON == "" {
		argumentsJSON = "{}"
	}
	return s.validate(toolName, gojsonschema.NewStringLoader(argumentsJSON))
}
