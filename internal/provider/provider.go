// Package provider supplies cria.ModelProvider implementations for the two
// concrete SDKs wired into this module (Anthropic, OpenAI), grounded on the
// teacher's internal/llm/anthropic.go: a provider pairs a token counter with
// a codec, and additionally knows how to reshape a protocol-native input
// into that SDK's concrete request type via BuildRequest.
//
// ProtocolProvider supplies the cria.ModelProvider half (counting plus
// Codec()); each concrete *Provider type below embeds it and adds
// BuildRequest for callers that want the real SDK request value rather than
// just the protocol-neutral shape codec.Render already produces.
package provider

import (
	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/token"
)

// ProtocolProvider implements cria.ModelProvider by pairing a token.Counter
// with a cria.MessageCodec. It carries no SDK dependency itself; concrete
// providers embed it and layer SDK-specific request construction on top.
type ProtocolProvider struct {
	Counter token.Counter
	Codec_  cria.MessageCodec
}

// CountMessageTokens implements cria.ModelProvider.
func (p ProtocolProvider) CountMessageTokens(m cria.FinalMessage) int {
	return p.Counter.CountMessageTokens(m)
}

// CountBoundaryTokens implements cria.ModelProvider.
func (p ProtocolProvider) CountBoundaryTokens(prev, next cria.FinalMessage) int {
	return p.Counter.CountBoundaryTokens(prev, next)
}

// Codec implements cria.ModelProvider.
func (p ProtocolProvider) Codec() cria.MessageCodec {
	return p.Codec_
}

// RequestOptions configures the SDK request a concrete provider builds from
// a rendered layout, mirroring the fields the teacher's RequestParams
// exposed (model override, sampling, history toggle collapse into these
// since cria has no separate history concept -- the layout already is the
// full history).
type RequestOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      string

	// ToolSchemas, when non-nil, validates every assistant tool call's
	// input against the named tool's JSON schema before BuildRequest
	// includes it in the outgoing request. A tool absent from the map is
	// passed through unvalidated.
	ToolSchemas ToolSchemas
}
