// Package codec implements the two canonical protocol codecs spec'd for
// cria: Chat-Completions and Responses. Each converts a cria.PromptLayout
// into a protocol-native input shape and back, grounded on the teacher's
// internal/llm/serialization package's ToMessage/FromMessage conversion
// discipline (switch-on-role, accumulate parts), generalized from a flat
// message-slice conversion into the layout's richer FinalMessage variants.
//
// Neither codec talks to a concrete provider SDK: the structural reshape
// from a protocol input into an SDK-native request is done by each
// concrete provider in internal/provider, which embeds ProtocolProvider
// around one of these codecs and adds a BuildRequest method. A codec here
// only needs to satisfy cria.MessageCodec.
package codec

import "fmt"

// ContentBlockType tags one entry of a multi-part message content array.
type ContentBlockType string

const (
	BlockText      ContentBlockType = "text"
	BlockReasoning ContentBlockType = "reasoning"
	BlockToolCall  ContentBlockType = "tool-call"
)

// ContentBlock is one part of an assistant message's content when it
// cannot be collapsed to a plain string (i.e. it carries reasoning or
// tool calls alongside text).
type ContentBlock struct {
	Type       ContentBlockType `json:"type"`
	Text       string           `json:"text,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	ToolName   string           `json:"tool_name,omitempty"`
	Input      any              `json:"input,omitempty"`
}

// errf is a small helper so codec parse errors stay uniform.
func errf(format string, args ...any) error {
	return fmt.Errorf("cria/codec: "+format, args...)
}
