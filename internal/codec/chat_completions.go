package codec

import (
	"encoding/json"

	"github.com/adimarco/cria"
)

// ChatItem is one Chat-Completions-shaped protocol item.
type ChatItem struct {
	Role Role `json:"role"`
	// Content is a string for plain-text items, or []ContentBlock when an
	// assistant item carries reasoning or tool calls alongside text.
	Content any `json:"content"`
	// ToolCallID correlates a tool-role item back to the assistant
	// ToolCallParam that requested it.
	ToolCallID string `json:"tool_call_id,omitempty"`
	// ToolCalls holds the legacy top-level tool_calls array some
	// Chat-Completions-compatible APIs still expect alongside the
	// content array.
	ToolCalls []ToolCallParam `json:"tool_calls,omitempty"`
}

// Role aliases cria.Role so callers of this package don't need to import
// cria just to construct a ChatItem by hand in tests.
type Role = cria.Role

// ToolCallParam is the legacy `{id, type:"function", function:{name,
// arguments}}` shape.
type ToolCallParam struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// ChatCompletionsInput is the protocol input type the Chat-Completions
// codec renders into and parses from.
type ChatCompletionsInput struct {
	Messages []ChatItem `json:"messages"`
}

// ChatCompletionsCodec implements cria.MessageCodec for the
// Chat-Completions wire shape: one protocol item per layout message,
// assistant items collapsing to a plain string when they carry only text.
type ChatCompletionsCodec struct{}

// Render implements cria.MessageCodec.
func (ChatCompletionsCodec) Render(layout cria.PromptLayout) (any, error) {
	items := make([]ChatItem, 0, len(layout))
	for _, m := range layout {
		item, err := renderChatItem(m)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ChatCompletionsInput{Messages: items}, nil
}

func renderChatItem(m cria.FinalMessage) (ChatItem, error) {
	switch v := m.(type) {
	case cria.SystemLike:
		return ChatItem{Role: v.Role, Content: v.Text}, nil

	case cria.ToolMessage:
		output, err := stringifyOutput(v.Output)
		if err != nil {
			return ChatItem{}, err
		}
		return ChatItem{Role: cria.RoleTool, Content: output, ToolCallID: v.ToolCallID}, nil

	case cria.AssistantMessage:
		return renderAssistantChatItem(v)

	default:
		return ChatItem{}, errf("unknown final message type %T", m)
	}
}

func renderAssistantChatItem(v cria.AssistantMessage) (ChatItem, error) {
	// Pure text, no reasoning, no tool calls: content collapses to a
	// plain string, per spec's "content is either a string (pure text) or
	// an array of typed parts".
	if v.Reasoning == "" && len(v.ToolCalls) == 0 {
		return ChatItem{Role: cria.RoleAssistant, Content: v.Text}, nil
	}

	var blocks []ContentBlock
	if v.Text != "" {
		blocks = append(blocks, ContentBlock{Type: BlockText, Text: v.Text})
	}
	if v.Reasoning != "" {
		blocks = append(blocks, ContentBlock{Type: BlockReasoning, Text: v.Reasoning})
	}

	var toolCalls []ToolCallParam
	for _, tc := range v.ToolCalls {
		blocks = append(blocks, ContentBlock{Type: BlockToolCall, ToolCallID: tc.ToolCallID, ToolName: tc.ToolName, Input: tc.Input})
		args, err := stringifyOutput(tc.Input)
		if err != nil {
			return ChatItem{}, err
		}
		tcp := ToolCallParam{ID: tc.ToolCallID, Type: "function"}
		tcp.Function.Name = tc.ToolName
		tcp.Function.Arguments = args
		toolCalls = append(toolCalls, tcp)
	}

	return ChatItem{Role: cria.RoleAssistant, Content: blocks, ToolCalls: toolCalls}, nil
}

// Parse implements cria.MessageCodec.
func (ChatCompletionsCodec) Parse(input any) (cria.PromptLayout, error) {
	in, ok := asChatCompletionsInput(input)
	if !ok {
		return nil, errf("Parse expects *ChatCompletionsInput, got %T", input)
	}

	layout := make(cria.PromptLayout, 0, len(in.Messages))
	for _, item := range in.Messages {
		fm, err := parseChatItem(item)
		if err != nil {
			return nil, err
		}
		layout = append(layout, fm)
	}
	return layout, nil
}

func asChatCompletionsInput(input any) (*ChatCompletionsInput, bool) {
	switch v := input.(type) {
	case *ChatCompletionsInput:
		return v, true
	case ChatCompletionsInput:
		return &v, true
	default:
		return nil, false
	}
}

func parseChatItem(item ChatItem) (cria.FinalMessage, error) {
	switch item.Role {
	case cria.RoleSystem, cria.RoleDeveloper, cria.RoleUser:
		text, ok := item.Content.(string)
		if !ok {
			return nil, errf("role %s must carry string content, got %T", item.Role, item.Content)
		}
		return cria.SystemLike{Role: item.Role, Text: text}, nil

	case cria.RoleTool:
		text, ok := item.Content.(string)
		if !ok {
			return nil, errf("tool item must carry string content, got %T", item.Content)
		}
		return cria.ToolMessage{ToolCallID: item.ToolCallID, Output: text}, nil

	case cria.RoleAssistant:
		return parseAssistantChatItem(item)

	default:
		return nil, errf("unknown role %q", item.Role)
	}
}

func parseAssistantChatItem(item ChatItem) (cria.FinalMessage, error) {
	if text, ok := item.Content.(string); ok {
		return cria.AssistantMessage{Text: text}, nil
	}

	blocks, ok := item.Content.([]ContentBlock)
	if !ok {
		return nil, errf("assistant item must carry string or []ContentBlock content, got %T", item.Content)
	}

	var (
		text      string
		reasoning string
		toolCalls []cria.ToolCallPart
	)
	for _, b := range blocks {
		switch b.Type {
		case BlockText:
			text = b.Text
		case BlockReasoning:
			reasoning = b.Text
		case BlockToolCall:
			toolCalls = append(toolCalls, cria.ToolCallPart{ToolCallID: b.ToolCallID, ToolName: b.ToolName, Input: b.Input})
		default:
			return nil, errf("unknown content block type %q", b.Type)
		}
	}
	return cria.AssistantMessage{Text: text, Reasoning: reasoning, ToolCalls: toolCalls}, nil
}

func stringifyOutput(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errf("failed to marshal value: %w", err)
	}
	return string(b), nil
}
