package codec

import (
	"fmt"

	"github.com/adimarco/cria"
)

// ResponseItemType tags a Responses-shaped protocol item.
type ResponseItemType string

const (
	ItemMessage            ResponseItemType = "message"
	ItemReasoning          ResponseItemType = "reasoning"
	ItemFunctionCall       ResponseItemType = "function_call"
	ItemFunctionCallOutput ResponseItemType = "function_call_output"
)

// SummaryTextType is the only summary entry type the Responses wire
// format defines for reasoning items.
const SummaryTextType = "summary_text"

// SummaryText is one entry of a reasoning item's summary array.
type SummaryText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ResponseMessageContent is one part of a message item's content array.
type ResponseMessageContent struct {
	// Type is "input_text", "output_text", or "refusal".
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResponseItem is one Responses-shaped protocol item. Only the fields
// relevant to Type are populated.
type ResponseItem struct {
	Type ResponseItemType `json:"type"`

	// message
	Role    cria.Role `json:"role,omitempty"`
	Content any       `json:"content,omitempty"`

	// reasoning
	ID      string        `json:"id,omitempty"`
	Summary []SummaryText `json:"summary,omitempty"`

	// function_call / function_call_output
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Output    string `json:"output,omitempty"`
}

// ResponsesInput is the protocol input type the Responses codec renders
// into and parses from.
type ResponsesInput struct {
	Items []ResponseItem `json:"items"`
}

// ResponsesCodec implements cria.MessageCodec for the Responses API wire
// shape: an assistant layout message may expand into multiple protocol
// items (one message item, one reasoning item, one function_call item
// per tool call); a tool layout message becomes one function_call_output
// item.
type ResponsesCodec struct{}

// Render implements cria.MessageCodec.
func (ResponsesCodec) Render(layout cria.PromptLayout) (any, error) {
	var items []ResponseItem
	reasoningSeq := 0

	for _, m := range layout {
		switch v := m.(type) {
		case cria.SystemLike:
			contentType := "input_text"
			if v.Role == cria.RoleAssistant {
				contentType = "output_text"
			}
			items = append(items, ResponseItem{
				Type: ItemMessage,
				Role: v.Role,
				Content: []ResponseMessageContent{
					{Type: contentType, Text: v.Text},
				},
			})

		case cria.ToolMessage:
			items = append(items, ResponseItem{
				Type:   ItemFunctionCallOutput,
				CallID: v.ToolCallID,
				Output: stringifyToolOutput(v.Output),
			})

		case cria.AssistantMessage:
			if v.Text != "" {
				items = append(items, ResponseItem{
					Type: ItemMessage,
					Role: cria.RoleAssistant,
					Content: []ResponseMessageContent{
						{Type: "output_text", Text: v.Text},
					},
				})
			}
			if v.Reasoning != "" {
				id := v.ReasoningID
				if id == "" {
					reasoningSeq++
					id = fmt.Sprintf("reasoning_%d", reasoningSeq)
				}
				items = append(items, ResponseItem{
					Type:    ItemReasoning,
					ID:      id,
					Summary: []SummaryText{{Type: SummaryTextType, Text: v.Reasoning}},
				})
			}
			for _, tc := range v.ToolCalls {
				args, err := stringifyOutput(tc.Input)
				if err != nil {
					return nil, err
				}
				items = append(items, ResponseItem{
					Type:      ItemFunctionCall,
					CallID:    tc.ToolCallID,
					Name:      tc.ToolName,
					Arguments: args,
				})
			}

		default:
			return nil, errf("unknown final message type %T", m)
		}
	}

	return &ResponsesInput{Items: items}, nil
}

// Parse implements cria.MessageCodec. Consecutive reasoning/function_call
// items that follow an assistant message item are folded back into a
// single assistant FinalMessage.
func (ResponsesCodec) Parse(input any) (cria.PromptLayout, error) {
	in, ok := asResponsesInput(input)
	if !ok {
		return nil, errf("Parse expects *ResponsesInput, got %T", input)
	}

	var layout cria.PromptLayout
	var pending *cria.AssistantMessage

	flush := func() {
		if pending != nil {
			layout = append(layout, *pending)
			pending = nil
		}
	}

	for _, item := range in.Items {
		switch item.Type {
		case ItemMessage:
			text, err := firstText(item.Content)
			if err != nil {
				return nil, err
			}
			if item.Role == cria.RoleAssistant {
				flush()
				pending = &cria.AssistantMessage{Text: text}
				continue
			}
			flush()
			layout = append(layout, cria.SystemLike{Role: item.Role, Text: text})

		case ItemReasoning:
			if pending == nil {
				return nil, errf("reasoning item %q with no preceding assistant message", item.ID)
			}
			text := ""
			if len(item.Summary) > 0 {
				text = item.Summary[0].Text
			}
			pending.Reasoning = text
			pending.ReasoningID = item.ID

		case ItemFunctionCall:
			if pending == nil {
				pending = &cria.AssistantMessage{}
			}
			pending.ToolCalls = append(pending.ToolCalls, cria.ToolCallPart{
				ToolCallID: item.CallID,
				ToolName:   item.Name,
				Input:      item.Arguments,
			})

		case ItemFunctionCallOutput:
			flush()
			layout = append(layout, cria.ToolMessage{ToolCallID: item.CallID, Output: item.Output})

		default:
			return nil, errf("unknown response item type %q", item.Type)
		}
	}
	flush()

	return layout, nil
}

func asResponsesInput(input any) (*ResponsesInput, bool) {
	switch v := input.(type) {
	case *ResponsesInput:
		return v, true
	case ResponsesInput:
		return &v, true
	default:
		return nil, false
	}
}

func firstText(content any) (string, error) {
	switch v := content.(type) {
	case string:
		return v, nil
	case []ResponseMessageContent:
		if len(v) == 0 {
			return "", nil
		}
		return v[0].Text, nil
	default:
		return "", errf("unsupported message content type %T", content)
	}
}

func stringifyToolOutput(v any) string {
	s, err := stringifyOutput(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}
