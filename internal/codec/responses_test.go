package codec

import (
	"testing"

	"github.com/adimarco/cria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponsesCodec_AssistantExpandsToMultipleItems(t *testing.T) {
	layout := cria.PromptLayout{
		cria.AssistantMessage{
			Text:      "Let me think.",
			Reasoning: "because...",
			ToolCalls: []cria.ToolCallPart{
				{ToolCallID: "c1", ToolName: "g", Input: map[string]any{"x": 1}},
			},
		},
		cria.ToolMessage{ToolCallID: "c1", Output: map[string]any{"y": 2}},
	}

	out, err := ResponsesCodec{}.Render(layout)
	require.NoError(t, err)
	in := out.(*ResponsesInput)

	require.Len(t, in.Items, 4)
	assert.Equal(t, ItemMessage, in.Items[0].Type)
	assert.Equal(t, ItemReasoning, in.Items[1].Type)
	assert.Equal(t, ItemFunctionCall, in.Items[2].Type)
	assert.Equal(t, ItemFunctionCallOutput, in.Items[3].Type)
	assert.Equal(t, "c1", in.Items[2].CallID)
	assert.Equal(t, "c1", in.Items[3].CallID)
	assert.Equal(t, "reasoning_1", in.Items[1].ID)
}

func TestResponsesCodec_RoundTrip(t *testing.T) {
	layout := cria.PromptLayout{
		cria.SystemLike{Role: cria.RoleSystem, Text: "be terse"},
		cria.AssistantMessage{
			Text:      "Let me think.",
			Reasoning: "because...",
			ToolCalls: []cria.ToolCallPart{
				{ToolCallID: "c1", ToolName: "g", Input: "{\"x\":1}"},
			},
		},
		cria.ToolMessage{ToolCallID: "c1", Output: "{\"y\":2}"},
	}

	codec := ResponsesCodec{}
	rendered, err := codec.Render(layout)
	require.NoError(t, err)

	parsed, err := codec.Parse(rendered)
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	asst, ok := parsed[1].(cria.AssistantMessage)
	require.True(t, ok)
	assert.Equal(t, "Let me think.", asst.Text)
	assert.Equal(t, "because...", asst.Reasoning)
	require.Len(t, asst.ToolCalls, 1)
	assert.Equal(t, "c1", asst.ToolCalls[0].ToolCallID)

	rerendered, err := codec.Render(parsed)
	require.NoError(t, err)
	assert.Equal(t, rendered, rerendered)
}

func TestResponsesCodec_ReasoningWithoutPrecedingAssistantFails(t *testing.T) {
	in := &ResponsesInput{
		Items: []ResponseItem{
			{Type: ItemReasoning, ID: "reasoning_1", Summary: []SummaryText{{Type: SummaryTextType, Text: "x"}}},
		},
	}
	_, err := ResponsesCodec{}.Parse(in)
	assert.Error(t, err)
}
