package provider

import (
	"github.com/openai/openai-go/v2"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/codec"
	"github.com/adimarco/cria/internal/token"
)

// OpenAIChatProvider is a cria.ModelProvider for OpenAI's Chat-Completions
// API, grounded on the Chat-Completions message shape the rest of the
// ecosystem (vLLM, Gemma front-ends) mirrors -- see
// other_examples' openai tool adapter, which operates on the same
// openai.ChatCompletionNewParams request type this provider builds.
type OpenAIChatProvider struct {
	ProtocolProvider
	Model string
}

// NewOpenAIChatProvider returns a provider for the given chat model.
func NewOpenAIChatProvider(model string, counter token.Counter) *OpenAIChatProvider {
	return &OpenAIChatProvider{
		ProtocolProvider: ProtocolProvider{Counter: counter, Codec_: codec.ChatCompletionsCodec{}},
		Model:            model,
	}
}

// BuildRequest renders layout and reshapes it into an
// openai.ChatCompletionNewParams.
func (p *OpenAIChatProvider) BuildRequest(layout cria.PromptLayout, opts RequestOptions) (*openai.ChatCompletionNewParams, error) {
	rendered, err := p.Codec_.Render(layout)
	if err != nil {
		return nil, err
	}
	input := rendered.(*codec.ChatCompletionsInput)

	model := p.Model
	if opts.Model != "" {
		model = opts.Model
	}

	req := &openai.ChatCompletionNewParams{Model: openai.ChatModel(model)}
	if opts.System != "" {
		req.Messages = append(req.Messages, openai.SystemMessage(opts.System))
	}

	for _, item := range input.Messages {
		switch item.Role {
		case cria.RoleSystem, cria.RoleDeveloper:
			if s, ok := item.Content.(string); ok {
				req.Messages = append(req.Messages, openai.SystemMessage(s))
			}
		case cria.RoleUser:
			if s, ok := item.Content.(string); ok {
				req.Messages = append(req.Messages, openai.UserMessage(s))
			}
		case cria.RoleTool:
			if s, ok := item.Content.(string); ok {
				req.Messages = append(req.Messages, openai.ToolMessage(s, item.ToolCallID))
			}
		case cria.RoleAssistant:
			msg, err := openaiAssistantMessage(item, opts.ToolSchemas)
			if err != nil {
				return nil, err
			}
			req.Messages = append(req.Messages, msg)
		}
	}

	return req, nil
}

func openaiAssistantMessage(item codec.ChatItem, schemas ToolSchemas) (openai.ChatCompletionMessageParamUnion, error) {
	if text, ok := item.Content.(string); ok {
		return openai.AssistantMessage(text), nil
	}

	var text string
	if blocks, ok := item.Content.([]codec.ContentBlock); ok {
		for _, b := range blocks {
			if b.Type == codec.BlockText {
				text = b.Text
			}
		}
	}

	msg := openai.AssistantMessage(text)
	for _, tc := range item.ToolCalls {
		if err := schemas.ValidateArguments(tc.Function.Name, tc.Function.Arguments); err != nil {
			return openai.ChatCompletionMessageParamUnion{}, err
		}
		fn := openai.ChatCompletionMessageFunctionToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
		msg.OfAssistant.ToolCalls = append(msg.OfAssistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{OfFunction: &fn})
	}
	return msg, nil
}
