package provider

import (
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/responses"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/codec"
	"github.com/adimarco/cria/internal/token"
)

// OpenAIResponsesProvider is a cria.ModelProvider for OpenAI's Responses
// API, using the Responses-shaped codec directly since its item shapes
// (message / reasoning / function_call / function_call_output) mirror the
// SDK's own ResponseInputItemUnionParam variants one for one.
type OpenAIResponsesProvider struct {
	ProtocolProvider
	Model string
}

// NewOpenAIResponsesProvider returns a provider for the given Responses
// model.
func NewOpenAIResponsesProvider(model string, counter token.Counter) *OpenAIResponsesProvider {
	return &OpenAIResponsesProvider{
		ProtocolProvider: ProtocolProvider{Counter: counter, Codec_: codec.ResponsesCodec{}},
		Model:            model,
	}
}

// BuildRequest renders layout and reshapes it into a responses.ResponseNewParams.
func (p *OpenAIResponsesProvider) BuildRequest(layout cria.PromptLayout, opts RequestOptions) (*responses.ResponseNewParams, error) {
	rendered, err := p.Codec_.Render(layout)
	if err != nil {
		return nil, err
	}
	input := rendered.(*codec.ResponsesInput)

	model := p.Model
	if opts.Model != "" {
		model = opts.Model
	}

	var items responses.ResponseInputParam
	if opts.System != "" {
		items = append(items, easyMessage(opts.System, responses.EasyInputMessageRoleSystem))
	}

	for _, item := range input.Items {
		switch item.Type {
		case codec.ItemMessage:
			text, err := firstResponsesText(item.Content)
			if err != nil {
				return nil, err
			}
			items = append(items, easyMessage(text, responses.EasyInputMessageRole(item.Role)))
		case codec.ItemReasoning:
			// Reasoning items are provider-generated and not re-submitted as
			// request input; the Responses API reconstructs them from
			// previous_response_id instead.
		case codec.ItemFunctionCall:
			if err := opts.ToolSchemas.ValidateArguments(item.Name, item.Arguments); err != nil {
				return nil, err
			}
			items = append(items, responses.ResponseInputItemParamOfFunctionCall(item.Arguments, item.CallID, item.Name))
		case codec.ItemFunctionCallOutput:
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(item.CallID, item.Output))
		}
	}

	req := &responses.ResponseNewParams{
		Model: openai.ChatModel(model),
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: items},
	}
	return req, nil
}

func easyMessage(text string, role responses.EasyInputMessageRole) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemUnionParam{OfMessage: &responses.EasyInputMessageParam{
		Content: responses.EasyInputMessageContentUnionParam{OfString: openai.String(text)},
		Role:    role,
	}}
}

func firstResponsesText(content any) (string, error) {
	switch v := content.(type) {
	case string:
		return v, nil
	case []codec.ResponseMessageContent:
		if len(v) == 0 {
			return "", nil
		}
		return v[0].Text, nil
	default:
		return "", errf("unsupported response content type %T", content)
	}
}
