package provider

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/codec"
	"github.com/adimarco/cria/internal/token"
)

// AnthropicProvider is a cria.ModelProvider for Claude models, grounded on
// the teacher's AnthropicLLM: it uses the Chat-Completions-shaped codec
// (Anthropic's Messages API separates system text from a user/assistant
// turn sequence, the same split the codec already makes) and reshapes the
// rendered ChatCompletionsInput into anthropic.MessageNewParams.
type AnthropicProvider struct {
	ProtocolProvider
	Model string
}

// NewAnthropicProvider returns a provider for the given Claude model,
// counting tokens with counter (pass token.NewMemoizingCounter(token.NewHeuristicCounter())
// for a fresh render) and rendering via the Chat-Completions codec.
func NewAnthropicProvider(model string, counter token.Counter) *AnthropicProvider {
	return &AnthropicProvider{
		ProtocolProvider: ProtocolProvider{Counter: counter, Codec_: codec.ChatCompletionsCodec{}},
		Model:            model,
	}
}

// BuildRequest renders layout and reshapes it into an anthropic.MessageNewParams,
// the concrete request type l.client.Messages.New expects in the teacher's
// Generate method.
func (p *AnthropicProvider) BuildRequest(layout cria.PromptLayout, opts RequestOptions) (*anthropic.MessageNewParams, error) {
	rendered, err := p.Codec_.Render(layout)
	if err != nil {
		return nil, err
	}
	input := rendered.(*codec.ChatCompletionsInput)

	model := p.Model
	if opts.Model != "" {
		model = opts.Model
	}
	maxTokens := int64(1024)
	if opts.MaxTokens > 0 {
		maxTokens = int64(opts.MaxTokens)
	}

	req := &anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		req.Temperature = anthropic.Float(opts.Temperature)
	}

	var systemParts []string
	for _, item := range input.Messages {
		switch item.Role {
		case cria.RoleSystem, cria.RoleDeveloper:
			if s, ok := item.Content.(string); ok {
				systemParts = append(systemParts, s)
			}
		case cria.RoleUser:
			block, err := anthropicTextBlock(item.Content)
			if err != nil {
				return nil, err
			}
			req.Messages = append(req.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{block},
			})
		case cria.RoleAssistant:
			blocks, err := anthropicAssistantBlocks(item, opts.ToolSchemas)
			if err != nil {
				return nil, err
			}
			req.Messages = append(req.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: blocks,
			})
		case cria.RoleTool:
			text, _ := item.Content.(string)
			req.Messages = append(req.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewToolResultBlock(item.ToolCallID, text, false)},
			})
		}
	}

	if opts.System != "" {
		systemParts = append(systemParts, opts.System)
	}
	for _, s := range systemParts {
		req.System = append(req.System, anthropic.TextBlockParam{Text: s})
	}

	return req, nil
}

func anthropicTextBlock(content any) (anthropic.ContentBlockParamUnion, error) {
	text, ok := content.(string)
	if !ok {
		return anthropic.ContentBlockParamUnion{}, errf("expected string content, got %T", content)
	}
	return anthropic.NewTextBlock(text), nil
}

func anthropicAssistantBlocks(item codec.ChatItem, schemas ToolSchemas) ([]anthropic.ContentBlockParamUnion, error) {
	if text, ok := item.Content.(string); ok {
		return []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(text)}, nil
	}

	blocks, ok := item.Content.([]codec.ContentBlock)
	if !ok {
		return nil, errf("expected string or []ContentBlock content, got %T", item.Content)
	}

	var out []anthropic.ContentBlockParamUnion
	for _, b := range blocks {
		switch b.Type {
		case codec.BlockText:
			out = append(out, anthropic.NewTextBlock(b.Text))
		case codec.BlockToolCall:
			if err := schemas.ValidateInput(b.ToolName, b.Input); err != nil {
				return nil, err
			}
			out = append(out, anthropic.NewToolUseBlock(b.ToolCallID, b.Input, b.ToolName))
		}
	}
	return out, nil
}
