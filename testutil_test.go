package cria

import "strings"

// fakeCodec renders a PromptLayout into itself (so tests can assert on the
// layout directly) and parses it back unchanged, trivially satisfying the
// round-trip invariant.
type fakeCodec struct{}

func (fakeCodec) Render(layout PromptLayout) (any, error) { return layout, nil }
func (fakeCodec) Parse(input any) (PromptLayout, error)   { return input.(PromptLayout), nil }

// fakeProvider counts one token per four characters of rendered text plus
// a fixed per-message and per-boundary overhead, deterministic and cheap
// enough for table-driven fit loop tests.
type fakeProvider struct {
	messageOverhead  int
	boundaryOverhead int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{messageOverhead: 3, boundaryOverhead: 1}
}

func (p *fakeProvider) CountMessageTokens(m FinalMessage) int {
	var text string
	switch v := m.(type) {
	case SystemLike:
		text = v.Text
	case AssistantMessage:
		text = v.Text + v.Reasoning
		for _, tc := range v.ToolCalls {
			text += tc.ToolName
		}
	case ToolMessage:
		if s, ok := v.Output.(string); ok {
			text = s
		}
	}
	return p.messageOverhead + (len(text)+3)/4
}

func (p *fakeProvider) CountBoundaryTokens(prev, next FinalMessage) int {
	return p.boundaryOverhead
}

func (p *fakeProvider) Codec() MessageCodec { return fakeCodec{} }

func text(s string) Part { return TextPart{Text: s} }

func msg(id string, role Role, parts ...Part) *Message {
	return &Message{ID: id, Role: role, Children: parts}
}

func scope(id string, priority int, strategy Strategy, children ...Node) *Scope {
	return &Scope{ID: id, Priority: priority, Strategy: strategy, Children: children}
}

func repeat(s string, n int) string { return strings.Repeat(s, n) }
