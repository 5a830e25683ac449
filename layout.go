package cria

import (
	"fmt"
	"strings"
)

// Layout walks root depth-first and flattens it into a PromptLayout: one
// entry per Message node, in tree order, Scope nodes contributing no entry
// of their own. A Message with zero Parts is elided rather than producing
// an empty entry. Any Message whose Parts violate the role's part
// discipline fails the whole pass with a *ShapeError — layout is the
// single source of truth for shape validation.
func Layout(root Node) (PromptLayout, error) {
	var out PromptLayout
	if err := flatten(root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(n Node, out *PromptLayout) error {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Scope:
		for _, c := range v.Children {
			if err := flatten(c, out); err != nil {
				return err
			}
		}
		return nil
	case *Message:
		if len(v.Children) == 0 {
			return nil
		}
		fm, err := finalizeMessage(v)
		if err != nil {
			return err
		}
		*out = append(*out, fm)
		return nil
	default:
		return &ShapeError{Reason: fmt.Sprintf("unknown node type %T", n)}
	}
}

// finalizeMessage applies per-role part discipline and collapses a
// Message's Parts into the corresponding FinalMessage shape.
func finalizeMessage(m *Message) (FinalMessage, error) {
	switch m.Role {
	case RoleSystem, RoleDeveloper:
		text, err := textOnly(m)
		if err != nil {
			return nil, err
		}
		return SystemLike{Role: m.Role, Text: text, Origin: m}, nil

	case RoleUser:
		text, err := textOnly(m)
		if err != nil {
			return nil, err
		}
		return SystemLike{Role: RoleUser, Text: text, Origin: m}, nil

	case RoleAssistant:
		return finalizeAssistant(m)

	case RoleTool:
		if len(m.Children) != 1 {
			return nil, &ShapeError{MessageID: m.ID, Role: m.Role, Reason: "tool message must carry exactly one tool result part"}
		}
		trp, ok := m.Children[0].(ToolResultPart)
		if !ok {
			return nil, &ShapeError{MessageID: m.ID, Role: m.Role, Reason: fmt.Sprintf("tool message part must be a tool result, got %T", m.Children[0])}
		}
		return ToolMessage{
			ToolCallID: trp.ToolCallID,
			ToolName:   trp.ToolName,
			Output:     trp.Output,
			IsError:    trp.IsError,
			Origin:     m,
		}, nil

	default:
		return nil, &ShapeError{MessageID: m.ID, Role: m.Role, Reason: "unknown role"}
	}
}

func textOnly(m *Message) (string, error) {
	var b strings.Builder
	for i, p := range m.Children {
		tp, ok := p.(TextPart)
		if !ok {
			return "", &ShapeError{MessageID: m.ID, Role: m.Role, Reason: fmt.Sprintf("role %s may only carry text parts, found %T", m.Role, p)}
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tp.Text)
	}
	return b.String(), nil
}

func finalizeAssistant(m *Message) (FinalMessage, error) {
	var (
		textParts   []string
		reasoning   []string
		reasoningID string
		toolCalls   []ToolCallPart
	)
	for _, p := range m.Children {
		switch part := p.(type) {
		case TextPart:
			textParts = append(textParts, part.Text)
		case ReasoningPart:
			reasoning = append(reasoning, part.Text)
			if part.ID != "" {
				reasoningID = part.ID
			}
		case ToolCallPart:
			toolCalls = append(toolCalls, part)
		default:
			return nil, &ShapeError{MessageID: m.ID, Role: m.Role, Reason: fmt.Sprintf("assistant message cannot carry a %T", p)}
		}
	}
	return AssistantMessage{
		Text:        strings.Join(textParts, "\n"),
		Reasoning:   strings.Join(reasoning, "\n"),
		ReasoningID: reasoningID,
		ToolCalls:   toolCalls,
		Origin:      m,
	}, nil
}
