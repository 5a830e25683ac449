// Package fixture loads a YAML description of a cria prompt tree, for the
// cria CLI's render command. Grounded on the teacher's
// internal/llm/serialization package's ToMessage conversion discipline
// (decode a plain YAML-friendly struct, then convert field-by-field into
// the real typed tree), generalized from a flat message list into cria's
// recursive Scope/Message tree.
package fixture

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/memory"
	"github.com/adimarco/cria/internal/strategy"
)

// File is the top-level YAML document a render fixture decodes into.
type File struct {
	Budget   int      `yaml:"budget"`
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	Root     NodeSpec `yaml:"root"`
}

// NodeSpec is one YAML node: exactly one of Message or Scope must be set.
type NodeSpec struct {
	Message *MessageSpec `yaml:"message,omitempty"`
	Scope   *ScopeSpec   `yaml:"scope,omitempty"`
}

// MessageSpec decodes into a *cria.Message with a single TextPart, the
// common case a render fixture needs; richer part combinations are built
// programmatically rather than through the fixture format.
type MessageSpec struct {
	ID   string `yaml:"id"`
	Role string `yaml:"role"`
	Text string `yaml:"text"`
}

// ScopeSpec decodes into a *cria.Scope. Strategy is a short name resolved
// by resolveStrategy; an empty string leaves the scope non-reducible.
type ScopeSpec struct {
	ID       string     `yaml:"id"`
	Priority int        `yaml:"priority"`
	Strategy string     `yaml:"strategy"`
	Children []NodeSpec `yaml:"children"`
}

// Load reads and decodes a render fixture from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture: failed to unmarshal %s: %w", path, err)
	}
	return &f, nil
}

// ToNode converts the fixture's root into a cria.Node tree.
func (f *File) ToNode() (cria.Node, error) {
	return f.Root.toNode()
}

func (n NodeSpec) toNode() (cria.Node, error) {
	switch {
	case n.Message != nil:
		return n.Message.toNode(), nil
	case n.Scope != nil:
		return n.Scope.toNode()
	default:
		return nil, fmt.Errorf("fixture: node has neither message nor scope")
	}
}

func (m *MessageSpec) toNode() cria.Node {
	return &cria.Message{
		ID:       m.ID,
		Role:     cria.Role(m.Role),
		Children: []cria.Part{cria.TextPart{Text: m.Text}},
	}
}

func (s *ScopeSpec) toNode() (cria.Node, error) {
	children := make([]cria.Node, 0, len(s.Children))
	for _, c := range s.Children {
		node, err := c.toNode()
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	strat, err := resolveStrategy(s.Strategy)
	if err != nil {
		return nil, err
	}

	return &cria.Scope{
		ID:       s.ID,
		Priority: s.Priority,
		Strategy: strat,
		Children: children,
	}, nil
}

// resolveStrategy maps a fixture's short strategy spec to a cria.Strategy.
// Supported forms: "omit", "lastn:<n>", "truncate:<budget>[:start|end]",
// "summary". A bare "lastn" or "truncate" falls back to a small default
// since the fixture format has no room for wiring a real memory.KVMemory
// or summarizer for "summary" beyond a canned response.
func resolveStrategy(spec string) (cria.Strategy, error) {
	parts := strings.Split(spec, ":")
	name := parts[0]
	args := parts[1:]

	switch name {
	case "":
		return nil, nil
	case "omit":
		return strategy.Omit(), nil
	case "truncate":
		budget := 0
		from := strategy.FromEnd
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("fixture: invalid truncate budget %q: %w", args[0], err)
			}
			budget = n
		}
		if len(args) > 1 && args[1] == "start" {
			from = strategy.FromStart
		}
		return strategy.Truncate(budget, from), nil
	case "lastn":
		n := 2
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("fixture: invalid lastn count %q: %w", args[0], err)
			}
			n = v
		}
		return strategy.LastN(n), nil
	case "summary":
		store := memory.NewInMemoryKV[strategy.SummaryData]()
		return strategy.Summary("fixture-summary", store, func(ctx context.Context, in strategy.SummarizeInput) (string, error) {
			return "Discussed earlier turns.", nil
		}), nil
	default:
		return nil, fmt.Errorf("fixture: unknown strategy %q", spec)
	}
}
