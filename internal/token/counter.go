// Package token implements per-message and per-boundary token counters for
// cria.ModelProvider. MemoizingCounter adds identity-keyed memoization at
// the message level; the fit loop's own per-subtree memoization lives next
// to SubtreeSummary in the root package instead, because the root package
// cannot import this one without an import cycle (this package imports
// cria) -- see renderCache in cache.go.
package token

import (
	"encoding/json"
	"sync"

	"github.com/adimarco/cria"
)

// Counter is the pair of pure functions a cria.ModelProvider needs for
// budget accounting. It is narrower than cria.ModelProvider: it knows
// nothing about codecs, so a HeuristicCounter can be embedded by any
// internal/provider.ModelProvider regardless of wire format.
type Counter interface {
	CountMessageTokens(m cria.FinalMessage) int
	CountBoundaryTokens(prev, next cria.FinalMessage) int
}

// HeuristicCounter approximates token counts without calling out to a real
// tokenizer: roughly one token per four characters of rendered text, plus
// a small fixed overhead per message and per tool-call/tool-result
// envelope. It is deliberately conservative (rounds up) so budget checks
// err on the side of over-counting rather than under-counting.
//
// Concrete tokenizers (tiktoken-style BPE, provider-hosted counting
// endpoints) are out of this package's scope per the rendering core's
// design: HeuristicCounter is the reference implementation a caller can
// swap out for one backed by a real tokenizer without touching the fit
// loop, which only depends on the Counter-shaped half of ModelProvider.
type HeuristicCounter struct {
	// CharsPerToken overrides the default approximation (4 characters per
	// token) when set to a positive value.
	CharsPerToken int
	// MessageOverhead is the fixed per-message token cost representing
	// role and framing metadata charged by most chat-style wire formats.
	MessageOverhead int
	// BoundaryOverhead is the fixed per-boundary token cost charged
	// between adjacent messages.
	BoundaryOverhead int
}

// NewHeuristicCounter returns a HeuristicCounter with the package's
// default constants: 4 characters per token, a 4-token per-message
// overhead, and a 2-token per-boundary overhead, matching the rough
// shape of OpenAI's published chat-completion framing costs.
func NewHeuristicCounter() *HeuristicCounter {
	return &HeuristicCounter{
		CharsPerToken:    4,
		MessageOverhead:  4,
		BoundaryOverhead: 2,
	}
}

func (c *HeuristicCounter) charsPerToken() int {
	if c.CharsPerToken > 0 {
		return c.CharsPerToken
	}
	return 4
}

func (c *HeuristicCounter) countText(s string) int {
	if s == "" {
		return 0
	}
	n := len(s)
	cpt := c.charsPerToken()
	return (n + cpt - 1) / cpt
}

// CountMessageTokens implements Counter.
func (c *HeuristicCounter) CountMessageTokens(m cria.FinalMessage) int {
	total := c.MessageOverhead
	switch v := m.(type) {
	case cria.SystemLike:
		total += c.countText(v.Text)
	case cria.AssistantMessage:
		total += c.countText(v.Text)
		total += c.countText(v.Reasoning)
		for _, tc := range v.ToolCalls {
			total += 4 // call envelope: id, name
			total += c.countText(tc.ToolName)
			total += c.countJSON(tc.Input)
		}
	case cria.ToolMessage:
		total += 4
		total += c.countText(v.ToolName)
		total += c.countJSON(v.Output)
	}
	return total
}

// CountBoundaryTokens implements Counter.
func (c *HeuristicCounter) CountBoundaryTokens(prev, next cria.FinalMessage) int {
	return c.BoundaryOverhead
}

func (c *HeuristicCounter) countJSON(v any) int {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		return c.countText(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return c.countText(string(b))
}

// origin returns the *cria.Message a FinalMessage was flattened from, or
// nil for layout entries synthesized by a strategy (e.g. Summary's
// replacement message), which are never cached since they have no stable
// identity across renders.
func origin(m cria.FinalMessage) *cria.Message {
	switch v := m.(type) {
	case cria.SystemLike:
		return v.Origin
	case cria.AssistantMessage:
		return v.Origin
	case cria.ToolMessage:
		return v.Origin
	default:
		return nil
	}
}

// MemoizingCounter wraps a Counter with an identity-keyed cache so a
// message whose originating node pointer is unchanged across fit-loop
// iterations is counted once. The cache is safe for concurrent use but is
// intended to live for the duration of one Render call; discard it
// afterward rather than reusing it across unrelated trees so stale
// entries can't outlive the nodes they key on.
type MemoizingCounter struct {
	inner    Counter
	messages sync.Map // *cria.Message -> int
}

// NewMemoizingCounter wraps inner with an identity-keyed per-message
// cache.
func NewMemoizingCounter(inner Counter) *MemoizingCounter {
	return &MemoizingCounter{inner: inner}
}

// CountMessageTokens implements Counter.
func (c *MemoizingCounter) CountMessageTokens(m cria.FinalMessage) int {
	key := origin(m)
	if key == nil {
		return c.inner.CountMessageTokens(m)
	}
	if v, ok := c.messages.Load(key); ok {
		return v.(int)
	}
	n := c.inner.CountMessageTokens(m)
	c.messages.Store(key, n)
	return n
}

// CountBoundaryTokens implements Counter. Boundary costs are cheap enough
// (a constant, for HeuristicCounter) that they are not memoized
// separately; the message-level cache is what matters for larger trees.
func (c *MemoizingCounter) CountBoundaryTokens(prev, next cria.FinalMessage) int {
	return c.inner.CountBoundaryTokens(prev, next)
}
