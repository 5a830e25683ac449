package cria

// Context is an inheritable bag of render-time configuration attached to a
// Scope. A child Scope's Context is the result of shallow-merging its own
// entries over its parent's, so a deeply nested scope can override a
// single key (for instance, which summarizer to call) without restating
// the rest.
type Context map[string]any

const providerKey = "cria.provider"

// WithProvider returns a copy of c with the active ModelProvider set. Use
// it on the root Scope's Context when a tree must pin a specific provider
// rather than inherit the one passed to Render.
func (c Context) WithProvider(p ModelProvider) Context {
	return c.with(providerKey, p)
}

// Provider returns the ModelProvider stored in c, if any.
func (c Context) Provider() (ModelProvider, bool) {
	v, ok := c[providerKey]
	if !ok {
		return nil, false
	}
	p, ok := v.(ModelProvider)
	return p, ok
}

func (c Context) with(key string, value any) Context {
	merged := make(Context, len(c)+1)
	for k, v := range c {
		merged[k] = v
	}
	merged[key] = value
	return merged
}

// Merge shallow-merges child over parent: every key in child overrides the
// same key in parent, all other parent keys pass through unchanged. Either
// argument may be nil.
func Merge(parent, child Context) Context {
	if len(parent) == 0 && len(child) == 0 {
		return nil
	}
	merged := make(Context, len(parent)+len(child))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}

// MessageCodec renders a PromptLayout into a provider's native request
// input shape and parses one back. Concrete codecs (internal/codec) and
// provider adapters (internal/provider) compose to produce the
// ModelProvider callers pass to Render; Render itself only knows this
// interface.
type MessageCodec interface {
	// Render converts layout into the provider's native input type,
	// returned as any since each provider's SDK defines its own concrete
	// request shape.
	Render(layout PromptLayout) (any, error)
	// Parse converts a provider's native input value back into a
	// PromptLayout. For any x that Render produced, Render(Parse(x)) equals
	// x up to field order. Parse(Render(layout)) may normalize the layout
	// rather than reproduce it: the Chat-Completions codec, for example,
	// returns tool outputs as strings and drops tool names its wire format
	// does not carry.
	Parse(input any) (PromptLayout, error)
}

// ModelProvider is everything the fit loop and Render need from a target
// model: how to count tokens for budget enforcement, and how to turn a
// layout into that provider's wire format.
type ModelProvider interface {
	// CountMessageTokens returns the token cost of one finalized message in
	// isolation, including its role and part overhead.
	CountMessageTokens(m FinalMessage) int
	// CountBoundaryTokens returns the marginal token cost introduced by
	// placing next immediately after prev (for providers whose wire format
	// charges per-boundary overhead, e.g. turn separators). Called once per
	// adjacent pair in a layout; never called for the first message alone.
	CountBoundaryTokens(prev, next FinalMessage) int
	// Codec returns the MessageCodec used to render and parse this
	// provider's native input shape.
	Codec() MessageCodec
}
