package cria

// FinalMessage is one entry of a PromptLayout: the flattened, provider-
// agnostic shape a Message collapses to once the tree has been walked
// depth-first. isFinalMessage is unexported so FinalMessage can only be
// implemented inside this package.
type FinalMessage interface {
	isFinalMessage()
	origin() *Message
}

// PromptLayout is the ordered, flattened result of the layout pass: the
// shape every MessageCodec renders from and parses back into.
type PromptLayout []FinalMessage

// SystemLike is a system, developer or user turn: plain text attributed to a
// Role, no tool activity.
type SystemLike struct {
	Role Role
	Text string
	// Origin is the Message node this entry was produced from, kept for
	// identity-keyed token caching and for devtools traceability. Nil for
	// layout entries synthesized by a strategy rather than flattened
	// directly from a tree node.
	Origin *Message
}

func (SystemLike) isFinalMessage()    {}
func (s SystemLike) origin() *Message { return s.Origin }

// AssistantMessage is an assistant turn: text and/or reasoning, plus any
// tool calls it issued.
type AssistantMessage struct {
	Text        string
	Reasoning   string
	ReasoningID string
	ToolCalls   []ToolCallPart
	Origin      *Message
}

func (AssistantMessage) isFinalMessage()    {}
func (a AssistantMessage) origin() *Message { return a.Origin }

// ToolMessage is the result of one tool call, correlated to the issuing
// AssistantMessage's ToolCallPart by ToolCallID.
type ToolMessage struct {
	ToolCallID string
	ToolName   string
	Output     any
	IsError    bool
	Origin     *Message
}

func (ToolMessage) isFinalMessage()    {}
func (t ToolMessage) origin() *Message { return t.Origin }
