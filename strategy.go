package cria

import "context"

// StrategyInput is what the fit loop hands a Scope's Strategy on each
// invocation.
type StrategyInput struct {
	// Ctx carries cancellation and deadlines through to strategies that do
	// I/O (Summary calling out to a summarizer, VectorSearch querying a
	// vector store).
	Ctx context.Context
	// Target is the Scope being reduced. Strategies must not mutate Target
	// in place; return a replacement Node (or nil) instead.
	Target *Scope
	// Context is Target's fully merged, inherited Context.
	Context Context
	// TotalTokens is the whole tree's rendered token count as of the start
	// of this iteration.
	TotalTokens int
	// Iteration is the fit loop's 1-based iteration counter.
	Iteration int
}

// Strategy reduces one Scope. It returns the Node that should replace
// Target in the tree: typically a smaller *Scope, occasionally a single
// *Message (collapsing the scope entirely), or nil to remove Target from
// its parent outright. Returning Target unchanged, or a Node that is
// structurally identical to Target, is treated by the fit loop as
// "strategy did not apply".
//
// A Strategy must be a pure function of its input: same StrategyInput,
// same result, so the fit loop's trace is reproducible.
type Strategy func(StrategyInput) (Node, error)
