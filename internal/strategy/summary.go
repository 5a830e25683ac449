package strategy

import (
	"context"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/memory"
)

// SummaryData is the persisted shape a Summary strategy reads and writes
// through its KVMemory store.
type SummaryData struct {
	Content    string
	TokenCount int
}

// SummarizeInput is what a Summarizer callback receives.
type SummarizeInput struct {
	// Target is the scope being summarized, already reduced in its
	// children by any strategies beneath it.
	Target *cria.Scope
	// ExistingSummary is the previously cached content at this id, empty
	// on the first invocation.
	ExistingSummary string
	// Context is Target's fully merged, inherited Context — carries the
	// provider, for model-backed summarizers.
	Context cria.Context
}

// Summarizer produces a new summary string for a scope. It may call out
// to a model using the provider in in.Context; it receives the existing
// cached summary (if any) so it can choose to extend rather than
// regenerate from scratch.
type Summarizer func(ctx context.Context, in SummarizeInput) (string, error)

// Summary returns a Strategy that reads any cached summary from
// store[id], calls summarize to produce an updated one, writes it back,
// and replaces the target scope with a single scope containing one
// assistant text message: "[Summary of earlier conversation]\n{content}".
func Summary(id string, store memory.KVMemory[SummaryData], summarize Summarizer) cria.Strategy {
	return func(in cria.StrategyInput) (cria.Node, error) {
		existing := ""
		if entry, ok, err := store.Get(in.Ctx, id); err != nil {
			return nil, err
		} else if ok {
			existing = entry.Data.Content
		}

		content, err := summarize(in.Ctx, SummarizeInput{
			Target:          in.Target,
			ExistingSummary: existing,
			Context:         in.Context,
		})
		if err != nil {
			return nil, err
		}

		text := "[Summary of earlier conversation]\n" + content
		tokenCount := 0
		if provider, ok := in.Context.Provider(); ok {
			tokenCount = provider.CountMessageTokens(cria.AssistantMessage{Text: text})
		}
		if err := store.Set(in.Ctx, id, SummaryData{Content: content, TokenCount: tokenCount}, nil); err != nil {
			return nil, err
		}

		return &cria.Scope{
			ID: in.Target.ID,
			Children: []cria.Node{
				&cria.Message{
					Role:     cria.RoleAssistant,
					Children: []cria.Part{cria.TextPart{Text: text}},
				},
			},
		}, nil
	}
}
