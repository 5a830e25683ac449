package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/memory"
)

func TestSummary_ReplacesScopeWithSingleAssistantMessage(t *testing.T) {
	store := memory.NewInMemoryKV[SummaryData]()
	summarize := func(ctx context.Context, in SummarizeInput) (string, error) {
		return "Discussed project setup.", nil
	}

	target := &cria.Scope{ID: "hist", Children: []cria.Node{
		userMsg("u1", "one"),
		userMsg("u2", "two"),
	}}

	result, err := Summary("s", store, summarize)(input(target))
	require.NoError(t, err)

	scope := result.(*cria.Scope)
	assert.Equal(t, "hist", scope.ID)
	require.Len(t, scope.Children, 1)
	m := scope.Children[0].(*cria.Message)
	assert.Equal(t, cria.RoleAssistant, m.Role)
	require.Len(t, m.Children, 1)
	assert.Equal(t, "[Summary of earlier conversation]\nDiscussed project setup.", m.Children[0].(cria.TextPart).Text)
}

func TestSummary_WritesCacheEntryWithTokenCount(t *testing.T) {
	store := memory.NewInMemoryKV[SummaryData]()
	summarize := func(ctx context.Context, in SummarizeInput) (string, error) {
		return "Discussed things.", nil
	}

	target := &cria.Scope{ID: "hist", Children: []cria.Node{userMsg("u1", "one")}}
	_, err := Summary("s", store, summarize)(input(target))
	require.NoError(t, err)

	entry, ok, err := store.Get(context.Background(), "s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Discussed things.", entry.Data.Content)
	assert.Positive(t, entry.Data.TokenCount)
}

func TestSummary_PassesExistingSummaryToSummarizer(t *testing.T) {
	store := memory.NewInMemoryKV[SummaryData]()
	require.NoError(t, store.Set(context.Background(), "s", SummaryData{Content: "Earlier summary."}, nil))

	var sawExisting string
	summarize := func(ctx context.Context, in SummarizeInput) (string, error) {
		sawExisting = in.ExistingSummary
		return "Earlier summary, plus new turns.", nil
	}

	target := &cria.Scope{ID: "hist", Children: []cria.Node{userMsg("u1", "one")}}
	_, err := Summary("s", store, summarize)(input(target))
	require.NoError(t, err)
	assert.Equal(t, "Earlier summary.", sawExisting)
}

func TestSummary_SummarizerErrorPropagates(t *testing.T) {
	store := memory.NewInMemoryKV[SummaryData]()
	boom := errors.New("model unavailable")
	summarize := func(ctx context.Context, in SummarizeInput) (string, error) {
		return "", boom
	}

	target := &cria.Scope{ID: "hist", Children: []cria.Node{userMsg("u1", "one")}}
	_, err := Summary("s", store, summarize)(input(target))
	require.ErrorIs(t, err, boom)

	_, ok, err := store.Get(context.Background(), "s")
	require.NoError(t, err)
	assert.False(t, ok, "a failed summarization must not write a cache entry")
}

// TestSummary_EndToEndWithLastN exercises spec scenario 4: an oversized
// history region is replaced by exactly one assistant summary message
// while a sibling Last-2 region keeps the final two messages.
func TestSummary_EndToEndWithLastN(t *testing.T) {
	store := memory.NewInMemoryKV[SummaryData]()
	summarize := func(ctx context.Context, in SummarizeInput) (string, error) {
		return "Discussed earlier turns.", nil
	}

	root := &cria.Scope{ID: "root", Children: []cria.Node{
		&cria.Scope{ID: "old", Priority: 2, Strategy: Summary("s", store, summarize), Children: []cria.Node{
			userMsg("u1", "a long early message full of filler text to push the tree over budget"),
			userMsg("u2", "another long early message full of filler text and detail"),
			userMsg("u3", "yet another early message full of words"),
		}},
		&cria.Scope{ID: "recent", Priority: 1, Strategy: LastN(2), Children: []cria.Node{
			userMsg("u4", "recent one"),
			userMsg("u5", "recent two"),
			userMsg("u6", "recent three"),
		}},
	}}

	budget := 33
	out, err := cria.Render(context.Background(), root, cria.RenderOptions{Provider: fakeProvider{}, Budget: &budget})
	require.NoError(t, err)

	layout := out.(cria.PromptLayout)
	require.Len(t, layout, 3)
	first, ok := layout[0].(cria.AssistantMessage)
	require.True(t, ok, "history region must collapse to one assistant message")
	assert.Equal(t, "[Summary of earlier conversation]\nDiscussed earlier turns.", first.Text)
	assert.Equal(t, "recent two", layout[1].(cria.SystemLike).Text)
	assert.Equal(t, "recent three", layout[2].(cria.SystemLike).Text)

	entry, ok, err := store.Get(context.Background(), "s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Discussed earlier turns.", entry.Data.Content)
}
