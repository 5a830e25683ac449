package strategy

import (
	"fmt"
	"strings"

	"github.com/adimarco/cria"
	"github.com/adimarco/cria/internal/memory"
)

// Formatter renders a VectorMemory search result set into the single
// message VectorSearch substitutes in place of its target scope.
type Formatter[T any] func(results []memory.SearchResult[T]) string

// DefaultFormatter joins each result's text, as extracted by textOf, with
// blank lines, numbering each hit. VectorSearch given a nil formatter does
// not use it: it numbers and joins each result's Data formatted with %v.
func DefaultFormatter[T any](textOf func(T) string) Formatter[T] {
	return func(results []memory.SearchResult[T]) string {
		if len(results) == 0 {
			return "[No relevant results found]"
		}
		var b strings.Builder
		for i, r := range results {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, textOf(r.Entry.Data))
		}
		return b.String()
	}
}

// VectorSearch returns a Strategy that, at render time, queries store for
// query and formats the results into a single message of the given role
// (cria.RoleUser if role is empty). If query is blank, it emits a
// placeholder message instead of querying, per spec's "missing query"
// failure mode.
func VectorSearch[T any](store memory.VectorMemory[T], query string, opts memory.SearchOptions, role cria.Role, formatter Formatter[T]) cria.Strategy {
	if role == "" {
		role = cria.RoleUser
	}
	return func(in cria.StrategyInput) (cria.Node, error) {
		text := "[No search query available]"
		if strings.TrimSpace(query) != "" {
			results, err := store.Search(in.Ctx, query, opts)
			if err != nil {
				return nil, fmt.Errorf("cria/strategy: vector search failed: %w", err)
			}
			if formatter != nil {
				text = formatter(results)
			} else {
				text = defaultJoin(results)
			}
		}
		return &cria.Scope{
			ID: in.Target.ID,
			Children: []cria.Node{
				&cria.Message{Role: role, Children: []cria.Part{cria.TextPart{Text: text}}},
			},
		}, nil
	}
}

func defaultJoin[T any](results []memory.SearchResult[T]) string {
	if len(results) == 0 {
		return "[No relevant results found]"
	}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %v", i+1, r.Entry.Data)
	}
	return b.String()
}
