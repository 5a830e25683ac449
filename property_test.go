package cria

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func sumLayoutTokens(layout PromptLayout, provider ModelProvider) int {
	total := 0
	for i, m := range layout {
		total += provider.CountMessageTokens(m)
		if i > 0 {
			total += provider.CountBoundaryTokens(layout[i-1], m)
		}
	}
	return total
}

// TestProperty_BudgetRespect checks invariant 1 from spec.md §8: whenever
// Render succeeds with a budget, the resulting layout's token total never
// exceeds it, across a range of filler sizes and budgets.
func TestProperty_BudgetRespect(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("fit result respects budget", prop.ForAll(
		func(fillerLen, budget int) bool {
			provider := newFakeProvider()
			root := scope("root", 0, nil,
				msg("sys", RoleSystem, text("be terse")),
				scope("droppable", 5, omitStrategy, msg("u1", RoleUser, text(repeat("x", fillerLen)))),
			)
			b := budget
			out, err := Render(context.Background(), root, RenderOptions{Provider: provider, Budget: &b})
			if err != nil {
				// cannotReduceFurther etc. are acceptable outcomes; the
				// invariant only constrains *successful* renders.
				return true
			}
			layout := out.(PromptLayout)
			return sumLayoutTokens(layout, provider) <= b
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

// TestProperty_PriorityTieBreakIsDepthFirstLeftToRight checks that when
// several scopes share the top priority, they are all applied within the
// same iteration, in tree order.
func TestProperty_PriorityTieBreakIsDepthFirstLeftToRight(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("tied priorities apply left to right in one iteration", prop.ForAll(
		func(n int) bool {
			var order []string
			var children []Node
			for i := 0; i < n; i++ {
				id := string(rune('a' + i))
				idCopy := id
				track := func(in StrategyInput) (Node, error) {
					order = append(order, idCopy)
					return nil, nil
				}
				children = append(children, scope(id, 5, track, msg(id+"-m", RoleUser, text(repeat("y", 50)))))
			}
			root := scope("root", 0, nil, children...)
			b := 1
			_, _ = Render(context.Background(), root, RenderOptions{Provider: newFakeProvider(), Budget: &b})
			if len(order) != n {
				return false
			}
			for i := 0; i < n; i++ {
				if order[i] != string(rune('a'+i)) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}
