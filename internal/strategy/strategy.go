// Package strategy implements the reduction strategies spec'd for the fit
// loop: Omit, Truncate, LastN, Summary, and VectorSearch. Each is a
// factory that returns a cria.Strategy closure, grounded on the teacher's
// turn-preserving history trimming in internal/llm/memory.go generalized
// from a flat message slice to the priority-directed tree rewrite the fit
// loop performs.
package strategy

import (
	"fmt"

	"github.com/adimarco/cria"
)

// From selects which end Truncate trims from.
type From string

const (
	FromStart From = "start"
	FromEnd   From = "end"
)

// Omit returns a Strategy that unconditionally removes its target scope,
// per spec: "Returns null unconditionally."
func Omit() cria.Strategy {
	return func(in cria.StrategyInput) (cria.Node, error) {
		return nil, nil
	}
}

// sumTokens renders n's layout through provider and returns the same
// total Render's fit loop would compute: per-message costs plus
// inter-message boundary costs.
func sumTokens(n cria.Node, provider cria.ModelProvider) (int, error) {
	layout, err := cria.Layout(n)
	if err != nil {
		return 0, err
	}
	total := 0
	for i, m := range layout {
		total += provider.CountMessageTokens(m)
		if i > 0 {
			total += provider.CountBoundaryTokens(layout[i-1], m)
		}
	}
	return total, nil
}

func providerFrom(ctx cria.Context) (cria.ModelProvider, error) {
	p, ok := ctx.Provider()
	if !ok {
		return nil, fmt.Errorf("cria/strategy: no provider in context; Truncate needs one to size itself")
	}
	return p, nil
}
