package cria

import (
	"context"
	"reflect"
)

// SubtreeSummary is the fit loop's per-scope bookkeeping: enough
// information about a subtree to fold it into its parent's summary
// without re-walking every descendant message.
type SubtreeSummary struct {
	TotalTokens  int
	MessageCount int
	FirstMessage FinalMessage
	LastMessage  FinalMessage
	// MaxReducerPriority is the highest Priority of any scope in this
	// subtree (including the subtree's own root) whose Strategy is
	// non-nil, or nil if no scope here is reducible.
	MaxReducerPriority *int
}

func maxPriority(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

// summarize computes a SubtreeSummary for n, recursing into child scopes
// and accumulating boundary costs between adjacent messages exactly as a
// flattened layout would incur them. cache memoizes both per-message token
// counts and per-scope summaries by node pointer identity: a scope whose
// pointer survived the previous iteration unchanged (see
// applyStrategiesAtPriority's structural sharing) is returned straight
// from cache without recursing into its children at all.
func summarize(n Node, provider ModelProvider, cache *renderCache) (*SubtreeSummary, error) {
	if n == nil {
		return &SubtreeSummary{}, nil
	}
	switch v := n.(type) {
	case *Message:
		if len(v.Children) == 0 {
			return &SubtreeSummary{}, nil
		}
		fm, err := finalizeMessage(v)
		if err != nil {
			return nil, err
		}
		tokens, ok := cache.messageTokens(v)
		if !ok {
			tokens = provider.CountMessageTokens(fm)
			cache.storeMessageTokens(v, tokens)
		}
		return &SubtreeSummary{
			TotalTokens:  tokens,
			MessageCount: 1,
			FirstMessage: fm,
			LastMessage:  fm,
		}, nil
	case *Scope:
		if cached, ok := cache.summary(v); ok {
			return cached, nil
		}
		acc := &SubtreeSummary{}
		for _, c := range v.Children {
			cs, err := summarize(c, provider, cache)
			if err != nil {
				return nil, err
			}
			if cs.MessageCount == 0 {
				acc.MaxReducerPriority = maxPriority(acc.MaxReducerPriority, cs.MaxReducerPriority)
				continue
			}
			if acc.MessageCount > 0 {
				acc.TotalTokens += provider.CountBoundaryTokens(acc.LastMessage, cs.FirstMessage)
			} else {
				acc.FirstMessage = cs.FirstMessage
			}
			acc.TotalTokens += cs.TotalTokens
			acc.MessageCount += cs.MessageCount
			acc.LastMessage = cs.LastMessage
			acc.MaxReducerPriority = maxPriority(acc.MaxReducerPriority, cs.MaxReducerPriority)
		}
		if v.Strategy != nil {
			p := v.Priority
			acc.MaxReducerPriority = maxPriority(acc.MaxReducerPriority, &p)
		}
		cache.storeSummary(v, acc)
		return acc, nil
	default:
		return nil, &ShapeError{Reason: "unknown node type in fit loop"}
	}
}

// runFit is the spec's fit loop: reduce root until its layout fits budget
// or every reducer is exhausted.
func runFit(ctx context.Context, root Node, budget int, hooks RenderHooks, provider ModelProvider) (Node, error) {
	cache := newRenderCache()
	// Strategies read the provider out of their inherited Context, so the
	// resolved provider is seeded at the root; scope-level Context entries
	// still merge over it.
	baseContext := Context{}.WithProvider(provider)
	summary, err := summarize(root, provider, cache)
	if err != nil {
		return nil, err
	}
	if herr := hooks.fitStart(summary.TotalTokens, budget); herr != nil {
		return nil, &HookError{Err: herr, Hook: "onFitStart"}
	}

	iteration := 0
	for summary.TotalTokens > budget {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if summary.MaxReducerPriority == nil {
			fitErr := &FitError{
				Kind:         FitCannotReduceFurther,
				Budget:       budget,
				TotalTokens:  summary.TotalTokens,
				OverBudgetBy: summary.TotalTokens - budget,
				Priority:     -1,
				Iteration:    iteration,
			}
			return nil, abortWithFitError(hooks, fitErr)
		}
		priority := *summary.MaxReducerPriority
		iteration++

		if herr := hooks.fitIteration(priority, summary.TotalTokens, iteration); herr != nil {
			return nil, &HookError{Err: herr, Hook: "onFitIteration"}
		}

		rewritten, applied, err := applyStrategiesAtPriority(ctx, root, priority, baseContext, iteration, summary.TotalTokens, hooks)
		if err != nil {
			return nil, err
		}
		if !applied {
			fitErr := &FitError{
				Kind:         FitStrategyDidNotApply,
				Budget:       budget,
				TotalTokens:  summary.TotalTokens,
				OverBudgetBy: summary.TotalTokens - budget,
				Priority:     priority,
				Iteration:    iteration,
			}
			return nil, abortWithFitError(hooks, fitErr)
		}

		nextSummary, err := summarize(rewritten, provider, cache)
		if err != nil {
			return nil, err
		}
		if nextSummary.TotalTokens >= summary.TotalTokens {
			fitErr := &FitError{
				Kind:         FitNoProgress,
				Budget:       budget,
				TotalTokens:  nextSummary.TotalTokens,
				OverBudgetBy: nextSummary.TotalTokens - budget,
				Priority:     priority,
				Iteration:    iteration,
			}
			return nil, abortWithFitError(hooks, fitErr)
		}

		root, summary = rewritten, nextSummary
	}

	if herr := hooks.fitComplete(summary.TotalTokens, iteration); herr != nil {
		return nil, &HookError{Err: herr, Hook: "onFitComplete"}
	}
	return root, nil
}

func abortWithFitError(hooks RenderHooks, fitErr *FitError) error {
	if herr := hooks.fitError(fitErr); herr != nil {
		return &HookError{Err: herr, Hook: "onFitError", Cause: fitErr}
	}
	return fitErr
}

// applyStrategiesAtPriority rewrites root bottom-up: children are
// rewritten first, then if a scope's own Priority matches p and it has a
// Strategy, the strategy runs against the already-rewritten scope.
// Scopes untouched at or below them are returned with their original
// pointer identity so unrelated caches keyed by node identity stay warm.
func applyStrategiesAtPriority(ctx context.Context, n Node, p int, parentContext Context, iteration, totalTokens int, hooks RenderHooks) (Node, bool, error) {
	if n == nil {
		return nil, false, nil
	}
	v, ok := n.(*Scope)
	if !ok {
		return n, false, nil
	}

	merged := Merge(parentContext, v.Context)
	anyChanged := false
	newChildren := make([]Node, len(v.Children))
	childrenChanged := false
	for i, c := range v.Children {
		rewritten, changed, err := applyStrategiesAtPriority(ctx, c, p, merged, iteration, totalTokens, hooks)
		if err != nil {
			return nil, false, err
		}
		newChildren[i] = rewritten
		if changed {
			childrenChanged = true
		}
	}

	current := v
	if childrenChanged {
		current = &Scope{ID: v.ID, Priority: v.Priority, Strategy: v.Strategy, Context: v.Context, Children: newChildren}
		anyChanged = true
	}

	if v.Strategy == nil || v.Priority != p {
		return current, anyChanged, nil
	}

	result, err := v.Strategy(StrategyInput{
		Ctx:         ctx,
		Target:      current,
		Context:     merged,
		TotalTokens: totalTokens,
		Iteration:   iteration,
	})
	if err != nil {
		return nil, false, &StrategyError{Err: err, ScopeID: v.ID, Priority: p, Iteration: iteration}
	}
	if nodesEqual(current, result) {
		return current, anyChanged, nil
	}
	if herr := hooks.strategyApplied(StrategyAppliedEvent{ScopeID: v.ID, Priority: p, Iteration: iteration, Target: current, Result: result}); herr != nil {
		return nil, false, &HookError{Err: herr, Hook: "onStrategyApplied"}
	}
	return result, true, nil
}

// nodesEqual reports whether a and b carry the same content, ignoring
// Scope.Strategy (a func value, never meaningfully comparable) so an
// unchanged scope rebuilt with an identical Strategy still reads as
// "unchanged".
func nodesEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Scope:
		bv, ok := b.(*Scope)
		if !ok {
			return false
		}
		if av.ID != bv.ID || av.Priority != bv.Priority {
			return false
		}
		if !reflect.DeepEqual(map[string]any(av.Context), map[string]any(bv.Context)) {
			return false
		}
		if len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Children {
			if !nodesEqual(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	case *Message:
		bv, ok := b.(*Message)
		if !ok {
			return false
		}
		return av.ID == bv.ID && av.Role == bv.Role && reflect.DeepEqual(av.Children, bv.Children)
	default:
		return reflect.DeepEqual(a, b)
	}
}
