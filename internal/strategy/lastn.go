package strategy

import "github.com/adimarco/cria"

// LastN returns a Strategy that keeps only the last N message descendants
// of its target scope, wrapping them in a replacement scope that
// preserves the target's id. Nested scopes that end up empty after
// trimming are dropped; nested scopes that keep at least one message
// retain their own id and are rebuilt with only the kept children.
func LastN(n int) cria.Strategy {
	return func(in cria.StrategyInput) (cria.Node, error) {
		remaining := n
		kept := keepLastN(in.Target, &remaining)
		if kept == nil {
			return &cria.Scope{ID: in.Target.ID, Priority: in.Target.Priority, Context: in.Target.Context}, nil
		}
		scope, ok := kept.(*cria.Scope)
		if !ok {
			// A lone message target collapses to a single-child wrapper
			// scope so the replacement is always a Scope carrying the
			// target's id.
			return &cria.Scope{ID: in.Target.ID, Priority: in.Target.Priority, Context: in.Target.Context, Children: []cria.Node{kept}}, nil
		}
		scope.ID = in.Target.ID
		scope.Priority = in.Target.Priority
		scope.Context = in.Target.Context
		return scope, nil
	}
}

// keepLastN walks node right-to-left, keeping message leaves until
// *remaining reaches zero, and returns the rewritten node (nil if nothing
// survived). Scopes are rebuilt with only their kept children, in
// original order; their own Strategy is dropped since LastN's output is a
// one-shot trim, not a reducible scope in its own right.
func keepLastN(node cria.Node, remaining *int) cria.Node {
	switch v := node.(type) {
	case *cria.Message:
		if *remaining <= 0 {
			return nil
		}
		*remaining--
		return v
	case *cria.Scope:
		kept := make([]cria.Node, 0, len(v.Children))
		for i := len(v.Children) - 1; i >= 0; i-- {
			if *remaining <= 0 {
				break
			}
			if r := keepLastN(v.Children[i], remaining); r != nil {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			return nil
		}
		// kept was built back-to-front; reverse it to restore order.
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
		return &cria.Scope{ID: v.ID, Children: kept}
	default:
		return nil
	}
}
