package strategy

import "github.com/adimarco/cria"

// Truncate returns a Strategy that, when its target subtree's token count
// exceeds budgetT, drops whole children from the chosen end until it
// fits. It never splits text mid-message: the open question in spec.md §9
// about sub-message truncation is answered as "never attempted". A single
// invocation keeps dropping whole children until the subtree fits budgetT
// (or no children remain); invoked again on a subtree already within
// budgetT, it returns the target unchanged.
func Truncate(budgetT int, from From) cria.Strategy {
	return func(in cria.StrategyInput) (cria.Node, error) {
		provider, err := providerFrom(in.Context)
		if err != nil {
			return nil, err
		}

		target := in.Target
		total, err := sumTokens(target, provider)
		if err != nil {
			return nil, err
		}
		if total <= budgetT {
			return target, nil
		}

		children := append([]cria.Node(nil), target.Children...)
		for len(children) > 0 && total > budgetT {
			switch from {
			case FromStart:
				children = children[1:]
			default:
				children = children[:len(children)-1]
			}
			total, err = sumTokens(&cria.Scope{ID: target.ID, Children: children}, provider)
			if err != nil {
				return nil, err
			}
		}

		return &cria.Scope{ID: target.ID, Priority: target.Priority, Strategy: target.Strategy, Context: target.Context, Children: children}, nil
	}
}
