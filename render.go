package cria

import (
	"context"
	"errors"
)

// RenderOptions configures one Render call.
type RenderOptions struct {
	// Provider is used when the tree names none of its own via
	// Context.WithProvider. Required unless every reachable Scope's
	// inherited Context already carries one.
	Provider ModelProvider
	// Budget, when non-nil, makes Render run the fit loop until the
	// layout's total tokens are at or under *Budget, or fail with a
	// *FitError. A nil Budget skips the fit loop entirely and emits no
	// hook events.
	Budget *int
	Hooks  RenderHooks
}

// ErrNoProvider is returned when neither RenderOptions.Provider nor any
// Scope's Context names a ModelProvider.
var ErrNoProvider = errors.New("cria: no provider in render options or tree")

// Render flattens root into a PromptLayout, reducing it first if a budget
// is set, then renders that layout through the resolved provider's codec.
// The returned value is the provider's native request input; its concrete
// type depends on which ModelProvider was used.
func Render(ctx context.Context, root Node, opts RenderOptions) (any, error) {
	if err := assertUniqueIDs(root); err != nil {
		return nil, err
	}

	provider, err := resolveProvider(root, opts.Provider)
	if err != nil {
		return nil, err
	}

	if opts.Budget != nil {
		root, err = runFit(ctx, root, *opts.Budget, opts.Hooks, provider)
		if err != nil {
			return nil, err
		}
	}

	layout, err := Layout(root)
	if err != nil {
		return nil, err
	}

	return provider.Codec().Render(layout)
}

// resolveProvider walks root's scopes, merging Context top-down exactly as
// the fit loop does, and checks that every provider named in the tree
// agrees with fallback (and with each other). fallback may be nil if the
// tree is expected to name its own provider.
func resolveProvider(root Node, fallback ModelProvider) (ModelProvider, error) {
	resolved := fallback
	if err := walkProviders(root, nil, &resolved); err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, ErrNoProvider
	}
	return resolved, nil
}

func walkProviders(n Node, parentContext Context, resolved *ModelProvider) error {
	v, ok := n.(*Scope)
	if !ok {
		return nil
	}
	merged := Merge(parentContext, v.Context)
	if p, ok := merged.Provider(); ok {
		if *resolved == nil {
			*resolved = p
		} else if !providerEqual(*resolved, p) {
			return &ProviderMismatch{Reason: "scope " + v.ID + " names a provider that disagrees with the render's resolved provider"}
		}
	}
	for _, c := range v.Children {
		if err := walkProviders(c, merged, resolved); err != nil {
			return err
		}
	}
	return nil
}

func providerEqual(a, b ModelProvider) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
