package cria

// StrategyAppliedEvent describes one scope replacement the fit loop
// performed, emitted before the next summarization per spec.
type StrategyAppliedEvent struct {
	ScopeID   string
	Priority  int
	Iteration int
	Target    Node
	Result    Node
}

// RenderHooks lets a caller observe the fit loop. Every field is optional;
// nil callbacks are skipped. A callback that returns a non-nil error
// aborts the render synchronously: Render wraps it in a *HookError and
// returns it instead of continuing the fit loop.
type RenderHooks struct {
	// OnFitStart fires once, before the first iteration, with the initial
	// rendered token total and the budget being enforced.
	OnFitStart func(totalTokens, budget int) error
	// OnFitIteration fires at the start of every iteration, before the
	// scopes at the chosen priority are invoked.
	OnFitIteration func(priority, totalTokens, iteration int) error
	// OnStrategyApplied fires once per scope a Strategy successfully
	// replaced, before the rewritten tree is re-summarized.
	OnStrategyApplied func(event StrategyAppliedEvent) error
	// OnFitComplete fires once the layout fits the budget (including the
	// trivial case where it fit from the start, with iteration 0).
	OnFitComplete func(totalTokens, iteration int) error
	// OnFitError fires, best-effort, when the fit loop is about to give
	// up, before the *FitError leaves Render. If it itself returns an
	// error, that error is returned wrapped in a *HookError whose Cause is
	// the original *FitError.
	OnFitError func(err *FitError) error
}

func (h RenderHooks) fitStart(totalTokens, budget int) error {
	if h.OnFitStart == nil {
		return nil
	}
	return h.OnFitStart(totalTokens, budget)
}

func (h RenderHooks) fitIteration(priority, totalTokens, iteration int) error {
	if h.OnFitIteration == nil {
		return nil
	}
	return h.OnFitIteration(priority, totalTokens, iteration)
}

func (h RenderHooks) strategyApplied(event StrategyAppliedEvent) error {
	if h.OnStrategyApplied == nil {
		return nil
	}
	return h.OnStrategyApplied(event)
}

func (h RenderHooks) fitComplete(totalTokens, iteration int) error {
	if h.OnFitComplete == nil {
		return nil
	}
	return h.OnFitComplete(totalTokens, iteration)
}

func (h RenderHooks) fitError(err *FitError) error {
	if h.OnFitError == nil {
		return nil
	}
	return h.OnFitError(err)
}
