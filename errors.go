package cria

import "fmt"

// ShapeError reports that a node tree violates the part-discipline rules
// the layout pass enforces: a Message's Parts must be a legal combination
// for its Role (for example, a system Message cannot carry a ToolCallPart).
type ShapeError struct {
	MessageID string
	Role      Role
	Reason    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("cria: shape error in message %q (role %s): %s", e.MessageID, e.Role, e.Reason)
}

// ProviderMismatch reports that a tree names a provider in its Context
// (via WithProvider) that conflicts with the provider passed to Render, or
// that two scopes in the same tree name different providers.
type ProviderMismatch struct {
	Reason string
}

func (e *ProviderMismatch) Error() string {
	return fmt.Sprintf("cria: provider mismatch: %s", e.Reason)
}

// FitErrorKind classifies why the fit loop gave up.
type FitErrorKind string

const (
	// FitCannotReduceFurther means every scope in the tree is either not
	// reducible (nil Strategy) or has already been reduced to its floor.
	FitCannotReduceFurther FitErrorKind = "cannot_reduce_further"
	// FitStrategyDidNotApply means a Strategy returned without error but
	// produced no change, which the fit loop treats as a broken reducer
	// rather than silently looping.
	FitStrategyDidNotApply FitErrorKind = "strategy_did_not_apply"
	// FitNoProgress means a Strategy changed the tree but the rendered
	// token total did not strictly decrease, tripping the loop's
	// monotonic-progress guard.
	FitNoProgress FitErrorKind = "no_progress"
)

// FitError is returned by Render when the fit loop exhausts every
// reduction option without bringing the layout under budget.
type FitError struct {
	Kind         FitErrorKind
	Budget       int
	TotalTokens  int
	OverBudgetBy int
	// Priority is the reduction priority the failing iteration ran at, or
	// -1 when no reducer remained at all.
	Priority  int
	Iteration int
	ScopeID   string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("cria: fit failed (%s) after %d iteration(s): %d tokens over a %d budget (scope %q, priority %d)",
		e.Kind, e.Iteration, e.OverBudgetBy, e.Budget, e.ScopeID, e.Priority)
}

// StrategyError wraps an error returned by a Strategy with the iteration
// context it failed under.
type StrategyError struct {
	Err       error
	ScopeID   string
	Priority  int
	Iteration int
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("cria: strategy for scope %q (priority %d) failed on iteration %d: %v",
		e.ScopeID, e.Priority, e.Iteration, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// HookError wraps an error returned by a RenderHooks callback, which
// aborts the render. Cause is set when the failing hook was OnFitError
// itself: it holds the *FitError that triggered the call, per spec's
// "hook errors inside onFitError chain via cause semantics".
type HookError struct {
	Err   error
	Hook  string
	Cause error
}

func (e *HookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cria: hook %q failed: %v (while handling: %v)", e.Hook, e.Err, e.Cause)
	}
	return fmt.Sprintf("cria: hook %q failed: %v", e.Hook, e.Err)
}

func (e *HookError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
