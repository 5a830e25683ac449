package logging

import "go.uber.org/zap"

// Field names shared between fit-loop log lines and the devtools session
// store: a render's log output and its persisted JSON trace join on
// render_id, and drill down on scope_id/iteration/priority.

// RenderID tags a line with the render call it belongs to.
func RenderID(id string) zap.Field { return zap.String("render_id", id) }

// ScopeID tags a line with the scope a strategy acted on.
func ScopeID(id string) zap.Field { return zap.String("scope_id", id) }

// Iteration tags a line with the fit loop's 1-based iteration counter.
func Iteration(n int) zap.Field { return zap.Int("iteration", n) }

// Priority tags a line with the reduction priority being processed.
func Priority(p int) zap.Field { return zap.Int("priority", p) }

// Tokens records a layout's total token count at the time of the event.
func Tokens(n int) zap.Field { return zap.Int("total_tokens", n) }

// Budget records the token budget a fit loop is enforcing.
func Budget(n int) zap.Field { return zap.Int("budget", n) }

// OverBudgetBy records how far over budget a failed fit ended up.
func OverBudgetBy(n int) zap.Field { return zap.Int("over_budget_by", n) }
