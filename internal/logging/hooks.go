package logging

import (
	"github.com/adimarco/cria"
)

// NewFitHooks wraps a cria.RenderHooks so every fit-loop event is also
// logged through logger, tagged with renderID so every line from one
// render call can be correlated with its devtools session. The inner
// hooks still fire after the log line, mirroring how
// internal/hooks.TracingHooks layers spans over caller-supplied hooks.
func NewFitHooks(logger *Logger, renderID string, inner cria.RenderHooks) cria.RenderHooks {
	return cria.RenderHooks{
		OnFitStart: func(totalTokens, budget int) error {
			logger.Info("fit loop started", RenderID(renderID), Tokens(totalTokens), Budget(budget))
			if inner.OnFitStart != nil {
				return inner.OnFitStart(totalTokens, budget)
			}
			return nil
		},
		OnFitIteration: func(priority, totalTokens, iteration int) error {
			logger.Debug("fit loop iteration", RenderID(renderID), Iteration(iteration), Priority(priority), Tokens(totalTokens))
			if inner.OnFitIteration != nil {
				return inner.OnFitIteration(priority, totalTokens, iteration)
			}
			return nil
		},
		OnStrategyApplied: func(event cria.StrategyAppliedEvent) error {
			logger.Info("strategy applied", RenderID(renderID), ScopeID(event.ScopeID), Iteration(event.Iteration), Priority(event.Priority))
			if inner.OnStrategyApplied != nil {
				return inner.OnStrategyApplied(event)
			}
			return nil
		},
		OnFitComplete: func(totalTokens, iteration int) error {
			logger.Info("fit loop complete", RenderID(renderID), Iteration(iteration), Tokens(totalTokens))
			if inner.OnFitComplete != nil {
				return inner.OnFitComplete(totalTokens, iteration)
			}
			return nil
		},
		OnFitError: func(err *cria.FitError) error {
			logger.Error("fit loop did not converge",
				RenderID(renderID), ScopeID(err.ScopeID), Iteration(err.Iteration), Priority(err.Priority),
				Budget(err.Budget), Tokens(err.TotalTokens), OverBudgetBy(err.OverBudgetBy))
			if inner.OnFitError != nil {
				return inner.OnFitError(err)
			}
			return nil
		},
	}
}
