package devtools

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adimarco/cria"
)

// Recorder accumulates one fit session's worth of cria.RenderHooks events
// into a Session, for a caller to Save once the render call returns.
// Grounded on the same event shapes internal/hooks.TracingHooks consumes;
// a caller can wire both into one cria.RenderHooks via composition.
type Recorder struct {
	// Now returns the current time; overridden in tests for deterministic
	// durations.
	Now func() time.Time

	sess Session
}

// NewRecorder returns a Recorder for one render call, tagged with id,
// initiator, source, and label for display in a devtools session list. A
// blank id is replaced with a fresh UUID.
func NewRecorder(id, initiator, source, label string) *Recorder {
	if id == "" {
		id = uuid.NewString()
	}
	return &Recorder{
		Now:  time.Now,
		sess: Session{ID: id, Initiator: initiator, Source: source, Label: label},
	}
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Hooks returns a cria.RenderHooks that feeds this Recorder.
func (r *Recorder) Hooks() cria.RenderHooks {
	return cria.RenderHooks{
		OnFitStart: func(totalTokens, budget int) error {
			started := r.now()
			r.sess.StartedAt = started
			r.sess.Timing.StartedAt = started
			r.sess.Budget = budget
			r.sess.TotalTokensBefore = totalTokens
			r.sess.Snapshots.Before = totalTokens
			return nil
		},
		OnStrategyApplied: func(event cria.StrategyAppliedEvent) error {
			r.sess.StrategyEvents = append(r.sess.StrategyEvents, StrategyEvent{
				ScopeID:   event.ScopeID,
				Priority:  event.Priority,
				Iteration: event.Iteration,
				Applied:   true,
			})
			r.sess.Trace = append(r.sess.Trace, fmt.Sprintf(
				"strategy applied: scope=%s priority=%d iteration=%d", event.ScopeID, event.Priority, event.Iteration))
			return nil
		},
		OnFitComplete: func(totalTokens, iteration int) error {
			r.sess.Status = StatusSuccess
			r.sess.TotalTokensAfter = totalTokens
			r.sess.Snapshots.After = totalTokens
			r.sess.Iterations = iteration
			r.finish()
			return nil
		},
		OnFitError: func(err *cria.FitError) error {
			r.sess.Status = StatusError
			r.sess.Error = err.Error()
			r.sess.Iterations = err.Iteration
			r.sess.TotalTokensAfter = err.TotalTokens
			r.sess.Snapshots.After = err.TotalTokens
			r.finish()
			return nil
		},
	}
}

func (r *Recorder) finish() {
	end := r.now()
	r.sess.Timing.EndedAt = end
	r.sess.DurationMs = end.Sub(r.sess.Timing.StartedAt).Milliseconds()
}

// Session returns the accumulated session. Call after the render this
// Recorder was wired into has returned.
func (r *Recorder) Session() Session {
	return r.sess
}
