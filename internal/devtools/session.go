// Package devtools defines the persisted fit-session schema spec.md §6.4
// names and a retention-enforcing JSON store for it, adapted from the
// teacher's internal/llm/serialization/yaml.go save/list/load trio: same
// one-file-per-record shape, switched from YAML to JSON and with an
// injected clock so pruning is testable without sleeping.
package devtools

import "time"

// Status is the terminal state of a fit session.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshots captures the layout's token count immediately before and after
// a fit session ran.
type Snapshots struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// StrategyEvent mirrors one cria.StrategyAppliedEvent, flattened for JSON
// storage.
type StrategyEvent struct {
	ScopeID   string `json:"scopeId"`
	Priority  int    `json:"priority"`
	Iteration int    `json:"iteration"`
	Applied   bool   `json:"applied"`
}

// Timing records how long the fit loop spent, for display in a devtools
// timeline.
type Timing struct {
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// Session is the exact persisted shape spec.md §6.4 names: one JSON
// document per fit-loop invocation.
type Session struct {
	ID                string          `json:"id"`
	StartedAt         time.Time       `json:"startedAt"`
	DurationMs        int64           `json:"durationMs"`
	Budget            int             `json:"budget"`
	TotalTokensBefore int             `json:"totalTokensBefore"`
	TotalTokensAfter  int             `json:"totalTokensAfter"`
	Iterations        int             `json:"iterations"`
	Status            Status          `json:"status"`
	Error             string          `json:"error,omitempty"`
	Snapshots         Snapshots       `json:"snapshots"`
	StrategyEvents    []StrategyEvent `json:"strategyEvents"`
	Timing            Timing          `json:"timing"`
	Trace             []string        `json:"trace,omitempty"`
	Initiator         string          `json:"initiator,omitempty"`
	Source            string          `json:"source,omitempty"`
	Label             string          `json:"label,omitempty"`
}
