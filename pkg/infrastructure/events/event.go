package events

import (
	"time"
)

// Event types recorded over the life of a reconciliation run.
const (
	RunStartedEvent     = "run.started"
	StageCompletedEvent = "run.stage.completed"
	RunCompletedEvent   = "run.completed"
	RunFailedEvent      = "run.failed"
)

// Event is one recorded fact about a reconciliation run. Versions
// number events within their run, starting at 1.
type Event struct {
	Type    string    `json:"type"`
	RunID   string    `json:"run_id"`
	Data    any       `json:"data,omitempty"`
	Time    time.Time `json:"time"`
	Version int       `json:"version"`
}

// RunStarted opens a run's stream
type RunStarted struct {
	WindowDays int `json:"window_days"`
}

// StageCompleted marks one pipeline stage finished
type StageCompleted struct {
	Stage string `json:"stage"`
}

// RunCompleted closes a successful run with its headline counts
type RunCompleted struct {
	Rows           int   `json:"rows"`
	UnmatchedItems int   `json:"unmatched_items"`
	ExcludedRows   int   `json:"excluded_rows"`
	WindowDays     int   `json:"window_days"`
	ElapsedMS      int64 `json:"elapsed_ms"`
}

// RunFailed closes a failed run
type RunFailed struct {
	Error string `json:"error"`
}
