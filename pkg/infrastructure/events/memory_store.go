package events

import (
	"sync"
	"time"
)

// Store records run events. Implementations must be safe for
// concurrent use; the HTTP server appends and reads from different
// goroutines.
type Store interface {
	Append(runID, eventType string, data any) error
	Run(runID string) ([]Event, error)
	Summaries() ([]Summary, error)
}

// Summary condenses one run's stream for listings
type Summary struct {
	RunID   string    `json:"run_id"`
	Started time.Time `json:"started"`
	Outcome string    `json:"outcome"`
	Events  int       `json:"events"`
}

// InMemoryStore keeps run streams in memory, in arrival order. The
// journal lives and dies with the process.
type InMemoryStore struct {
	mu    sync.RWMutex
	runs  map[string][]Event
	order []string
}

// NewInMemoryStore creates an empty journal
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string][]Event)}
}

// Verify interface compliance
var _ Store = (*InMemoryStore)(nil)

// Append records an event at the end of a run's stream
func (s *InMemoryStore) Append(runID, eventType string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; !exists {
		s.order = append(s.order, runID)
	}

	s.runs[runID] = append(s.runs[runID], Event{
		Type:    eventType,
		RunID:   runID,
		Data:    data,
		Time:    time.Now(),
		Version: len(s.runs[runID]) + 1,
	})
	return nil
}

// Run returns one run's events in append order. Unknown run IDs
// return an empty stream.
func (s *InMemoryStore) Run(runID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.runs[runID]
	out := make([]Event, len(stream))
	copy(out, stream)
	return out, nil
}

// Summaries lists recorded runs, newest first
func (s *InMemoryStore) Summaries() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		runID := s.order[i]
		stream := s.runs[runID]
		if len(stream) == 0 {
			continue
		}
		out = append(out, Summary{
			RunID:   runID,
			Started: stream[0].Time,
			Outcome: outcome(stream),
			Events:  len(stream),
		})
	}
	return out, nil
}

// outcome reads a stream's terminal state from its last event
func outcome(stream []Event) string {
	switch stream[len(stream)-1].Type {
	case RunCompletedEvent:
		return "completed"
	case RunFailedEvent:
		return "failed"
	default:
		return "running"
	}
}
