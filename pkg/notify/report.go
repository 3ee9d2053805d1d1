package notify

import (
	"time"

	"github.com/samvad-hq/board-monitor/internal/domain"
)

// Report is the payload delivered to notification sinks after a run.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Boards      []domain.BoardResult `json:"boards"`
}

// NewReport wraps the ordered board results with a UTC timestamp.
func NewReport(results []domain.BoardResult) Report {
	return Report{
		GeneratedAt: time.Now().UTC(),
		Boards:      results,
	}
}

// HasNew reports whether any board surfaced new items this run.
func (r Report) HasNew() bool {
	for _, b := range r.Boards {
		if len(b.AddedItems) > 0 {
			return true
		}
	}
	return false
}

// HasErrors reports whether any board pass failed this run.
func (r Report) HasErrors() bool {
	for _, b := range r.Boards {
		if b.Failed() {
			return true
		}
	}
	return false
}
