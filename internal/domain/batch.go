package domain

import "time"

// BatchState is the submission state machine for a batch. A batch may be
// re-submitted after a failure, but never while a submission is in flight.
type BatchState string

const (
	BatchIdle       BatchState = "idle"
	BatchSubmitting BatchState = "submitting"
	BatchCompleted  BatchState = "completed"
	BatchFailed     BatchState = "failed"
)

// Batch groups the order candidates accumulated by one user session.
type Batch struct {
	ID        string     `json:"id"`
	State     BatchState `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BatchSummary is derived from the current candidate list and never stored.
// Invariants: Valid+Invalid == Total, TotalCost == sum of Price over valid
// candidates.
type BatchSummary struct {
	Total     int     `json:"total"`
	Valid     int     `json:"valid"`
	Invalid   int     `json:"invalid"`
	TotalCost float64 `json:"total_cost"`
}
