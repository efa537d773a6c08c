package domain

import "strconv"

// CandidateStatus tracks post-submission feedback on a single candidate.
type CandidateStatus string

const (
	StatusPending   CandidateStatus = "pending"
	StatusCompleted CandidateStatus = "completed"
	StatusFailed    CandidateStatus = "failed"
)

// OrderCandidate is one resolved input row awaiting batch submission. Raw
// tokens are kept for diagnostics even when normalization succeeds. Status is
// the only field mutated after resolution.
type OrderCandidate struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batch_id"`
	FileID      string          `json:"file_id,omitempty"`
	FileName    string          `json:"file_name,omitempty"`
	RowIndex    int             `json:"row_index"`
	RawPhone    string          `json:"raw_phone"`
	RawCapacity string          `json:"raw_capacity"`
	Phone       string          `json:"phone,omitempty"`
	Capacity    *Capacity       `json:"capacity,omitempty"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Price       float64         `json:"price"`
	Valid       bool            `json:"valid"`
	Errors      []string        `json:"errors,omitempty"`
	Status      CandidateStatus `json:"status"`
}

// CapacityLabel returns the normalized capacity for display, falling back to
// the raw token when parsing failed.
func (c *OrderCandidate) CapacityLabel() string {
	if c.Capacity != nil {
		return c.Capacity.Label()
	}
	return c.RawCapacity
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
