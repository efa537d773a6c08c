// Package batch owns the aggregate view of a candidate list: summary
// recomputation, filtering, exports and the submit step against the remote
// order API.
package batch

import "github.com/datamart/bulkorder/internal/domain"

// Summarize recomputes the batch summary from scratch. Summaries are never
// patched incrementally; callers rerun this after every mutation of the
// candidate list.
func Summarize(cands []domain.OrderCandidate) domain.BatchSummary {
	s := domain.BatchSummary{Total: len(cands)}
	for i := range cands {
		if cands[i].Valid {
			s.Valid++
			s.TotalCost += cands[i].Price
		}
	}
	s.Invalid = s.Total - s.Valid
	return s
}

// FilterMode selects a non-mutating view of the candidate list.
type FilterMode string

const (
	FilterAll         FilterMode = "all"
	FilterValidOnly   FilterMode = "valid"
	FilterInvalidOnly FilterMode = "invalid"
)

// Filter returns the candidates matching the mode, preserving order.
func Filter(cands []domain.OrderCandidate, mode FilterMode) []domain.OrderCandidate {
	if mode == FilterAll || mode == "" {
		return cands
	}

	wantValid := mode == FilterValidOnly
	var out []domain.OrderCandidate
	for i := range cands {
		if cands[i].Valid == wantValid {
			out = append(out, cands[i])
		}
	}
	return out
}
