package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/datamart/bulkorder/internal/domain"
	"github.com/datamart/bulkorder/internal/orderapi"
	"github.com/datamart/bulkorder/internal/repository"
)

var (
	ErrNoValidOrders  = errors.New("no valid orders to submit")
	ErrSubmitInFlight = errors.New("a submission for this batch is already in flight")
)

// InsufficientBalanceError blocks submission when the batch cost exceeds the
// wallet. The batch stays editable and exportable.
type InsufficientBalanceError struct {
	Required  float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: requires GHS %.2f, available GHS %.2f",
		e.Required, e.Available)
}

// OrderSubmitter is the remote order-submission collaborator.
type OrderSubmitter interface {
	SubmitOrders(ctx context.Context, items []orderapi.OrderItem) (*orderapi.SubmitResult, error)
}

// SubmitResult reports a completed submission. ProcessedCount and NewBalance
// come from the collaborator and are authoritative.
type SubmitResult struct {
	ProcessedCount int     `json:"processed_count"`
	NewBalance     float64 `json:"new_balance"`
}

// Service coordinates batch lifecycle and submission. Submission is a state
// machine (idle -> submitting -> completed|failed); at most one submission
// per batch may be in flight, enforced here rather than by UI discipline.
type Service struct {
	batchRepo *repository.BatchRepo
	candRepo  *repository.CandidateRepo
	orders    OrderSubmitter

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(
	batchRepo *repository.BatchRepo,
	candRepo *repository.CandidateRepo,
	orders OrderSubmitter,
) *Service {
	return &Service{
		batchRepo: batchRepo,
		candRepo:  candRepo,
		orders:    orders,
		inFlight:  make(map[string]bool),
	}
}

// Create starts a new empty batch in the idle state.
func (s *Service) Create() (*domain.Batch, error) {
	now := time.Now()
	b := &domain.Batch{
		ID:        uuid.NewString(),
		State:     domain.BatchIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.batchRepo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns a batch with its (optionally filtered) candidates and a fresh
// summary. The summary always covers the whole batch regardless of filter.
func (s *Service) Get(batchID string, mode FilterMode) (*domain.Batch, []domain.OrderCandidate, domain.BatchSummary, error) {
	b, err := s.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, nil, domain.BatchSummary{}, fmt.Errorf("load batch: %w", err)
	}

	all, err := s.candRepo.ListByBatch(batchID, repository.FilterAll)
	if err != nil {
		return nil, nil, domain.BatchSummary{}, fmt.Errorf("list candidates: %w", err)
	}

	return b, Filter(all, mode), Summarize(all), nil
}

// Clear removes every candidate from the batch and resets it to idle.
func (s *Service) Clear(batchID string) error {
	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return fmt.Errorf("load batch: %w", err)
	}
	if err := s.candRepo.DeleteByBatch(batchID); err != nil {
		return err
	}
	return s.batchRepo.UpdateState(batchID, domain.BatchIdle)
}

// RemoveFile drops the rows contributed by one uploaded file and returns the
// refreshed summary.
func (s *Service) RemoveFile(batchID, fileID string) (int, domain.BatchSummary, error) {
	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return 0, domain.BatchSummary{}, fmt.Errorf("load batch: %w", err)
	}

	removed, err := s.candRepo.DeleteByFile(batchID, fileID)
	if err != nil {
		return 0, domain.BatchSummary{}, err
	}

	all, err := s.candRepo.ListByBatch(batchID, repository.FilterAll)
	if err != nil {
		return 0, domain.BatchSummary{}, fmt.Errorf("list candidates: %w", err)
	}
	return removed, Summarize(all), nil
}

// Submit sends the batch's valid candidates to the order API in one request.
// Preconditions (at least one valid candidate, sufficient wallet balance) are
// checked before any state transition. On collaborator failure, candidate
// statuses are left untouched so the user can retry without re-parsing.
func (s *Service) Submit(ctx context.Context, batchID string, walletBalance float64) (*SubmitResult, error) {
	s.mu.Lock()
	if s.inFlight[batchID] {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight[batchID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, batchID)
		s.mu.Unlock()
	}()

	b, err := s.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if b.State == domain.BatchSubmitting {
		// A previous process died mid-submission, or another instance
		// is working on this batch.
		return nil, ErrSubmitInFlight
	}

	all, err := s.candRepo.ListByBatch(batchID, repository.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	valid := Filter(all, FilterValidOnly)
	if len(valid) == 0 {
		return nil, ErrNoValidOrders
	}

	cost := Summarize(all).TotalCost
	if cost > walletBalance {
		return nil, &InsufficientBalanceError{Required: cost, Available: walletBalance}
	}

	items := make([]orderapi.OrderItem, 0, len(valid))
	for i := range valid {
		items = append(items, orderapi.OrderItem{
			ProductID:         valid[i].ProductID,
			BeneficiaryNumber: valid[i].Phone,
			Quantity:          1,
		})
	}

	if err := s.batchRepo.UpdateState(batchID, domain.BatchSubmitting); err != nil {
		return nil, err
	}

	result, err := s.orders.SubmitOrders(ctx, items)
	if err != nil {
		if stateErr := s.batchRepo.UpdateState(batchID, domain.BatchFailed); stateErr != nil {
			log.Printf("[batch] WARNING: failed to record failed state for %s: %v", batchID, stateErr)
		}
		return nil, fmt.Errorf("submit batch: %w", err)
	}

	if err := s.candRepo.MarkValidCompleted(batchID); err != nil {
		log.Printf("[batch] WARNING: submission succeeded but status update failed for %s: %v", batchID, err)
	}
	if err := s.batchRepo.UpdateState(batchID, domain.BatchCompleted); err != nil {
		log.Printf("[batch] WARNING: failed to record completed state for %s: %v", batchID, err)
	}

	log.Printf("[batch] Submitted batch %s: %d orders, GHS %.2f, new balance GHS %.2f",
		batchID, result.ProcessedCount, cost, result.NewBalance)

	return &SubmitResult{
		ProcessedCount: result.ProcessedCount,
		NewBalance:     result.NewBalance,
	}, nil
}
