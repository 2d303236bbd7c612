package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/orderstate/internal/domain/model"
)

// WorkerFacadeStub mimics reconciler interactions with the lifecycle facade.
type WorkerFacadeStub struct {
	Payments   []model.Payment
	PaymentsFn func(context.Context, time.Time, int) ([]model.Payment, error)
	ValidateFn func(context.Context, int64) *model.ValidationReport

	mu        sync.Mutex
	validated []int64
	fetches   int
}

// PaymentsForReconciliation returns configured payments exactly once, then
// empty batches, unless an override is provided.
func (s *WorkerFacadeStub) PaymentsForReconciliation(ctx context.Context, since time.Time, limit int) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, since, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fetches > 1 {
		return nil, nil
	}
	return s.Payments, nil
}

// PaymentValidation records the validated id and returns a passing report
// unless an override is provided.
func (s *WorkerFacadeStub) PaymentValidation(ctx context.Context, paymentID int64) *model.ValidationReport {
	s.mu.Lock()
	s.validated = append(s.validated, paymentID)
	s.mu.Unlock()
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, paymentID)
	}
	report := model.NewValidationReport()
	report.PaymentID = paymentID
	return report
}

// Validated returns a snapshot of validated payment ids.
func (s *WorkerFacadeStub) Validated() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.validated))
	copy(out, s.validated)
	return out
}
