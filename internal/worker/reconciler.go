package worker

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/orderstate/internal/domain/model"
)

// LifecycleFacade exposes the subset of application functionality required by the worker.
type LifecycleFacade interface {
	PaymentsForReconciliation(ctx context.Context, since time.Time, limit int) ([]model.Payment, error)
	PaymentValidation(ctx context.Context, paymentID int64) *model.ValidationReport
}

// Reconciler periodically sweeps recently completed payments and runs the
// post-payment validator over them. Validation is read-only, so concurrent
// workers are safe.
type Reconciler struct {
	facade       LifecycleFacade
	pollInterval time.Duration
	lookback     time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade LifecycleFacade, pollInterval, lookback time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		lookback:     lookback,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	since := time.Now().Add(-r.lookback)
	payments, err := r.facade.PaymentsForReconciliation(ctx, since, r.batchSize)
	if err != nil {
		r.logger.Error("fetch payments for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- payment:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, payment)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, payment model.Payment) {
	report := r.facade.PaymentValidation(ctx, payment.ID)
	if report.Valid {
		if len(report.Warnings) > 0 {
			r.logger.Warn("payment reconciliation passed with warnings",
				slog.Int64("payment_id", payment.ID),
				slog.Int64("order_id", payment.OrderID),
				slog.String("warnings", strings.Join(report.Warnings, "; ")))
		}
		return
	}
	r.logger.Error("payment reconciliation failed",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("order_id", payment.OrderID),
		slog.String("errors", strings.Join(report.Errors, "; ")),
		slog.String("warnings", strings.Join(report.Warnings, "; ")))
}
