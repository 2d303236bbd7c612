package repository

import (
	"context"
	"time"

	"github.com/polkiloo/orderstate/internal/domain/model"
)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByID(ctx context.Context, paymentID int64) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
	// CountByTransactionID counts payments sharing the transaction id,
	// excluding the payment identified by excludeID.
	CountByTransactionID(ctx context.Context, transactionID string, excludeID int64) (int64, error)
	// SelectRecentCompleted returns completed payments updated since the
	// cutoff, oldest first, for the reconciliation sweep.
	SelectRecentCompleted(ctx context.Context, since time.Time, limit int) ([]model.Payment, error)
}
