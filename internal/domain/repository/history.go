package repository

import (
	"context"

	"github.com/polkiloo/orderstate/internal/domain/model"
)

// HistoryRepository describes the append-only transition audit log.
type HistoryRepository interface {
	Append(ctx context.Context, entry *model.StatusHistoryEntry) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error)
}
