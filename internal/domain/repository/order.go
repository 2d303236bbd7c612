package repository

import (
	"context"

	"github.com/polkiloo/orderstate/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// UpdateStatus writes the new status only while the row still carries
	// expected; a lost race surfaces as ErrStatusConflict.
	UpdateStatus(ctx context.Context, orderID int64, expected, next model.OrderStatus) error
}
