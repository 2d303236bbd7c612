package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment describes a single payment attempt against an order. An order may
// accumulate several payments whose completed amounts cover its total.
type Payment struct {
	ID            int64
	OrderID       int64
	Method        string
	Amount        decimal.Decimal
	Status        PaymentStatus
	TransactionID string
	PaymentData   map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
