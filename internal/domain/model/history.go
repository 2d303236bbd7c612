package model

import "time"

// StatusHistoryEntry is an immutable audit record of one order transition.
// PreviousStatus is nil for the entry written at order creation.
type StatusHistoryEntry struct {
	ID             int64
	OrderID        int64
	PreviousStatus *OrderStatus
	NewStatus      OrderStatus
	ChangedBy      string
	Reason         string
	CreatedAt      time.Time
}
