package dto

import "time"

// OrderItemRequest describes one line of an order at intake.
type OrderItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// CreateOrderRequest describes order intake payload. Amounts travel as
// decimal strings.
type CreateOrderRequest struct {
	UserID      int64              `json:"user_id"`
	TotalAmount string             `json:"total_amount"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemResponse describes one stored order line.
type OrderItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// OrderResponse describes a stored order with its lines.
type OrderResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	TotalAmount string              `json:"total_amount"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// HistoryEntryResponse describes one audit record, newest first in lists.
type HistoryEntryResponse struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"order_id"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      string    `json:"changed_by"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
