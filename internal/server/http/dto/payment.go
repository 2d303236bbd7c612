package dto

import "time"

// RecordPaymentRequest describes a payment record payload.
type RecordPaymentRequest struct {
	OrderID       int64          `json:"order_id"`
	Method        string         `json:"payment_method"`
	Amount        string         `json:"amount"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transaction_id,omitempty"`
	PaymentData   map[string]any `json:"payment_data,omitempty"`
}

// PaymentResponse describes a stored payment.
type PaymentResponse struct {
	ID            int64          `json:"id"`
	OrderID       int64          `json:"order_id"`
	Method        string         `json:"payment_method"`
	Amount        string         `json:"amount"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transaction_id"`
	PaymentData   map[string]any `json:"payment_data,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ValidationReportResponse carries the outcome of consistency checks.
type ValidationReportResponse struct {
	PaymentID int64          `json:"payment_id,omitempty"`
	Valid     bool           `json:"valid"`
	Errors    []string       `json:"errors"`
	Warnings  []string       `json:"warnings"`
	Data      map[string]any `json:"data,omitempty"`
}

// BatchValidationRequest lists payments to validate independently.
type BatchValidationRequest struct {
	PaymentIDs []int64 `json:"payment_ids"`
}
