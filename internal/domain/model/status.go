package model

import (
	"sort"
	"strings"
)

// OrderStatus describes a position in the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusPaymentPending   OrderStatus = "payment_pending"
	OrderStatusPaymentCompleted OrderStatus = "payment_completed"
	OrderStatusProcessing       OrderStatus = "processing"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusRefunded         OrderStatus = "refunded"
)

// PaymentStatus describes a payment record state as reported by the gateway.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// allowedTransitions is the legal lifecycle graph. Built once, never mutated.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusPaymentPending, OrderStatusCancelled},
	OrderStatusPaymentPending:   {OrderStatusPaymentCompleted, OrderStatusCancelled},
	OrderStatusPaymentCompleted: {OrderStatusProcessing, OrderStatusRefunded},
	OrderStatusProcessing:       {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:          {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:        {OrderStatusRefunded},
	OrderStatusCancelled:        {},
	OrderStatusRefunded:         {},
}

// Known reports whether the status belongs to the fixed vocabulary.
func (s OrderStatus) Known() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// AllowedNext returns a copy of the legal successor set for the status.
func (s OrderStatus) AllowedNext() []OrderStatus {
	next := allowedTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is a legal successor of the status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// OrderStatuses returns the whole vocabulary in stable order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, 0, len(allowedTransitions))
	for s := range allowedTransitions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FormatStatusList renders a successor set for messages, "none" when empty.
func FormatStatusList(statuses []OrderStatus) string {
	if len(statuses) == 0 {
		return "none"
	}
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
