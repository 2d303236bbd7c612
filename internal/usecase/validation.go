package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/domain/repository"
)

// amountTolerance is the threshold below which amount differences are treated
// as representation noise rather than a real mismatch.
var amountTolerance = decimal.NewFromFloat(0.01)

// ValidationUseCase runs read-only consistency checks between payments, their
// parent orders and sibling payments. No operation here mutates the store.
type ValidationUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	logger   *slog.Logger
}

// NewValidationUseCase constructs ValidationUseCase.
func NewValidationUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, logger *slog.Logger) *ValidationUseCase {
	return &ValidationUseCase{orders: orders, payments: payments, logger: logger}
}

// ValidateAmount cross-checks a payment amount against the order total.
// The error fires only beyond the tolerance; the directional warnings fire on
// any strict difference, independently of the error.
func (u *ValidationUseCase) ValidateAmount(payment *model.Payment, order *model.Order) *model.ValidationReport {
	report := model.NewValidationReport()
	if payment == nil {
		report.AddError("payment is missing")
		return report
	}
	if order == nil {
		report.AddError("order is missing")
		return report
	}

	difference := payment.Amount.Sub(order.TotalAmount)
	report.Data["payment_amount"] = payment.Amount.String()
	report.Data["order_amount"] = order.TotalAmount.String()
	report.Data["amount_difference"] = difference.String()

	if difference.Abs().GreaterThan(amountTolerance) {
		report.AddError("payment amount does not match order total")
	}
	if payment.Amount.LessThan(order.TotalAmount) {
		report.AddWarning("payment amount is less than order total")
	}
	if payment.Amount.GreaterThan(order.TotalAmount) {
		report.AddWarning("payment amount exceeds order total")
	}
	return report
}

// ValidatePaymentStatus checks the payment state makes sense after payment
// completion. Pending and failed are hard errors, unknown states warn only.
func (u *ValidationUseCase) ValidatePaymentStatus(payment *model.Payment) *model.ValidationReport {
	report := model.NewValidationReport()
	if payment == nil {
		report.AddError("payment is missing")
		return report
	}

	report.Data["payment_status"] = string(payment.Status)
	switch payment.Status {
	case model.PaymentStatusPending, model.PaymentStatusFailed:
		report.AddError(fmt.Sprintf("payment status %s is invalid for post-payment validation", payment.Status))
	case model.PaymentStatusCompleted, model.PaymentStatusProcessing:
	default:
		report.AddWarning(fmt.Sprintf("unexpected payment status: %s", payment.Status))
	}
	return report
}

// ValidateOrderStatus checks the order state is consistent with a completed
// payment. Statuses before payment are hard errors; anything outside the
// post-payment path, cancelled included, warns only.
func (u *ValidationUseCase) ValidateOrderStatus(order *model.Order) *model.ValidationReport {
	report := model.NewValidationReport()
	if order == nil {
		report.AddError("order is missing")
		return report
	}

	report.Data["order_status"] = string(order.Status)
	switch order.Status {
	case model.OrderStatusPending, model.OrderStatusPaymentPending:
		report.AddError(fmt.Sprintf("order status %s is inconsistent with completed payment", order.Status))
	case model.OrderStatusPaymentCompleted, model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered:
	default:
		report.AddWarning(fmt.Sprintf("unexpected order status: %s", order.Status))
	}
	return report
}

// ValidateTransactionID checks the gateway transaction id is present and not
// shared with any other payment. The uniqueness check needs a store round
// trip; its failure is reported as an error entry, not raised.
func (u *ValidationUseCase) ValidateTransactionID(ctx context.Context, payment *model.Payment) *model.ValidationReport {
	report := model.NewValidationReport()
	if payment == nil {
		report.AddError("payment is missing")
		return report
	}

	if strings.TrimSpace(payment.TransactionID) == "" {
		report.AddError("transaction id is missing")
		return report
	}

	report.Data["transaction_id"] = payment.TransactionID
	count, err := u.payments.CountByTransactionID(ctx, payment.TransactionID, payment.ID)
	if err != nil {
		u.logger.Error("transaction id uniqueness check failed",
			slog.Int64("payment_id", payment.ID), slog.String("error", err.Error()))
		report.AddError(fmt.Sprintf("transaction id check failed: %v", err))
		return report
	}
	if count > 0 {
		report.AddError(fmt.Sprintf("duplicate transaction id %s", payment.TransactionID))
	}
	return report
}

// ValidateTotalPayments checks that completed payments cover the order total.
// An uncovered total is an error, overpayment beyond tolerance only warns.
func (u *ValidationUseCase) ValidateTotalPayments(payments []model.Payment, order *model.Order) *model.ValidationReport {
	report := model.NewValidationReport()
	if order == nil {
		report.AddError("order is missing")
		return report
	}
	if len(payments) == 0 {
		report.AddError("no payments found")
		return report
	}

	totalPaid := decimal.Zero
	completed := 0
	for _, p := range payments {
		if p.Status == model.PaymentStatusCompleted {
			totalPaid = totalPaid.Add(p.Amount)
			completed++
		}
	}

	report.Data["total_paid"] = totalPaid.String()
	report.Data["order_amount"] = order.TotalAmount.String()
	report.Data["completed_payments"] = completed
	report.Data["total_payments"] = len(payments)

	if totalPaid.LessThan(order.TotalAmount.Sub(amountTolerance)) {
		report.AddError("total completed payments are less than order amount")
	}
	if totalPaid.GreaterThan(order.TotalAmount.Add(amountTolerance)) {
		report.AddWarning("total completed payments exceed order amount")
	}
	return report
}

// ValidatePostPaymentState loads the payment and its order and runs every
// consistency check, folding all findings into one report. Safe to call any
// number of times; results only change when the underlying rows do.
func (u *ValidationUseCase) ValidatePostPaymentState(ctx context.Context, paymentID int64) *model.ValidationReport {
	report := model.NewValidationReport()
	report.PaymentID = paymentID

	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			report.AddError(fmt.Sprintf("payment %d not found", paymentID))
		} else {
			report.AddError(fmt.Sprintf("load payment: %v", err))
		}
		return report
	}

	order, err := u.orders.GetByID(ctx, payment.OrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			report.AddError(fmt.Sprintf("order %d not found", payment.OrderID))
		} else {
			report.AddError(fmt.Sprintf("load order: %v", err))
		}
		return report
	}

	report.Data["payment"] = map[string]any{
		"id":       payment.ID,
		"order_id": payment.OrderID,
		"method":   payment.Method,
		"amount":   payment.Amount.String(),
		"status":   string(payment.Status),
	}
	report.Data["order"] = map[string]any{
		"id":           order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount.String(),
		"status":       string(order.Status),
	}

	report.Merge(u.ValidatePaymentStatus(payment))
	report.Merge(u.ValidateOrderStatus(order))
	report.Merge(u.ValidateAmount(payment, order))
	report.Merge(u.ValidateTransactionID(ctx, payment))

	siblings, err := u.payments.ListByOrder(ctx, order.ID)
	if err != nil {
		report.AddError(fmt.Sprintf("list payments: %v", err))
		return report
	}
	report.Merge(u.ValidateTotalPayments(siblings, order))

	return report
}

// ValidateOrderReadyForPayment pre-checks an order before a payment attempt:
// it must exist, sit before payment in the lifecycle and carry a positive total.
func (u *ValidationUseCase) ValidateOrderReadyForPayment(ctx context.Context, orderID int64) *model.ValidationReport {
	report := model.NewValidationReport()

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			report.AddError(fmt.Sprintf("order %d not found", orderID))
		} else {
			report.AddError(fmt.Sprintf("load order: %v", err))
		}
		return report
	}

	report.Data["order_id"] = order.ID
	report.Data["order_status"] = string(order.Status)
	report.Data["order_amount"] = order.TotalAmount.String()

	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusPaymentPending {
		report.AddError(fmt.Sprintf("order status %s is not ready for payment", order.Status))
	}
	if !order.TotalAmount.IsPositive() {
		report.AddError("order total amount must be positive")
	}
	return report
}

// BatchValidatePayments validates each payment independently, one tagged
// report per id in input order.
func (u *ValidationUseCase) BatchValidatePayments(ctx context.Context, paymentIDs []int64) []*model.ValidationReport {
	reports := make([]*model.ValidationReport, 0, len(paymentIDs))
	for _, id := range paymentIDs {
		reports = append(reports, u.ValidatePostPaymentState(ctx, id))
	}
	return reports
}
