package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/domain/repository"
)

// IntakeUseCase registers new orders and payment records so the lifecycle and
// validation machinery has material to work with.
type IntakeUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	history  repository.HistoryRepository
	logger   *slog.Logger
}

// NewIntakeUseCase constructs IntakeUseCase.
func NewIntakeUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, history repository.HistoryRepository, logger *slog.Logger) *IntakeUseCase {
	return &IntakeUseCase{orders: orders, payments: payments, history: history, logger: logger}
}

// OrderItemInput describes one order line at intake.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrder registers an order in pending status and writes the initial
// history entry with a nil previous status.
func (u *IntakeUseCase) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []OrderItemInput, actor string) (*model.Order, error) {
	if total.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	for _, item := range items {
		if item.Quantity <= 0 || item.Price.IsNegative() {
			return nil, domainErrors.ErrInvalidAmount
		}
	}

	modelItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		modelItems = append(modelItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := &model.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
	}
	created, err := u.orders.Create(ctx, order, modelItems)
	if err != nil {
		return nil, err
	}

	entry := &model.StatusHistoryEntry{
		OrderID:   created.ID,
		NewStatus: model.OrderStatusPending,
		ChangedBy: actor,
		Reason:    "order created",
	}
	if err := u.history.Append(ctx, entry); err != nil {
		u.logger.Error("append initial history failed",
			slog.Int64("order_id", created.ID), slog.String("error", err.Error()))
	}

	return created, nil
}

// PaymentInput describes a payment record at intake.
type PaymentInput struct {
	OrderID       int64
	Method        string
	Amount        decimal.Decimal
	Status        model.PaymentStatus
	TransactionID string
	PaymentData   map[string]any
}

// RecordPayment stores a payment row for an existing order. A blank
// transaction id gets a generated one so the uniqueness checks stay meaningful.
func (u *IntakeUseCase) RecordPayment(ctx context.Context, input PaymentInput) (*model.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	switch input.Status {
	case model.PaymentStatusPending, model.PaymentStatusProcessing, model.PaymentStatusCompleted,
		model.PaymentStatusFailed, model.PaymentStatusRefunded:
	default:
		return nil, domainErrors.ErrInvalidStatus
	}

	if _, err := u.orders.GetByID(ctx, input.OrderID); err != nil {
		return nil, err
	}

	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	payment := &model.Payment{
		OrderID:       input.OrderID,
		Method:        input.Method,
		Amount:        input.Amount,
		Status:        input.Status,
		TransactionID: transactionID,
		PaymentData:   input.PaymentData,
	}
	return u.payments.Create(ctx, payment)
}

// OrderWithItems fetches an order together with its lines.
func (u *IntakeUseCase) OrderWithItems(ctx context.Context, orderID int64) (*model.Order, []model.OrderItem, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := u.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// PaymentsForOrder lists payments recorded against the order.
func (u *IntakeUseCase) PaymentsForOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.payments.ListByOrder(ctx, orderID)
}
