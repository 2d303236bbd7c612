package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	ActorLogin(ctx context.Context, adminID int64) (string, error)
}

// OrderFacade encapsulates order and payment intake exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []usecase.OrderItemInput, actor string) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, []model.OrderItem, error)
	OrderPayments(ctx context.Context, orderID int64) ([]model.Payment, error)
	RecordPayment(ctx context.Context, input usecase.PaymentInput) (*model.Payment, error)
}

// TransitionFacade drives the order lifecycle.
type TransitionFacade interface {
	Transition(ctx context.Context, req usecase.TransitionRequest) *model.TransitionResult
	CanTransition(ctx context.Context, orderID int64, target model.OrderStatus) *model.TransitionPreview
	BatchTransition(ctx context.Context, reqs []usecase.TransitionRequest) []*model.TransitionResult
	OrderHistory(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error)
}

// ValidationFacade provides the read-only consistency checks.
type ValidationFacade interface {
	PaymentReadiness(ctx context.Context, orderID int64) *model.ValidationReport
	PaymentValidation(ctx context.Context, paymentID int64) *model.ValidationReport
	BatchPaymentValidation(ctx context.Context, paymentIDs []int64) []*model.ValidationReport
}

// LifecycleFacade aggregates the full set of operations used across handlers.
type LifecycleFacade interface {
	AuthFacade
	OrderFacade
	TransitionFacade
	ValidationFacade
}
