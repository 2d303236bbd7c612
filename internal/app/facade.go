package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/domain/repository"
	"github.com/polkiloo/orderstate/internal/usecase"
)

// LifecycleFacade aggregates the use cases behind one application surface
// consumed by HTTP handlers and the reconciliation worker.
type LifecycleFacade struct {
	auth       *usecase.AuthUseCase
	transition *usecase.TransitionUseCase
	validation *usecase.ValidationUseCase
	intake     *usecase.IntakeUseCase
	payments   repository.PaymentRepository
}

// NewLifecycleFacade constructs LifecycleFacade.
func NewLifecycleFacade(
	auth *usecase.AuthUseCase,
	transition *usecase.TransitionUseCase,
	validation *usecase.ValidationUseCase,
	intake *usecase.IntakeUseCase,
	payments repository.PaymentRepository,
) *LifecycleFacade {
	return &LifecycleFacade{
		auth:       auth,
		transition: transition,
		validation: validation,
		intake:     intake,
		payments:   payments,
	}
}

func (f *LifecycleFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *LifecycleFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *LifecycleFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// ActorLogin resolves the login used as changed_by on audit entries.
func (f *LifecycleFacade) ActorLogin(ctx context.Context, adminID int64) (string, error) {
	admin, err := f.auth.GetByID(ctx, adminID)
	if err != nil {
		return "", err
	}
	return admin.Login, nil
}

func (f *LifecycleFacade) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []usecase.OrderItemInput, actor string) (*model.Order, error) {
	return f.intake.CreateOrder(ctx, userID, total, items, actor)
}

func (f *LifecycleFacade) Order(ctx context.Context, orderID int64) (*model.Order, []model.OrderItem, error) {
	return f.intake.OrderWithItems(ctx, orderID)
}

func (f *LifecycleFacade) OrderPayments(ctx context.Context, orderID int64) ([]model.Payment, error) {
	return f.intake.PaymentsForOrder(ctx, orderID)
}

func (f *LifecycleFacade) RecordPayment(ctx context.Context, input usecase.PaymentInput) (*model.Payment, error) {
	return f.intake.RecordPayment(ctx, input)
}

func (f *LifecycleFacade) Transition(ctx context.Context, req usecase.TransitionRequest) *model.TransitionResult {
	return f.transition.Transition(ctx, req)
}

func (f *LifecycleFacade) CanTransition(ctx context.Context, orderID int64, target model.OrderStatus) *model.TransitionPreview {
	return f.transition.CanTransitionTo(ctx, orderID, target)
}

func (f *LifecycleFacade) BatchTransition(ctx context.Context, reqs []usecase.TransitionRequest) []*model.TransitionResult {
	return f.transition.BatchTransition(ctx, reqs)
}

func (f *LifecycleFacade) OrderHistory(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	return f.transition.History(ctx, orderID)
}

func (f *LifecycleFacade) PaymentReadiness(ctx context.Context, orderID int64) *model.ValidationReport {
	return f.validation.ValidateOrderReadyForPayment(ctx, orderID)
}

func (f *LifecycleFacade) PaymentValidation(ctx context.Context, paymentID int64) *model.ValidationReport {
	return f.validation.ValidatePostPaymentState(ctx, paymentID)
}

func (f *LifecycleFacade) BatchPaymentValidation(ctx context.Context, paymentIDs []int64) []*model.ValidationReport {
	return f.validation.BatchValidatePayments(ctx, paymentIDs)
}

// PaymentsForReconciliation feeds the background sweep with recently
// completed payments.
func (f *LifecycleFacade) PaymentsForReconciliation(ctx context.Context, since time.Time, limit int) ([]model.Payment, error) {
	return f.payments.SelectRecentCompleted(ctx, since, limit)
}
