package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/domain/repository"
)

// TransitionUseCase owns the order lifecycle: it validates and performs
// status transitions and maintains the audit history. Expected failures are
// returned as data in the result, never as Go errors.
type TransitionUseCase struct {
	orders  repository.OrderRepository
	history repository.HistoryRepository
	logger  *slog.Logger
}

// NewTransitionUseCase constructs TransitionUseCase.
func NewTransitionUseCase(orders repository.OrderRepository, history repository.HistoryRepository, logger *slog.Logger) *TransitionUseCase {
	return &TransitionUseCase{orders: orders, history: history, logger: logger}
}

// TransitionRequest describes a single transition attempt.
type TransitionRequest struct {
	OrderID int64
	Target  model.OrderStatus
	Actor   string
	Reason  string
	Force   bool
}

// ValidateTransition checks transition legality against the lifecycle graph.
// Pure function, no I/O.
func ValidateTransition(current, target model.OrderStatus) model.TransitionCheck {
	if !current.Known() {
		return model.TransitionCheck{Reason: fmt.Sprintf("invalid current status: %s", current)}
	}
	if !current.CanTransitionTo(target) {
		return model.TransitionCheck{Reason: fmt.Sprintf(
			"cannot transition from %s to %s, allowed: %s",
			current, target, model.FormatStatusList(current.AllowedNext()),
		)}
	}
	return model.TransitionCheck{Valid: true}
}

// Transition moves the order to the target status. A request whose target
// equals the current status is an idempotent no-op and writes nothing.
// Force skips graph validation but still rejects unknown target statuses.
func (u *TransitionUseCase) Transition(ctx context.Context, req TransitionRequest) *model.TransitionResult {
	result := &model.TransitionResult{OrderID: req.OrderID}

	if !req.Target.Known() {
		result.Kind = model.FailureInvalidTransition
		result.Message = fmt.Sprintf("invalid target status: %s", req.Target)
		return result
	}

	order, err := u.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			result.Kind = model.FailureNotFound
			result.Message = fmt.Sprintf("order %d not found", req.OrderID)
			return result
		}
		u.logger.Error("load order for transition failed",
			slog.Int64("order_id", req.OrderID), slog.String("error", err.Error()))
		result.Kind = model.FailureInfrastructure
		result.Message = fmt.Sprintf("load order: %v", err)
		return result
	}

	current := order.Status
	if current == req.Target {
		status := current
		result.Success = true
		result.Idempotent = true
		result.PreviousStatus = &status
		result.NewStatus = &status
		result.Message = fmt.Sprintf("order already in status %s", current)
		return result
	}

	if req.Force {
		u.logger.Warn("forced status transition",
			slog.Int64("order_id", req.OrderID),
			slog.String("from", string(current)),
			slog.String("to", string(req.Target)),
			slog.String("actor", req.Actor))
	} else if check := ValidateTransition(current, req.Target); !check.Valid {
		result.Kind = model.FailureInvalidTransition
		result.Message = check.Reason
		return result
	}

	if err := u.orders.UpdateStatus(ctx, req.OrderID, current, req.Target); err != nil {
		if errors.Is(err, domainErrors.ErrStatusConflict) {
			result.Kind = model.FailureConflict
			result.Message = fmt.Sprintf("order %d status changed concurrently", req.OrderID)
			return result
		}
		u.logger.Error("update order status failed",
			slog.Int64("order_id", req.OrderID), slog.String("error", err.Error()))
		result.Kind = model.FailureInfrastructure
		result.Message = fmt.Sprintf("update order status: %v", err)
		return result
	}

	// The status write is authoritative; a failed audit append is logged
	// and does not fail the transition.
	previous := current
	entry := &model.StatusHistoryEntry{
		OrderID:        req.OrderID,
		PreviousStatus: &previous,
		NewStatus:      req.Target,
		ChangedBy:      req.Actor,
		Reason:         req.Reason,
	}
	if err := u.history.Append(ctx, entry); err != nil {
		u.logger.Error("append status history failed",
			slog.Int64("order_id", req.OrderID), slog.String("error", err.Error()))
	}

	target := req.Target
	result.Success = true
	result.PreviousStatus = &previous
	result.NewStatus = &target
	result.Message = fmt.Sprintf("order transitioned from %s to %s", previous, req.Target)
	return result
}

// CanTransitionTo previews a transition without side effects.
func (u *TransitionUseCase) CanTransitionTo(ctx context.Context, orderID int64, target model.OrderStatus) *model.TransitionPreview {
	preview := &model.TransitionPreview{OrderID: orderID}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			preview.Kind = model.FailureNotFound
			preview.Reason = fmt.Sprintf("order %d not found", orderID)
			return preview
		}
		preview.Kind = model.FailureInfrastructure
		preview.Reason = fmt.Sprintf("load order: %v", err)
		return preview
	}

	current := order.Status
	preview.CurrentStatus = &current

	if current == target {
		preview.CanTransition = true
		preview.Idempotent = true
		preview.Reason = fmt.Sprintf("order already in status %s", current)
		return preview
	}

	check := ValidateTransition(current, target)
	preview.CanTransition = check.Valid
	preview.Reason = check.Reason
	return preview
}

// BatchTransition applies each request independently and sequentially. One
// entry failing does not block the rest.
func (u *TransitionUseCase) BatchTransition(ctx context.Context, requests []TransitionRequest) []*model.TransitionResult {
	results := make([]*model.TransitionResult, 0, len(requests))
	for _, req := range requests {
		results = append(results, u.Transition(ctx, req))
	}
	return results
}

// History returns audit entries for the order, newest first.
func (u *TransitionUseCase) History(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	return u.history.ListByOrder(ctx, orderID)
}
