package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	testhelpers "github.com/polkiloo/orderstate/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTransitionUseCase() (*TransitionUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.HistoryRepositoryStub) {
	orders := testhelpers.NewOrderRepositoryStub()
	history := &testhelpers.HistoryRepositoryStub{}
	return NewTransitionUseCase(orders, history, discardLogger()), orders, history
}

func seedOrder(orders *testhelpers.OrderRepositoryStub, status model.OrderStatus) *model.Order {
	return orders.Add(&model.Order{
		UserID:      1,
		TotalAmount: decimal.NewFromInt(100),
		Status:      status,
	})
}

func TestValidateTransitionLegalPairs(t *testing.T) {
	legal := []struct {
		from, to model.OrderStatus
	}{
		{model.OrderStatusPending, model.OrderStatusPaymentPending},
		{model.OrderStatusPending, model.OrderStatusCancelled},
		{model.OrderStatusPaymentPending, model.OrderStatusPaymentCompleted},
		{model.OrderStatusPaymentPending, model.OrderStatusCancelled},
		{model.OrderStatusPaymentCompleted, model.OrderStatusProcessing},
		{model.OrderStatusPaymentCompleted, model.OrderStatusRefunded},
		{model.OrderStatusProcessing, model.OrderStatusShipped},
		{model.OrderStatusProcessing, model.OrderStatusCancelled},
		{model.OrderStatusShipped, model.OrderStatusDelivered},
		{model.OrderStatusShipped, model.OrderStatusCancelled},
		{model.OrderStatusDelivered, model.OrderStatusRefunded},
	}

	allowed := make(map[model.OrderStatus]map[model.OrderStatus]bool)
	for _, pair := range legal {
		if allowed[pair.from] == nil {
			allowed[pair.from] = make(map[model.OrderStatus]bool)
		}
		allowed[pair.from][pair.to] = true
		if check := ValidateTransition(pair.from, pair.to); !check.Valid {
			t.Fatalf("expected %s -> %s to be valid, got %q", pair.from, pair.to, check.Reason)
		}
	}

	for _, from := range model.OrderStatuses() {
		for _, to := range model.OrderStatuses() {
			if allowed[from][to] {
				continue
			}
			if check := ValidateTransition(from, to); check.Valid {
				t.Fatalf("expected %s -> %s to be invalid", from, to)
			}
		}
	}
}

func TestValidateTransitionUnknownCurrent(t *testing.T) {
	check := ValidateTransition("archived", model.OrderStatusPending)
	if check.Valid {
		t.Fatal("expected invalid result")
	}
	if check.Reason != "invalid current status: archived" {
		t.Fatalf("unexpected reason %q", check.Reason)
	}
}

func TestValidateTransitionNamesAllowedSet(t *testing.T) {
	check := ValidateTransition(model.OrderStatusPending, model.OrderStatusShipped)
	if check.Valid {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(check.Reason, "payment_pending") || !strings.Contains(check.Reason, "cancelled") {
		t.Fatalf("reason must list allowed successors, got %q", check.Reason)
	}
}

func TestValidateTransitionTerminalReportsNone(t *testing.T) {
	for _, terminal := range []model.OrderStatus{model.OrderStatusCancelled, model.OrderStatusRefunded} {
		check := ValidateTransition(terminal, model.OrderStatusProcessing)
		if check.Valid {
			t.Fatalf("expected transition from %s to be rejected", terminal)
		}
		if !strings.Contains(check.Reason, "none") {
			t.Fatalf("expected empty successor set to render as none, got %q", check.Reason)
		}
	}
}

func TestTransitionFullLifecycle(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)

	sequence := []model.OrderStatus{
		model.OrderStatusPaymentPending,
		model.OrderStatusPaymentCompleted,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	}

	for i, target := range sequence {
		result := uc.Transition(context.Background(), TransitionRequest{
			OrderID: order.ID, Target: target, Actor: "ops", Reason: "step",
		})
		if !result.Success || result.Idempotent {
			t.Fatalf("step %d to %s failed: %+v", i, target, result)
		}
		if len(history.Entries) != i+1 {
			t.Fatalf("expected %d history entries after step %d, got %d", i+1, i, len(history.Entries))
		}
	}

	last := history.Entries[len(history.Entries)-1]
	if last.PreviousStatus == nil || *last.PreviousStatus != model.OrderStatusShipped {
		t.Fatalf("unexpected previous status in last entry: %+v", last)
	}
	if last.NewStatus != model.OrderStatusDelivered || last.ChangedBy != "ops" {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestTransitionIdempotentNoHistory(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusProcessing)

	for i := 0; i < 3; i++ {
		result := uc.Transition(context.Background(), TransitionRequest{
			OrderID: order.ID, Target: model.OrderStatusProcessing, Actor: "ops",
		})
		if !result.Success || !result.Idempotent {
			t.Fatalf("expected idempotent success, got %+v", result)
		}
		if result.PreviousStatus == nil || *result.PreviousStatus != model.OrderStatusProcessing {
			t.Fatalf("unexpected previous status: %+v", result)
		}
	}

	if len(history.Entries) != 0 {
		t.Fatalf("idempotent transitions must write no history, got %d entries", len(history.Entries))
	}
	if len(orders.Updates) != 0 {
		t.Fatal("idempotent transitions must not touch the order row")
	}
}

func TestTransitionFromTerminalRejected(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusCancelled)

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: order.ID, Target: model.OrderStatusProcessing, Actor: "ops",
	})
	if result.Success {
		t.Fatal("expected rejection from terminal status")
	}
	if result.Kind != model.FailureInvalidTransition {
		t.Fatalf("unexpected failure kind %q", result.Kind)
	}
	if len(history.Entries) != 0 {
		t.Fatal("failed transition must write no history")
	}
	if orders.Orders[order.ID].Status != model.OrderStatusCancelled {
		t.Fatal("failed transition must not change status")
	}
}

func TestTransitionUnknownTargetRejectedEvenWithForce(t *testing.T) {
	uc, orders, _ := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: order.ID, Target: "archived", Actor: "ops", Force: true,
	})
	if result.Success {
		t.Fatal("unknown target must be rejected")
	}
	if result.Kind != model.FailureInvalidTransition {
		t.Fatalf("unexpected failure kind %q", result.Kind)
	}
}

func TestTransitionForceBypassesGraph(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: order.ID, Target: model.OrderStatusShipped, Actor: "admin", Reason: "manual fix", Force: true,
	})
	if !result.Success {
		t.Fatalf("forced transition failed: %+v", result)
	}
	if orders.Orders[order.ID].Status != model.OrderStatusShipped {
		t.Fatal("forced transition must persist status")
	}
	if len(history.Entries) != 1 || history.Entries[0].Reason != "manual fix" {
		t.Fatalf("forced transition must be audited, got %+v", history.Entries)
	}
}

func TestTransitionNotFound(t *testing.T) {
	uc, _, _ := newTransitionUseCase()

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: 404, Target: model.OrderStatusCancelled, Actor: "ops",
	})
	if result.Success {
		t.Fatal("expected failure for missing order")
	}
	if result.Kind != model.FailureNotFound {
		t.Fatalf("unexpected failure kind %q", result.Kind)
	}
	if result.PreviousStatus != nil || result.NewStatus != nil {
		t.Fatalf("missing order result must carry no status fields: %+v", result)
	}
}

func TestTransitionInfrastructureFailureIsData(t *testing.T) {
	uc, orders, _ := newTransitionUseCase()
	orders.Err = errors.New("connection reset")

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: 1, Target: model.OrderStatusCancelled, Actor: "ops",
	})
	if result.Success || result.Kind != model.FailureInfrastructure {
		t.Fatalf("expected infrastructure failure, got %+v", result)
	}
}

func TestTransitionConcurrentConflict(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)
	orders.UpdateErr = domainErrors.ErrStatusConflict

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: order.ID, Target: model.OrderStatusCancelled, Actor: "ops",
	})
	if result.Success {
		t.Fatal("expected conflict failure")
	}
	if result.Kind != model.FailureConflict {
		t.Fatalf("unexpected failure kind %q", result.Kind)
	}
	if len(history.Entries) != 0 {
		t.Fatal("lost race must write no history")
	}
}

func TestTransitionHistoryFailureDoesNotFailOperation(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)
	history.AppendErr = errors.New("history table gone")

	result := uc.Transition(context.Background(), TransitionRequest{
		OrderID: order.ID, Target: model.OrderStatusPaymentPending, Actor: "ops",
	})
	if !result.Success {
		t.Fatalf("transition must survive audit failure: %+v", result)
	}
	if orders.Orders[order.ID].Status != model.OrderStatusPaymentPending {
		t.Fatal("status change must stand despite audit failure")
	}
}

func TestCanTransitionToPreview(t *testing.T) {
	uc, orders, _ := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)

	preview := uc.CanTransitionTo(context.Background(), order.ID, model.OrderStatusPaymentPending)
	if !preview.CanTransition || preview.Idempotent {
		t.Fatalf("expected allowed preview, got %+v", preview)
	}
	if preview.CurrentStatus == nil || *preview.CurrentStatus != model.OrderStatusPending {
		t.Fatalf("preview must report current status, got %+v", preview)
	}

	same := uc.CanTransitionTo(context.Background(), order.ID, model.OrderStatusPending)
	if !same.CanTransition || !same.Idempotent {
		t.Fatalf("expected idempotent preview, got %+v", same)
	}

	bad := uc.CanTransitionTo(context.Background(), order.ID, model.OrderStatusDelivered)
	if bad.CanTransition {
		t.Fatalf("expected rejected preview, got %+v", bad)
	}

	missing := uc.CanTransitionTo(context.Background(), 404, model.OrderStatusPending)
	if missing.CanTransition || missing.Kind != model.FailureNotFound {
		t.Fatalf("expected not found preview, got %+v", missing)
	}

	if orders.Updates != nil {
		t.Fatal("previews must not mutate anything")
	}
}

func TestBatchTransitionIndependentEntries(t *testing.T) {
	uc, orders, history := newTransitionUseCase()
	first := seedOrder(orders, model.OrderStatusPending)
	second := seedOrder(orders, model.OrderStatusCancelled)
	third := seedOrder(orders, model.OrderStatusShipped)

	results := uc.BatchTransition(context.Background(), []TransitionRequest{
		{OrderID: first.ID, Target: model.OrderStatusPaymentPending, Actor: "ops"},
		{OrderID: second.ID, Target: model.OrderStatusProcessing, Actor: "ops"},
		{OrderID: third.ID, Target: model.OrderStatusDelivered, Actor: "ops"},
	})

	if len(results) != 3 {
		t.Fatalf("expected one result per entry, got %d", len(results))
	}
	if !results[0].Success || results[0].OrderID != first.ID {
		t.Fatalf("first entry should succeed: %+v", results[0])
	}
	if results[1].Success {
		t.Fatalf("second entry should fail: %+v", results[1])
	}
	if !results[2].Success || results[2].OrderID != third.ID {
		t.Fatalf("third entry must not be blocked by the second: %+v", results[2])
	}
	if len(history.Entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history.Entries))
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	uc, orders, _ := newTransitionUseCase()
	order := seedOrder(orders, model.OrderStatusPending)

	for _, target := range []model.OrderStatus{model.OrderStatusPaymentPending, model.OrderStatusPaymentCompleted} {
		if result := uc.Transition(context.Background(), TransitionRequest{OrderID: order.ID, Target: target, Actor: "ops"}); !result.Success {
			t.Fatalf("transition to %s failed: %+v", target, result)
		}
	}

	entries, err := uc.History(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].NewStatus != model.OrderStatusPaymentCompleted {
		t.Fatalf("expected newest entry first, got %+v", entries[0])
	}
}
