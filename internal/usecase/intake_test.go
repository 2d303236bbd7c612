package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	testhelpers "github.com/polkiloo/orderstate/internal/test"
)

func newIntakeUseCase() (*IntakeUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.PaymentRepositoryStub, *testhelpers.HistoryRepositoryStub) {
	orders := testhelpers.NewOrderRepositoryStub()
	payments := testhelpers.NewPaymentRepositoryStub()
	history := &testhelpers.HistoryRepositoryStub{}
	return NewIntakeUseCase(orders, payments, history, discardLogger()), orders, payments, history
}

func TestCreateOrder(t *testing.T) {
	uc, orders, _, history := newIntakeUseCase()

	created, err := uc.CreateOrder(context.Background(), 42, amount("120.50"), []OrderItemInput{
		{ProductID: 1, Quantity: 2, Price: amount("50.00")},
		{ProductID: 2, Quantity: 1, Price: amount("20.50")},
	}, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 || created.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", created)
	}
	if len(orders.Items[created.ID]) != 2 {
		t.Fatalf("expected 2 items, got %d", len(orders.Items[created.ID]))
	}
	if len(history.Entries) != 1 {
		t.Fatalf("expected initial history entry, got %d", len(history.Entries))
	}
	entry := history.Entries[0]
	if entry.PreviousStatus != nil || entry.NewStatus != model.OrderStatusPending || entry.Reason != "order created" {
		t.Fatalf("unexpected initial entry: %+v", entry)
	}
}

func TestCreateOrderRejectsBadAmounts(t *testing.T) {
	uc, _, _, _ := newIntakeUseCase()

	if _, err := uc.CreateOrder(context.Background(), 1, amount("-5"), nil, "admin"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.CreateOrder(context.Background(), 1, amount("10"), []OrderItemInput{{ProductID: 1, Quantity: 0, Price: amount("10")}}, "admin"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero quantity, got %v", err)
	}
	if _, err := uc.CreateOrder(context.Background(), 1, amount("10"), []OrderItemInput{{ProductID: 1, Quantity: 1, Price: amount("-1")}}, "admin"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative price, got %v", err)
	}
}

func TestCreateOrderSurvivesHistoryFailure(t *testing.T) {
	uc, _, _, history := newIntakeUseCase()
	history.AppendErr = errors.New("history unavailable")

	created, err := uc.CreateOrder(context.Background(), 1, amount("10"), nil, "admin")
	if err != nil {
		t.Fatalf("order creation must survive audit failure: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatalf("unexpected order: %+v", created)
	}
}

func TestRecordPayment(t *testing.T) {
	uc, orders, payments, _ := newIntakeUseCase()
	order := orders.Add(&model.Order{TotalAmount: amount("100"), Status: model.OrderStatusPaymentPending})

	payment, err := uc.RecordPayment(context.Background(), PaymentInput{
		OrderID:       order.ID,
		Method:        "card",
		Amount:        amount("100"),
		Status:        model.PaymentStatusCompleted,
		TransactionID: "txn-1",
		PaymentData:   map[string]any{"processor": "stripe"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.ID == 0 || payment.TransactionID != "txn-1" {
		t.Fatalf("unexpected payment: %+v", payment)
	}
	if len(payments.Payments) != 1 {
		t.Fatalf("expected stored payment, got %d", len(payments.Payments))
	}
}

func TestRecordPaymentGeneratesTransactionID(t *testing.T) {
	uc, orders, _, _ := newIntakeUseCase()
	order := orders.Add(&model.Order{TotalAmount: amount("100"), Status: model.OrderStatusPaymentPending})

	payment, err := uc.RecordPayment(context.Background(), PaymentInput{
		OrderID: order.ID, Method: "card", Amount: amount("100"), Status: model.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.TransactionID == "" {
		t.Fatal("expected generated transaction id")
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	uc, orders, _, _ := newIntakeUseCase()
	order := orders.Add(&model.Order{TotalAmount: amount("100"), Status: model.OrderStatusPaymentPending})

	if _, err := uc.RecordPayment(context.Background(), PaymentInput{OrderID: order.ID, Amount: decimal.Zero, Status: model.PaymentStatusPending}); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.RecordPayment(context.Background(), PaymentInput{OrderID: order.ID, Amount: amount("10"), Status: "settled"}); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := uc.RecordPayment(context.Background(), PaymentInput{OrderID: 404, Amount: amount("10"), Status: model.PaymentStatusPending}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderWithItems(t *testing.T) {
	uc, orders, _, _ := newIntakeUseCase()
	order := orders.Add(&model.Order{TotalAmount: amount("30"), Status: model.OrderStatusPending})
	orders.Items[order.ID] = []model.OrderItem{{OrderID: order.ID, ProductID: 9, Quantity: 3, Price: amount("10")}}

	got, items, err := uc.OrderWithItems(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != order.ID || len(items) != 1 || items[0].ProductID != 9 {
		t.Fatalf("unexpected result: %+v %+v", got, items)
	}

	if _, _, err := uc.OrderWithItems(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPaymentsForOrder(t *testing.T) {
	uc, orders, payments, _ := newIntakeUseCase()
	order := orders.Add(&model.Order{TotalAmount: amount("30"), Status: model.OrderStatusPending})
	payments.Add(&model.Payment{OrderID: order.ID, Amount: amount("30"), Status: model.PaymentStatusCompleted})

	list, err := uc.PaymentsForOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(list))
	}

	if _, err := uc.PaymentsForOrder(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
