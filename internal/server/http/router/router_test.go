package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/server/http/handlers"
	"github.com/polkiloo/orderstate/internal/usecase"
)

type routerFacadeStub struct{}

func (routerFacadeStub) Register(context.Context, string, string) (string, error) {
	return "token", nil
}

func (routerFacadeStub) Authenticate(context.Context, string, string) (string, error) {
	return "token", nil
}

func (routerFacadeStub) ParseToken(string) (int64, error) { return 1, nil }

func (routerFacadeStub) ActorLogin(context.Context, int64) (string, error) { return "admin", nil }

func (routerFacadeStub) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []usecase.OrderItemInput, actor string) (*model.Order, error) {
	return &model.Order{ID: 1, UserID: userID, TotalAmount: total, Status: model.OrderStatusPending}, nil
}

func (routerFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, []model.OrderItem, error) {
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil, nil
}

func (routerFacadeStub) OrderPayments(context.Context, int64) ([]model.Payment, error) {
	return nil, nil
}

func (routerFacadeStub) RecordPayment(ctx context.Context, input usecase.PaymentInput) (*model.Payment, error) {
	return &model.Payment{ID: 1, OrderID: input.OrderID, Amount: input.Amount, Status: input.Status}, nil
}

func (routerFacadeStub) Transition(ctx context.Context, req usecase.TransitionRequest) *model.TransitionResult {
	return &model.TransitionResult{OrderID: req.OrderID, Success: true}
}

func (routerFacadeStub) CanTransition(ctx context.Context, orderID int64, target model.OrderStatus) *model.TransitionPreview {
	return &model.TransitionPreview{OrderID: orderID, CanTransition: true}
}

func (routerFacadeStub) BatchTransition(ctx context.Context, reqs []usecase.TransitionRequest) []*model.TransitionResult {
	results := make([]*model.TransitionResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, &model.TransitionResult{OrderID: req.OrderID, Success: true})
	}
	return results
}

func (routerFacadeStub) OrderHistory(context.Context, int64) ([]model.StatusHistoryEntry, error) {
	return nil, nil
}

func (routerFacadeStub) PaymentReadiness(context.Context, int64) *model.ValidationReport {
	return model.NewValidationReport()
}

func (routerFacadeStub) PaymentValidation(ctx context.Context, paymentID int64) *model.ValidationReport {
	report := model.NewValidationReport()
	report.PaymentID = paymentID
	return report
}

func (routerFacadeStub) BatchPaymentValidation(ctx context.Context, paymentIDs []int64) []*model.ValidationReport {
	reports := make([]*model.ValidationReport, 0, len(paymentIDs))
	for _, id := range paymentIDs {
		report := model.NewValidationReport()
		report.PaymentID = id
		reports = append(reports, report)
	}
	return reports
}

var _ handlers.LifecycleFacade = routerFacadeStub{}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(routerFacadeStub{}, logger)

	body, _ := json.Marshal(map[string]string{"login": "admin", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	authed := func(method, target string, payload []byte) *httptest.ResponseRecorder {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Authorization", "Bearer token")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	if resp := authed(http.MethodGet, "/api/orders/1", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for order get, got %d", resp.Code)
	}
	if resp := authed(http.MethodGet, "/api/orders/1/payments", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for payments, got %d", resp.Code)
	}
	if resp := authed(http.MethodGet, "/api/orders/1/history", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for history, got %d", resp.Code)
	}
	if resp := authed(http.MethodGet, "/api/orders/1/readiness", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness, got %d", resp.Code)
	}
	if resp := authed(http.MethodGet, "/api/orders/1/transition/payment_pending", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preview, got %d", resp.Code)
	}

	orderBody, _ := json.Marshal(map[string]any{"user_id": 1, "total_amount": "10.00"})
	if resp := authed(http.MethodPost, "/api/orders", orderBody); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for order create, got %d", resp.Code)
	}

	transitionBody, _ := json.Marshal(map[string]any{"target_status": "payment_pending"})
	if resp := authed(http.MethodPost, "/api/orders/1/transition", transitionBody); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for transition, got %d", resp.Code)
	}

	batchBody, _ := json.Marshal(map[string]any{"transitions": []map[string]any{{"order_id": 1, "target_status": "cancelled"}}})
	if resp := authed(http.MethodPost, "/api/orders/transitions", batchBody); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for batch transitions, got %d", resp.Code)
	}

	paymentBody, _ := json.Marshal(map[string]any{"order_id": 1, "payment_method": "card", "amount": "10.00", "status": "completed"})
	if resp := authed(http.MethodPost, "/api/payments", paymentBody); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for payment record, got %d", resp.Code)
	}

	validationBody, _ := json.Marshal(map[string]any{"payment_ids": []int64{1, 2}})
	if resp := authed(http.MethodPost, "/api/payments/validation", validationBody); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for batch validation, got %d", resp.Code)
	}
	if resp := authed(http.MethodGet, "/api/payments/1/validation", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for payment validation, got %d", resp.Code)
	}
}
