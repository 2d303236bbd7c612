package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/server/http/dto"
	"github.com/polkiloo/orderstate/internal/server/http/middleware"
)

// CurrentAdminID extracts authenticated admin identifier from context.
func CurrentAdminID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AdminIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// actorLogin resolves the audit actor for the authenticated admin, falling
// back to a synthetic login when the lookup fails.
func actorLogin(ctx context.Context, facade AuthFacade, c *gin.Context) string {
	adminID := CurrentAdminID(c)
	login, err := facade.ActorLogin(ctx, adminID)
	if err != nil || login == "" {
		return fmt.Sprintf("admin-%d", adminID)
	}
	return login
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func statusPtr(s *model.OrderStatus) *string {
	if s == nil {
		return nil
	}
	out := string(*s)
	return &out
}

func toTransitionResponse(result *model.TransitionResult) dto.TransitionResponse {
	return dto.TransitionResponse{
		OrderID:        result.OrderID,
		Success:        result.Success,
		Idempotent:     result.Idempotent,
		Kind:           string(result.Kind),
		Message:        result.Message,
		PreviousStatus: statusPtr(result.PreviousStatus),
		NewStatus:      statusPtr(result.NewStatus),
	}
}

func toValidationResponse(report *model.ValidationReport) dto.ValidationReportResponse {
	errs := report.Errors
	if errs == nil {
		errs = []string{}
	}
	warnings := report.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return dto.ValidationReportResponse{
		PaymentID: report.PaymentID,
		Valid:     report.Valid,
		Errors:    errs,
		Warnings:  warnings,
		Data:      report.Data,
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Method:        p.Method,
		Amount:        p.Amount.String(),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		PaymentData:   p.PaymentData,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toOrderResponse(order *model.Order, items []model.OrderItem) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount.String(),
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	for _, item := range items {
		response.Items = append(response.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.String(),
		})
	}
	return response
}
