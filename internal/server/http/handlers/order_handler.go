package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/server/http/dto"
	"github.com/polkiloo/orderstate/internal/usecase"
)

// OrderHandler manages order intake and lookup endpoints.
type OrderHandler struct {
	facade LifecycleFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade LifecycleFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount format"})
		return
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount format"})
			return
		}
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	actor := actorLogin(c.Request.Context(), h.facade, c)
	order, err := h.facade.CreateOrder(c.Request.Context(), req.UserID, total, items, actor)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order, nil))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, items, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order, items))
}

// Payments handles GET /api/orders/:id/payments.
func (h *OrderHandler) Payments(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	payments, err := h.facade.OrderPayments(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// History handles GET /api/orders/:id/history.
func (h *OrderHandler) History(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	entries, err := h.facade.OrderHistory(c.Request.Context(), orderID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, dto.HistoryEntryResponse{
			ID:             e.ID,
			OrderID:        e.OrderID,
			PreviousStatus: statusPtr(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			ChangedBy:      e.ChangedBy,
			Reason:         e.Reason,
			CreatedAt:      e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
