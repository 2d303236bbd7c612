package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/server/http/dto"
	"github.com/polkiloo/orderstate/internal/usecase"
)

// PaymentHandler records payments and exposes the post-payment validators.
type PaymentHandler struct {
	facade LifecycleFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade LifecycleFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Record handles POST /api/payments.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.OrderID <= 0 || req.Method == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount format"})
		return
	}

	payment, err := h.facade.RecordPayment(c.Request.Context(), usecase.PaymentInput{
		OrderID:       req.OrderID,
		Method:        req.Method,
		Amount:        amount,
		Status:        model.PaymentStatus(req.Status),
		TransactionID: req.TransactionID,
		PaymentData:   req.PaymentData,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// Validate handles GET /api/payments/:id/validation.
func (h *PaymentHandler) Validate(c *gin.Context) {
	paymentID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	report := h.facade.PaymentValidation(c.Request.Context(), paymentID)
	c.JSON(http.StatusOK, toValidationResponse(report))
}

// BatchValidate handles POST /api/payments/validation.
func (h *PaymentHandler) BatchValidate(c *gin.Context) {
	var req dto.BatchValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.PaymentIDs) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	reports := h.facade.BatchPaymentValidation(c.Request.Context(), req.PaymentIDs)
	response := make([]dto.ValidationReportResponse, 0, len(reports))
	for _, report := range reports {
		response = append(response, toValidationResponse(report))
	}
	c.JSON(http.StatusOK, response)
}

// Readiness handles GET /api/orders/:id/readiness.
func (h *PaymentHandler) Readiness(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	report := h.facade.PaymentReadiness(c.Request.Context(), orderID)
	c.JSON(http.StatusOK, toValidationResponse(report))
}
