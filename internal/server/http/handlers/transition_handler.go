package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderstate/internal/domain/model"
	"github.com/polkiloo/orderstate/internal/server/http/dto"
	"github.com/polkiloo/orderstate/internal/usecase"
)

// TransitionHandler drives order lifecycle endpoints. Expected failures come
// back as structured bodies with HTTP 200; callers branch on the payload.
type TransitionHandler struct {
	facade LifecycleFacade
}

// NewTransitionHandler constructs TransitionHandler.
func NewTransitionHandler(facade LifecycleFacade) *TransitionHandler {
	return &TransitionHandler{facade: facade}
}

// Transition handles POST /api/orders/:id/transition.
func (h *TransitionHandler) Transition(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.TargetStatus == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	result := h.facade.Transition(c.Request.Context(), usecase.TransitionRequest{
		OrderID: orderID,
		Target:  model.OrderStatus(req.TargetStatus),
		Actor:   actorLogin(c.Request.Context(), h.facade, c),
		Reason:  req.Reason,
		Force:   req.Force,
	})

	c.JSON(http.StatusOK, toTransitionResponse(result))
}

// Preview handles GET /api/orders/:id/transition/:target.
func (h *TransitionHandler) Preview(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	target := model.OrderStatus(c.Param("target"))
	preview := h.facade.CanTransition(c.Request.Context(), orderID, target)

	c.JSON(http.StatusOK, dto.TransitionPreviewResponse{
		OrderID:       preview.OrderID,
		CanTransition: preview.CanTransition,
		Idempotent:    preview.Idempotent,
		Kind:          string(preview.Kind),
		CurrentStatus: statusPtr(preview.CurrentStatus),
		Reason:        preview.Reason,
	})
}

// Batch handles POST /api/orders/transitions.
func (h *TransitionHandler) Batch(c *gin.Context) {
	var req dto.BatchTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.Transitions) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	actor := actorLogin(c.Request.Context(), h.facade, c)
	requests := make([]usecase.TransitionRequest, 0, len(req.Transitions))
	for _, entry := range req.Transitions {
		requests = append(requests, usecase.TransitionRequest{
			OrderID: entry.OrderID,
			Target:  model.OrderStatus(entry.TargetStatus),
			Actor:   actor,
			Reason:  entry.Reason,
			Force:   entry.Force,
		})
	}

	results := h.facade.BatchTransition(c.Request.Context(), requests)
	response := make([]dto.TransitionResponse, 0, len(results))
	for _, result := range results {
		response = append(response, toTransitionResponse(result))
	}
	c.JSON(http.StatusOK, response)
}
