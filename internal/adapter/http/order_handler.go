package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domain "github.com/luckyeats/food-order-api/internal/entity"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

type OrderHandler struct {
	submit *usecase.SubmitOrder
}

func NewOrderHandler(submit *usecase.SubmitOrder) *OrderHandler {
	return &OrderHandler{submit: submit}
}

type submitOrderReq struct {
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerPhone   string `json:"customerPhone" binding:"required"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	OrderNotes      string `json:"orderNotes"`
}

// SubmitOrder runs the checkout orchestration. The usecase owns the per-call
// timeout budgets, so the request context is passed through untrimmed.
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var req submitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx := logging.WithCtx(c.Request.Context(), logging.From(c))
	order, err := h.submit.Execute(ctx, usecase.SubmitOrderInput{
		SessionID: sessionFrom(c),
		Details: domain.OrderDetails{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			DeliveryAddress: req.DeliveryAddress,
			PaymentMethod:   req.PaymentMethod,
			OrderNotes:      req.OrderNotes,
		},
	})
	if err != nil {
		c.JSON(submitStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func submitStatus(err error) int {
	var rejected *usecase.RejectedError
	var processing *usecase.ProcessingError
	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAttemptInFlight):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrProcessingTimeout),
		errors.Is(err, usecase.ErrPersistenceTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &rejected), errors.As(err, &processing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
