package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokoide/solid-orders/domain/entity"
	"github.com/sokoide/solid-orders/domain/repository"
)

// Dispatcher is satisfied by *usecase.OrderDispatcher.
type Dispatcher interface {
	ProcessOrder(ctx context.Context, order entity.Order) error
}

type StatusReader interface {
	Status(ctx context.Context, orderID string) (entity.OrderStatus, error)
}

type createOrderRequest struct {
	ID            string  `json:"id"`
	Type          string  `json:"type" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	Amount        float64 `json:"amount" binding:"gte=0"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
}

// OrderHandler exposes order submission over HTTP. Each order type has its own
// dispatcher, chosen when the handler is built.
type OrderHandler struct {
	dispatchers map[entity.OrderType]Dispatcher
	statuses    StatusReader
	idGen       repository.IDGenerator
	logger      *slog.Logger
}

func NewOrderHandler(dispatchers map[entity.OrderType]Dispatcher, statuses StatusReader, idGen repository.IDGenerator, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		dispatchers: dispatchers,
		statuses:    statuses,
		idGen:       idGen,
		logger:      logger,
	}
}

func (h *OrderHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.health)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders/:id/status", h.getStatus)
	}
}

func (h *OrderHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *OrderHandler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %v", entity.ErrInvalidOrder, err)})
		return
	}

	orderType := entity.OrderType(req.Type)
	d, ok := h.dispatchers[orderType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %q", entity.ErrUnknownOrderType, req.Type)})
		return
	}

	order := entity.Order{
		ID:            req.ID,
		Type:          orderType,
		Quantity:      req.Quantity,
		Amount:        req.Amount,
		CustomerEmail: req.CustomerEmail,
	}
	if order.ID == "" {
		order.ID = h.idGen.GenerateID()
	}

	if err := d.ProcessOrder(c.Request.Context(), order); err != nil {
		code := statusFor(err)
		msg := err.Error()
		if code == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "order failed", slog.String("order_id", order.ID), slog.Any("error", err))
			msg = "internal error"
		}
		c.JSON(code, gin.H{"order_id": order.ID, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": order.ID, "status": entity.OrderStatusProcessed})
}

func (h *OrderHandler) getStatus(c *gin.Context) {
	id := c.Param("id")
	status, err := h.statuses.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrStatusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"order_id": id, "error": err.Error()})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "status lookup failed", slog.String("order_id", id), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"order_id": id, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "status": status})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrOutOfStock):
		return http.StatusConflict
	case errors.Is(err, entity.ErrPaymentFailed), errors.Is(err, entity.ErrExpressPaymentFailed):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
