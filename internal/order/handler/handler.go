package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/order"
	"github.com/delivers/marketplace-service/internal/order/dto"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) PlaceOrder(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	var input dto.PlaceOrderInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.uc.PlaceOrder((*c).Request().Context(), user.UserID, &input)
	if err != nil {
		return h.orderError(c, err)
	}

	return (*c).JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Order placed successfully",
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount,
		"items_count":  result.ItemsCount,
	})
}

func (h *OrderHandler) ListOrders(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	orders, err := h.uc.ListOrders((*c).Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to list orders", zap.String("customer_id", user.UserID), zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *OrderHandler) GetOrder(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())
	orderID := (*c).Param("id")

	o, items, err := h.uc.GetOrder((*c).Request().Context(), user.UserID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return (*c).JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		h.logger.Error("failed to get order", zap.String("order_id", orderID), zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"order": o,
		"items": items,
	})
}

func (h *OrderHandler) UpdateStatus(c *echo.Context) error {
	orderID := (*c).Param("id")

	var input dto.UpdateStatusInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.uc.UpdateStatus((*c).Request().Context(), orderID, input.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			return (*c).JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		case errors.Is(err, order.ErrInvalidTransition):
			return (*c).JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			h.logger.Error("failed to update order status", zap.String("order_id", orderID), zap.Error(err))
			return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
		}
	}

	return (*c).JSON(http.StatusOK, map[string]string{"message": "Order status updated"})
}

// orderError maps placement error kinds to HTTP statuses: caller input and
// business-rule violations are 400 with the specific reason, everything else
// is a generic 500 after the transaction rolled back.
func (h *OrderHandler) orderError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrMissingAddress),
		errors.Is(err, order.ErrInvalidItem),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrBelowMinimumOrder),
		errors.Is(err, order.ErrInsufficientStock):
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("order processing failed", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process order"})
	}
}
