package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/payment"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
)

type PaymentHandler struct {
	uc     payment.UseCase
	logger logger.ZapLogger
}

func NewPaymentHandler(uc payment.UseCase, log logger.ZapLogger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: log,
	}
}

// ListPayments returns the calling business's payment summary and its most
// recent processed payments.
func (h *PaymentHandler) ListPayments(c *echo.Context) error {
	identity := auth.FromContext((*c).Request().Context())
	ctx := (*c).Request().Context()

	summary, err := h.uc.Summary(ctx, identity.UserID)
	if err != nil {
		h.logger.Error("failed to summarize payments", zap.String("business_id", identity.UserID), zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch payments"})
	}

	limit := 0
	if v := (*c).QueryParam("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	recent, err := h.uc.Recent(ctx, identity.UserID, limit)
	if err != nil {
		h.logger.Error("failed to list payments", zap.String("business_id", identity.UserID), zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch payments"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"summary":  summary,
		"payments": recent,
	})
}
