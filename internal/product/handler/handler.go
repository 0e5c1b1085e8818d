package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/order/pricing"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/product"
	"github.com/delivers/marketplace-service/internal/product/dto"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// ListPublic serves the buyer-facing catalog.
func (h *ProductHandler) ListPublic(c *echo.Context) error {
	filters := &dto.ProductFilters{
		Category:    (*c).QueryParam("category"),
		SearchQuery: (*c).QueryParam("search"),
		SortBy:      (*c).QueryParam("sort_by"),
		SortOrder:   (*c).QueryParam("sort_order"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 20),
	}

	products, count, err := h.uc.ListPublic((*c).Request().Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    count,
	})
}

func (h *ProductHandler) GetProduct(c *echo.Context) error {
	p, err := h.uc.GetProduct((*c).Request().Context(), (*c).Param("id"))
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
	}
	if p == nil {
		return (*c).JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}
	return (*c).JSON(http.StatusOK, map[string]interface{}{"product": p})
}

// ScanQR resolves a scanned QR identifier to a product, flagging stock that
// cannot satisfy the product's minimum order quantity.
func (h *ProductHandler) ScanQR(c *echo.Context) error {
	var body struct {
		QRCode string `json:"qr_code"`
	}
	if err := (*c).Bind(&body); err != nil || body.QRCode == "" {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "QR code is required"})
	}

	p, err := h.uc.ScanQR((*c).Request().Context(), body.QRCode)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return (*c).JSON(http.StatusNotFound, map[string]string{"error": "Product not found or not available"})
		}
		h.logger.Error("qr scan failed", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to scan QR code"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"product":         p,
		"below_min_stock": p.StockQuantity < p.MinOrderQuantity,
	})
}

func (h *ProductHandler) ListMine(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	products, err := h.uc.ListByBusiness((*c).Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to list business products", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) Create(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	var input dto.CreateProductInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	input.BusinessID = user.UserID

	p, err := h.uc.CreateProduct((*c).Request().Context(), &input)
	if err != nil {
		return h.productError(c, err)
	}

	return (*c).JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHandler) Update(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	var input dto.UpdateProductInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	input.ID = (*c).Param("id")
	input.BusinessID = user.UserID

	p, err := h.uc.UpdateProduct((*c).Request().Context(), &input)
	if err != nil {
		return h.productError(c, err)
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) AdjustStock(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	var input dto.AdjustStockInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	input.ProductID = (*c).Param("id")
	input.BusinessID = user.UserID

	p, err := h.uc.AdjustStock((*c).Request().Context(), &input)
	if err != nil {
		return h.productError(c, err)
	}

	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"message": "Stock adjusted",
		"product": p,
	})
}

func (h *ProductHandler) Delete(c *echo.Context) error {
	user := auth.FromContext((*c).Request().Context())

	if err := h.uc.DeleteProduct((*c).Request().Context(), user.UserID, (*c).Param("id")); err != nil {
		return h.productError(c, err)
	}

	return (*c).JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *ProductHandler) productError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return (*c).JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	case errors.Is(err, product.ErrNotOwner), errors.Is(err, product.ErrSellerNotVerified):
		return (*c).JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, pricing.ErrInvalidPrice):
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, product.ErrLockBusy):
		return (*c).JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("product operation failed", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
	}
}

func queryInt(c *echo.Context, name string, fallback int) int {
	if v := (*c).QueryParam(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
