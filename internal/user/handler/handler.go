package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/user"
	"github.com/delivers/marketplace-service/internal/user/dto"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) Register(c *echo.Context) error {
	var input dto.RegisterInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.uc.Register((*c).Request().Context(), &input)
	if err != nil {
		return h.userError(c, err)
	}

	setTokenCookie(c, result.Token)
	return (*c).JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *UserHandler) Login(c *echo.Context) error {
	var input dto.LoginInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.uc.Login((*c).Request().Context(), &input)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return (*c).JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return h.userError(c, err)
	}

	setTokenCookie(c, result.Token)
	return (*c).JSON(http.StatusOK, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *UserHandler) Me(c *echo.Context) error {
	identity := auth.FromContext((*c).Request().Context())

	u, err := h.uc.GetProfile((*c).Request().Context(), identity.UserID)
	if err != nil {
		return h.userError(c, err)
	}
	return (*c).JSON(http.StatusOK, map[string]interface{}{"user": u})
}

func (h *UserHandler) SubmitDocument(c *echo.Context) error {
	identity := auth.FromContext((*c).Request().Context())

	var input dto.SubmitDocumentInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	input.UserID = identity.UserID

	doc, err := h.uc.SubmitDocument((*c).Request().Context(), &input)
	if err != nil {
		return h.userError(c, err)
	}
	return (*c).JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Document submitted",
		"document": doc,
	})
}

func (h *UserHandler) ListDocuments(c *echo.Context) error {
	identity := auth.FromContext((*c).Request().Context())

	docs, err := h.uc.ListDocuments((*c).Request().Context(), identity.UserID)
	if err != nil {
		return h.userError(c, err)
	}
	return (*c).JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}

func (h *UserHandler) PendingSellers(c *echo.Context) error {
	sellers, err := h.uc.PendingSellers((*c).Request().Context())
	if err != nil {
		return h.userError(c, err)
	}
	return (*c).JSON(http.StatusOK, map[string]interface{}{"sellers": sellers})
}

func (h *UserHandler) VerifySeller(c *echo.Context) error {
	var input dto.VerifySellerInput
	if err := (*c).Bind(&input); err != nil {
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.uc.VerifySeller((*c).Request().Context(), &input); err != nil {
		return h.userError(c, err)
	}
	return (*c).JSON(http.StatusOK, map[string]string{"message": "Seller verification updated"})
}

func (h *UserHandler) userError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidInput), errors.Is(err, user.ErrNotSeller):
		return (*c).JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, user.ErrEmailTaken):
		return (*c).JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound):
		return (*c).JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	default:
		h.logger.Error("user operation failed", zap.Error(err))
		return (*c).JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
	}
}

func setTokenCookie(c *echo.Context, token string) {
	(*c).SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}
