package payment

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/payment/dto"
)

// Repository reads the payment rows written by order placement; there is no
// write path here, payments are append-only and created with their order.
type Repository interface {
	Summarize(ctx context.Context, businessID string) (*dto.Summary, error)
	FindRecent(ctx context.Context, businessID string, limit int) ([]model.BusinessPayment, error)
}
