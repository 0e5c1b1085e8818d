package payment

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/payment/dto"
)

type UseCase interface {
	Summary(ctx context.Context, businessID string) (*dto.Summary, error)
	Recent(ctx context.Context, businessID string, limit int) ([]model.BusinessPayment, error)
}
