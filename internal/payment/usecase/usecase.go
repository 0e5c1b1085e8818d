package usecase

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/payment"
	"github.com/delivers/marketplace-service/internal/payment/dto"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
)

const defaultRecentLimit = 50

type paymentUseCase struct {
	repo   payment.Repository
	logger logger.ZapLogger
}

func NewPaymentUseCase(repo payment.Repository, log logger.ZapLogger) payment.UseCase {
	return &paymentUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *paymentUseCase) Summary(ctx context.Context, businessID string) (*dto.Summary, error) {
	return uc.repo.Summarize(ctx, businessID)
}

func (uc *paymentUseCase) Recent(ctx context.Context, businessID string, limit int) ([]model.BusinessPayment, error) {
	if limit <= 0 || limit > defaultRecentLimit {
		limit = defaultRecentLimit
	}
	return uc.repo.FindRecent(ctx, businessID, limit)
}
