package product

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByQRCode(ctx context.Context, qrCode string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByBusiness(ctx context.Context, businessID string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// AdjustStock applies a delta conditionally so stock can never go
	// negative. Returns false when the product is missing or the delta
	// would underflow.
	AdjustStock(ctx context.Context, productID string, delta int) (bool, error)

	IsBusinessVerified(ctx context.Context, businessID string) (bool, error)
}
