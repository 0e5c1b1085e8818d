package product

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, businessID, id string) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListPublic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	ListByBusiness(ctx context.Context, businessID string) ([]model.Product, error)
	ScanQR(ctx context.Context, qrCode string) (*model.Product, error)
}
