package order

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, customerID string, input *dto.PlaceOrderInput) (*dto.OrderResult, error)
	ListOrders(ctx context.Context, customerID string) ([]model.Order, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*model.Order, []model.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}
