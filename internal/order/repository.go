package order

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
)

// CommitPlan is the full set of rows for one placed order. The repository
// persists it inside a single transaction; on any failure nothing is written.
type CommitPlan struct {
	Order            *model.Order
	Items            []model.OrderItem
	Payments         []model.BusinessPayment
	BusinessReceipts []model.BusinessReceipt
	CustomerReceipt  *model.CustomerReceipt
}

type Repository interface {
	// FindProductForSale loads a product joined with its owning business's
	// verification state. Returns nil when the product does not exist.
	FindProductForSale(ctx context.Context, productID string) (*model.Product, error)

	// CreateOrder commits the whole plan atomically. The per-item stock
	// decrement is conditional on sufficient stock; a rejected decrement
	// aborts the transaction with ErrInsufficientStock.
	CreateOrder(ctx context.Context, plan *CommitPlan) error

	FindByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, from, to string) error
}
