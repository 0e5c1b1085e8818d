package order

import (
	"fmt"

	"github.com/delivers/marketplace-service/internal/model"
)

// ValidateLine checks one requested line against the product's availability
// and quantity constraints. It is a pure check against the snapshot the
// caller loaded; the conditional stock decrement at commit time remains the
// authoritative guard against oversell.
func ValidateLine(product *model.Product, quantity int) error {
	if product == nil || !product.IsActive || !product.BusinessVerified {
		return ErrProductUnavailable
	}
	if quantity < product.MinOrderQuantity {
		return fmt.Errorf("%w: minimum quantity for %s is %d",
			ErrBelowMinimumOrder, product.Name, product.MinOrderQuantity)
	}
	if quantity > product.StockQuantity {
		return fmt.Errorf("%w: %s has %d available",
			ErrInsufficientStock, product.Name, product.StockQuantity)
	}
	return nil
}
