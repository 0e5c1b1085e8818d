package product

import "errors"

var (
	ErrNotFound          = errors.New("product not found")
	ErrNotOwner          = errors.New("product belongs to another business")
	ErrSellerNotVerified = errors.New("business must be verified to sell")
	ErrInvalidInput      = errors.New("invalid product data")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLockBusy          = errors.New("stock is being adjusted, try again")
)
