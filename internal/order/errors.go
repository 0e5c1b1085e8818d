package order

import "errors"

// Error kinds surfaced by order placement. Handlers map these to HTTP
// statuses with errors.Is; everything else is wrapped as
// ErrOrderProcessingFailed and the whole order is rolled back.
var (
	ErrEmptyCart             = errors.New("order must contain at least one item")
	ErrMissingAddress        = errors.New("delivery address is required")
	ErrInvalidItem           = errors.New("invalid item data")
	ErrProductUnavailable    = errors.New("product not found or not available")
	ErrBelowMinimumOrder     = errors.New("quantity below minimum order")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrOrderProcessingFailed = errors.New("failed to process order")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidTransition     = errors.New("invalid order status transition")
)
