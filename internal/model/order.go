package model

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// orderTransitions encodes the strictly forward-moving status machine.
// Cancellation is allowed from any non-terminal state.
var orderTransitions = map[string]string{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransitionOrderStatus reports whether an order may move from one status
// to another. Delivered and cancelled are terminal.
func CanTransitionOrderStatus(from, to string) bool {
	if to == OrderStatusCancelled {
		return from != OrderStatusDelivered && from != OrderStatusCancelled
	}
	return orderTransitions[from] == to
}

type Order struct {
	ID              string    `db:"id" json:"id"`
	CustomerID      string    `db:"customer_id" json:"customer_id"`
	DeliveryAddress string    `db:"delivery_address" json:"delivery_address"`
	TotalAmount     int64     `db:"total_amount" json:"total_amount"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	// Aggregated on read, not a column.
	ItemsCount int `db:"items_count" json:"items_count"`
}

// OrderItem snapshots the product name and both unit prices at checkout so
// later catalog edits cannot rewrite history.
type OrderItem struct {
	ID                  string `db:"id" json:"id"`
	OrderID             string `db:"order_id" json:"order_id"`
	ProductID           string `db:"product_id" json:"product_id"`
	BusinessID          string `db:"business_id" json:"business_id"`
	ProductName         string `db:"product_name" json:"product_name"`
	Quantity            int    `db:"quantity" json:"quantity"`
	UnitBusinessPrice   int64  `db:"unit_business_price" json:"unit_business_price"`
	UnitPublicPrice     int64  `db:"unit_public_price" json:"unit_public_price"`
	TotalBusinessPayout int64  `db:"total_business_payout" json:"total_business_payout"`
	TotalCustomerPays   int64  `db:"total_customer_pays" json:"total_customer_pays"`
	TotalPlatformFee    int64  `db:"total_platform_fee" json:"total_platform_fee"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusProcessed = "processed"
	PaymentStatusFailed    = "failed"
)

// BusinessPayment is one row per (order, business) pair. UnitBusinessPrice is
// null when the business sold more than one distinct product in the order.
type BusinessPayment struct {
	ID                   string    `db:"id" json:"id"`
	OrderID              string    `db:"order_id" json:"order_id"`
	BusinessID           string    `db:"business_id" json:"business_id"`
	QuantitySold         int       `db:"quantity_sold" json:"quantity_sold"`
	UnitBusinessPrice    *int64    `db:"unit_business_price" json:"unit_business_price"`
	TotalBusinessPayment int64     `db:"total_business_payment" json:"total_business_payment"`
	PlatformFeeAmount    int64     `db:"platform_fee_amount" json:"platform_fee_amount"`
	PaymentStatus        string    `db:"payment_status" json:"payment_status"`
	ProcessedAt          time.Time `db:"processed_at" json:"processed_at"`
}

// Receipts are immutable audit snapshots created once at checkout. Items
// holds the line detail as a JSON document.

type BusinessReceipt struct {
	ID            string    `db:"id" json:"id"`
	OrderID       string    `db:"order_id" json:"order_id"`
	BusinessID    string    `db:"business_id" json:"business_id"`
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	Items         string    `db:"items" json:"items"`
	PaymentAmount int64     `db:"payment_amount" json:"payment_amount"`
	PlatformFee   int64     `db:"platform_fee" json:"platform_fee"`
	GeneratedAt   time.Time `db:"generated_at" json:"generated_at"`
}

type CustomerReceipt struct {
	ID              string    `db:"id" json:"id"`
	OrderID         string    `db:"order_id" json:"order_id"`
	CustomerID      string    `db:"customer_id" json:"customer_id"`
	ReceiptNumber   string    `db:"receipt_number" json:"receipt_number"`
	DeliveryAddress string    `db:"delivery_address" json:"delivery_address"`
	Items           string    `db:"items" json:"items"`
	TotalAmount     int64     `db:"total_amount" json:"total_amount"`
	GeneratedAt     time.Time `db:"generated_at" json:"generated_at"`
}
