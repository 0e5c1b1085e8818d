package model

import "github.com/shopspring/decimal"

// Product money columns are whole currency units; the domain has no
// fractional sub-units. PublicPrice is derived from BusinessPrice plus the
// platform fee and is always >= BusinessPrice.
type Product struct {
	BaseModel
	BusinessID            string          `db:"business_id" json:"business_id"`
	Name                  string          `db:"name" json:"name"`
	Description           *string         `db:"description" json:"description"`
	BusinessPrice         int64           `db:"business_price" json:"business_price"`
	PlatformFeePercentage decimal.Decimal `db:"platform_fee_percentage" json:"platform_fee_percentage"`
	PublicPrice           int64           `db:"public_price" json:"public_price"`
	Category              string          `db:"category" json:"category"`
	StockQuantity         int             `db:"stock_quantity" json:"stock_quantity"`
	MinOrderQuantity      int             `db:"min_order_quantity" json:"min_order_quantity"`
	QRCode                string          `db:"qr_code" json:"qr_code"`
	IsActive              bool            `db:"is_active" json:"is_active"`

	// Joined from the owning business account, not a products column.
	BusinessVerified bool    `db:"business_verified" json:"-"`
	BusinessName     *string `db:"joined_business_name" json:"business_name,omitempty"`
}
