package dto

type CreateProductInput struct {
	BusinessID            string  `json:"-"`
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	BusinessPrice         int64   `json:"business_price"`
	PlatformFeePercentage float64 `json:"platform_fee_percentage"`
	Category              string  `json:"category"`
	StockQuantity         int     `json:"stock_quantity"`
	MinOrderQuantity      int     `json:"min_order_quantity"`
}

type UpdateProductInput struct {
	ID                    string  `json:"-"`
	BusinessID            string  `json:"-"`
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	BusinessPrice         int64   `json:"business_price"`
	PlatformFeePercentage float64 `json:"platform_fee_percentage"`
	Category              string  `json:"category"`
	MinOrderQuantity      int     `json:"min_order_quantity"`
	IsActive              bool    `json:"is_active"`
}

type AdjustStockInput struct {
	ProductID  string `json:"-"`
	BusinessID string `json:"-"`
	Delta      int    `json:"delta"`
}
