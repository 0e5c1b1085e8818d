package dto

// OrderResult is the caller-facing outcome of a successful placement.
type OrderResult struct {
	OrderID     string `json:"order_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemsCount  int    `json:"items_count"`
}

// ReceiptItem is one line in a receipt's JSON items snapshot.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}
