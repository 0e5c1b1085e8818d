package dto

// Summary aggregates a business's processed payments.
type Summary struct {
	TotalPayments  int   `db:"total_payments" json:"total_payments"`
	TotalEarned    int64 `db:"total_earned" json:"total_earned"`
	TotalFees      int64 `db:"total_fees" json:"total_fees"`
	TotalItemsSold int   `db:"total_items_sold" json:"total_items_sold"`
}
