// Package pricing computes the marketplace money split: the public price a
// buyer pays, the payout the selling business receives, and the platform fee
// in between. All amounts are whole currency units.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

var oneHundred = decimal.NewFromInt(100)

// ComputePublicPrice returns round(businessPrice * (1 + feePercentage/100)),
// rounded half away from zero to the nearest whole currency unit. The result
// is never below businessPrice for a non-negative fee.
func ComputePublicPrice(businessPrice int64, feePercentage decimal.Decimal) (int64, error) {
	if businessPrice <= 0 {
		return 0, ErrInvalidPrice
	}
	if feePercentage.IsNegative() {
		return 0, ErrInvalidPrice
	}

	price := decimal.NewFromInt(businessPrice)
	fee := price.Mul(feePercentage).Div(oneHundred)
	return price.Add(fee).Round(0).IntPart(), nil
}

// Split is the per-line money breakdown. BusinessPayout + PlatformFee always
// equals Total exactly; the fee absorbs any rounding from the public price.
type Split struct {
	Total          int64
	BusinessPayout int64
	PlatformFee    int64
}

// ComputeLineSplit breaks one order line into the customer total, the
// business payout, and the platform fee.
func ComputeLineSplit(unitBusinessPrice, unitPublicPrice int64, quantity int) Split {
	qty := int64(quantity)
	total := unitPublicPrice * qty
	payout := unitBusinessPrice * qty
	return Split{
		Total:          total,
		BusinessPayout: payout,
		PlatformFee:    total - payout,
	}
}
