package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestComputePublicPrice(t *testing.T) {
	tests := []struct {
		name          string
		businessPrice int64
		fee           string
		want          int64
	}{
		{"standard fee", 1000, "15.00", 1150},
		{"zero fee", 1000, "0", 1000},
		{"rounds half up", 10, "15.00", 12},   // 11.5 -> 12
		{"rounds down", 100, "15.4", 115},     // 115.4 -> 115
		{"fractional fee", 333, "12.5", 375},  // 374.625 -> 375
		{"single unit", 1, "15.00", 1},        // 1.15 -> 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := decimal.NewFromString(tt.fee)
			require.NoError(t, err)

			got, err := ComputePublicPrice(tt.businessPrice, fee)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePublicPriceInvalid(t *testing.T) {
	fee := decimal.NewFromFloat(15.00)

	_, err := ComputePublicPrice(0, fee)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ComputePublicPrice(-100, fee)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ComputePublicPrice(1000, decimal.NewFromFloat(-1))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestComputePublicPriceProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price := rapid.Int64Range(1, 1_000_000_000).Draw(t, "price")
		feeCents := rapid.Int64Range(0, 10000).Draw(t, "feeCents")
		fee := decimal.New(feeCents, -2) // 0.00% .. 100.00%

		got, err := ComputePublicPrice(price, fee)
		require.NoError(t, err)

		// Never below what the business asks for.
		assert.GreaterOrEqual(t, got, price)

		// Deterministic for the same inputs.
		again, err := ComputePublicPrice(price, fee)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})
}

func TestComputeLineSplit(t *testing.T) {
	split := ComputeLineSplit(1000, 1150, 2)
	assert.Equal(t, int64(2300), split.Total)
	assert.Equal(t, int64(2000), split.BusinessPayout)
	assert.Equal(t, int64(300), split.PlatformFee)
}

func TestComputeLineSplitConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		businessPrice := rapid.Int64Range(1, 1_000_000).Draw(t, "businessPrice")
		feeCents := rapid.Int64Range(0, 5000).Draw(t, "feeCents")
		quantity := rapid.IntRange(1, 1000).Draw(t, "quantity")

		publicPrice, err := ComputePublicPrice(businessPrice, decimal.New(feeCents, -2))
		require.NoError(t, err)

		split := ComputeLineSplit(businessPrice, publicPrice, quantity)

		// The split is exact: no unit is created or lost.
		assert.Equal(t, split.Total, split.BusinessPayout+split.PlatformFee)
		assert.Equal(t, businessPrice*int64(quantity), split.BusinessPayout)
		assert.GreaterOrEqual(t, split.PlatformFee, int64(0))
	})
}
