package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/utils/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func typePtr(t domain.DiscountType) *domain.DiscountType { return &t }

func TestCalculateDiscountNone(t *testing.T) {
	res := money.CalculateDiscount(dec("100"), nil, nil)

	assert.True(t, res.DiscountAmount.IsZero())
	assert.True(t, res.Total.Equal(dec("100")))
	assert.True(t, res.Subtotal.Equal(dec("100")))
}

func TestCalculateDiscountPercentage(t *testing.T) {
	// 10% off 100 -> discount 10, total 90
	res := money.CalculateDiscount(dec("100"), typePtr(domain.DiscountPercentage), decPtr("10"))

	assert.True(t, res.DiscountAmount.Equal(dec("10")))
	assert.True(t, res.Total.Equal(dec("90")))
}

func TestCalculateDiscountFixedAmount(t *testing.T) {
	res := money.CalculateDiscount(dec("250.50"), typePtr(domain.DiscountAmount), decPtr("50.25"))

	assert.True(t, res.DiscountAmount.Equal(dec("50.25")))
	assert.True(t, res.Total.Equal(dec("200.25")))
}

func TestCalculateDiscountClamp(t *testing.T) {
	cases := []struct {
		name  string
		dtype domain.DiscountType
		value string
	}{
		{"fixed amount larger than subtotal", domain.DiscountAmount, "9999"},
		{"percentage over 100", domain.DiscountPercentage, "150"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := money.CalculateDiscount(dec("80"), &tc.dtype, decPtr(tc.value))

			assert.True(t, res.DiscountAmount.Equal(dec("80")), "discount clamps to subtotal")
			assert.True(t, res.Total.IsZero(), "total never negative")
		})
	}
}

func TestCalculateDiscountZeroValueIdempotent(t *testing.T) {
	// Applying a zero discount any number of times leaves total == subtotal.
	res := money.CalculateDiscount(dec("42.42"), typePtr(domain.DiscountPercentage), decPtr("0"))
	res = money.CalculateDiscount(res.Total, typePtr(domain.DiscountPercentage), decPtr("0"))

	assert.True(t, res.Total.Equal(dec("42.42")))
	assert.True(t, res.DiscountAmount.IsZero())
}

func TestCalculateDiscountNegativeValueIgnored(t *testing.T) {
	res := money.CalculateDiscount(dec("60"), typePtr(domain.DiscountAmount), decPtr("-5"))

	assert.True(t, res.DiscountAmount.IsZero())
	assert.True(t, res.Total.Equal(dec("60")))
}

func TestCalculateDiscountRoundsToMoneyPlaces(t *testing.T) {
	// 33.335% of 10 = 3.3335 -> 3.33 at two places
	res := money.CalculateDiscount(dec("10"), typePtr(domain.DiscountPercentage), decPtr("33.335"))

	assert.Equal(t, "3.33", res.DiscountAmount.StringFixed(2))
	assert.Equal(t, "6.67", res.Total.StringFixed(2))
}

func TestCalculateItemTotal(t *testing.T) {
	// 3 x 4.50 with 10% off -> subtotal 13.50, discount 1.35, total 12.15
	res := money.CalculateItemTotal(dec("3"), dec("4.50"), typePtr(domain.DiscountPercentage), decPtr("10"))

	assert.True(t, res.Subtotal.Equal(dec("13.50")))
	assert.True(t, res.DiscountAmount.Equal(dec("1.35")))
	assert.True(t, res.Total.Equal(dec("12.15")))
}

func TestCalculateItemTotalNoDiscount(t *testing.T) {
	res := money.CalculateItemTotal(dec("2.5"), dec("8"), nil, nil)

	assert.True(t, res.Total.Equal(dec("20")))
	assert.True(t, res.DiscountAmount.IsZero())
}
