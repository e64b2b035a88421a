package money

import (
	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// MoneyPlaces is the scale persisted for monetary values.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// DiscountResult carries the three figures every discounted amount resolves to.
type DiscountResult struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// CalculateDiscount computes subtotal/discount/total for a monetary subtotal.
// A nil discount type or value means no discount. The discount amount is
// clamped to the subtotal so the total can never go negative; oversized
// discounts are not an error.
//
// All arithmetic is decimal; results are rounded half-up to MoneyPlaces
// because they are persisted as money.
func CalculateDiscount(subtotal decimal.Decimal, discountType *domain.DiscountType, discountValue *decimal.Decimal) DiscountResult {
	subtotal = subtotal.Round(MoneyPlaces)

	if discountType == nil || discountValue == nil {
		return DiscountResult{Subtotal: subtotal, DiscountAmount: decimal.Zero, Total: subtotal}
	}

	var discount decimal.Decimal
	switch *discountType {
	case domain.DiscountPercentage:
		discount = subtotal.Mul(*discountValue).Div(hundred).Round(MoneyPlaces)
	case domain.DiscountAmount:
		discount = discountValue.Round(MoneyPlaces)
	default:
		discount = decimal.Zero
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return DiscountResult{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}
}

// CalculateItemTotal applies a per-line discount to quantity * unitPrice.
func CalculateItemTotal(quantity, unitPrice decimal.Decimal, discountType *domain.DiscountType, discountValue *decimal.Decimal) DiscountResult {
	return CalculateDiscount(quantity.Mul(unitPrice), discountType, discountValue)
}
