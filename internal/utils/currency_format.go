package utils

import (
	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// FormatWithCurrencyPrecision renders an amount at the currency's precision.
// Example: 12.3456 with USD (precision 2) returns "12.35".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).String()
}

// FormatWithPrecision renders an amount at the given precision when only the
// precision value is at hand.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
