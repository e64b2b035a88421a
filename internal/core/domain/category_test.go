package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

func TestPolicyForKnownCategories(t *testing.T) {
	salary, ok := domain.PolicyFor(domain.CategoryEmployeeSalaries)
	require.True(t, ok)
	assert.Equal(t, domain.Expense, salary.TransactionType)
	assert.True(t, salary.RequiresEmployee)
	assert.False(t, salary.AllowsMultiItem)
	assert.False(t, salary.AllowsDiscount)

	purchase, ok := domain.PolicyFor(domain.CategoryInventoryPurchase)
	require.True(t, ok)
	assert.True(t, purchase.AllowsMultiItem)

	sales, ok := domain.PolicyFor(domain.CategorySales)
	require.True(t, ok)
	assert.Equal(t, domain.Income, sales.TransactionType)
	assert.True(t, sales.AllowsDiscount)
}

func TestPolicyForUnknownCategory(t *testing.T) {
	_, ok := domain.PolicyFor(domain.Category("GAMBLING"))
	assert.False(t, ok)
}

func TestCategoriesSplitByType(t *testing.T) {
	income := domain.Categories(domain.Income)
	expense := domain.Categories(domain.Expense)

	assert.Contains(t, income, domain.CategorySales)
	assert.NotContains(t, income, domain.CategoryRent)
	assert.Contains(t, expense, domain.CategoryEmployeeSalaries)

	for _, c := range append(income, expense...) {
		_, ok := domain.PolicyFor(c)
		assert.True(t, ok, "category %s missing from policy table", c)
	}
}

func TestDebtStatusFor(t *testing.T) {
	d := decimal.RequireFromString

	assert.Equal(t, domain.DebtActive, domain.DebtStatusFor(d("200"), d("200")))
	assert.Equal(t, domain.DebtPartial, domain.DebtStatusFor(d("200"), d("50")))
	assert.Equal(t, domain.DebtPaid, domain.DebtStatusFor(d("200"), d("0")))
}
