package domain

// Category is the closed taxonomy of ledger categories. Each category belongs
// to exactly one transaction type and carries a posting policy.
type Category string

const (
	// Income categories
	CategorySales       Category = "SALES"
	CategoryCatering    Category = "CATERING"
	CategoryOtherIncome Category = "OTHER_INCOME"

	// Expense categories
	CategoryInventoryPurchase Category = "INVENTORY_PURCHASE"
	CategoryEmployeeSalaries  Category = "EMPLOYEE_SALARIES"
	CategoryUtilities         Category = "UTILITIES"
	CategoryRent              Category = "RENT"
	CategoryMaintenance       Category = "MAINTENANCE"
	CategoryOtherExpense      Category = "OTHER_EXPENSE"
)

// CategoryPolicy describes what a category permits or requires at posting time.
type CategoryPolicy struct {
	TransactionType  TransactionType
	AllowsMultiItem  bool // line-item composition permitted
	AllowsDiscount   bool
	RequiresEmployee bool // employeeID mandatory, employee must be ACTIVE
}

// categoryPolicies is the closed policy table, loaded once at init and never
// mutated afterwards.
var categoryPolicies = map[Category]CategoryPolicy{
	CategorySales:       {TransactionType: Income, AllowsMultiItem: true, AllowsDiscount: true},
	CategoryCatering:    {TransactionType: Income, AllowsMultiItem: true, AllowsDiscount: true},
	CategoryOtherIncome: {TransactionType: Income},

	CategoryInventoryPurchase: {TransactionType: Expense, AllowsMultiItem: true, AllowsDiscount: true},
	CategoryEmployeeSalaries:  {TransactionType: Expense, RequiresEmployee: true},
	CategoryUtilities:         {TransactionType: Expense},
	CategoryRent:              {TransactionType: Expense},
	CategoryMaintenance:       {TransactionType: Expense},
	CategoryOtherExpense:      {TransactionType: Expense, AllowsDiscount: true},
}

// PolicyFor returns the posting policy for a category. The second return value
// is false for categories outside the taxonomy.
func PolicyFor(c Category) (CategoryPolicy, bool) {
	p, ok := categoryPolicies[c]
	return p, ok
}

// Categories returns every category of the given transaction type.
func Categories(t TransactionType) []Category {
	out := make([]Category, 0, len(categoryPolicies))
	for c, p := range categoryPolicies {
		if p.TransactionType == t {
			out = append(out, c)
		}
	}
	return out
}
