package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// LineItemInput is one inventory-affecting line of a posting request.
type LineItemInput struct {
	InventoryItemID    string               `json:"inventoryItemID" binding:"required"`
	InventorySubUnitID *string              `json:"inventorySubUnitID,omitempty"`
	Quantity           decimal.Decimal      `json:"quantity" binding:"required"`
	UnitPrice          *decimal.Decimal     `json:"unitPrice,omitempty"` // required for PURCHASE
	OperationType      domain.OperationType `json:"operationType" binding:"required"`
	SellingPrice       *decimal.Decimal     `json:"sellingPrice,omitempty"` // optional selling-price refresh on PURCHASE
	DiscountType       *domain.DiscountType `json:"discountType,omitempty"`
	DiscountValue      *decimal.Decimal     `json:"discountValue,omitempty"`
}

// CreateIncomeRequest is the payload for posting an income transaction.
// Exactly one of Amount / Items must be supplied.
type CreateIncomeRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	Category      domain.Category      `json:"category" binding:"required,category"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	Amount        *decimal.Decimal     `json:"amount,omitempty"`
	Items         []LineItemInput      `json:"items,omitempty"`

	DiscountType   *domain.DiscountType `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal     `json:"discountValue,omitempty"`
	DiscountReason string               `json:"discountReason,omitempty"`

	BranchID *string `json:"branchID,omitempty"`
	Notes    string  `json:"notes,omitempty"`

	// Opt-in: record the uncollected income as a receivable owed by ContactID.
	CreateReceivable  bool       `json:"createReceivable,omitempty"`
	ContactID         *string    `json:"contactID,omitempty"`
	ReceivableDueDate *time.Time `json:"receivableDueDate,omitempty"`
}

// CreateExpenseRequest is the payload for posting an expense transaction.
// Exactly one of Amount / Items must be supplied. An unpaid remainder spawns
// a payable owed to ContactID.
type CreateExpenseRequest struct {
	Date          time.Time             `json:"date" binding:"required"`
	Category      domain.Category       `json:"category" binding:"required,category"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod,omitempty"`
	Amount        *decimal.Decimal      `json:"amount,omitempty"`
	Items         []LineItemInput       `json:"items,omitempty"`

	DiscountType   *domain.DiscountType `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal     `json:"discountValue,omitempty"`
	DiscountReason string               `json:"discountReason,omitempty"`

	BranchID   *string `json:"branchID,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	EmployeeID *string `json:"employeeID,omitempty"`

	PaidAmount             *decimal.Decimal `json:"paidAmount,omitempty"` // defaults to the full total
	CreateDebtForRemaining *bool            `json:"createDebtForRemaining,omitempty"`
	ContactID              *string          `json:"contactID,omitempty"`
	PayableDueDate         *time.Time       `json:"payableDueDate,omitempty"`
}

// UpdateTransactionRequest carries the partial-update fields. Amounts and line
// items are immutable after posting; only descriptive fields may change.
type UpdateTransactionRequest struct {
	Date           *time.Time            `json:"date,omitempty"`
	PaymentMethod  *domain.PaymentMethod `json:"paymentMethod,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
	DiscountReason *string               `json:"discountReason,omitempty"`
}

// ListTransactionsParams are the read-path filters.
type ListTransactionsParams struct {
	BranchID        *string                 `form:"branchID"`
	TransactionType *domain.TransactionType `form:"type"`
	Category        *domain.Category        `form:"category"`
	DateFrom        *time.Time              `form:"dateFrom" time_format:"2006-01-02"`
	DateTo          *time.Time              `form:"dateTo" time_format:"2006-01-02"`
	Limit           int                     `form:"limit"`
	NextToken       *string                 `form:"nextToken"`
}

// SummaryParams scope the summary aggregation.
type SummaryParams struct {
	BranchID *string    `form:"branchID"`
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// LineItemResponse is the API shape of a transaction line item.
type LineItemResponse struct {
	LineItemID      string          `json:"lineItemID"`
	InventoryItemID string          `json:"inventoryItemID"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	OperationType   string          `json:"operationType"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
}

// TransactionResponse is the API shape of a ledger entry.
type TransactionResponse struct {
	TransactionID      string             `json:"transactionID"`
	TransactionType    string             `json:"transactionType"`
	Category           string             `json:"category"`
	Amount             decimal.Decimal    `json:"amount"`
	TotalAmount        decimal.Decimal    `json:"totalAmount"`
	PaidAmount         decimal.Decimal    `json:"paidAmount"`
	DiscountAmount     decimal.Decimal    `json:"discountAmount"`
	PaymentMethod      *string            `json:"paymentMethod,omitempty"`
	CurrencyCode       string             `json:"currencyCode"`
	Date               time.Time          `json:"date"`
	BranchID           string             `json:"branchID"`
	Notes              string             `json:"notes,omitempty"`
	EmployeeID         *string            `json:"employeeID,omitempty"`
	ContactID          *string            `json:"contactID,omitempty"`
	LinkedPayableID    *string            `json:"linkedPayableID,omitempty"`
	LinkedReceivableID *string            `json:"linkedReceivableID,omitempty"`
	LineItems          []LineItemResponse `json:"lineItems,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
}

// ListTransactionsResponse pages transactions with a continuation token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// SummaryResponse is the aggregate read path result.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int64           `json:"transactionCount"`
}

// ToLineItemResponse converts a domain line item to its API shape.
func ToLineItemResponse(li *domain.TransactionLineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:      li.LineItemID,
		InventoryItemID: li.InventoryItemID,
		Quantity:        li.Quantity,
		UnitPrice:       li.UnitPrice,
		OperationType:   string(li.OperationType),
		Subtotal:        li.Subtotal,
		DiscountAmount:  li.DiscountAmount,
		Total:           li.Total,
	}
}

// ToTransactionResponse converts a domain transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:      t.TransactionID,
		TransactionType:    string(t.TransactionType),
		Category:           string(t.Category),
		Amount:             t.Amount,
		TotalAmount:        t.TotalAmount,
		PaidAmount:         t.PaidAmount,
		DiscountAmount:     t.DiscountAmount,
		CurrencyCode:       t.CurrencyCode,
		Date:               t.TransactionDate,
		BranchID:           t.BranchID,
		Notes:              t.Notes,
		EmployeeID:         t.EmployeeID,
		ContactID:          t.ContactID,
		LinkedPayableID:    t.LinkedPayableID,
		LinkedReceivableID: t.LinkedReceivableID,
		CreatedAt:          t.CreatedAt,
		CreatedBy:          t.CreatedBy,
	}
	if t.PaymentMethod != nil {
		pm := string(*t.PaymentMethod)
		resp.PaymentMethod = &pm
	}
	if len(t.LineItems) > 0 {
		resp.LineItems = make([]LineItemResponse, len(t.LineItems))
		for i := range t.LineItems {
			resp.LineItems[i] = ToLineItemResponse(&t.LineItems[i])
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToSummaryResponse converts the aggregate domain summary.
func ToSummaryResponse(s domain.TransactionSummary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		Net:              s.Net,
		TransactionCount: s.TransactionCount,
	}
}
