package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// ListDebtsParams filter the payable/receivable read path.
type ListDebtsParams struct {
	BranchID  *string            `form:"branchID"`
	Status    *domain.DebtStatus `form:"status"`
	Limit     int                `form:"limit"`
	NextToken *string            `form:"nextToken"`
}

// DebtResponse is the shared API shape of a payable or receivable.
type DebtResponse struct {
	DebtID              string          `json:"debtID"`
	BranchID            string          `json:"branchID"`
	ContactID           string          `json:"contactID"`
	LinkedTransactionID string          `json:"linkedTransactionID"`
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	Status              string          `json:"status"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ListDebtsResponse pages debt records.
type ListDebtsResponse struct {
	Debts     []DebtResponse `json:"debts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToPayableResponse converts a domain payable to its API shape.
func ToPayableResponse(p *domain.AccountPayable) DebtResponse {
	return DebtResponse{
		DebtID:              p.PayableID,
		BranchID:            p.BranchID,
		ContactID:           p.ContactID,
		LinkedTransactionID: p.LinkedTransactionID,
		Description:         p.Description,
		OriginalAmount:      p.OriginalAmount,
		RemainingAmount:     p.RemainingAmount,
		Status:              string(p.Status),
		DueDate:             p.DueDate,
		CreatedAt:           p.CreatedAt,
	}
}

// ToReceivableResponse converts a domain receivable to its API shape.
func ToReceivableResponse(r *domain.AccountReceivable) DebtResponse {
	return DebtResponse{
		DebtID:              r.ReceivableID,
		BranchID:            r.BranchID,
		ContactID:           r.ContactID,
		LinkedTransactionID: r.LinkedTransactionID,
		Description:         r.Description,
		OriginalAmount:      r.OriginalAmount,
		RemainingAmount:     r.RemainingAmount,
		Status:              string(r.Status),
		DueDate:             r.DueDate,
		CreatedAt:           r.CreatedAt,
	}
}

// ToPayableResponses converts a slice of domain payables.
func ToPayableResponses(ps []domain.AccountPayable) []DebtResponse {
	out := make([]DebtResponse, len(ps))
	for i := range ps {
		out[i] = ToPayableResponse(&ps[i])
	}
	return out
}

// ToReceivableResponses converts a slice of domain receivables.
func ToReceivableResponses(rs []domain.AccountReceivable) []DebtResponse {
	out := make([]DebtResponse, len(rs))
	for i := range rs {
		out[i] = ToReceivableResponse(&rs[i])
	}
	return out
}
