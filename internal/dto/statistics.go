package dto

import (
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MostSpentQuery defines the query parameters of the most-spent report.
type MostSpentQuery struct {
	FilterBy   string `form:"filterBy" binding:"required"`
	ResultSize int    `form:"resultSize" binding:"required,min=1"`
	Currency   string `form:"currency" binding:"required,len=3"`
}

// BalanceQuery defines the query parameters of the balance report.
type BalanceQuery struct {
	FilterBy string `form:"filterBy" binding:"required"`
	Value    string `form:"value" binding:"required"`
	Currency string `form:"currency" binding:"required,len=3"`
}

// TopSpentByResponse is one group of the most-spent report.
type TopSpentByResponse struct {
	Attribute  string          `json:"attribute"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// BalanceResponse splits the movements of one attribute value into expenses and income.
type BalanceResponse struct {
	Expenses decimal.Decimal `json:"expenses"`
	Income   decimal.Decimal `json:"income"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToTopSpentByResponse converts aggregation rows, keeping their order.
func ToTopSpentByResponse(rows []domain.TopSpentBy) []TopSpentByResponse {
	res := make([]TopSpentByResponse, len(rows))
	for i, row := range rows {
		res[i] = TopSpentByResponse{Attribute: row.Attribute, TotalSpent: row.TotalSpent}
	}
	return res
}

// ToBalanceResponse converts a domain.BalanceByAttribute and derives the balance.
func ToBalanceResponse(b *domain.BalanceByAttribute) BalanceResponse {
	return BalanceResponse{
		Expenses: b.Expenses,
		Income:   b.Income,
		Balance:  b.Balance(),
	}
}
