package dto

import (
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for an imported transaction.
type TransactionResponse struct {
	ID       string          `json:"id"`
	IBAN     string          `json:"iban"`
	Date     string          `json:"date"` // YYYY-MM-DD
	Currency string          `json:"currency"`
	Category *string         `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:       t.ID.String(),
		IBAN:     t.IBAN,
		Date:     t.Date.Format(domain.DateLayout),
		Currency: t.Currency,
		Category: t.Category,
		Amount:   t.Amount,
	}
}

// ToListTransactionsResponse converts one page of transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
