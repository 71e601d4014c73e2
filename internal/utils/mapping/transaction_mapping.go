package mapping

import (
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/SscSPs/transaction_analyzer/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.ID,
		IBAN:            d.IBAN,
		TransactionDate: d.Date,
		Currency:        d.Currency,
		Category:        d.Category,
		Amount:          d.Amount,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:       m.TransactionID,
		IBAN:     m.IBAN,
		Date:     m.TransactionDate,
		Currency: m.Currency,
		Category: m.Category,
		Amount:   m.Amount,
	}
}

// ToModelTransactionSlice converts a slice of domain Transactions to model Transactions
func ToModelTransactionSlice(ds []domain.Transaction) []models.Transaction {
	ms := make([]models.Transaction, len(ds))
	for i, d := range ds {
		ms[i] = ToModelTransaction(d)
	}
	return ms
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
