package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of an imported bank transaction.
type Transaction struct {
	TransactionID   uuid.UUID       `json:"transactionID"`
	IBAN            string          `json:"iban"`
	TransactionDate time.Time       `json:"transactionDate"`
	Currency        string          `json:"currency"`
	Category        *string         `json:"category"` // Nullable
	Amount          decimal.Decimal `json:"amount"`
}
