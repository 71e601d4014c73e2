package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in CSV input and persisted rows.
const DateLayout = "2006-01-02"

// Transaction is a single bank movement imported from a CSV row.
// A negative Amount is an expense, zero or positive is income.
type Transaction struct {
	ID       uuid.UUID       `json:"id"`
	IBAN     string          `json:"iban"`
	Date     time.Time       `json:"date"`
	Currency string          `json:"currency"`
	Category *string         `json:"category,omitempty"` // nil when the row carried no category column
	Amount   decimal.Decimal `json:"amount"`
}

// IsExpense reports whether the transaction moved money out of the account.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// YearMonthKey renders the transaction date as "{year}-{month}" without zero padding.
func (t Transaction) YearMonthKey() string {
	return YearMonthKey(t.Date.Year(), int(t.Date.Month()))
}
