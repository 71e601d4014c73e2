package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// TopSpentBy is one group of an expense ranking. TotalSpent is the (negative) sum of expenses.
// Transactions without a category are grouped under the empty attribute.
type TopSpentBy struct {
	Attribute  string          `json:"attribute"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// BalanceByAttribute splits the movements matching an attribute value into expenses and income.
type BalanceByAttribute struct {
	Expenses decimal.Decimal `json:"expenses"`
	Income   decimal.Decimal `json:"income"`
}

// Balance is the net of expenses and income.
func (b BalanceByAttribute) Balance() decimal.Decimal {
	return b.Expenses.Add(b.Income)
}

// YearMonthKey renders a year and month as "{year}-{month}" without zero padding, e.g. "2024-1".
func YearMonthKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
