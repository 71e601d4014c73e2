package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/SscSPs/transaction_analyzer/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

func validTransaction() domain.Transaction {
	category := "GROCERIES"
	return domain.Transaction{
		ID:       uuid.New(),
		IBAN:     "DE89370400440532013000",
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency: "EUR",
		Category: &category,
		Amount:   decimal.RequireFromString("100.50"),
	}
}

func strPtr(s string) *string { return &s }

func fields(violations []apperrors.Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.Field
	}
	return out
}

func TestRecordValidator_Validate(t *testing.T) {
	v := validation.NewRecordValidator(validation.WithClock(func() time.Time { return fixedNow }))

	tests := []struct {
		name       string
		mutate     func(*domain.Transaction)
		wantFields []string
	}{
		{name: "valid transaction", mutate: func(*domain.Transaction) {}},
		{name: "nil category is allowed", mutate: func(t *domain.Transaction) { t.Category = nil }},
		{name: "date equal to today is allowed", mutate: func(t *domain.Transaction) { t.Date = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC) }},
		{name: "zero amount is allowed", mutate: func(t *domain.Transaction) { t.Amount = decimal.Zero }},
		{name: "twelve integer digits allowed", mutate: func(t *domain.Transaction) { t.Amount = decimal.RequireFromString("-999999999999.99") }},
		{name: "missing id", mutate: func(t *domain.Transaction) { t.ID = uuid.Nil }, wantFields: []string{"id"}},
		{name: "malformed iban", mutate: func(t *domain.Transaction) { t.IBAN = "DE89" }, wantFields: []string{"iban"}},
		{name: "lowercase iban", mutate: func(t *domain.Transaction) { t.IBAN = "de89370400440532013000" }, wantFields: []string{"iban"}},
		{name: "empty iban", mutate: func(t *domain.Transaction) { t.IBAN = "" }, wantFields: []string{"iban"}},
		{name: "future date", mutate: func(t *domain.Transaction) { t.Date = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }, wantFields: []string{"date"}},
		{name: "missing date", mutate: func(t *domain.Transaction) { t.Date = time.Time{} }, wantFields: []string{"date"}},
		{name: "lowercase currency", mutate: func(t *domain.Transaction) { t.Currency = "eur" }, wantFields: []string{"currency"}},
		{name: "four letter currency", mutate: func(t *domain.Transaction) { t.Currency = "EURO" }, wantFields: []string{"currency"}},
		{name: "empty category", mutate: func(t *domain.Transaction) { t.Category = strPtr("") }, wantFields: []string{"category"}},
		{name: "category too long", mutate: func(t *domain.Transaction) { t.Category = strPtr(strings.Repeat("A", 101)) }, wantFields: []string{"category"}},
		{name: "three fraction digits", mutate: func(t *domain.Transaction) { t.Amount = decimal.RequireFromString("1.500") }, wantFields: []string{"amount"}},
		{name: "thirteen integer digits", mutate: func(t *domain.Transaction) { t.Amount = decimal.RequireFromString("1000000000000") }, wantFields: []string{"amount"}},
		{
			name: "all violations are reported",
			mutate: func(t *domain.Transaction) {
				t.IBAN = "XX"
				t.Currency = "E"
				t.Amount = decimal.RequireFromString("0.001")
			},
			wantFields: []string{"iban", "currency", "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := validTransaction()
			tt.mutate(&txn)

			violations := v.Validate(txn)

			require.NotNil(t, violations)
			if len(tt.wantFields) == 0 {
				assert.Empty(t, violations)
				return
			}
			assert.ElementsMatch(t, tt.wantFields, fields(violations))
		})
	}
}

func TestRecordValidator_Messages(t *testing.T) {
	v := validation.NewRecordValidator(validation.WithClock(func() time.Time { return fixedNow }))
	txn := validTransaction()
	txn.IBAN = "NOPE"

	violations := v.Validate(txn)

	require.Len(t, violations, 1)
	assert.Equal(t, "iban", violations[0].Field)
	assert.Equal(t, "iban", violations[0].Rule)
	assert.Equal(t, "Invalid IBAN format", violations[0].Message)
}
