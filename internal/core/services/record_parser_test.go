package services_test

import (
	"testing"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	txn, err := services.ParseRecord(2, []string{" gb82 west 1234 5698 7654 32 ", "2023-12-31", "GBP", " travel ", "15.75"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, txn.ID)
	assert.Equal(t, "GB82WEST12345698765432", txn.IBAN)
	assert.Equal(t, "2023-12-31", txn.Date.Format("2006-01-02"))
	assert.Equal(t, "GBP", txn.Currency)
	require.NotNil(t, txn.Category)
	assert.Equal(t, "TRAVEL", *txn.Category)
	assert.Equal(t, "15.75", txn.Amount.String())
}

func TestParseRecord_FreshIdentifiers(t *testing.T) {
	record := []string{"GB82WEST12345698765432", "2023-12-31", "GBP", "X", "1"}
	first, err := services.ParseRecord(2, record)
	require.NoError(t, err)
	second, err := services.ParseRecord(3, record)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestParseRecord_EmptyCategory(t *testing.T) {
	txn, err := services.ParseRecord(2, []string{"GB82WEST12345698765432", "2023-12-31", "GBP", "", "1"})
	require.NoError(t, err)
	require.NotNil(t, txn.Category)
	assert.Equal(t, "", *txn.Category)
}

func TestParseRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		field  string
	}{
		{name: "bad date", record: []string{"GB82WEST12345698765432", "2023-13-01", "GBP", "X", "1"}, field: "date"},
		{name: "missing date", record: []string{"GB82WEST12345698765432"}, field: "date"},
		{name: "bad amount", record: []string{"GB82WEST12345698765432", "2023-12-01", "GBP", "X", "1,5"}, field: "amount"},
		{name: "empty amount", record: []string{"GB82WEST12345698765432", "2023-12-01", "GBP", "X", ""}, field: "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.ParseRecord(7, tt.record)

			var parseErr *apperrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.field, parseErr.Field)
			assert.Equal(t, 7, parseErr.Line)
		})
	}
}
