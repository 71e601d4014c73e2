package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_YearMonthKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "single digit month is not padded", date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), want: "2024-1"},
		{name: "two digit month", date: time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), want: "2023-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Date: tt.date}
			assert.Equal(t, tt.want, txn.YearMonthKey())
		})
	}
}

func TestTransaction_IsExpense(t *testing.T) {
	assert.True(t, domain.Transaction{Amount: decimal.RequireFromString("-0.01")}.IsExpense())
	assert.False(t, domain.Transaction{Amount: decimal.Zero}.IsExpense())
	assert.False(t, domain.Transaction{Amount: decimal.RequireFromString("30")}.IsExpense())
}

func TestBalanceByAttribute_Balance(t *testing.T) {
	b := domain.BalanceByAttribute{
		Expenses: decimal.RequireFromString("-50.00"),
		Income:   decimal.RequireFromString("30.00"),
	}
	assert.True(t, decimal.RequireFromString("-20").Equal(b.Balance()))

	var empty domain.BalanceByAttribute
	assert.True(t, empty.Balance().IsZero())
}

func TestImportJob_Transitions(t *testing.T) {
	t.Run("complete from in progress", func(t *testing.T) {
		job := domain.NewImportJob(time.Now())
		require.Equal(t, domain.ImportJobInProgress, job.Status)
		require.NoError(t, job.Complete())
		assert.Equal(t, domain.ImportJobCompleted, job.Status)
		assert.Nil(t, job.ErrorMessage)
	})

	t.Run("fail from in progress sets message", func(t *testing.T) {
		job := domain.NewImportJob(time.Now())
		require.NoError(t, job.Fail("boom"))
		assert.Equal(t, domain.ImportJobFailed, job.Status)
		require.NotNil(t, job.ErrorMessage)
		assert.Equal(t, "boom", *job.ErrorMessage)
	})

	t.Run("repeated terminal transition is idempotent", func(t *testing.T) {
		job := domain.NewImportJob(time.Now())
		require.NoError(t, job.Fail("first"))
		require.NoError(t, job.Fail("second"))
		assert.Equal(t, "first", *job.ErrorMessage)

		done := domain.NewImportJob(time.Now())
		require.NoError(t, done.Complete())
		require.NoError(t, done.Complete())
		assert.Equal(t, domain.ImportJobCompleted, done.Status)
	})

	t.Run("conflicting terminal transition is rejected", func(t *testing.T) {
		job := domain.NewImportJob(time.Now())
		require.NoError(t, job.Complete())
		err := job.Fail("late")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, domain.ImportJobCompleted, job.Status)
		assert.Nil(t, job.ErrorMessage)

		failed := domain.NewImportJob(time.Now())
		require.NoError(t, failed.Fail("boom"))
		assert.ErrorIs(t, failed.Complete(), apperrors.ErrInvalidTransition)
		assert.Equal(t, domain.ImportJobFailed, failed.Status)
	})
}

func TestParseImportJobID(t *testing.T) {
	job := domain.NewImportJob(time.Now())
	id, err := domain.ParseImportJobID(job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, job.ID, id)

	_, err = domain.ParseImportJobID("not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	canonical := job.ID.String()
	for _, raw := range []string{
		"{" + canonical + "}",
		"urn:uuid:" + canonical,
		strings.ReplaceAll(canonical, "-", ""),
		"",
	} {
		_, err = domain.ParseImportJobID(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier, raw)
	}
}

func TestParseImportJobStatus(t *testing.T) {
	status, err := domain.ParseImportJobStatus("FAILED")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportJobFailed, status)
	assert.True(t, status.IsTerminal())
	assert.False(t, domain.ImportJobInProgress.IsTerminal())

	_, err = domain.ParseImportJobStatus("IMPORT_IN_PROGRESS")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseFilterAttribute(t *testing.T) {
	for _, attr := range domain.AllFilterAttributes() {
		parsed, err := domain.ParseFilterAttribute(string(attr))
		require.NoError(t, err)
		assert.Equal(t, attr, parsed)
	}

	parsed, err := domain.ParseFilterAttribute(" year_month ")
	require.NoError(t, err)
	assert.Equal(t, domain.FilterByYearMonth, parsed)

	_, err = domain.ParseFilterAttribute("MERCHANT")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseAtomicityStrategy(t *testing.T) {
	s, err := domain.ParseAtomicityStrategy("")
	require.NoError(t, err)
	assert.Equal(t, domain.AtomicityStreaming, s)

	s, err = domain.ParseAtomicityStrategy("buffer_all")
	require.NoError(t, err)
	assert.Equal(t, domain.AtomicityBufferAll, s)

	_, err = domain.ParseAtomicityStrategy("ALL_OR_NOTHING")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
