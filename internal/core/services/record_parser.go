package services

import (
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordHeader is the column order every import file is read with; the file's own header line is skipped.
var RecordHeader = []string{"iban", "date", "currency", "category", "amount"}

const (
	colIBAN = iota
	colDate
	colCurrency
	colCategory
	colAmount
)

// ParseRecord converts one CSV record into a Transaction with a fresh identifier.
// line is used for error reporting only.
func ParseRecord(line int, record []string) (domain.Transaction, error) {
	field := func(idx int) (string, bool) {
		if idx < len(record) {
			return record[idx], true
		}
		return "", false
	}

	txn := domain.Transaction{ID: uuid.New()}

	if rawIBAN, ok := field(colIBAN); ok {
		txn.IBAN = normalizeIBAN(rawIBAN)
	}

	rawDate, _ := field(colDate)
	date, err := time.Parse(domain.DateLayout, rawDate)
	if err != nil {
		return domain.Transaction{}, &apperrors.ParseError{Line: line, Field: "date", Value: rawDate, Err: err}
	}
	txn.Date = date

	txn.Currency, _ = field(colCurrency)

	if rawCategory, ok := field(colCategory); ok {
		category := strings.ToUpper(strings.TrimSpace(rawCategory))
		txn.Category = &category
	}

	rawAmount, _ := field(colAmount)
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return domain.Transaction{}, &apperrors.ParseError{Line: line, Field: "amount", Value: rawAmount, Err: err}
	}
	txn.Amount = amount

	return txn, nil
}

// normalizeIBAN drops every whitespace rune and upper-cases the rest.
func normalizeIBAN(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
}
