// Package validation checks parsed transactions against the import rules.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
	"github.com/SscSPs/transaction_analyzer/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ibanPattern     = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ruleMessages maps validator tags to the messages reported for them.
var ruleMessages = map[string]string{
	"required":       "must not be null",
	"iban":           "Invalid IBAN format",
	"notfuture":      "Transaction date cannot be in the future",
	"currency_code":  "Currency must be 3-letter ISO code",
	"min":            "size must be between 1 and 100",
	"max":            "size must be between 1 and 100",
	"decimal_digits": "Amount must have at most 12 integer digits and 2 decimal places",
}

// transactionRecord is the validated view of a domain.Transaction.
// Amount keeps its textual scale so "1.500" is reported as three fraction digits.
type transactionRecord struct {
	ID       string    `json:"id" validate:"required"`
	IBAN     string    `json:"iban" validate:"required,iban"`
	Date     time.Time `json:"date" validate:"required,notfuture"`
	Currency string    `json:"currency" validate:"required,currency_code"`
	Category *string   `json:"category" validate:"omitnil,min=1,max=100"`
	Amount   string    `json:"amount" validate:"required,decimal_digits=12:2"`
}

// RecordValidator evaluates every rule on a transaction and reports all violations.
type RecordValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// RecordValidatorOption configures a RecordValidator.
type RecordValidatorOption func(*RecordValidator)

// WithClock overrides the clock used for the not-in-the-future rule.
func WithClock(now func() time.Time) RecordValidatorOption {
	return func(v *RecordValidator) {
		v.now = now
	}
}

// NewRecordValidator builds a validator with the transaction rule tags registered.
func NewRecordValidator(options ...RecordValidatorOption) *RecordValidator {
	v := &RecordValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, option := range options {
		option(v)
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("iban", matches(ibanPattern))
	_ = v.validate.RegisterValidation("currency_code", matches(currencyPattern))
	_ = v.validate.RegisterValidation("notfuture", v.notInFuture)
	_ = v.validate.RegisterValidation("decimal_digits", decimalDigits)

	return v
}

// Validate returns the rule violations of txn; an empty slice means the transaction is valid.
func (v *RecordValidator) Validate(txn domain.Transaction) []apperrors.Violation {
	record := transactionRecord{
		IBAN:     txn.IBAN,
		Date:     txn.Date,
		Currency: txn.Currency,
		Category: txn.Category,
		Amount:   amountText(txn.Amount),
	}
	if txn.ID != uuid.Nil {
		record.ID = txn.ID.String()
	}

	err := v.validate.Struct(record)
	if err == nil {
		return []apperrors.Violation{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperrors.Violation{{Field: "transaction", Rule: "invalid", Message: err.Error()}}
	}

	violations := make([]apperrors.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := ruleMessages[fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		violations = append(violations, apperrors.Violation{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return violations
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

// notInFuture compares calendar dates in UTC.
func (v *RecordValidator) notInFuture(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now := v.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !day.After(today)
}

// decimalDigits checks "integer:fraction" digit limits on a decimal literal.
func decimalDigits(fl validator.FieldLevel) bool {
	limits := strings.SplitN(fl.Param(), ":", 2)
	if len(limits) != 2 {
		return false
	}
	maxInt, err := strconv.Atoi(limits[0])
	if err != nil {
		return false
	}
	maxFrac, err := strconv.Atoi(limits[1])
	if err != nil {
		return false
	}

	text := strings.TrimLeft(fl.Field().String(), "+-")
	intPart, fracPart, _ := strings.Cut(text, ".")
	intPart = strings.TrimLeft(intPart, "0")
	return len(intPart) <= maxInt && len(fracPart) <= maxFrac
}

// amountText renders d with its original scale, e.g. 100.500 stays "100.500".
func amountText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
