package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/transaction_analyzer/internal/apperrors"
)

// FilterAttribute names the dimension a statistics request groups or filters by.
// The set is closed; switches over it are checked by the exhaustive linter.
type FilterAttribute string

const (
	FilterByCategory  FilterAttribute = "CATEGORY"
	FilterByYearMonth FilterAttribute = "YEAR_MONTH"
	FilterByIBAN      FilterAttribute = "IBAN"
	FilterByCurrency  FilterAttribute = "CURRENCY"
	FilterByDate      FilterAttribute = "DATE"
)

// AllFilterAttributes lists every supported attribute.
func AllFilterAttributes() []FilterAttribute {
	return []FilterAttribute{FilterByCategory, FilterByYearMonth, FilterByIBAN, FilterByCurrency, FilterByDate}
}

// ParseFilterAttribute matches a request value case-insensitively.
func ParseFilterAttribute(raw string) (FilterAttribute, error) {
	candidate := FilterAttribute(strings.ToUpper(strings.TrimSpace(raw)))
	for _, attr := range AllFilterAttributes() {
		if attr == candidate {
			return attr, nil
		}
	}
	return "", fmt.Errorf("%w: unknown filter attribute %q", apperrors.ErrValidation, raw)
}
