package ledger

import (
	"math"
	"strings"

	"github.com/theirongolddev/spend/internal/model"

	"github.com/shopspring/decimal"
)

// Field names reported in validation errors.
const (
	FieldDate     = "date"
	FieldCategory = "category"
	FieldAmount   = "amount"
)

// Entry is the raw text of an expense as typed into a form.
type Entry struct {
	Date     string
	Category string
	Amount   string
}

// ValidateDate checks a date field. Dates are free text; only emptiness is rejected.
func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return &model.ValidationError{Field: FieldDate, Reason: "must not be empty"}
	}
	return nil
}

// ValidateCategory checks a category field.
func ValidateCategory(s string) error {
	if strings.TrimSpace(s) == "" {
		return &model.ValidationError{Field: FieldCategory, Reason: "must not be empty"}
	}
	return nil
}

// ValidateAmount checks that s parses as a non-negative decimal.
func ValidateAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

// ParseAmount parses a monetary amount. Both "12.34" and "12,34" are
// accepted; a comma counts as the decimal separator only when one or two
// digits follow it, so "1,234" is rejected rather than read as 1.234.
// Exponent notation, negative values and amounts beyond float64 range are
// rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &model.ValidationError{Field: FieldAmount, Reason: "must not be empty"}
	}
	notNumber := &model.ValidationError{Field: FieldAmount, Reason: "must be a number"}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, notNumber
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.Contains(s, ".") || strings.Contains(frac, ",") || len(frac) < 1 || len(frac) > 2 {
			return decimal.Zero, notNumber
		}
		s = s[:i] + "." + frac
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, notNumber
	}
	if d.IsNegative() {
		return decimal.Zero, &model.ValidationError{Field: FieldAmount, Reason: "must not be negative"}
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, &model.ValidationError{Field: FieldAmount, Reason: "is too large"}
	}
	return d, nil
}

// Validate checks every field of the entry and returns the normalized
// expense (ID unset). The first offending field is reported.
func (e Entry) Validate() (model.Expense, error) {
	if err := ValidateDate(e.Date); err != nil {
		return model.Expense{}, err
	}
	if err := ValidateCategory(e.Category); err != nil {
		return model.Expense{}, err
	}
	amount, err := ParseAmount(e.Amount)
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		Date:     strings.TrimSpace(e.Date),
		Category: strings.TrimSpace(e.Category),
		Amount:   amount.InexactFloat64(),
	}, nil
}
