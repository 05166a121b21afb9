package earnings

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"paypulse/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateShift checks the fields aggregations depend on.
func ValidateShift(s domain.Shift) error {
	if s.Date.IsZero() {
		return domain.MalformedShiftError{ShiftID: s.ID, Field: "date", Reason: "is missing"}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"hours", s.Hours}, {"rate", s.Rate}, {"pay", s.Pay}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return domain.MalformedShiftError{ShiftID: s.ID, Field: f.name, Reason: "is not a finite number"}
		}
	}
	for i, e := range s.Expenses {
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			return domain.MalformedShiftError{ShiftID: s.ID, Field: fmt.Sprintf("expenses[%d].amount", i), Reason: "is not a finite number"}
		}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.MalformedShiftError{
				ShiftID: s.ID,
				Field:   strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Shift.")),
				Reason:  strings.TrimSpace("failed " + fe.Tag() + " " + fe.Param()),
			}
		}
		return domain.MalformedShiftError{ShiftID: s.ID, Field: "shift", Reason: err.Error()}
	}
	return nil
}

// ValidateShifts fails on the first malformed shift.
func ValidateShifts(shifts []domain.Shift) error {
	for _, s := range shifts {
		if err := ValidateShift(s); err != nil {
			return err
		}
	}
	return nil
}

// Sanitize splits shifts into the well-formed ones and the errors for the
// rest, so one bad record can be reported without losing the others.
func Sanitize(shifts []domain.Shift) ([]domain.Shift, []error) {
	valid := make([]domain.Shift, 0, len(shifts))
	var rejected []error
	for _, s := range shifts {
		if err := ValidateShift(s); err != nil {
			rejected = append(rejected, err)
			continue
		}
		valid = append(valid, s)
	}
	return valid, rejected
}
