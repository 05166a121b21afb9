package earnings

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paypulse/internal/domain"
)

func TestValidateShift(t *testing.T) {
	good := newShift("s1", "2026-10-01", 8, 10, domain.StatusComplete)
	require.NoError(t, ValidateShift(good))

	cases := []struct {
		name  string
		edit  func(*domain.Shift)
		field string
	}{
		{"missing date", func(s *domain.Shift) { s.Date = time.Time{} }, "date"},
		{"nan hours", func(s *domain.Shift) { s.Hours = math.NaN() }, "hours"},
		{"infinite rate", func(s *domain.Shift) { s.Rate = math.Inf(1) }, "rate"},
		{"negative hours", func(s *domain.Shift) { s.Hours = -1 }, "hours"},
		{"negative rate", func(s *domain.Shift) { s.Rate = -0.5 }, "rate"},
		{"unknown status", func(s *domain.Shift) { s.Status = "done" }, "status"},
		{"unnamed expense", func(s *domain.Shift) { s.Expenses = []domain.Expense{{Amount: 3}} }, "expenses[0].name"},
		{"infinite expense", func(s *domain.Shift) {
			s.Expenses = []domain.Expense{{Name: "food", Amount: 2}, {Name: "travel", Amount: math.Inf(1)}}
		}, "expenses[1].amount"},
		{"nan expense", func(s *domain.Shift) { s.Expenses = []domain.Expense{{Name: "food", Amount: math.NaN()}} }, "expenses[0].amount"},
		{"negative expense", func(s *domain.Shift) { s.Expenses = []domain.Expense{{Name: "food", Amount: -3}} }, "expenses[0].amount"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := good
			c.edit(&s)
			err := ValidateShift(s)
			var malformed domain.MalformedShiftError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, "s1", malformed.ShiftID)
			assert.Equal(t, c.field, malformed.Field)
		})
	}
}

func TestSanitizeKeepsTheRest(t *testing.T) {
	bad := newShift("bad", "2026-10-02", 8, 10, "done")
	shifts := []domain.Shift{
		newShift("a", "2026-10-01", 8, 10, domain.StatusComplete),
		bad,
		newShift("b", "2026-10-03", 4, 10, domain.StatusPending),
	}

	valid, rejected := Sanitize(shifts)
	assert.Equal(t, []string{"a", "b"}, ids(valid))
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Error(), "bad")

	m, err := Aggregate(valid)
	require.NoError(t, err)
	assert.Equal(t, 120.0, m.TotalPay)
}
