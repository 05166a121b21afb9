package earnings

import (
	"time"

	"paypulse/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newShift(id, date string, hours, rate float64, status domain.Status) domain.Shift {
	return domain.Shift{
		ID:     id,
		Date:   day(date),
		Hours:  hours,
		Rate:   rate,
		Pay:    hours * rate,
		Status: status,
	}
}
