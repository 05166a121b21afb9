package earnings

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paypulse/internal/domain"
)

func TestAggregateExcludesCancelledFromMoneyOnly(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "1", Date: day("2026-10-01"), Hours: 8, Rate: 10, Status: domain.StatusComplete},
		{ID: "2", Date: day("2026-10-02"), Hours: 5, Rate: 10, Status: domain.StatusCancelled},
	}

	m, err := Aggregate(shifts)
	require.NoError(t, err)
	assert.Equal(t, 8.0, m.TotalHours)
	assert.Equal(t, 80.0, m.TotalPay)
	assert.Equal(t, 1, m.CompletedCount)
	assert.Equal(t, 1, m.CancelledCount)
	assert.Equal(t, 2, m.ShiftCount)
	assert.Equal(t, 1, m.EarningCount())
}

func TestAggregateCancelledOnly(t *testing.T) {
	shifts := []domain.Shift{
		newShift("1", "2026-10-01", 8, 10, domain.StatusCancelled),
		newShift("2", "2026-10-02", 3, 12.5, domain.StatusCancelled),
		newShift("3", "2026-10-03", 7, 9, domain.StatusCancelled),
	}

	m, err := Aggregate(shifts)
	require.NoError(t, err)
	assert.Zero(t, m.TotalHours)
	assert.Zero(t, m.TotalPay)
	assert.Equal(t, len(shifts), m.CancelledCount)
	assert.Zero(t, m.AverageHours())
	assert.Zero(t, m.AveragePay())
}

func TestAggregateCountsEveryStatus(t *testing.T) {
	shifts := []domain.Shift{
		newShift("1", "2026-10-01", 8, 10, domain.StatusComplete),
		newShift("2", "2026-10-02", 4, 10, domain.StatusConfirmed),
		newShift("3", "2026-10-03", 2, 10, domain.StatusPending),
		newShift("4", "2026-10-04", 6, 10, domain.StatusPending),
	}

	m, err := Aggregate(shifts)
	require.NoError(t, err)
	assert.Equal(t, 4, m.ShiftCount)
	assert.Equal(t, 1, m.CompletedCount)
	assert.Equal(t, 1, m.ConfirmedCount)
	assert.Equal(t, 2, m.PendingCount)
	assert.Equal(t, 20.0, m.TotalHours)
	assert.Equal(t, 200.0, m.TotalPay)
	assert.Equal(t, 5.0, m.AverageHours())
	assert.Equal(t, 50.0, m.AveragePay())
}

func TestAggregateEmpty(t *testing.T) {
	m, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, MetricsSnapshot{}, m)
	assert.Zero(t, m.AveragePay())
}

func TestAggregatePrefersStoredPay(t *testing.T) {
	s := newShift("1", "2026-10-01", 8, 10, domain.StatusComplete)
	s.Pay = 95
	m, err := Aggregate([]domain.Shift{s})
	require.NoError(t, err)
	assert.Equal(t, 95.0, m.TotalPay)
}

func TestAggregateFailsOnMalformedShift(t *testing.T) {
	shifts := []domain.Shift{
		newShift("ok", "2026-10-01", 8, 10, domain.StatusComplete),
		{ID: "bad", Date: day("2026-10-02"), Hours: math.NaN(), Rate: 10, Status: domain.StatusComplete},
	}
	_, err := Aggregate(shifts)
	var malformed domain.MalformedShiftError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "bad", malformed.ShiftID)
	assert.Equal(t, "hours", malformed.Field)
}

func TestFrequencyBy(t *testing.T) {
	shifts := []domain.Shift{
		{Location: "Leeds", Company: "Acme"},
		{Location: "York", Company: "Acme"},
		{Location: "Leeds ", Company: "Globex"},
		{Location: "", Company: "Acme"},
	}

	assert.Equal(t, []Frequency{{"Leeds", 2}, {"York", 1}}, FrequencyBy(shifts, LocationKey))
	assert.Equal(t, []Frequency{{"Acme", 3}, {"Globex", 1}}, FrequencyBy(shifts, CompanyKey))
	assert.Empty(t, FrequencyBy(nil, CompanyKey))
}

func TestAggregateBy(t *testing.T) {
	shifts := []domain.Shift{
		newShift("1", "2026-09-30", 8, 10, domain.StatusComplete),
		newShift("2", "2026-10-01", 5, 10, domain.StatusComplete),
		newShift("3", "2026-10-02", 3, 10, domain.StatusCancelled),
		newShift("4", "2026-09-01", 2, 10, domain.StatusPending),
	}

	groups, err := AggregateBy(shifts, MonthKey)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-09", groups[0].Key)
	assert.Equal(t, 100.0, groups[0].Metrics.TotalPay)
	assert.Equal(t, 2, groups[0].Metrics.ShiftCount)
	assert.Equal(t, "2026-10", groups[1].Key)
	assert.Equal(t, 50.0, groups[1].Metrics.TotalPay)
	assert.Equal(t, 1, groups[1].Metrics.CancelledCount)
}

func TestAverageGuardsZeroCount(t *testing.T) {
	assert.Zero(t, Average(100, 0))
	assert.Equal(t, 25.0, Average(100, 4))
}
