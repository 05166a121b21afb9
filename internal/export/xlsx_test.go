package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"paypulse/internal/domain"
	"paypulse/internal/earnings"
)

func sampleReport(t *testing.T) earnings.Report {
	t.Helper()
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	shifts := []domain.Shift{
		{
			ID: "a", Date: day("2026-10-02"), Hours: 8, Rate: 10, Pay: 80, Status: domain.StatusComplete,
			StartTime: day("2026-10-02").Add(9 * time.Hour), FinishTime: day("2026-10-02").Add(17 * time.Hour),
			Location: "Leeds", Company: "Acme",
			Expenses: []domain.Expense{{Name: "travel", Amount: 8, Expensable: true}},
		},
		{ID: "b", Date: day("2026-10-05"), Hours: 4, Rate: 12.5, Pay: 50, Status: domain.StatusCancelled},
	}
	b := earnings.NewBuilder(0.2, nil)
	r, err := b.Report(day("2026-10-01"), day("2026-10-31"), shifts, earnings.ShiftExpenses(shifts))
	require.NoError(t, err)
	return r
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ShiftsSheet, ExpensesSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "1 Oct 2026 - 31 Oct 2026"}, summary[0])
	assert.Equal(t, []string{"Gross", "80"}, summary[5])
	assert.Equal(t, []string{"Net", "64"}, summary[7])
	assert.Equal(t, []string{"Expense to income %", "10"}, summary[14])

	shifts, err := f.GetRows(ShiftsSheet)
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.Equal(t, []string{"2026-10-02", "09:00", "17:00", "8", "10", "80", "complete", "Leeds", "Acme"}, shifts[1])
	assert.Equal(t, "cancelled", shifts[2][6])

	expenses, err := f.GetRows(ExpensesSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Category", "Amount", "Count", "Share %"}, expenses[0])
	assert.Equal(t, []string{"travel", "8", "1", "100"}, expenses[2])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "report_20261001_20261031.xlsx", Filename(sampleReport(t)))
}
