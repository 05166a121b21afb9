package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paypulse/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Migrate(db))
}

func TestShiftRepoRoundTrip(t *testing.T) {
	repo := NewSqliteShiftRepo(newTestDB(t))
	start := time.Date(2026, 10, 2, 22, 0, 0, 0, time.UTC)

	id, err := repo.AddShift(domain.Shift{
		EmployeeID: 7,
		Date:       date("2026-10-02"),
		StartTime:  start,
		FinishTime: start.Add(8 * time.Hour),
		Hours:      8,
		Rate:       12.5,
		Pay:        100,
		Status:     domain.StatusConfirmed,
		Location:   "Leeds",
		Company:    "Acme",
		Notes:      "night",
		Expenses: []domain.Expense{
			{Name: "Travel", Amount: 6.4, Expensable: true},
			{Name: "food", Amount: 4},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	shifts, err := repo.GetShifts(7, date("2026-10-01"), date("2026-10-31"))
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	got := shifts[0]
	assert.Equal(t, id, got.ID)
	assert.True(t, date("2026-10-02").Equal(got.Date))
	assert.True(t, start.Equal(got.StartTime))
	assert.True(t, start.Add(8*time.Hour).Equal(got.FinishTime))
	assert.Equal(t, 8.0, got.Hours)
	assert.Equal(t, 12.5, got.Rate)
	assert.Equal(t, 100.0, got.Pay)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "Acme", got.Company)
	require.Len(t, got.Expenses, 2)

	var travel domain.Expense
	for _, e := range got.Expenses {
		if e.Name == "travel" {
			travel = e
		}
	}
	assert.Equal(t, 6.4, travel.Amount)
	assert.True(t, travel.Expensable)
	assert.Equal(t, id, travel.ShiftID)
}

func TestGetShiftsBoundsAreInclusive(t *testing.T) {
	repo := NewSqliteShiftRepo(newTestDB(t))
	for _, d := range []string{"2026-09-30", "2026-10-01", "2026-10-31", "2026-11-01"} {
		_, err := repo.AddShift(domain.Shift{EmployeeID: 1, Date: date(d), Status: domain.StatusPending})
		require.NoError(t, err)
	}
	_, err := repo.AddShift(domain.Shift{EmployeeID: 2, Date: date("2026-10-10"), Status: domain.StatusPending})
	require.NoError(t, err)

	shifts, err := repo.GetShifts(1, date("2026-10-01"), date("2026-10-31"))
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "2026-10-01", shifts[0].Date.Format(dateLayout))
	assert.Equal(t, "2026-10-31", shifts[1].Date.Format(dateLayout))

	none, err := repo.GetShifts(3, date("2026-01-01"), date("2026-12-31"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStatusUpdates(t *testing.T) {
	repo := NewSqliteShiftRepo(newTestDB(t))
	var ids []string
	for _, st := range []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusComplete} {
		id, err := repo.AddShift(domain.Shift{EmployeeID: 1, Date: date("2026-10-05"), Status: st})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	n, err := repo.MarkShiftsComplete(1, date("2026-10-01"), date("2026-10-31"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.UpdateShiftStatus(ids[0], domain.StatusCancelled))
	err = repo.UpdateShiftStatus("missing", domain.StatusCancelled)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	shifts, err := repo.GetShifts(1, date("2026-10-01"), date("2026-10-31"))
	require.NoError(t, err)
	counts := map[domain.Status]int{}
	for _, s := range shifts {
		counts[s.Status]++
	}
	assert.Equal(t, map[domain.Status]int{domain.StatusComplete: 2, domain.StatusCancelled: 2}, counts)
}

func TestLatestShiftAndAddExpense(t *testing.T) {
	repo := NewSqliteShiftRepo(newTestDB(t))

	_, err := repo.LatestShift(1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.AddShift(domain.Shift{EmployeeID: 1, Date: date("2026-10-01"), Status: domain.StatusPending})
	require.NoError(t, err)
	latestID, err := repo.AddShift(domain.Shift{EmployeeID: 1, Date: date("2026-10-03"), Status: domain.StatusPending})
	require.NoError(t, err)

	require.NoError(t, repo.AddExpense(latestID, domain.Expense{Name: "supplies", Amount: 9.99}))
	err = repo.AddExpense("missing", domain.Expense{Name: "food", Amount: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	latest, err := repo.LatestShift(1)
	require.NoError(t, err)
	assert.Equal(t, latestID, latest.ID)
	require.Len(t, latest.Expenses, 1)
	assert.Equal(t, 9.99, latest.Expenses[0].Amount)
	assert.False(t, latest.Expenses[0].CreatedAt.IsZero())
}

func TestGoalRepo(t *testing.T) {
	repo := NewSqliteGoalRepo(newTestDB(t))
	anchor := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	id, err := repo.AddGoal(domain.Goal{
		EmployeeID: 5,
		GoalType:   domain.GoalHours,
		Period:     domain.PeriodMonth,
		Target:     40,
		StartDate:  date("2026-10-01"),
		FinishDate: time.Date(2026, 10, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		GoalDate:   anchor,
	})
	require.NoError(t, err)

	goals, err := repo.GetGoals(5)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, id, goals[0].ID)
	assert.Equal(t, domain.GoalHours, goals[0].GoalType)
	assert.Equal(t, domain.PeriodMonth, goals[0].Period)
	assert.Equal(t, 40.0, goals[0].Target)
	assert.True(t, anchor.Equal(goals[0].GoalDate))
	assert.Equal(t, int(999*time.Millisecond), goals[0].FinishDate.Nanosecond())

	assert.True(t, errors.Is(repo.DeleteGoal(6, id), domain.ErrNotFound))
	require.NoError(t, repo.DeleteGoal(5, id))
	goals, err = repo.GetGoals(5)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestEmployeeRepo(t *testing.T) {
	repo := NewSqliteEmployeeRepo(newTestDB(t))

	_, err := repo.GetEmployeeByID(42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.CreateOrUpdateEmployee(domain.Employee{ID: 42, Name: "Sam", ChatID: 420, Role: "employee"}))
	require.NoError(t, repo.CreateOrUpdateEmployee(domain.Employee{ID: 42, Name: "Sam K", ChatID: 420, Role: "employee"}))

	e, err := repo.GetEmployeeByID(42)
	require.NoError(t, err)
	assert.Equal(t, "Sam K", e.Name)

	all, err := repo.GetAllEmployees()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
