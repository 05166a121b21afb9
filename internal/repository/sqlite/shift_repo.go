package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"paypulse/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

const shiftColumns = `id, employee_id, date, start_time, finish_time, hours, rate, pay, status, location, company, notes`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

// AddShift stores the shift and its expenses in one transaction and
// returns the shift id.
func (r *SqliteShiftRepo) AddShift(shift domain.Shift) (string, error) {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin add shift: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO shifts (`+shiftColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shift.ID,
		shift.EmployeeID,
		shift.Date.Format(dateLayout),
		formatTime(shift.StartTime),
		formatTime(shift.FinishTime),
		shift.Hours,
		shift.Rate,
		shift.Pay,
		string(shift.Status),
		shift.Location,
		shift.Company,
		shift.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("insert shift: %w", err)
	}
	for _, e := range shift.Expenses {
		if err := insertExpense(tx, shift.ID, e); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit add shift: %w", err)
	}
	return shift.ID, nil
}

// GetShifts returns the employee's shifts dated within [from, to] with
// their expenses, ordered by date and start time.
func (r *SqliteShiftRepo) GetShifts(employeeID int, from, to time.Time) ([]domain.Shift, error) {
	rows, err := r.db.Query(
		`SELECT `+shiftColumns+` FROM shifts WHERE employee_id = ? AND date BETWEEN ? AND ? ORDER BY date, start_time`,
		employeeID,
		from.Format(dateLayout),
		to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return shifts, nil
	}

	// rows are closed before the second query so a single connection is enough
	expenses, err := r.expensesFor(
		`SELECT e.id, e.shift_id, e.name, e.amount, e.expensable, e.created_at
		   FROM expenses e JOIN shifts s ON s.id = e.shift_id
		  WHERE s.employee_id = ? AND s.date BETWEEN ? AND ?
		  ORDER BY e.created_at`,
		employeeID, from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, err
	}
	attachExpenses(shifts, expenses)
	return shifts, nil
}

// LatestShift is the most recent shift by date and start time.
func (r *SqliteShiftRepo) LatestShift(employeeID int) (domain.Shift, error) {
	rows, err := r.db.Query(
		`SELECT `+shiftColumns+` FROM shifts WHERE employee_id = ? ORDER BY date DESC, start_time DESC LIMIT 1`,
		employeeID,
	)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("query latest shift: %w", err)
	}
	shifts, err := scanShifts(rows)
	if err != nil {
		return domain.Shift{}, err
	}
	if len(shifts) == 0 {
		return domain.Shift{}, domain.ErrNotFound
	}
	expenses, err := r.expensesFor(
		`SELECT id, shift_id, name, amount, expensable, created_at FROM expenses WHERE shift_id = ? ORDER BY created_at`,
		shifts[0].ID,
	)
	if err != nil {
		return domain.Shift{}, err
	}
	attachExpenses(shifts, expenses)
	return shifts[0], nil
}

func (r *SqliteShiftRepo) UpdateShiftStatus(id string, status domain.Status) error {
	res, err := r.db.Exec(`UPDATE shifts SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update shift status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkShiftsComplete completes pending and confirmed shifts in [from, to]
// and reports how many changed. Cancelled shifts are left alone.
func (r *SqliteShiftRepo) MarkShiftsComplete(employeeID int, from, to time.Time) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE shifts SET status = ? WHERE employee_id = ? AND date BETWEEN ? AND ? AND status IN (?, ?)`,
		string(domain.StatusComplete),
		employeeID,
		from.Format(dateLayout),
		to.Format(dateLayout),
		string(domain.StatusPending),
		string(domain.StatusConfirmed),
	)
	if err != nil {
		return 0, fmt.Errorf("mark shifts complete: %w", err)
	}
	return res.RowsAffected()
}

func (r *SqliteShiftRepo) AddExpense(shiftID string, e domain.Expense) error {
	return insertExpense(r.db, shiftID, e)
}

func insertExpense(db execer, shiftID string, e domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := db.Exec(
		`INSERT INTO expenses (id, shift_id, name, amount, expensable, created_at)
		 SELECT ?, ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM shifts WHERE id = ?)`,
		e.ID,
		shiftID,
		strings.ToLower(strings.TrimSpace(e.Name)),
		e.Amount,
		e.Expensable,
		formatTime(e.CreatedAt),
		shiftID,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shift %s: %w", shiftID, domain.ErrNotFound)
	}
	return nil
}

func (r *SqliteShiftRepo) expensesFor(query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var created string
		if err := rows.Scan(&e.ID, &e.ShiftID, &e.Name, &e.Amount, &e.Expensable, &created); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func scanShifts(rows *sql.Rows) ([]domain.Shift, error) {
	defer rows.Close()
	shifts := []domain.Shift{}
	for rows.Next() {
		var s domain.Shift
		var date, start, finish, status string
		err := rows.Scan(&s.ID, &s.EmployeeID, &date, &start, &finish, &s.Hours, &s.Rate, &s.Pay, &status, &s.Location, &s.Company, &s.Notes)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		if s.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("shift %s date: %w", s.ID, err)
		}
		if s.StartTime, err = parseTime(start); err != nil {
			return nil, err
		}
		if s.FinishTime, err = parseTime(finish); err != nil {
			return nil, err
		}
		s.Status = domain.Status(status)
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func attachExpenses(shifts []domain.Shift, expenses []domain.Expense) {
	index := make(map[string]int, len(shifts))
	for i, s := range shifts {
		index[s.ID] = i
	}
	for _, e := range expenses {
		if i, ok := index[e.ShiftID]; ok {
			shifts[i].Expenses = append(shifts[i].Expenses, e)
		}
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
