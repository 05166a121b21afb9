package sqlite

import (
	"database/sql"
	"fmt"
)

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id TEXT PRIMARY KEY,
    employee_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    start_time TEXT NOT NULL DEFAULT '',
    finish_time TEXT NOT NULL DEFAULT '',
    hours REAL NOT NULL DEFAULT 0,
    rate REAL NOT NULL DEFAULT 0,
    pay REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'pending',
    location TEXT NOT NULL DEFAULT '',
    company TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT ''
);
`

const createShiftsIndex = `
CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts (employee_id, date);
`

const createExpensesTable = `
CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    shift_id TEXT NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    amount REAL NOT NULL DEFAULT 0,
    expensable BOOLEAN NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
`

const createGoalsTable = `
CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    employee_id INTEGER NOT NULL,
    goal_type TEXT NOT NULL,
    period TEXT NOT NULL,
    target REAL NOT NULL,
    start_date TEXT NOT NULL,
    finish_date TEXT NOT NULL,
    goal_date TEXT NOT NULL
);
`

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    chat_id INTEGER NOT NULL,
    role TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	for _, stmt := range []string{
		createShiftsTable,
		createShiftsIndex,
		createExpensesTable,
		createGoalsTable,
		createEmployeesTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
