package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known shift statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusComplete, StatusCancelled:
		return true
	}
	return false
}

// Shift is one logged work session. FinishTime may be on the next day.
type Shift struct {
	ID         string    `json:"id"`
	EmployeeID int       `json:"employee_id"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"start_time"`
	FinishTime time.Time `json:"finish_time"`
	Hours      float64   `json:"hours" validate:"gte=0"`
	Rate       float64   `json:"rate" validate:"gte=0"`
	Pay        float64   `json:"pay" validate:"gte=0"`
	Status     Status    `json:"status" validate:"oneof=pending confirmed complete cancelled"`
	Location   string    `json:"location"`
	Company    string    `json:"company"`
	Notes      string    `json:"notes"`
	Expenses   []Expense `json:"expenses" validate:"dive"`
}

type Expense struct {
	ID         string    `json:"id"`
	ShiftID    string    `json:"shift_id"`
	Name       string    `json:"name" validate:"required"`
	Amount     float64   `json:"amount" validate:"gte=0"`
	Expensable bool      `json:"expensable"`
	CreatedAt  time.Time `json:"created_at"`
}

type ShiftRepo interface {
	AddShift(shift Shift) (string, error)
	GetShifts(employeeID int, from, to time.Time) ([]Shift, error)
	LatestShift(employeeID int) (Shift, error)
	UpdateShiftStatus(id string, status Status) error
	MarkShiftsComplete(employeeID int, from, to time.Time) (int64, error)
	AddExpense(shiftID string, e Expense) error
}
