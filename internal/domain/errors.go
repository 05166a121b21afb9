package domain

import (
	"errors"
	"fmt"
	"time"
)

// InvalidDateError is returned for zero or otherwise unusable date inputs.
type InvalidDateError struct {
	Value  time.Time
	Reason string
}

func (e InvalidDateError) Error() string {
	if e.Value.IsZero() {
		return "invalid date: " + e.Reason
	}
	return fmt.Sprintf("invalid date %s: %s", e.Value.Format(time.RFC3339), e.Reason)
}

// InvalidGoalError is a goal configuration fault, e.g. a non-positive target.
type InvalidGoalError struct {
	GoalID string
	Reason string
}

func (e InvalidGoalError) Error() string {
	if e.GoalID == "" {
		return "invalid goal: " + e.Reason
	}
	return fmt.Sprintf("invalid goal %s: %s", e.GoalID, e.Reason)
}

// MalformedShiftError names the shift and field that failed validation.
type MalformedShiftError struct {
	ShiftID string
	Field   string
	Reason  string
}

func (e MalformedShiftError) Error() string {
	id := e.ShiftID
	if id == "" {
		id = "<unsaved>"
	}
	return fmt.Sprintf("malformed shift %s: %s %s", id, e.Field, e.Reason)
}

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")
