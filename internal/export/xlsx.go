// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"paypulse/internal/earnings"
)

const (
	SummarySheet  = "Summary"
	ShiftsSheet   = "Shifts"
	ExpensesSheet = "Expenses"
)

// ContentType is the MIME type of the workbook WriteReport produces.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteReport writes r as an xlsx workbook with a summary sheet, the shift
// listing and the expense breakdown.
func WriteReport(w io.Writer, r earnings.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := writeRows(f, SummarySheet, summaryRows(r)); err != nil {
		return err
	}

	if _, err := f.NewSheet(ShiftsSheet); err != nil {
		return err
	}
	if err := writeRows(f, ShiftsSheet, shiftRows(r)); err != nil {
		return err
	}

	if _, err := f.NewSheet(ExpensesSheet); err != nil {
		return err
	}
	if err := writeRows(f, ExpensesSheet, expenseRows(r)); err != nil {
		return err
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 24); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

// Filename is the attachment name for a report.
func Filename(r earnings.Report) string {
	return fmt.Sprintf("report_%s_%s.xlsx", r.Period.Start.Format("20060102"), r.Period.End.Format("20060102"))
}

func summaryRows(r earnings.Report) [][]any {
	return [][]any{
		{"Period", r.Period.Label},
		{"Days", r.Days},
		{"Shifts", r.Metrics.ShiftCount},
		{"Cancelled shifts", r.CancelledShifts},
		{"Hours", r.Metrics.TotalHours},
		{"Gross", r.Pay.Gross},
		{"Tax", r.Pay.Tax},
		{"Net", r.Pay.Net},
		{"Average hours per shift", r.AverageHoursPerShift},
		{"Average pay per shift", r.AveragePayPerShift},
		{"Highest shift pay", r.HighestShiftPay},
		{"Lowest shift pay", r.LowestShiftPay},
		{"Expenses", r.Expenses.Total},
		{"Claimable expenses", r.Expenses.EligibleTotal},
		{"Expense to income %", r.ExpenseIncomeRatio},
	}
}

func shiftRows(r earnings.Report) [][]any {
	rows := [][]any{{"Date", "Start", "Finish", "Hours", "Rate", "Pay", "Status", "Location", "Company"}}
	for _, s := range r.Shifts {
		rows = append(rows, []any{
			s.Date.Format("2006-01-02"),
			clock(s.StartTime),
			clock(s.FinishTime),
			s.Hours,
			s.Rate,
			earnings.Round2(s.Hours * s.Rate),
			string(s.Status),
			s.Location,
			s.Company,
		})
	}
	return rows
}

func expenseRows(r earnings.Report) [][]any {
	rows := [][]any{{"Category", "Amount", "Count", "Share %"}}
	for _, c := range r.Expenses.Categories {
		rows = append(rows, []any{c.Name, c.Amount, c.Count, c.Share})
	}
	rows = append(rows, []any{"Total", r.Expenses.Total, r.Expenses.Count})
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
