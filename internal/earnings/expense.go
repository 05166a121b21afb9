package earnings

import (
	"strings"

	"paypulse/internal/domain"
)

// DefaultCategories are the expense names offered when logging a shift.
var DefaultCategories = []string{"food", "travel", "supplies", "other"}

const otherCategory = "other"

type CategoryTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
	Share  int     `json:"share"`
}

// ByCategory returns exactly one row per category, zero rows included.
// Names match case-insensitively. An expense matching no category is
// counted under "other" when that category is configured, so the rows
// always add up to the total; without "other" it is left out of every row.
func ByCategory(expenses []domain.Expense, categories []string) []CategoryTotal {
	rows, _ := byCategory(expenses, categories)
	return rows
}

// byCategory also returns the unrounded sum of the expenses no row took.
func byCategory(expenses []domain.Expense, categories []string) ([]CategoryTotal, float64) {
	rows := make([]CategoryTotal, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		rows[i].Name = c
		key := normalizeCategory(c)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	fallback, hasOther := index[otherCategory]

	var matched, unmatched float64
	for _, e := range expenses {
		i, ok := index[normalizeCategory(e.Name)]
		if !ok {
			if !hasOther {
				unmatched += e.Amount
				continue
			}
			i = fallback
		}
		rows[i].Amount += e.Amount
		rows[i].Count++
		matched += e.Amount
	}
	for i := range rows {
		rows[i].Share = roundPercent(rows[i].Amount, matched)
		rows[i].Amount = Round2(rows[i].Amount)
	}
	return rows, unmatched
}

// Eligible returns the expenses flagged for reimbursement.
func Eligible(expenses []domain.Expense) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Expensable {
			out = append(out, e)
		}
	}
	return out
}

// TotalExpenses sums every amount regardless of category or eligibility.
func TotalExpenses(expenses []domain.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return Round2(total)
}

// ShiftExpenses collects the expenses of every shift that was not
// cancelled.
func ShiftExpenses(shifts []domain.Shift) []domain.Expense {
	var out []domain.Expense
	for _, s := range Earning(shifts) {
		out = append(out, s.Expenses...)
	}
	return out
}

type ExpenseSummary struct {
	Categories    []CategoryTotal  `json:"categories"`
	Total         float64          `json:"total"`
	Count         int              `json:"count"`
	Eligible      []domain.Expense `json:"eligible"`
	EligibleTotal float64          `json:"eligible_total"`
}

// SummarizeExpenses rounds each category row first and builds Total from
// the rounded rows, so the rows shown always add up to Total.
func SummarizeExpenses(expenses []domain.Expense, categories []string) ExpenseSummary {
	eligible := Eligible(expenses)
	rows, unmatched := byCategory(expenses, categories)
	total := Round2(unmatched)
	for _, r := range rows {
		total += r.Amount
	}
	return ExpenseSummary{
		Categories:    rows,
		Total:         Round2(total),
		Count:         len(expenses),
		Eligible:      eligible,
		EligibleTotal: TotalExpenses(eligible),
	}
}

func normalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
