package earnings

import (
	"sort"

	"paypulse/internal/domain"
)

// Builder assembles payslips and reports. It holds configuration only and
// is safe for concurrent use.
type Builder struct {
	Tax        TaxPolicy
	Categories []string
}

func NewBuilder(taxRate float64, categories []string) Builder {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return Builder{
		Tax:        NewTaxPolicy(taxRate),
		Categories: append([]string(nil), categories...),
	}
}

// Summary is the part payslips and reports share. Shifts is the full
// listing, cancelled shifts included, sorted by date and start time.
type Summary struct {
	Period    Period          `json:"period"`
	Metrics   MetricsSnapshot `json:"metrics"`
	Pay       PayBreakdown    `json:"pay"`
	Locations []Frequency     `json:"locations"`
	Companies []Frequency     `json:"companies"`
	Expenses  ExpenseSummary  `json:"expenses"`
	Shifts    []domain.Shift  `json:"shifts"`
}

// summarize prices every shift from hours x rate, so Metrics.TotalPay and
// Pay.Gross are the same figure.
func (b Builder) summarize(p Period, shifts []domain.Shift, expenses []domain.Expense) Summary {
	metrics := aggregate(shifts)
	gross := GrossFromRates(shifts)
	metrics.TotalPay = Round2(gross)
	return Summary{
		Period:    p,
		Metrics:   metrics,
		Pay:       b.Tax.Compute(gross, metrics.TotalHours).Rounded(),
		Locations: FrequencyBy(shifts, LocationKey),
		Companies: FrequencyBy(shifts, CompanyKey),
		Expenses:  SummarizeExpenses(expenses, b.Categories),
		Shifts:    sortedCopy(shifts),
	}
}

// GrossFromRates sums hours x rate over the shifts that were not
// cancelled, ignoring any stored pay.
func GrossFromRates(shifts []domain.Shift) float64 {
	var gross float64
	for _, s := range Earning(shifts) {
		gross += s.Hours * s.Rate
	}
	return gross
}

func sortedCopy(shifts []domain.Shift) []domain.Shift {
	out := make([]domain.Shift, len(shifts))
	for i, s := range shifts {
		s.Expenses = append([]domain.Expense(nil), s.Expenses...)
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}
