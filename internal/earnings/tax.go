package earnings

// DefaultTaxRate is the flat illustrative deduction applied when no other
// rate is configured.
const DefaultTaxRate = 0.20

type PayBreakdown struct {
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Rate  float64 `json:"rate"`
}

// TaxPolicy deducts a single flat share of gross pay.
type TaxPolicy struct {
	Rate float64
}

func NewTaxPolicy(rate float64) TaxPolicy {
	return TaxPolicy{Rate: rate}
}

// Compute splits gross into tax and net and derives the average hourly
// rate, which is 0 when no hours were worked.
func (p TaxPolicy) Compute(gross, hours float64) PayBreakdown {
	tax := gross * p.Rate
	var rate float64
	if hours > 0 {
		rate = gross / hours
	}
	return PayBreakdown{
		Gross: gross,
		Net:   gross - tax,
		Tax:   tax,
		Rate:  rate,
	}
}

// ComputePay is Compute with an explicit rate.
func ComputePay(gross, hours, taxRate float64) PayBreakdown {
	return TaxPolicy{Rate: taxRate}.Compute(gross, hours)
}

// Rounded returns b with every figure rounded to pence.
func (b PayBreakdown) Rounded() PayBreakdown {
	return PayBreakdown{
		Gross: Round2(b.Gross),
		Net:   Round2(b.Net),
		Tax:   Round2(b.Tax),
		Rate:  Round2(b.Rate),
	}
}
