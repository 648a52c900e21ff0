package job

import "math"

// TaxBreakdown is the taxation of one gross payout
type TaxBreakdown struct {
	Gross  int64 `json:"gross"`
	Tax    int64 `json:"tax"`
	Evaded bool  `json:"evaded,omitempty"`
	Saved  int64 `json:"saved,omitempty"`
	Net    int64 `json:"net"`
}

// ComputeTax applies a tax rate and an optional evasion to a gross amount.
//
// Order of operations, all floors:
//   - tax = max(1, floor(gross * rate))
//   - on evasion, saved = floor(tax * reduction) and tax -= saved
//   - tax is clamped to [0, gross] and net = gross - tax
//
// Example: gross 100, rate 0.05, evaded with reduction 0.5
// gives tax 5, saved 2, final tax 3, net 97.
//
// A rate of zero or less means the payout is untaxed.
func ComputeTax(gross int64, rate float64, evaded bool, reduction float64) TaxBreakdown {
	b := TaxBreakdown{Gross: gross, Net: gross}
	if gross <= 0 || rate <= 0 {
		if gross < 0 {
			b.Gross, b.Net = 0, 0
		}
		return b
	}

	tax := max(int64(math.Floor(float64(gross)*rate)), 1)
	if evaded {
		b.Evaded = true
		b.Saved = min(max(int64(math.Floor(float64(tax)*reduction)), 0), tax)
		tax -= b.Saved
	}
	tax = min(tax, gross)

	b.Tax = tax
	b.Net = gross - tax
	return b
}
