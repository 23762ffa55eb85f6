package money

import "github.com/shopspring/decimal"

// All monetary values in the system are int64 centavos. Division only happens
// here, through decimal, so rounding is applied exactly once per derived amount.

// PercentOf returns round(base * percent / 100) in centavos.
// Used for commission provisioning: the amount is computed once, in cents,
// before persistence, never through a floating display value.
func PercentOf(baseCentavos int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(baseCentavos).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// Ratio returns num/den*100 rounded to one decimal place, for display ratios
// such as margins. Returns 0 when den is 0; callers never divide themselves.
func Ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	ratio, _ := decimal.NewFromInt(num).
		Div(decimal.NewFromInt(den)).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		Float64()
	return ratio
}

// RoundDiv returns round(num/den) as an integer, 0 when den is 0.
// Used for average ticket (centavos / deal count).
func RoundDiv(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).
		Div(decimal.NewFromInt(den)).
		Round(0).
		IntPart()
}

// RoundPercent returns round(num/den*100) as an integer percentage, 0 when den
// is 0. Used for utilization.
func RoundPercent(num, den float64) int {
	if den == 0 {
		return 0
	}
	pct, _ := decimal.NewFromFloat(num).
		Div(decimal.NewFromFloat(den)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		Float64()
	return int(pct)
}
