package scoring

import (
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every derived score is rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

// CalculateWeightedScore returns round(raw * weight / 100, 2).
// Inputs are not validated; callers run the validation package first.
func CalculateWeightedScore(raw, weight float64) float64 {
	v := decimal.NewFromFloat(raw).Mul(decimal.NewFromFloat(weight)).Div(hundred)
	return v.Round(Places).InexactFloat64()
}

// CalculateTotalScore returns round(sum(weighted), 2). An empty slice totals 0.
// The sum is exact; rounding happens once at the end.
func CalculateTotalScore(weighted []float64) float64 {
	sum := decimal.Zero
	for _, w := range weighted {
		sum = sum.Add(decimal.NewFromFloat(w))
	}
	return sum.Round(Places).InexactFloat64()
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(Places).InexactFloat64()
}
