package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinRawScore = 1.0
	MaxRawScore = 10.0

	MinWeight = 0.01
	MaxWeight = 100.0

	// WeightTotal is the value criterion weights of a template must add up to.
	WeightTotal = 100.0

	// DefaultWeightTolerance absorbs binary floating point error in weight sums.
	DefaultWeightTolerance = 0.01
)

// ParseNumber converts text input (form values, CLI arguments) into a number.
// Empty and non-numeric text fail with CodeInvalidInput.
func ParseNumber(s string) (*float64, Result) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, Fail(CodeInvalidInput, "Value is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, Fail(CodeInvalidInput, fmt.Sprintf("Value %q is not a number", s))
	}
	return &v, OK()
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ValidateRawScore checks a raw criterion score: a finite number in [1, 10].
func ValidateRawScore(v *float64) Result {
	if !finite(v) {
		return Fail(CodeInvalidInput, "Score must be a valid number")
	}
	if *v < MinRawScore || *v > MaxRawScore {
		return Fail(CodeOutOfRange, "Score must be between 1 and 10")
	}
	return OK()
}

// ValidateWeight checks a criterion weight: a finite number in [0.01, 100].
func ValidateWeight(v *float64) Result {
	if !finite(v) {
		return Fail(CodeInvalidInput, "Weight must be a valid number")
	}
	if *v < MinWeight || *v > MaxWeight {
		return Fail(CodeOutOfRange, "Weight must be between 0.01 and 100")
	}
	return OK()
}

// ValidateWeightSum checks that weights add up to 100 within DefaultWeightTolerance.
func ValidateWeightSum(weights []float64) Result {
	return ValidateWeightSumWithin(weights, DefaultWeightTolerance)
}

// ValidateWeightSumWithin checks that |sum(weights) - 100| <= tolerance.
// The sum is accumulated in decimal so the comparison sees the weights as written.
func ValidateWeightSumWithin(weights []float64, tolerance float64) Result {
	if len(weights) == 0 {
		return Fail(CodeEmptyInput, "At least one weight is required")
	}
	sum := decimal.Zero
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Fail(CodeInvalidInput, "Weight must be a valid number")
		}
		sum = sum.Add(decimal.NewFromFloat(w))
	}
	diff := sum.Sub(decimal.NewFromFloat(WeightTotal)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(tolerance)) {
		return Fail(CodeSumMismatch, fmt.Sprintf("Criterion weights must sum to 100 (current sum: %s)", sum.String()))
	}
	return OK()
}
