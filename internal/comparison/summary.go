package comparison

// Range is the min, max and mean of a field across proposals. All three are
// nil when no proposal has a value.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
	Avg *float64 `json:"avg"`
}

// Summary holds the headline ranges of a comparison.
type Summary struct {
	BudgetRange     Range `json:"budget_range"`
	TeamSizeRange   Range `json:"team_size_range"`
	ComplianceRange Range `json:"compliance_range"`
}

// Summarize computes ranges over the proposals that state each field.
// Team size and compliance are always stated, so their ranges are nil only
// for an empty input.
func Summarize(proposals []ProposalSummary) Summary {
	var budgets, teams, compliance []float64
	for _, p := range proposals {
		if p.BudgetEstimate != nil {
			budgets = append(budgets, *p.BudgetEstimate)
		}
		teams = append(teams, float64(p.TeamSize))
		compliance = append(compliance, float64(p.ComplianceScore))
	}
	return Summary{
		BudgetRange:     rangeOf(budgets),
		TeamSizeRange:   rangeOf(teams),
		ComplianceRange: rangeOf(compliance),
	}
}

func rangeOf(values []float64) Range {
	if len(values) == 0 {
		return Range{}
	}
	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}
	avg := sum / float64(len(values))
	return Range{Min: &lo, Max: &hi, Avg: &avg}
}
