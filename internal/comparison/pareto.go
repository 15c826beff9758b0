package comparison

import "math"

type paretoPoint struct {
	id         string
	budget     float64 // lower is better
	timeline   float64 // lower is better
	compliance float64 // higher is better
}

// Frontier returns the IDs of proposals no other proposal dominates on
// budget, timeline and compliance, in input order. A proposal is dominated
// when another is at least as good on all three and strictly better on one.
// Missing budgets and timelines count as infinitely expensive and slow.
// O(n^2) dominance check; comparisons hold at most a handful of proposals.
func Frontier(proposals []ProposalSummary) []string {
	points := make([]paretoPoint, len(proposals))
	for i, p := range proposals {
		points[i] = paretoPoint{
			id:         p.ID,
			budget:     orInf(p.BudgetEstimate),
			timeline:   orInf(p.TimelineEstimate),
			compliance: float64(p.ComplianceScore),
		}
	}

	frontier := []string{}
	for i := range points {
		dominated := false
		for j := range points {
			if i != j && dominates(points[j], points[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, points[i].id)
		}
	}
	return frontier
}

func dominates(a, b paretoPoint) bool {
	if a.budget > b.budget || a.timeline > b.timeline || a.compliance < b.compliance {
		return false
	}
	return a.budget < b.budget || a.timeline < b.timeline || a.compliance > b.compliance
}

func orInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
