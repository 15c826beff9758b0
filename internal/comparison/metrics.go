package comparison

import (
	"fmt"
	"math"
	"sort"
)

// MetricWeights sets how much each dimension counts toward OverallScore.
// Weights must sum to 1.0 (±0.001 tolerance).
type MetricWeights struct {
	Budget     float64 `json:"budget" yaml:"budget"`
	Timeline   float64 `json:"timeline" yaml:"timeline"`
	TeamSize   float64 `json:"team_size" yaml:"team_size"`
	Compliance float64 `json:"compliance" yaml:"compliance"`
}

// DefaultMetricWeights returns the standard comparison weighting.
func DefaultMetricWeights() MetricWeights {
	return MetricWeights{
		Budget:     0.3,
		Timeline:   0.3,
		TeamSize:   0.2,
		Compliance: 0.2,
	}
}

// Sum returns the total of all weights.
func (w MetricWeights) Sum() float64 {
	return w.Budget + w.Timeline + w.TeamSize + w.Compliance
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w MetricWeights) Validate() error {
	for _, v := range []float64{w.Budget, w.Timeline, w.TeamSize, w.Compliance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("comparison weight must be a finite number, got %v", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("comparison weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Budget, w.Timeline, w.TeamSize, w.Compliance} {
		if v < 0 {
			return fmt.Errorf("negative comparison weight: %f", v)
		}
	}
	return nil
}

// Metrics is one proposal's per-dimension rank (1 = first) and composite score.
type Metrics struct {
	ProposalID     string  `json:"proposal_id"`
	BudgetRank     int     `json:"budget_rank"`
	TimelineRank   int     `json:"timeline_rank"`
	TeamSizeRank   int     `json:"team_size_rank"`
	ComplianceRank int     `json:"compliance_rank"`
	OverallScore   float64 `json:"overall_score"`
}

// CalculateMetrics ranks proposals on each dimension and folds the ranks into
// OverallScore. A nil weights pointer selects DefaultMetricWeights.
//
// Budget, timeline and team size rank ascending with missing budgets and
// timelines last; compliance ranks descending. Equal values keep input order.
// With n proposals, budget, timeline and team size contribute rank/n times
// their weight and compliance contributes (n-rank+1)/n times its weight.
// Results are in input order.
func CalculateMetrics(proposals []ProposalSummary, weights *MetricWeights) []Metrics {
	w := DefaultMetricWeights()
	if weights != nil {
		w = *weights
	}
	n := len(proposals)
	if n == 0 {
		return []Metrics{}
	}

	budget := rank(n, func(i int) *float64 { return proposals[i].BudgetEstimate }, false)
	timeline := rank(n, func(i int) *float64 { return proposals[i].TimelineEstimate }, false)
	team := rank(n, func(i int) *float64 {
		v := float64(proposals[i].TeamSize)
		return &v
	}, false)
	compliance := rank(n, func(i int) *float64 {
		v := float64(proposals[i].ComplianceScore)
		return &v
	}, true)

	nf := float64(n)
	out := make([]Metrics, n)
	for i, p := range proposals {
		m := Metrics{
			ProposalID:     p.ID,
			BudgetRank:     budget[i],
			TimelineRank:   timeline[i],
			TeamSizeRank:   team[i],
			ComplianceRank: compliance[i],
		}
		m.OverallScore = float64(m.BudgetRank)/nf*w.Budget +
			float64(m.TimelineRank)/nf*w.Timeline +
			float64(m.TeamSizeRank)/nf*w.TeamSize +
			(nf-float64(m.ComplianceRank)+1)/nf*w.Compliance
		out[i] = m
	}
	return out
}

// rank returns 1-based positions of the n values after a stable sort.
// Nil values always sort after present ones.
func rank(n int, value func(int) *float64, descending bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := value(idx[a]), value(idx[b])
		switch {
		case va == nil:
			return false
		case vb == nil:
			return true
		case descending:
			return *va > *vb
		default:
			return *va < *vb
		}
	})
	ranks := make([]int, n)
	for pos, i := range idx {
		ranks[i] = pos + 1
	}
	return ranks
}
