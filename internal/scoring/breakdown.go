package scoring

import (
	"sort"
)

// Criterion is the part of a template criterion the calculator needs.
type Criterion struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	OrderIndex int     `json:"order_index"`
}

// RawScore is an evaluator's score for one criterion.
type RawScore struct {
	CriterionID string  `json:"criterion_id"`
	Value       float64 `json:"raw_score"`
	Notes       string  `json:"notes,omitempty"`
}

// CriterionResult captures one criterion's contribution to the total.
type CriterionResult struct {
	CriterionID string   `json:"criterion_id"`
	Name        string   `json:"name"`
	Weight      float64  `json:"weight"`
	RawScore    *float64 `json:"raw_score"`
	Weighted    float64  `json:"weighted_score"`
	Scored      bool     `json:"scored"`
	Notes       string   `json:"notes,omitempty"`
}

// ScoreBreakdown is the full evaluation of one proposal against a template.
type ScoreBreakdown struct {
	Criteria   []CriterionResult `json:"criteria"`
	TotalScore float64           `json:"total_score"`
	Scored     int               `json:"scored"`
	Unscored   int               `json:"unscored"`
	Complete   bool              `json:"complete"`
}

// Breakdown pairs each criterion, in template order, with its score.
// Criteria without a score contribute nothing and are counted as unscored.
// Scores for criteria outside the template are ignored.
func Breakdown(criteria []Criterion, scores []RawScore) ScoreBreakdown {
	ordered := make([]Criterion, len(criteria))
	copy(ordered, criteria)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	byCriterion := make(map[string]RawScore, len(scores))
	for _, s := range scores {
		byCriterion[s.CriterionID] = s
	}

	result := ScoreBreakdown{Criteria: make([]CriterionResult, 0, len(ordered))}
	weighted := make([]float64, 0, len(ordered))
	for _, c := range ordered {
		cr := CriterionResult{CriterionID: c.ID, Name: c.Name, Weight: c.Weight}
		if s, ok := byCriterion[c.ID]; ok {
			raw := s.Value
			cr.RawScore = &raw
			cr.Weighted = CalculateWeightedScore(raw, c.Weight)
			cr.Scored = true
			cr.Notes = s.Notes
			weighted = append(weighted, cr.Weighted)
			result.Scored++
		} else {
			result.Unscored++
		}
		result.Criteria = append(result.Criteria, cr)
	}

	result.TotalScore = CalculateTotalScore(weighted)
	result.Complete = len(ordered) > 0 && result.Unscored == 0
	return result
}
