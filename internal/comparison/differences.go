package comparison

// FieldValue is one proposal's value for a compared field. Value is nil when
// the proposal does not state it.
type FieldValue struct {
	ProposalID string   `json:"proposal_id"`
	Value      *float64 `json:"value"`
}

// ProposalDifference reports whether proposals disagree on one field.
type ProposalDifference struct {
	Field         string       `json:"field"`
	Label         string       `json:"label"`
	Values        []FieldValue `json:"values"`
	HasDifference bool         `json:"has_difference"`
}

const (
	FieldBudget     = "budgetEstimate"
	FieldTimeline   = "timelineEstimate"
	FieldTeamSize   = "teamSize"
	FieldCompliance = "complianceScore"
)

// DetectDifferences compares budget, timeline, team size and, when every
// candidate has one, compliance. Fewer than two candidates yield nothing.
func DetectDifferences(candidates []Candidate) []ProposalDifference {
	if len(candidates) < 2 {
		return []ProposalDifference{}
	}

	diffs := []ProposalDifference{
		difference(FieldBudget, "Budget", candidates, func(c Candidate) *float64 {
			return c.BudgetEstimate
		}),
		difference(FieldTimeline, "Timeline", candidates, func(c Candidate) *float64 {
			return c.TimelineEstimate
		}),
		difference(FieldTeamSize, "Team Size", candidates, func(c Candidate) *float64 {
			v := float64(c.TeamSize)
			return &v
		}),
	}

	allCompliance := true
	for _, c := range candidates {
		if c.ComplianceScore == nil {
			allCompliance = false
			break
		}
	}
	if allCompliance {
		diffs = append(diffs, difference(FieldCompliance, "Compliance Score", candidates, func(c Candidate) *float64 {
			v := float64(*c.ComplianceScore)
			return &v
		}))
	}
	return diffs
}

func difference(field, label string, candidates []Candidate, value func(Candidate) *float64) ProposalDifference {
	d := ProposalDifference{Field: field, Label: label, Values: make([]FieldValue, 0, len(candidates))}
	for _, c := range candidates {
		v := value(c)
		if v != nil {
			cp := *v
			v = &cp
		}
		d.Values = append(d.Values, FieldValue{ProposalID: c.ProposalID, Value: v})
	}
	first := d.Values[0].Value
	for _, fv := range d.Values[1:] {
		if !sameValue(first, fv.Value) {
			d.HasDifference = true
			break
		}
	}
	return d
}

func sameValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
