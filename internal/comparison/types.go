package comparison

import "math"

// Section is one titled block of a proposal document.
type Section struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string `json:"title" yaml:"title"`
	Order   int    `json:"order" yaml:"order"`
	Content string `json:"content" yaml:"content"`
}

// Member is a bidding team member other than the lead.
type Member struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
}

// ProposalSummary is the list-view shape of a proposal. Team size and
// compliance are always known.
type ProposalSummary struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	BudgetEstimate   *float64 `json:"budget_estimate" yaml:"budget_estimate"`
	TimelineEstimate *float64 `json:"timeline_estimate" yaml:"timeline_estimate"` // days
	TeamSize         int      `json:"team_size" yaml:"team_size"`
	ComplianceScore  int      `json:"compliance_score" yaml:"compliance_score"`
	Status           string   `json:"status" yaml:"status"`
}

// ProposalDetail is a fully loaded proposal with its team, checklist counts
// and document sections.
type ProposalDetail struct {
	ID                 string    `json:"id" yaml:"id"`
	Title              string    `json:"title" yaml:"title"`
	BudgetEstimate     *float64  `json:"budget_estimate" yaml:"budget_estimate"`
	TimelineEstimate   *float64  `json:"timeline_estimate" yaml:"timeline_estimate"` // days
	Status             string    `json:"status" yaml:"status"`
	Members            []Member  `json:"members" yaml:"members"`
	ChecklistTotal     int       `json:"checklist_total" yaml:"checklist_total"`
	ChecklistCompleted int       `json:"checklist_completed" yaml:"checklist_completed"`
	ComplianceScore    *int      `json:"compliance_score,omitempty" yaml:"compliance_score,omitempty"`
	Sections           []Section `json:"sections" yaml:"sections"`
}

// ComplianceScore is the rounded percentage of completed checklist items.
// An empty checklist scores 0.
func ComplianceScore(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// TeamSize counts the lead plus every member.
func (d ProposalDetail) TeamSize() int {
	return len(d.Members) + 1
}

// Compliance returns the explicit compliance score, or one derived from the
// checklist. It is nil when the proposal has neither.
func (d ProposalDetail) Compliance() *int {
	if d.ComplianceScore != nil {
		v := *d.ComplianceScore
		return &v
	}
	if d.ChecklistTotal > 0 {
		v := ComplianceScore(d.ChecklistCompleted, d.ChecklistTotal)
		return &v
	}
	return nil
}

// Summary reduces a detail to its summary shape; missing compliance becomes 0.
func (d ProposalDetail) Summary() ProposalSummary {
	s := ProposalSummary{
		ID:               d.ID,
		Title:            d.Title,
		BudgetEstimate:   d.BudgetEstimate,
		TimelineEstimate: d.TimelineEstimate,
		TeamSize:         d.TeamSize(),
		Status:           d.Status,
	}
	if c := d.Compliance(); c != nil {
		s.ComplianceScore = *c
	}
	return s
}

// Summaries maps Summary over details.
func Summaries(details []ProposalDetail) []ProposalSummary {
	out := make([]ProposalSummary, len(details))
	for i, d := range details {
		out[i] = d.Summary()
	}
	return out
}

// Candidate is the canonical input of difference detection. Both proposal
// shapes are normalized into it before comparison.
type Candidate struct {
	ProposalID       string
	BudgetEstimate   *float64
	TimelineEstimate *float64
	TeamSize         int
	ComplianceScore  *int
}

// FromSummary normalizes a summary; its compliance is always present.
func FromSummary(s ProposalSummary) Candidate {
	c := s.ComplianceScore
	return Candidate{
		ProposalID:       s.ID,
		BudgetEstimate:   s.BudgetEstimate,
		TimelineEstimate: s.TimelineEstimate,
		TeamSize:         s.TeamSize,
		ComplianceScore:  &c,
	}
}

// FromDetail normalizes a detail; team size is members + 1 and compliance is
// present only when the detail carries or can derive one.
func FromDetail(d ProposalDetail) Candidate {
	return Candidate{
		ProposalID:       d.ID,
		BudgetEstimate:   d.BudgetEstimate,
		TimelineEstimate: d.TimelineEstimate,
		TeamSize:         d.TeamSize(),
		ComplianceScore:  d.Compliance(),
	}
}

func FromSummaries(summaries []ProposalSummary) []Candidate {
	out := make([]Candidate, len(summaries))
	for i, s := range summaries {
		out[i] = FromSummary(s)
	}
	return out
}

func FromDetails(details []ProposalDetail) []Candidate {
	out := make([]Candidate, len(details))
	for i, d := range details {
		out[i] = FromDetail(d)
	}
	return out
}
