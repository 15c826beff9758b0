package hermes

import "time"

type TemplateCreatedEvent struct {
	TemplateID    string `json:"template_id"`
	Name          string `json:"name"`
	CriteriaCount int    `json:"criteria_count"`
	CreatedBy     string `json:"created_by"`
}

type ScoreRecordedEvent struct {
	ProposalID    string   `json:"proposal_id"`
	CriterionID   string   `json:"criterion_id"`
	ScorerID      string   `json:"scorer_id"`
	RawScore      float64  `json:"raw_score"`
	WeightedScore float64  `json:"weighted_score"`
	TotalScore    *float64 `json:"total_score,omitempty"`
}

type ScoreRevisedEvent struct {
	ProposalID       string   `json:"proposal_id"`
	CriterionID      string   `json:"criterion_id"`
	RevisionID       string   `json:"revision_id"`
	PreviousRawScore float64  `json:"previous_raw_score"`
	NewRawScore      float64  `json:"new_raw_score"`
	Reason           string   `json:"reason"`
	RevisedBy        string   `json:"revised_by"`
	TotalScore       *float64 `json:"total_score,omitempty"`
}

type ComparisonCompletedEvent struct {
	ComparisonID string   `json:"comparison_id"`
	RequestedBy  string   `json:"requested_by"`
	ProposalIDs  []string `json:"proposal_ids"`
	Frontier     []string `json:"frontier"`
}

type StatsEvent struct {
	Templates       int       `json:"templates"`
	Proposals       int       `json:"proposals"`
	LockedProposals int       `json:"locked_proposals"`
	Scores          int       `json:"scores"`
	Revisions       int       `json:"revisions"`
	Timestamp       time.Time `json:"timestamp"`
}
