package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalDraft     ProposalStatus = "draft"
	ProposalSubmitted ProposalStatus = "submitted"
	ProposalReviewing ProposalStatus = "reviewing"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalApproved  ProposalStatus = "approved"
)

type Template struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedBy   string       `json:"created_by"`
	Criteria    []*Criterion `json:"criteria"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Criterion struct {
	ID          uuid.UUID `json:"id"`
	TemplateID  uuid.UUID `json:"template_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Weight      float64   `json:"weight"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type Proposal struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	TemplateID       *uuid.UUID     `json:"template_id,omitempty"`
	LeadID           string         `json:"lead_id"`
	Status           ProposalStatus `json:"status"`
	BudgetEstimate   *float64       `json:"budget_estimate,omitempty"`
	TimelineEstimate *float64       `json:"timeline_estimate,omitempty"`
	TotalScore       *float64       `json:"total_score,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type Member struct {
	ProposalID uuid.UUID `json:"proposal_id"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role,omitempty"`
}

type Section struct {
	ID         uuid.UUID `json:"id"`
	ProposalID uuid.UUID `json:"proposal_id"`
	Title      string    `json:"title"`
	Order      int       `json:"order"`
	Content    string    `json:"content"`
}

// ChecklistCounts is the completion tally of a proposal's compliance checklist.
type ChecklistCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ProposalBundle is a proposal with everything a comparison needs.
type ProposalBundle struct {
	Proposal  *Proposal       `json:"proposal"`
	Members   []*Member       `json:"members"`
	Sections  []*Section      `json:"sections"`
	Checklist ChecklistCounts `json:"checklist"`
}

// Score is one criterion's evaluation of a proposal. There is at most one per
// (proposal, criterion) pair.
type Score struct {
	ID            uuid.UUID `json:"id"`
	ProposalID    uuid.UUID `json:"proposal_id"`
	CriterionID   uuid.UUID `json:"criterion_id"`
	ScorerID      string    `json:"scorer_id"`
	RawScore      float64   `json:"raw_score"`
	WeightedScore float64   `json:"weighted_score"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Revision is the audit row written when an existing score is changed.
type Revision struct {
	ID                    uuid.UUID `json:"id"`
	ScoreID               uuid.UUID `json:"score_id"`
	ProposalID            uuid.UUID `json:"proposal_id"`
	CriterionID           uuid.UUID `json:"criterion_id"`
	PreviousRawScore      float64   `json:"previous_raw_score"`
	NewRawScore           float64   `json:"new_raw_score"`
	PreviousWeightedScore float64   `json:"previous_weighted_score"`
	NewWeightedScore      float64   `json:"new_weighted_score"`
	PreviousNotes         string    `json:"previous_notes,omitempty"`
	NewNotes              string    `json:"new_notes,omitempty"`
	Reason                string    `json:"reason"`
	RevisedBy             string    `json:"revised_by"`
	CreatedAt             time.Time `json:"created_at"`
}

// RevisionInput carries the new values of a score revision. WeightedScore is
// computed by the caller from the criterion weight.
type RevisionInput struct {
	ProposalID    uuid.UUID
	CriterionID   uuid.UUID
	RawScore      float64
	WeightedScore float64
	Notes         string
	Reason        string
	RevisedBy     string
}

// ScoreWrite is the committed result of a score change. Revision is nil for
// direct writes.
type ScoreWrite struct {
	Score      *Score
	Revision   *Revision
	TotalScore float64
}

type Stats struct {
	Templates       int `json:"templates"`
	Proposals       int `json:"proposals"`
	LockedProposals int `json:"locked_proposals"`
	Scores          int `json:"scores"`
	Revisions       int `json:"revisions"`
}

type Store interface {
	// Templates
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context, limit, offset int) ([]*Template, error)
	GetCriterion(ctx context.Context, id uuid.UUID) (*Criterion, error)

	// Proposals
	GetProposal(ctx context.Context, id uuid.UUID) (*Proposal, error)
	GetProposalBundle(ctx context.Context, id uuid.UUID) (*ProposalBundle, error)

	// Scores. Writes lock the proposal row, check the lock rule and store the
	// recomputed total in the same transaction.
	RecordScore(ctx context.Context, s *Score) (*ScoreWrite, error)
	GetScore(ctx context.Context, proposalID, criterionID uuid.UUID) (*Score, error)
	ListScores(ctx context.Context, proposalID uuid.UUID) ([]*Score, error)

	// Revisions
	ReviseScore(ctx context.Context, in RevisionInput) (*ScoreWrite, error)
	ListRevisions(ctx context.Context, proposalID, criterionID uuid.UUID) ([]*Revision, error)

	GetStats(ctx context.Context) (*Stats, error)

	Ping(ctx context.Context) error
	Close() error
}
