package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxNotesLength   = 2000
	MinReasonLength  = 10
	MaxReasonLength  = 500
	MinSelectionSize = 2
	MaxSelectionSize = 4
)

// LockedStatuses are proposal statuses after which scores are frozen.
var LockedStatuses = []string{"approved", "rejected", "accepted"}

// ProposalScore is an evaluator's first-time score for one criterion.
type ProposalScore struct {
	ProposalID  string   `json:"proposal_id"`
	CriterionID string   `json:"criterion_id"`
	RawScore    *float64 `json:"raw_score"`
	Notes       string   `json:"notes,omitempty"`
}

// ScoreRevision is an audited correction of an existing score.
type ScoreRevision struct {
	ProposalID  string   `json:"proposal_id"`
	CriterionID string   `json:"criterion_id"`
	NewRawScore *float64 `json:"new_raw_score"`
	NewNotes    string   `json:"new_notes,omitempty"`
	Reason      string   `json:"reason"`
}

func validateScoreTarget(proposalID, criterionID string, raw *float64, notes string) Result {
	if blank(proposalID) {
		return Fail(CodeRequired, "Proposal ID is required")
	}
	if blank(criterionID) {
		return Fail(CodeRequired, "Criterion ID is required")
	}
	if r := ValidateRawScore(raw); !r.Valid {
		return r
	}
	if tooLong(notes, MaxNotesLength) {
		return Fail(CodeTooLong, "Notes must be 2000 characters or less")
	}
	return OK()
}

// ValidateProposalScore checks a first-time score.
func ValidateProposalScore(s ProposalScore) Result {
	return validateScoreTarget(s.ProposalID, s.CriterionID, s.RawScore, s.Notes)
}

// ValidateScoreRevision checks a revision. Unlike a first-time score the
// reason is mandatory and must be 10 to 500 characters.
func ValidateScoreRevision(r ScoreRevision) Result {
	if res := validateScoreTarget(r.ProposalID, r.CriterionID, r.NewRawScore, r.NewNotes); !res.Valid {
		return res
	}
	reason := strings.TrimSpace(r.Reason)
	if reason == "" {
		return Fail(CodeRequired, "A reason is required when revising a score")
	}
	n := utf8.RuneCountInString(reason)
	if n < MinReasonLength {
		return Fail(CodeTooShort, "Revision reason must be at least 10 characters")
	}
	if n > MaxReasonLength {
		return Fail(CodeTooLong, "Revision reason must be 500 characters or less")
	}
	return OK()
}

// ValidateComparisonSelection checks a comparison request: 2 to 4 distinct,
// non-empty proposal IDs. A nil slice means no selection was supplied.
func ValidateComparisonSelection(ids []string) Result {
	if ids == nil {
		return Fail(CodeInvalidInput, "Selection must be a list of proposal IDs")
	}
	if len(ids) < MinSelectionSize {
		return Fail(CodeTooFew, "Select at least 2 proposals to compare")
	}
	if len(ids) > MaxSelectionSize {
		return Fail(CodeTooMany, fmt.Sprintf("You can compare at most %d proposals", MaxSelectionSize))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return Fail(CodeDuplicateSelection, "Each proposal can only be selected once")
		}
		seen[id] = true
	}
	for _, id := range ids {
		if blank(id) {
			return Fail(CodeInvalidID, "Proposal IDs must be non-empty strings")
		}
	}
	return OK()
}

// IsLockedStatus reports whether status freezes a proposal's scores.
func IsLockedStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, locked := range LockedStatuses {
		if s == locked {
			return true
		}
	}
	return false
}

// ValidateProposalNotLocked fails when status is one of LockedStatuses.
func ValidateProposalNotLocked(status string) Result {
	if IsLockedStatus(status) {
		return Fail(CodeLocked, fmt.Sprintf("Proposal is %s; scores can no longer be modified", status))
	}
	return OK()
}
