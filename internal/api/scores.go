package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/scoring"
	"github.com/MikeSquared-Agency/Tender/internal/store"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

type ScoresHandler struct {
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger
}

func NewScoresHandler(s store.Store, h hermes.Client, logger *slog.Logger) *ScoresHandler {
	return &ScoresHandler{store: s, hermes: h, logger: logger}
}

type scoreRequest struct {
	RawScore json.RawMessage `json:"raw_score"`
	Notes    string          `json:"notes,omitempty"`
}

type revisionRequest struct {
	RawScore json.RawMessage `json:"raw_score"`
	Notes    string          `json:"notes,omitempty"`
	Reason   string          `json:"reason"`
}

type ScoreResponse struct {
	Score      *store.Score `json:"score"`
	TotalScore float64      `json:"total_score"`
}

type RevisionResponse struct {
	Score      *store.Score    `json:"score"`
	Revision   *store.Revision `json:"revision"`
	TotalScore float64         `json:"total_score"`
}

type ScoresListResponse struct {
	ProposalID uuid.UUID               `json:"proposal_id"`
	Status     store.ProposalStatus    `json:"status"`
	Locked     bool                    `json:"locked"`
	Scores     []*store.Score          `json:"scores"`
	Breakdown  *scoring.ScoreBreakdown `json:"breakdown,omitempty"`
	TotalScore float64                 `json:"total_score"`
}

// target resolves the proposal and criterion named in the URL, writing the
// error response itself when either is bad. ok is false when it did.
func (h *ScoresHandler) target(w http.ResponseWriter, r *http.Request) (p *store.Proposal, c *store.Criterion, ok bool) {
	proposalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposal id")
		return nil, nil, false
	}
	criterionID, err := uuid.Parse(chi.URLParam(r, "criterion_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid criterion id")
		return nil, nil, false
	}

	p, err = h.store.GetProposal(r.Context(), proposalID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "proposal not found")
		return nil, nil, false
	}

	c, err = h.store.GetCriterion(r.Context(), criterionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "criterion not found")
		return nil, nil, false
	}
	if p.TemplateID != nil && *p.TemplateID != c.TemplateID {
		writeInvalid(w, validation.Fail(validation.CodeInvalidID, "Criterion does not belong to this proposal's scoring template"))
		return nil, nil, false
	}
	return p, c, true
}

// writeStoreError maps a failed score write onto a response.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeInvalid(w, validation.Fail(verr.Code, verr.Message))
	case errors.Is(err, store.ErrProposalNotFound):
		writeError(w, http.StatusNotFound, "proposal not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Put records or overwrites a criterion score on an unlocked proposal.
// PUT /api/v1/proposals/{id}/scores/{criterion_id}
func (h *ScoresHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	raw, res := numberField(req.RawScore)
	if writeInvalid(w, res) {
		return
	}

	res = validation.ValidateProposalScore(validation.ProposalScore{
		ProposalID:  chi.URLParam(r, "id"),
		CriterionID: chi.URLParam(r, "criterion_id"),
		RawScore:    raw,
		Notes:       req.Notes,
	})
	if writeInvalid(w, res) {
		return
	}

	p, c, ok := h.target(w, r)
	if !ok {
		return
	}
	if writeInvalid(w, validation.ValidateProposalNotLocked(string(p.Status))) {
		return
	}

	score := &store.Score{
		ProposalID:    p.ID,
		CriterionID:   c.ID,
		ScorerID:      r.Header.Get(UserIDHeader),
		RawScore:      *raw,
		WeightedScore: scoring.CalculateWeightedScore(*raw, c.Weight),
		Notes:         req.Notes,
	}
	// The store re-checks the lock under the proposal row lock.
	written, err := h.store.RecordScore(r.Context(), score)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	score, total := written.Score, written.TotalScore
	scoresRecorded.Inc()

	publishEvent(h.hermes, h.logger, "score.recorded", hermes.SubjectScoreRecorded(p.ID.String()), hermes.ScoreRecordedEvent{
		ProposalID:    p.ID.String(),
		CriterionID:   c.ID.String(),
		ScorerID:      score.ScorerID,
		RawScore:      score.RawScore,
		WeightedScore: score.WeightedScore,
		TotalScore:    &total,
	})
	writeJSON(w, http.StatusOK, ScoreResponse{Score: score, TotalScore: total})
}

// Revise changes an existing score with an audited reason. Locked proposals
// accept revisions.
// POST /api/v1/proposals/{id}/scores/{criterion_id}/revisions
func (h *ScoresHandler) Revise(w http.ResponseWriter, r *http.Request) {
	var req revisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	raw, res := numberField(req.RawScore)
	if writeInvalid(w, res) {
		return
	}

	res = validation.ValidateScoreRevision(validation.ScoreRevision{
		ProposalID:  chi.URLParam(r, "id"),
		CriterionID: chi.URLParam(r, "criterion_id"),
		NewRawScore: raw,
		NewNotes:    req.Notes,
		Reason:      req.Reason,
	})
	if writeInvalid(w, res) {
		return
	}

	p, c, ok := h.target(w, r)
	if !ok {
		return
	}

	written, err := h.store.ReviseScore(r.Context(), store.RevisionInput{
		ProposalID:    p.ID,
		CriterionID:   c.ID,
		RawScore:      *raw,
		WeightedScore: scoring.CalculateWeightedScore(*raw, c.Weight),
		Notes:         req.Notes,
		Reason:        req.Reason,
		RevisedBy:     r.Header.Get(UserIDHeader),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if written == nil {
		writeError(w, http.StatusNotFound, "no score to revise for this criterion")
		return
	}
	score, rev, total := written.Score, written.Revision, written.TotalScore
	scoreRevisions.Inc()

	h.logger.Info("score revised",
		"proposal_id", p.ID,
		"criterion_id", c.ID,
		"previous", rev.PreviousRawScore,
		"new", rev.NewRawScore,
		"revised_by", rev.RevisedBy,
	)
	publishEvent(h.hermes, h.logger, "score.revised", hermes.SubjectScoreRevised(p.ID.String()), hermes.ScoreRevisedEvent{
		ProposalID:       p.ID.String(),
		CriterionID:      c.ID.String(),
		RevisionID:       rev.ID.String(),
		PreviousRawScore: rev.PreviousRawScore,
		NewRawScore:      rev.NewRawScore,
		Reason:           rev.Reason,
		RevisedBy:        rev.RevisedBy,
		TotalScore:       &total,
	})
	writeJSON(w, http.StatusCreated, RevisionResponse{Score: score, Revision: rev, TotalScore: total})
}

// Revisions lists the audit trail of one criterion score, oldest first.
// GET /api/v1/proposals/{id}/scores/{criterion_id}/revisions
func (h *ScoresHandler) Revisions(w http.ResponseWriter, r *http.Request) {
	p, c, ok := h.target(w, r)
	if !ok {
		return
	}
	revisions, err := h.store.ListRevisions(r.Context(), p.ID, c.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if revisions == nil {
		revisions = []*store.Revision{}
	}
	writeJSON(w, http.StatusOK, revisions)
}

// List returns a proposal's scores and, when it has a template, the
// per-criterion breakdown.
// GET /api/v1/proposals/{id}/scores
func (h *ScoresHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposal id")
		return
	}
	p, err := h.store.GetProposal(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "proposal not found")
		return
	}

	scores, err := h.store.ListScores(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scores == nil {
		scores = []*store.Score{}
	}

	resp := ScoresListResponse{
		ProposalID: p.ID,
		Status:     p.Status,
		Locked:     validation.IsLockedStatus(string(p.Status)),
		Scores:     scores,
	}
	weighted := make([]float64, len(scores))
	for i, s := range scores {
		weighted[i] = s.WeightedScore
	}
	resp.TotalScore = scoring.CalculateTotalScore(weighted)

	if p.TemplateID != nil {
		tmpl, err := h.store.GetTemplate(r.Context(), *p.TemplateID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tmpl != nil {
			b := breakdown(tmpl, scores)
			resp.Breakdown = &b
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func breakdown(tmpl *store.Template, scores []*store.Score) scoring.ScoreBreakdown {
	criteria := make([]scoring.Criterion, len(tmpl.Criteria))
	for i, c := range tmpl.Criteria {
		criteria[i] = scoring.Criterion{ID: c.ID.String(), Name: c.Name, Weight: c.Weight, OrderIndex: c.OrderIndex}
	}
	raw := make([]scoring.RawScore, len(scores))
	for i, s := range scores {
		raw[i] = scoring.RawScore{CriterionID: s.CriterionID.String(), Value: s.RawScore, Notes: s.Notes}
	}
	return scoring.Breakdown(criteria, raw)
}
