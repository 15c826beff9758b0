package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Tender/internal/comparison"
	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/store"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

type ComparisonsHandler struct {
	store   store.Store
	hermes  hermes.Client
	weights comparison.MetricWeights
	logger  *slog.Logger
}

func NewComparisonsHandler(s store.Store, h hermes.Client, weights comparison.MetricWeights, logger *slog.Logger) *ComparisonsHandler {
	return &ComparisonsHandler{store: s, hermes: h, weights: weights, logger: logger}
}

type comparisonRequest struct {
	ProposalIDs []string                  `json:"proposal_ids"`
	Weights     *comparison.MetricWeights `json:"weights,omitempty"`
}

type ComparisonResponse struct {
	ComparisonID string `json:"comparison_id"`
	*comparison.Report
}

// Create loads the selected proposals and returns their comparison report.
// POST /api/v1/comparisons
func (h *ComparisonsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if writeInvalid(w, comparison.ValidateSelection(req.ProposalIDs)) {
		return
	}

	weights := h.weights
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		weights = *req.Weights
	}

	ids := make([]uuid.UUID, len(req.ProposalIDs))
	for i, raw := range req.ProposalIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeInvalid(w, validation.Fail(validation.CodeInvalidID, "Proposal ID "+raw+" is not valid"))
			return
		}
		ids[i] = id
	}

	details, err := store.LoadProposalDetails(r.Context(), h.store, ids)
	if errors.Is(err, store.ErrProposalNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := comparison.Compare(details, &weights)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeInvalid(w, validation.Fail(verr.Code, verr.Message))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	comparisonsRun.Inc()

	resp := ComparisonResponse{ComparisonID: uuid.NewString(), Report: report}
	publishEvent(h.hermes, h.logger, "comparison.completed", hermes.SubjectComparisonCompleted(resp.ComparisonID), hermes.ComparisonCompletedEvent{
		ComparisonID: resp.ComparisonID,
		RequestedBy:  r.Header.Get(UserIDHeader),
		ProposalIDs:  report.ProposalIDs,
		Frontier:     report.Frontier,
	})
	writeJSON(w, http.StatusOK, resp)
}
