package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/store"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

type TemplatesHandler struct {
	store     store.Store
	hermes    hermes.Client
	tolerance float64
	logger    *slog.Logger
}

func NewTemplatesHandler(s store.Store, h hermes.Client, tolerance float64, logger *slog.Logger) *TemplatesHandler {
	return &TemplatesHandler{store: s, hermes: h, tolerance: tolerance, logger: logger}
}

type criterionRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Weight      json.RawMessage `json:"weight"`
	OrderIndex  *int            `json:"order_index,omitempty"`
}

type templateRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Criteria    []criterionRequest `json:"criteria"`
}

// decodeTemplate reads a template body, validating numeric weight input on
// the way. The returned result is invalid when a weight is not a number.
func decodeTemplate(r *http.Request) (validation.ScoringTemplate, validation.Result, error) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return validation.ScoringTemplate{}, validation.OK(), err
	}
	t := validation.ScoringTemplate{
		Name:        req.Name,
		Description: req.Description,
		Criteria:    make([]validation.ScoringCriterion, 0, len(req.Criteria)),
	}
	for i, c := range req.Criteria {
		weight, res := numberField(c.Weight)
		if !res.Valid {
			res.Error = "Criterion " + strconv.Itoa(i+1) + ": " + res.Error
			return t, res, nil
		}
		t.Criteria = append(t.Criteria, validation.ScoringCriterion{
			Name:        c.Name,
			Description: c.Description,
			Weight:      weight,
			OrderIndex:  c.OrderIndex,
		})
	}
	return t, validation.OK(), nil
}

// Validate is a dry run of template validation.
// POST /api/v1/templates/validate
func (h *TemplatesHandler) Validate(w http.ResponseWriter, r *http.Request) {
	t, res, err := decodeTemplate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res.Valid {
		res = validation.ValidateScoringTemplateWithin(t, h.tolerance)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *TemplatesHandler) Create(w http.ResponseWriter, r *http.Request) {
	t, res, err := decodeTemplate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if writeInvalid(w, res) || writeInvalid(w, validation.ValidateScoringTemplateWithin(t, h.tolerance)) {
		return
	}

	tmpl := &store.Template{
		Name:        strings.TrimSpace(t.Name),
		Description: t.Description,
		CreatedBy:   r.Header.Get(UserIDHeader),
	}
	for i, c := range t.Criteria {
		order := i
		if c.OrderIndex != nil {
			order = *c.OrderIndex
		}
		tmpl.Criteria = append(tmpl.Criteria, &store.Criterion{
			Name:        strings.TrimSpace(c.Name),
			Description: c.Description,
			Weight:      *c.Weight,
			OrderIndex:  order,
		})
	}

	if err := h.store.CreateTemplate(r.Context(), tmpl); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	publishEvent(h.hermes, h.logger, "template.created", hermes.SubjectTemplateCreated(tmpl.ID.String()), hermes.TemplateCreatedEvent{
		TemplateID:    tmpl.ID.String(),
		Name:          tmpl.Name,
		CriteriaCount: len(tmpl.Criteria),
		CreatedBy:     tmpl.CreatedBy,
	})
	writeJSON(w, http.StatusCreated, tmpl)
}

func (h *TemplatesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	templates, err := h.store.ListTemplates(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if templates == nil {
		templates = []*store.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	tmpl, err := h.store.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}
