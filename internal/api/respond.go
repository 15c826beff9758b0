package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a failed validation onto an HTTP status: lock conflicts are
// 409, cross-field consistency failures 422, everything else 400.
func statusFor(code validation.Code) int {
	switch code.Category() {
	case validation.CategoryState:
		return http.StatusConflict
	case validation.CategoryConsistency:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// writeInvalid reports a failed validation with its code, counting it.
// It returns false when r is valid so handlers can write `if !writeInvalid(...)`.
func writeInvalid(w http.ResponseWriter, r validation.Result) bool {
	if r.Valid {
		return false
	}
	validationFailures.WithLabelValues(string(r.Code)).Inc()
	writeJSON(w, statusFor(r.Code), map[string]string{"error": r.Error, "code": string(r.Code)})
	return true
}

// numberField decodes a JSON value that may be a number, a numeric string or
// null. Missing and null values come back as nil so the validators report
// them; strings go through validation.ParseNumber.
func numberField(raw json.RawMessage) (*float64, validation.Result) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, validation.OK()
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, validation.Fail(validation.CodeInvalidInput, "Value is not a number")
		}
		return validation.ParseNumber(s)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, validation.Fail(validation.CodeInvalidInput, "Value is not a number")
	}
	return &v, validation.OK()
}

// publishEvent hands an event to NATS. Failures are counted and logged, never
// returned.
func publishEvent(c hermes.Client, logger *slog.Logger, event, subject string, data interface{}) {
	if err := c.Publish(subject, data); err != nil {
		eventPublishFailures.WithLabelValues(event).Inc()
		logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
