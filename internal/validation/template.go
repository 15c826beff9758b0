package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MinCriteria          = 1
	MaxCriteria          = 20
)

// ScoringCriterion is one weighted evaluation dimension of a template.
type ScoringCriterion struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      *float64 `json:"weight" yaml:"weight"`
	OrderIndex  *int     `json:"order_index,omitempty" yaml:"order_index,omitempty"`
}

// ScoringTemplate is a named set of criteria whose weights add up to 100.
type ScoringTemplate struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Criteria    []ScoringCriterion `json:"criteria" yaml:"criteria"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// ValidateScoringCriterion checks a single criterion in isolation.
func ValidateScoringCriterion(c ScoringCriterion) Result {
	if blank(c.Name) {
		return Fail(CodeRequired, "Criterion name is required")
	}
	if tooLong(c.Name, MaxNameLength) {
		return Fail(CodeTooLong, "Criterion name must be 100 characters or less")
	}
	if tooLong(c.Description, MaxDescriptionLength) {
		return Fail(CodeTooLong, "Criterion description must be 500 characters or less")
	}
	if r := ValidateWeight(c.Weight); !r.Valid {
		return r
	}
	if c.OrderIndex != nil && *c.OrderIndex < 0 {
		return Fail(CodeOutOfRange, "Order index must be a non-negative integer")
	}
	return OK()
}

// ValidateScoringTemplate validates a template using DefaultWeightTolerance.
func ValidateScoringTemplate(t ScoringTemplate) Result {
	return ValidateScoringTemplateWithin(t, DefaultWeightTolerance)
}

// ValidateScoringTemplateWithin validates the template header, every criterion,
// case-insensitive name uniqueness and finally the weight sum.
func ValidateScoringTemplateWithin(t ScoringTemplate, tolerance float64) Result {
	if blank(t.Name) {
		return Fail(CodeRequired, "Template name is required")
	}
	if tooLong(t.Name, MaxNameLength) {
		return Fail(CodeTooLong, "Template name must be 100 characters or less")
	}
	if tooLong(t.Description, MaxDescriptionLength) {
		return Fail(CodeTooLong, "Template description must be 500 characters or less")
	}
	if t.Criteria == nil {
		return Fail(CodeRequired, "Template criteria are required")
	}
	if len(t.Criteria) < MinCriteria {
		return Fail(CodeTooFew, "Template must have at least 1 criterion")
	}
	if len(t.Criteria) > MaxCriteria {
		return Fail(CodeTooMany, fmt.Sprintf("Template cannot have more than %d criteria", MaxCriteria))
	}

	for i, c := range t.Criteria {
		if r := ValidateScoringCriterion(c); !r.Valid {
			return r.prefixed(fmt.Sprintf("Criterion %d: ", i+1))
		}
	}

	seen := make(map[string]bool, len(t.Criteria))
	weights := make([]float64, 0, len(t.Criteria))
	for _, c := range t.Criteria {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if seen[key] {
			return Fail(CodeNotUnique, fmt.Sprintf("Criterion names must be unique (duplicate: %q)", strings.TrimSpace(c.Name)))
		}
		seen[key] = true
		weights = append(weights, *c.Weight)
	}

	return ValidateWeightSumWithin(weights, tolerance)
}
