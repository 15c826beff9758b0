package comparison

import (
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

// ValidateSelection gates entry into a comparison: 2 to 4 distinct,
// non-empty proposal IDs.
func ValidateSelection(ids []string) validation.Result {
	return validation.ValidateComparisonSelection(ids)
}

// Report is everything a side-by-side comparison view renders.
type Report struct {
	ProposalIDs []string             `json:"proposal_ids"`
	Sections    []AlignedSection     `json:"sections"`
	Differences []ProposalDifference `json:"differences"`
	Metrics     []Metrics            `json:"metrics"`
	Summary     Summary              `json:"summary"`
	Frontier    []string             `json:"frontier"`
}

// Compare validates the selection formed by the details' IDs and runs every
// comparison over them. The error is a *validation.Error on a bad selection.
func Compare(details []ProposalDetail, weights *MetricWeights) (*Report, error) {
	ids := make([]string, len(details))
	for i, d := range details {
		ids[i] = d.ID
	}
	if err := ValidateSelection(ids).Err(); err != nil {
		return nil, err
	}

	summaries := Summaries(details)
	return &Report{
		ProposalIDs: ids,
		Sections:    AlignSections(details),
		Differences: DetectDifferences(FromDetails(details)),
		Metrics:     CalculateMetrics(summaries, weights),
		Summary:     Summarize(summaries),
		Frontier:    Frontier(summaries),
	}, nil
}
