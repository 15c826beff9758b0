package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Tender/internal/comparison"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

var compareWeights string

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE...",
		Short: "Compare 2 to 4 proposal files side by side",
		Long: `Compare proposals: aligned sections, field differences, weighted metric
ranks, budget/team/compliance ranges and the Pareto frontier.

Each FILE holds one proposal (id, title, budget_estimate, timeline_estimate,
status, members, checklist_total, checklist_completed, sections).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := parseWeights(compareWeights)
			if err != nil {
				return err
			}
			details := make([]comparison.ProposalDetail, len(args))
			for i, path := range args {
				if err := decodeFile(path, &details[i]); err != nil {
					return err
				}
			}
			report, err := comparison.Compare(details, weights)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&compareWeights, "weights", "", "Metric weights as budget,timeline,team_size,compliance (default 0.3,0.3,0.2,0.2)")
	return cmd
}

// parseWeights reads "b,t,s,c". Empty input selects the default weights.
func parseWeights(s string) (*comparison.MetricWeights, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("weights: want 4 comma separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, res := validation.ParseNumber(p)
		if !res.Valid {
			return nil, fmt.Errorf("weights: %s", res.Error)
		}
		vals[i] = *v
	}
	w := &comparison.MetricWeights{Budget: vals[0], Timeline: vals[1], TeamSize: vals[2], Compliance: vals[3]}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}
