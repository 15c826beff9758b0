package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Tender/internal/scoring"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute criterion and proposal scores",
	}

	weighted := &cobra.Command{
		Use:   "weighted RAW WEIGHT",
		Short: "Weighted score of a raw 1-10 score under a criterion weight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, res := validation.ParseNumber(args[0])
			if res.Valid {
				res = validation.ValidateRawScore(raw)
			}
			if !res.Valid {
				return fmt.Errorf("raw score: %s", res.Error)
			}
			weight, res := validation.ParseNumber(args[1])
			if res.Valid {
				res = validation.ValidateWeight(weight)
			}
			if !res.Valid {
				return fmt.Errorf("weight: %s", res.Error)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), formatScore(scoring.CalculateWeightedScore(*raw, *weight)))
			return err
		},
	}

	total := &cobra.Command{
		Use:   "total WEIGHTED...",
		Short: "Sum weighted scores into a proposal total",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args))
			for i, a := range args {
				v, res := validation.ParseNumber(a)
				if !res.Valid {
					return fmt.Errorf("argument %d: %s", i+1, res.Error)
				}
				values = append(values, *v)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), formatScore(scoring.CalculateTotalScore(values)))
			return err
		},
	}

	cmd.AddCommand(weighted, total)
	return cmd
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.*f", scoring.Places, v)
}
