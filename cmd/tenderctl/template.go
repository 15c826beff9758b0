package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

var templateTolerance float64

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Work with scoring templates",
	}

	validate := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a scoring template file",
		Long: `Check a scoring template: name and description lengths, 1 to 20 criteria,
weights between 0.01 and 100 that add up to 100, and unique criterion names.

Exits non-zero when the template is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t validation.ScoringTemplate
			if err := decodeFile(args[0], &t); err != nil {
				return err
			}
			res := validation.ValidateScoringTemplateWithin(t, templateTolerance)
			if err := render(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("template %s is invalid: %s", args[0], res.Error)
			}
			return nil
		},
	}
	validate.Flags().Float64Var(&templateTolerance, "tolerance", validation.DefaultWeightTolerance, "Allowed deviation of the weight sum from 100")

	cmd.AddCommand(validate)
	return cmd
}
