package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Tender/internal/comparison"
)

// ErrProposalNotFound is returned by LoadProposalDetails when any requested
// proposal does not exist.
var ErrProposalNotFound = errors.New("proposal not found")

// BundleGetter is the slice of Store that LoadProposalDetails needs.
type BundleGetter interface {
	GetProposalBundle(ctx context.Context, id uuid.UUID) (*ProposalBundle, error)
}

// Detail converts the bundle into the comparison engine's input shape.
// Compliance is left for the engine to derive from the checklist counts.
func (b *ProposalBundle) Detail() comparison.ProposalDetail {
	d := comparison.ProposalDetail{
		ID:                 b.Proposal.ID.String(),
		Title:              b.Proposal.Title,
		BudgetEstimate:     b.Proposal.BudgetEstimate,
		TimelineEstimate:   b.Proposal.TimelineEstimate,
		Status:             string(b.Proposal.Status),
		ChecklistTotal:     b.Checklist.Total,
		ChecklistCompleted: b.Checklist.Completed,
		Members:            make([]comparison.Member, 0, len(b.Members)),
		Sections:           make([]comparison.Section, 0, len(b.Sections)),
	}
	for _, m := range b.Members {
		d.Members = append(d.Members, comparison.Member{UserID: m.UserID, Role: m.Role})
	}
	for _, s := range b.Sections {
		d.Sections = append(d.Sections, comparison.Section{
			ID:      s.ID.String(),
			Title:   s.Title,
			Order:   s.Order,
			Content: s.Content,
		})
	}
	return d
}

// LoadProposalDetails fetches the proposals concurrently and returns their
// details in the order of ids. The first failure cancels the remaining loads.
func LoadProposalDetails(ctx context.Context, s BundleGetter, ids []uuid.UUID) ([]comparison.ProposalDetail, error) {
	details := make([]comparison.ProposalDetail, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			b, err := s.GetProposalBundle(gctx, id)
			if err != nil {
				return fmt.Errorf("load proposal %s: %w", id, err)
			}
			if b == nil {
				return fmt.Errorf("%w: %s", ErrProposalNotFound, id)
			}
			details[i] = b.Detail()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
