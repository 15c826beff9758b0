package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Tender/internal/scoring"
	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Templates ---

func (s *PostgresStore) CreateTemplate(ctx context.Context, t *Template) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO tender_templates (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		t.Name, t.Description, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	for _, c := range t.Criteria {
		c.TemplateID = t.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO tender_criteria (template_id, name, description, weight, order_index)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			c.TemplateID, c.Name, c.Description, c.Weight, c.OrderIndex,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert criterion %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	t := &Template{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM tender_templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	byTemplate, err := s.criteriaFor(ctx, []uuid.UUID{t.ID})
	if err != nil {
		return nil, err
	}
	t.Criteria = byTemplate[t.ID]
	return t, nil
}

func (s *PostgresStore) ListTemplates(ctx context.Context, limit, offset int) ([]*Template, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM tender_templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	var ids []uuid.UUID
	for rows.Next() {
		t := &Template{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return templates, nil
	}

	byTemplate, err := s.criteriaFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		t.Criteria = byTemplate[t.ID]
	}
	return templates, nil
}

const criterionColumns = `id, template_id, name, description, weight, order_index, created_at`

func scanCriterion(row pgx.Row) (*Criterion, error) {
	c := &Criterion{}
	err := row.Scan(&c.ID, &c.TemplateID, &c.Name, &c.Description, &c.Weight, &c.OrderIndex, &c.CreatedAt)
	return c, err
}

func (s *PostgresStore) criteriaFor(ctx context.Context, templateIDs []uuid.UUID) (map[uuid.UUID][]*Criterion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+criterionColumns+`
		FROM tender_criteria WHERE template_id = ANY($1)
		ORDER BY template_id, order_index ASC, created_at ASC`, templateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]*Criterion, len(templateIDs))
	for rows.Next() {
		c, err := scanCriterion(rows)
		if err != nil {
			return nil, err
		}
		out[c.TemplateID] = append(out[c.TemplateID], c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetCriterion(ctx context.Context, id uuid.UUID) (*Criterion, error) {
	c, err := scanCriterion(s.pool.QueryRow(ctx, `
		SELECT `+criterionColumns+` FROM tender_criteria WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// --- Proposals ---

func (s *PostgresStore) GetProposal(ctx context.Context, id uuid.UUID) (*Proposal, error) {
	p := &Proposal{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, template_id, lead_id, status,
			budget_estimate, timeline_estimate, total_score,
			created_at, updated_at
		FROM tender_proposals WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.Title, &p.TemplateID, &p.LeadID, &p.Status,
		&p.BudgetEstimate, &p.TimelineEstimate, &p.TotalScore,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) GetProposalBundle(ctx context.Context, id uuid.UUID) (*ProposalBundle, error) {
	p, err := s.GetProposal(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	b := &ProposalBundle{Proposal: p}

	rows, err := s.pool.Query(ctx, `
		SELECT proposal_id, user_id, role
		FROM tender_proposal_members WHERE proposal_id = $1
		ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ProposalID, &m.UserID, &m.Role); err != nil {
			rows.Close()
			return nil, err
		}
		b.Members = append(b.Members, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, proposal_id, title, section_order, content
		FROM tender_proposal_sections WHERE proposal_id = $1
		ORDER BY section_order ASC, created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("sections: %w", err)
	}
	for rows.Next() {
		sec := &Section{}
		if err := rows.Scan(&sec.ID, &sec.ProposalID, &sec.Title, &sec.Order, &sec.Content); err != nil {
			rows.Close()
			return nil, err
		}
		b.Sections = append(b.Sections, sec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM tender_checklist_items WHERE proposal_id = $1`, id,
	).Scan(&b.Checklist.Total, &b.Checklist.Completed)
	if err != nil {
		return nil, fmt.Errorf("checklist: %w", err)
	}
	return b, nil
}

// lockProposal takes the proposal row lock for the rest of tx and returns
// its status.
func lockProposal(ctx context.Context, tx pgx.Tx, id uuid.UUID) (string, error) {
	var status string
	err := tx.QueryRow(ctx, `
		SELECT status FROM tender_proposals WHERE id = $1
		FOR UPDATE`, id).Scan(&status)
	if err == pgx.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("lock proposal: %w", err)
	}
	return status, nil
}

// storeTotal recomputes the proposal total from its scores inside tx.
func storeTotal(ctx context.Context, tx pgx.Tx, id uuid.UUID) (float64, error) {
	rows, err := tx.Query(ctx, `
		SELECT weighted_score FROM tender_scores WHERE proposal_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("list weighted scores: %w", err)
	}
	weighted, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	if err != nil {
		return 0, fmt.Errorf("list weighted scores: %w", err)
	}

	total := scoring.CalculateTotalScore(weighted)
	_, err = tx.Exec(ctx, `
		UPDATE tender_proposals SET total_score = $2, updated_at = now()
		WHERE id = $1`, id, total)
	if err != nil {
		return 0, fmt.Errorf("update total: %w", err)
	}
	return total, nil
}

// --- Scores ---

const scoreColumns = `id, proposal_id, criterion_id, scorer_id, raw_score, weighted_score, notes, created_at, updated_at`

func scanScore(row pgx.Row) (*Score, error) {
	sc := &Score{}
	err := row.Scan(
		&sc.ID, &sc.ProposalID, &sc.CriterionID, &sc.ScorerID,
		&sc.RawScore, &sc.WeightedScore, &sc.Notes,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	return sc, err
}

// RecordScore creates or overwrites the score for its (proposal, criterion)
// pair. A locked proposal fails with a *validation.Error carrying
// validation.CodeLocked; a missing one with ErrProposalNotFound.
func (s *PostgresStore) RecordScore(ctx context.Context, sc *Score) (*ScoreWrite, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status, err := lockProposal(ctx, tx, sc.ProposalID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateProposalNotLocked(status).Err(); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tender_scores (proposal_id, criterion_id, scorer_id, raw_score, weighted_score, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (proposal_id, criterion_id) DO UPDATE SET
			scorer_id = EXCLUDED.scorer_id,
			raw_score = EXCLUDED.raw_score,
			weighted_score = EXCLUDED.weighted_score,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		sc.ProposalID, sc.CriterionID, sc.ScorerID, sc.RawScore, sc.WeightedScore, sc.Notes,
	).Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}

	total, err := storeTotal(ctx, tx, sc.ProposalID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &ScoreWrite{Score: sc, TotalScore: total}, nil
}

func (s *PostgresStore) GetScore(ctx context.Context, proposalID, criterionID uuid.UUID) (*Score, error) {
	sc, err := scanScore(s.pool.QueryRow(ctx, `
		SELECT `+scoreColumns+`
		FROM tender_scores WHERE proposal_id = $1 AND criterion_id = $2`,
		proposalID, criterionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *PostgresStore) ListScores(ctx context.Context, proposalID uuid.UUID) ([]*Score, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM tender_scores WHERE proposal_id = $1
		ORDER BY created_at ASC`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*Score
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// --- Revisions ---

// ReviseScore replaces an existing score, records the audit row and stores
// the new total in one transaction. Locked proposals accept revisions. It
// returns nil, nil when there is no score to revise.
func (s *PostgresStore) ReviseScore(ctx context.Context, in RevisionInput) (*ScoreWrite, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := lockProposal(ctx, tx, in.ProposalID); err != nil {
		return nil, err
	}

	prev, err := scanScore(tx.QueryRow(ctx, `
		SELECT `+scoreColumns+`
		FROM tender_scores WHERE proposal_id = $1 AND criterion_id = $2
		FOR UPDATE`, in.ProposalID, in.CriterionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock score: %w", err)
	}

	updated := *prev
	updated.RawScore = in.RawScore
	updated.WeightedScore = in.WeightedScore
	updated.Notes = in.Notes
	err = tx.QueryRow(ctx, `
		UPDATE tender_scores SET raw_score = $2, weighted_score = $3, notes = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		prev.ID, updated.RawScore, updated.WeightedScore, updated.Notes,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update score: %w", err)
	}

	rev := &Revision{
		ScoreID:               prev.ID,
		ProposalID:            prev.ProposalID,
		CriterionID:           prev.CriterionID,
		PreviousRawScore:      prev.RawScore,
		NewRawScore:           updated.RawScore,
		PreviousWeightedScore: prev.WeightedScore,
		NewWeightedScore:      updated.WeightedScore,
		PreviousNotes:         prev.Notes,
		NewNotes:              updated.Notes,
		Reason:                in.Reason,
		RevisedBy:             in.RevisedBy,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO tender_score_revisions (score_id, proposal_id, criterion_id,
			previous_raw_score, new_raw_score, previous_weighted_score, new_weighted_score,
			previous_notes, new_notes, reason, revised_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		rev.ScoreID, rev.ProposalID, rev.CriterionID,
		rev.PreviousRawScore, rev.NewRawScore, rev.PreviousWeightedScore, rev.NewWeightedScore,
		rev.PreviousNotes, rev.NewNotes, rev.Reason, rev.RevisedBy,
	).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}

	total, err := storeTotal(ctx, tx, in.ProposalID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &ScoreWrite{Score: &updated, Revision: rev, TotalScore: total}, nil
}

func (s *PostgresStore) ListRevisions(ctx context.Context, proposalID, criterionID uuid.UUID) ([]*Revision, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, score_id, proposal_id, criterion_id,
			previous_raw_score, new_raw_score, previous_weighted_score, new_weighted_score,
			previous_notes, new_notes, reason, revised_by, created_at
		FROM tender_score_revisions
		WHERE proposal_id = $1 AND criterion_id = $2
		ORDER BY created_at ASC`, proposalID, criterionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []*Revision
	for rows.Next() {
		r := &Revision{}
		if err := rows.Scan(
			&r.ID, &r.ScoreID, &r.ProposalID, &r.CriterionID,
			&r.PreviousRawScore, &r.NewRawScore, &r.PreviousWeightedScore, &r.NewWeightedScore,
			&r.PreviousNotes, &r.NewNotes, &r.Reason, &r.RevisedBy, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// --- Stats ---

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tender_templates),
			(SELECT COUNT(*) FROM tender_proposals),
			(SELECT COUNT(*) FROM tender_proposals WHERE lower(status) IN ('approved', 'rejected', 'accepted')),
			(SELECT COUNT(*) FROM tender_scores),
			(SELECT COUNT(*) FROM tender_score_revisions)`,
	).Scan(&stats.Templates, &stats.Proposals, &stats.LockedProposals, &stats.Scores, &stats.Revisions)
	return stats, err
}
