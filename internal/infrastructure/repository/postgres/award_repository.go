package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grassrootshq/matchday/internal/domain/match"
	qb "github.com/grassrootshq/matchday/internal/platform/querybuilder"
)

type AwardRepository struct {
	db *sqlx.DB
}

var awardSelectColumns = []string{
	"id",
	"public_id",
	"fixture_public_id",
	"player_public_id",
	"award_type",
	"goal_count",
	"deleted_at",
}

func NewAwardRepository(db *sqlx.DB) *AwardRepository {
	return &AwardRepository{db: db}
}

func (r *AwardRepository) ReplaceForFixture(ctx context.Context, fixtureID string, awards []match.Award) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace fixture awards: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("fixture_awards").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear fixture awards query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear fixture awards: %w", err)
	}

	for _, award := range awards {
		model := awardInsertModel{
			PublicID:  award.ID,
			FixtureID: fixtureID,
			PlayerID:  award.PlayerID,
			AwardType: string(award.Type),
			GoalCount: award.Count,
		}
		query, args, err := qb.InsertModel("fixture_awards", model, `ON CONFLICT (fixture_public_id, player_public_id, award_type) WHERE deleted_at IS NULL
DO UPDATE SET
    goal_count = EXCLUDED.goal_count,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert fixture award query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert fixture award player=%s type=%s: %w", award.PlayerID, award.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace fixture awards tx: %w", err)
	}

	return nil
}

func (r *AwardRepository) ListByFixture(ctx context.Context, fixtureID string) ([]match.Award, error) {
	query, args, err := qb.Select(awardSelectColumns...).From("fixture_awards").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("award_type", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixture awards query: %w", err)
	}

	var rows []awardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture awards: %w", err)
	}

	out := make([]match.Award, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Award{
			ID:        row.PublicID,
			FixtureID: row.FixtureID,
			PlayerID:  row.PlayerID,
			Type:      match.AwardType(row.AwardType),
			Count:     row.GoalCount,
		})
	}

	return out, nil
}
