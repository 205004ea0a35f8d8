package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/grassrootshq/matchday/internal/domain/match"
	qb "github.com/grassrootshq/matchday/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

var squadSelectColumns = []string{
	"id",
	"public_id",
	"fixture_public_id",
	"player_public_id",
	"display_name",
	"role",
	"minutes",
	"positions",
	"removed_at",
	"deleted_at",
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

// Replace overwrites the full membership set for a fixture. Members dropped
// from the set are soft deleted so a later save can resurrect the same row.
func (r *SquadRepository) Replace(ctx context.Context, fixtureID string, members []match.SquadMember) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace fixture squad: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("fixture_squad").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear fixture squad query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear fixture squad: %w", err)
	}

	for _, member := range members {
		model := squadMemberInsertModel{
			PublicID:    member.ID,
			FixtureID:   fixtureID,
			PlayerID:    member.PlayerID,
			DisplayName: member.DisplayName,
			Role:        string(member.Role),
			Minutes:     member.Minutes,
			Positions:   pq.StringArray(member.Positions),
			RemovedAt:   member.RemovedAt,
		}
		query, args, err := qb.InsertModel("fixture_squad", model, `ON CONFLICT (fixture_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    role = EXCLUDED.role,
    minutes = EXCLUDED.minutes,
    positions = EXCLUDED.positions,
    removed_at = EXCLUDED.removed_at,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert squad member query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert squad member player=%s: %w", member.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace fixture squad tx: %w", err)
	}

	return nil
}

func (r *SquadRepository) ListByFixture(ctx context.Context, fixtureID string) ([]match.SquadMember, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fixture_squad").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("display_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixture squad query: %w", err)
	}

	var rows []squadMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture squad: %w", err)
	}

	out := make([]match.SquadMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.SquadMember{
			ID:          row.PublicID,
			FixtureID:   row.FixtureID,
			PlayerID:    row.PlayerID,
			DisplayName: row.DisplayName,
			Role:        match.Role(row.Role),
			Minutes:     row.Minutes,
			Positions:   append([]string(nil), row.Positions...),
			RemovedAt:   row.RemovedAt,
		})
	}

	return out, nil
}
