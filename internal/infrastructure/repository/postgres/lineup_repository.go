package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grassrootshq/matchday/internal/domain/match"
	qb "github.com/grassrootshq/matchday/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

var lineupSelectColumns = []string{
	"id",
	"fixture_public_id",
	"quarter_number",
	"wave",
	"position",
	"player_public_id",
	"player_name",
	"minutes",
	"is_substitution",
	"created_at",
	"deleted_at",
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ReplaceSlots(ctx context.Context, fixtureID string, slots []match.LineupSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace lineup slots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("fixture_slots").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear lineup slots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear lineup slots: %w", err)
	}

	for _, slot := range slots {
		model := lineupSlotInsertModel{
			FixtureID:      fixtureID,
			QuarterNumber:  slot.QuarterNumber,
			Wave:           string(slot.Wave),
			Position:       string(slot.Position),
			PlayerID:       slot.PlayerID,
			PlayerName:     slot.PlayerName,
			Minutes:        slot.Minutes,
			IsSubstitution: slot.IsSubstitution,
		}
		query, args, err := qb.InsertModel("fixture_slots", model, "")
		if err != nil {
			return fmt.Errorf("build insert lineup slot query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup slot quarter=%d player=%s: %w", slot.QuarterNumber, slot.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace lineup slots tx: %w", err)
	}

	return nil
}

func (r *LineupRepository) ListByFixture(ctx context.Context, fixtureID string) ([]match.LineupSlot, error) {
	query, args, err := qb.Select(lineupSelectColumns...).From("fixture_slots").
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("quarter_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineup slots query: %w", err)
	}

	var rows []lineupSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineup slots: %w", err)
	}

	out := make([]match.LineupSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.LineupSlot{
			QuarterNumber:  row.QuarterNumber,
			Wave:           match.Wave(row.Wave),
			Position:       match.Position(row.Position),
			PlayerID:       row.PlayerID,
			PlayerName:     row.PlayerName,
			Minutes:        row.Minutes,
			IsSubstitution: row.IsSubstitution,
		})
	}

	return out, nil
}
