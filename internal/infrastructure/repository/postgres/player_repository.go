package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/grassrootshq/matchday/internal/domain/player"
	qb "github.com/grassrootshq/matchday/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"team_id",
	"display_name",
	"squad_number",
	"preferred_positions",
	"removed_at",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string, includeRemoved bool) ([]player.Player, error) {
	builder := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("team_id", teamID))
	if !includeRemoved {
		builder = builder.Where(qb.IsNull("removed_at"))
	}
	query, args, err := builder.OrderBy("display_name", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	model := playerInsertModel{
		PublicID:           item.ID,
		TeamID:             item.TeamID,
		DisplayName:        item.DisplayName,
		SquadNumber:        intPtrToNullInt64(item.SquadNumber),
		PreferredPositions: pq.StringArray(item.PreferredPositions),
		RemovedAt:          item.RemovedAt,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("players", model, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("display_name", item.DisplayName).
		Set("squad_number", intPtrToNullInt64(item.SquadNumber)).
		Set("preferred_positions", pq.StringArray(item.PreferredPositions)).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player: not found")
	}

	return nil
}

func (r *PlayerRepository) SetRemoved(ctx context.Context, playerID string, removedAt *time.Time, updatedAt time.Time) error {
	query, args, err := qb.Update("players").
		Set("removed_at", removedAt).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set player removed query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set player removed: %w", err)
	}

	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:                 row.PublicID,
		TeamID:             row.TeamID,
		DisplayName:        row.DisplayName,
		SquadNumber:        nullInt64ToIntPtr(row.SquadNumber),
		PreferredPositions: append([]string(nil), row.PreferredPositions...),
		RemovedAt:          row.RemovedAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
