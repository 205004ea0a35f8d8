package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/grassrootshq/matchday/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the demo roster when the players table is empty. It is
// a no-op on any database that already holds roster data.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, team_id, display_name, squad_number, preferred_positions, created_at, updated_at)
VALUES (:public_id, :team_id, :display_name, :squad_number, :preferred_positions, :created_at, :updated_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           p.ID,
			"team_id":             p.TeamID,
			"display_name":        p.DisplayName,
			"squad_number":        intPtrToNullInt64(p.SquadNumber),
			"preferred_positions": pq.StringArray(p.PreferredPositions),
			"created_at":          p.CreatedAt,
			"updated_at":          p.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
