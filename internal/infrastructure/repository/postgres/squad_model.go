package postgres

import (
	"time"

	"github.com/lib/pq"
)

type squadMemberTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	FixtureID   string         `db:"fixture_public_id"`
	PlayerID    string         `db:"player_public_id"`
	DisplayName string         `db:"display_name"`
	Role        string         `db:"role"`
	Minutes     int            `db:"minutes"`
	Positions   pq.StringArray `db:"positions"`
	RemovedAt   *time.Time     `db:"removed_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type squadMemberInsertModel struct {
	PublicID    string         `db:"public_id"`
	FixtureID   string         `db:"fixture_public_id"`
	PlayerID    string         `db:"player_public_id"`
	DisplayName string         `db:"display_name"`
	Role        string         `db:"role"`
	Minutes     int            `db:"minutes"`
	Positions   pq.StringArray `db:"positions"`
	RemovedAt   *time.Time     `db:"removed_at"`
}
