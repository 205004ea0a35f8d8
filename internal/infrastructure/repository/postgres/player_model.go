package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	TeamID             string         `db:"team_id"`
	DisplayName        string         `db:"display_name"`
	SquadNumber        sql.NullInt64  `db:"squad_number"`
	PreferredPositions pq.StringArray `db:"preferred_positions"`
	RemovedAt          *time.Time     `db:"removed_at"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID           string         `db:"public_id"`
	TeamID             string         `db:"team_id"`
	DisplayName        string         `db:"display_name"`
	SquadNumber        sql.NullInt64  `db:"squad_number"`
	PreferredPositions pq.StringArray `db:"preferred_positions"`
	RemovedAt          *time.Time     `db:"removed_at"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}
