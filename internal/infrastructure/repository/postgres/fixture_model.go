package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	TeamID          string         `db:"team_id"`
	Opponent        string         `db:"opponent"`
	FixtureDate     time.Time      `db:"fixture_date"`
	KickoffTime     string         `db:"kickoff_time"`
	VenueType       string         `db:"venue_type"`
	Status          string         `db:"status"`
	ResultCode      sql.NullString `db:"result_code"`
	TeamGoals       sql.NullInt64  `db:"team_goals"`
	OpponentGoals   sql.NullInt64  `db:"opponent_goals"`
	PlayerOfMatchID sql.NullString `db:"player_of_match_id"`
	CreatedBy       string         `db:"created_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type fixtureInsertModel struct {
	PublicID    string    `db:"public_id"`
	TeamID      string    `db:"team_id"`
	Opponent    string    `db:"opponent"`
	FixtureDate time.Time `db:"fixture_date"`
	KickoffTime string    `db:"kickoff_time"`
	VenueType   string    `db:"venue_type"`
	Status      string    `db:"status"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
