package postgres

import "time"

type lineupSlotTableModel struct {
	ID             int64      `db:"id"`
	FixtureID      string     `db:"fixture_public_id"`
	QuarterNumber  int        `db:"quarter_number"`
	Wave           string     `db:"wave"`
	Position       string     `db:"position"`
	PlayerID       string     `db:"player_public_id"`
	PlayerName     string     `db:"player_name"`
	Minutes        int        `db:"minutes"`
	IsSubstitution bool       `db:"is_substitution"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type lineupSlotInsertModel struct {
	FixtureID      string `db:"fixture_public_id"`
	QuarterNumber  int    `db:"quarter_number"`
	Wave           string `db:"wave"`
	Position       string `db:"position"`
	PlayerID       string `db:"player_public_id"`
	PlayerName     string `db:"player_name"`
	Minutes        int    `db:"minutes"`
	IsSubstitution bool   `db:"is_substitution"`
}
