package postgres

import "time"

type awardTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	FixtureID string     `db:"fixture_public_id"`
	PlayerID  string     `db:"player_public_id"`
	AwardType string     `db:"award_type"`
	GoalCount int        `db:"goal_count"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type awardInsertModel struct {
	PublicID  string `db:"public_id"`
	FixtureID string `db:"fixture_public_id"`
	PlayerID  string `db:"player_public_id"`
	AwardType string `db:"award_type"`
	GoalCount int    `db:"goal_count"`
}
