package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/grassrootshq/matchday/internal/domain/match"
	qb "github.com/grassrootshq/matchday/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

var fixtureSelectColumns = []string{
	"id",
	"public_id",
	"team_id",
	"opponent",
	"fixture_date",
	"kickoff_time",
	"venue_type",
	"status",
	"result_code",
	"team_goals",
	"opponent_goals",
	"player_of_match_id",
	"created_by",
	"created_at",
	"updated_at",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Create(ctx context.Context, fixture match.Fixture) error {
	model := fixtureInsertModel{
		PublicID:    fixture.ID,
		TeamID:      fixture.TeamID,
		Opponent:    fixture.Opponent,
		FixtureDate: fixture.FixtureDate,
		KickoffTime: fixture.KickoffTime,
		VenueType:   string(fixture.Venue),
		Status:      fixture.Status,
		CreatedBy:   fixture.CreatedBy,
		CreatedAt:   fixture.CreatedAt,
		UpdatedAt:   fixture.UpdatedAt,
	}
	query, args, err := qb.InsertModel("fixtures", model, "")
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixture: %w", err)
	}

	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (match.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("public_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Fixture{}, false, nil
		}
		return match.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Fixture, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("fixture_date", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by team query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by team: %w", err)
	}

	out := make([]match.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}

	return out, nil
}

func (r *FixtureRepository) UpdateMetadata(ctx context.Context, fixtureID string, patch match.MetadataPatch, updatedAt time.Time) error {
	builder := qb.Update("fixtures")
	if patch.Opponent != nil {
		builder = builder.Set("opponent", *patch.Opponent)
	}
	if patch.FixtureDate != nil {
		builder = builder.Set("fixture_date", *patch.FixtureDate)
	}
	if patch.Venue != nil {
		builder = builder.Set("venue_type", string(*patch.Venue))
	}
	query, args, err := builder.
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture metadata query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update fixture metadata: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update fixture metadata: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update fixture metadata: not found")
	}

	return nil
}

func (r *FixtureRepository) UpdateStatus(ctx context.Context, fixtureID string, status string, updatedAt time.Time) error {
	query, args, err := qb.Update("fixtures").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fixture status: %w", err)
	}

	return nil
}

func (r *FixtureRepository) UpdateResult(ctx context.Context, fixtureID string, result *match.StoredResult, status string, updatedAt time.Time) error {
	builder := qb.Update("fixtures")
	if result == nil {
		builder = builder.
			Set("result_code", nil).
			Set("team_goals", nil).
			Set("opponent_goals", nil).
			Set("player_of_match_id", nil)
	} else {
		builder = builder.
			Set("result_code", string(result.Code)).
			Set("team_goals", intPtrToNullInt64(result.TeamGoals)).
			Set("opponent_goals", intPtrToNullInt64(result.OpponentGoals)).
			Set("player_of_match_id", stringToNullString(result.PlayerOfMatchID))
	}
	query, args, err := builder.
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fixture result: %w", err)
	}

	return nil
}

func fixtureFromRow(row fixtureTableModel) match.Fixture {
	out := match.Fixture{
		ID:          row.PublicID,
		TeamID:      row.TeamID,
		Opponent:    row.Opponent,
		FixtureDate: row.FixtureDate,
		KickoffTime: row.KickoffTime,
		Venue:       match.VenueType(row.VenueType),
		Status:      row.Status,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.ResultCode.Valid {
		out.Result = &match.StoredResult{
			Code:            match.ResultCode(row.ResultCode.String),
			TeamGoals:       nullInt64ToIntPtr(row.TeamGoals),
			OpponentGoals:   nullInt64ToIntPtr(row.OpponentGoals),
			PlayerOfMatchID: nullStringToString(row.PlayerOfMatchID),
		}
	}

	return out
}
