package memory

import (
	"time"

	"github.com/grassrootshq/matchday/internal/domain/player"
)

const SeedTeamID = "grassroots-u10-2026"

// SeedPlayers returns a demo roster used when the service runs without a
// database.
func SeedPlayers() []player.Player {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	number := func(n int) *int { return &n }

	return []player.Player{
		{ID: "pl-01", TeamID: SeedTeamID, DisplayName: "Ava Thompson", SquadNumber: number(1), PreferredPositions: []string{"GK"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-02", TeamID: SeedTeamID, DisplayName: "Ben Carter", SquadNumber: number(2), PreferredPositions: []string{"DEF"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-03", TeamID: SeedTeamID, DisplayName: "Chloe Nguyen", SquadNumber: number(4), PreferredPositions: []string{"DEF", "ATT"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-04", TeamID: SeedTeamID, DisplayName: "Dylan Walsh", SquadNumber: number(7), PreferredPositions: []string{"ATT"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-05", TeamID: SeedTeamID, DisplayName: "Ella Brooks", SquadNumber: number(9), PreferredPositions: []string{"ATT"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-06", TeamID: SeedTeamID, DisplayName: "Finn Murphy", SquadNumber: number(5), PreferredPositions: []string{"DEF"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-07", TeamID: SeedTeamID, DisplayName: "Grace Kelly", SquadNumber: number(8), PreferredPositions: []string{"ATT", "DEF"}, CreatedAt: created, UpdatedAt: created},
		{ID: "pl-08", TeamID: SeedTeamID, DisplayName: "Harry Singh", SquadNumber: number(3), PreferredPositions: []string{"GK", "DEF"}, CreatedAt: created, UpdatedAt: created},
	}
}
