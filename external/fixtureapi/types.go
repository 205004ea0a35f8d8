package fixtureapi

import (
	"time"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

// PlayerSummary is one roster row as the backend returns it.
type PlayerSummary struct {
	ID                 string     `json:"id"`
	TeamID             string     `json:"teamId"`
	DisplayName        string     `json:"displayName"`
	SquadNumber        *int       `json:"squadNumber,omitempty"`
	PreferredPositions []string   `json:"preferredPositions,omitempty"`
	RemovedAt          *time.Time `json:"removedAt,omitempty"`
}

// FixtureSummary is the fixture row without lineup or award detail.
type FixtureSummary struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"teamId"`
	Opponent    string    `json:"opponent"`
	FixtureDate string    `json:"fixtureDate"`
	KickoffTime string    `json:"kickoffTime,omitempty"`
	VenueType   string    `json:"venueType"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SquadEntry is one fixture squad membership with its derived aggregates.
type SquadEntry struct {
	PlayerID    string   `json:"playerId"`
	DisplayName string   `json:"displayName"`
	Role        string   `json:"role"`
	Minutes     int      `json:"minutes"`
	Positions   []string `json:"positions,omitempty"`
}

// ResultDetail is the stored result in its normalized form.
type ResultDetail struct {
	ResultCode        string `json:"resultCode"`
	TeamGoals         *int   `json:"teamGoals,omitempty"`
	OpponentGoals     *int   `json:"opponentGoals,omitempty"`
	PlayerOfMatchID   string `json:"playerOfMatchId,omitempty"`
	PlayerOfMatchName string `json:"playerOfMatchName,omitempty"`
}

// AwardDetail is one stored award joined with the player's display name.
type AwardDetail struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
}

// FixtureDetail is the full hydrated fixture: row, squad, lineup slots, and
// result with awards.
type FixtureDetail struct {
	Fixture FixtureSummary     `json:"fixture"`
	Squad   []SquadEntry       `json:"squad"`
	Slots   []match.LineupSlot `json:"slots"`
	Result  *ResultDetail      `json:"result,omitempty"`
	Awards  []AwardDetail      `json:"awards,omitempty"`
}

// SquadRole assigns a player to a fixture squad at creation time.
type SquadRole struct {
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
}

type CreateFixtureRequest struct {
	TeamID      string      `json:"teamId"`
	Opponent    string      `json:"opponent"`
	FixtureDate string      `json:"fixtureDate"`
	KickoffTime string      `json:"kickoffTime,omitempty"`
	VenueType   string      `json:"venueType"`
	Squad       []SquadRole `json:"squad"`
}

type SaveLineupRequest struct {
	Slots []match.LineupSlot `json:"slots"`
}

// AwardInput is one award entry in a result write.
type AwardInput struct {
	PlayerID string `json:"playerId"`
	Type     string `json:"type"`
	Count    int    `json:"count"`
}

type SaveResultRequest struct {
	ResultCode      string       `json:"resultCode"`
	TeamGoals       *int         `json:"teamGoals,omitempty"`
	OpponentGoals   *int         `json:"opponentGoals,omitempty"`
	PlayerOfMatchID string       `json:"playerOfMatchId,omitempty"`
	Awards          []AwardInput `json:"awards"`
}

// PatchFixtureRequest carries optional metadata updates. Absent fields leave
// the stored value untouched.
type PatchFixtureRequest struct {
	Opponent    *string `json:"opponent,omitempty"`
	FixtureDate *string `json:"fixtureDate,omitempty"`
	VenueType   *string `json:"venueType,omitempty"`
}
