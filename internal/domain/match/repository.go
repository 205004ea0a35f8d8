package match

import (
	"context"
	"time"
)

// MetadataPatch carries the optional fixture metadata fields a PATCH can touch.
// Nil pointers leave the current value untouched.
type MetadataPatch struct {
	Opponent    *string
	FixtureDate *time.Time
	Venue       *VenueType
}

// SquadAggregate is the per-player total re-derived from lineup slots.
type SquadAggregate struct {
	Minutes   int
	Positions []string
}

// Repository exposes fixture persistence operations.
type Repository interface {
	Create(ctx context.Context, fixture Fixture) error
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Fixture, error)
	UpdateMetadata(ctx context.Context, fixtureID string, patch MetadataPatch, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, fixtureID string, status string, updatedAt time.Time) error
	UpdateResult(ctx context.Context, fixtureID string, result *StoredResult, status string, updatedAt time.Time) error
}

// LineupRepository stores the normalized slot set for a fixture. A lineup
// save always replaces the whole set.
type LineupRepository interface {
	ReplaceSlots(ctx context.Context, fixtureID string, slots []LineupSlot) error
	ListByFixture(ctx context.Context, fixtureID string) ([]LineupSlot, error)
}

// SquadRepository manages fixture squad membership rows. Replace overwrites
// the full membership set including the derived minutes and positions.
type SquadRepository interface {
	Replace(ctx context.Context, fixtureID string, members []SquadMember) error
	ListByFixture(ctx context.Context, fixtureID string) ([]SquadMember, error)
}

// AwardRepository manages per-fixture award rows. Saving a result always
// replaces the full award set, never patches it.
type AwardRepository interface {
	ReplaceForFixture(ctx context.Context, fixtureID string, awards []Award) error
	ListByFixture(ctx context.Context, fixtureID string) ([]Award, error)
}
