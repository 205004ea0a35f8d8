package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]match.Fixture
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{fixtures: make(map[string]match.Fixture)}
}

func (r *FixtureRepository) Create(_ context.Context, fixture match.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures[fixture.ID] = cloneFixture(fixture)
	return nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (match.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixture, ok := r.fixtures[fixtureID]
	if !ok {
		return match.Fixture{}, false, nil
	}

	return cloneFixture(fixture), true, nil
}

func (r *FixtureRepository) ListByTeam(_ context.Context, teamID string) ([]match.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Fixture, 0, len(r.fixtures))
	for _, fixture := range r.fixtures {
		if fixture.TeamID != teamID {
			continue
		}
		out = append(out, cloneFixture(fixture))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FixtureDate.Equal(out[j].FixtureDate) {
			return out[i].FixtureDate.Before(out[j].FixtureDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *FixtureRepository) UpdateMetadata(_ context.Context, fixtureID string, patch match.MetadataPatch, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fixture, ok := r.fixtures[fixtureID]
	if !ok {
		return nil
	}
	if patch.Opponent != nil {
		fixture.Opponent = *patch.Opponent
	}
	if patch.FixtureDate != nil {
		fixture.FixtureDate = *patch.FixtureDate
	}
	if patch.Venue != nil {
		fixture.Venue = *patch.Venue
	}
	fixture.UpdatedAt = updatedAt
	r.fixtures[fixtureID] = fixture

	return nil
}

func (r *FixtureRepository) UpdateStatus(_ context.Context, fixtureID string, status string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fixture, ok := r.fixtures[fixtureID]
	if !ok {
		return nil
	}
	fixture.Status = status
	fixture.UpdatedAt = updatedAt
	r.fixtures[fixtureID] = fixture

	return nil
}

func (r *FixtureRepository) UpdateResult(_ context.Context, fixtureID string, result *match.StoredResult, status string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fixture, ok := r.fixtures[fixtureID]
	if !ok {
		return nil
	}
	fixture.Result = cloneResult(result)
	fixture.Status = status
	fixture.UpdatedAt = updatedAt
	r.fixtures[fixtureID] = fixture

	return nil
}

func cloneFixture(fixture match.Fixture) match.Fixture {
	out := fixture
	out.Result = cloneResult(fixture.Result)
	return out
}

func cloneResult(result *match.StoredResult) *match.StoredResult {
	if result == nil {
		return nil
	}

	out := *result
	if result.TeamGoals != nil {
		goals := *result.TeamGoals
		out.TeamGoals = &goals
	}
	if result.OpponentGoals != nil {
		goals := *result.OpponentGoals
		out.OpponentGoals = &goals
	}

	return &out
}
