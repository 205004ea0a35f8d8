package memory

import (
	"context"
	"sync"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

type AwardRepository struct {
	mu     sync.RWMutex
	awards map[string][]match.Award
}

func NewAwardRepository() *AwardRepository {
	return &AwardRepository{awards: make(map[string][]match.Award)}
}

func (r *AwardRepository) ReplaceForFixture(_ context.Context, fixtureID string, awards []match.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.awards[fixtureID] = append([]match.Award(nil), awards...)
	return nil
}

func (r *AwardRepository) ListByFixture(_ context.Context, fixtureID string) ([]match.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]match.Award(nil), r.awards[fixtureID]...), nil
}
