package memory

import (
	"context"
	"sync"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

type LineupRepository struct {
	mu    sync.RWMutex
	slots map[string][]match.LineupSlot
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{slots: make(map[string][]match.LineupSlot)}
}

func (r *LineupRepository) ReplaceSlots(_ context.Context, fixtureID string, slots []match.LineupSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[fixtureID] = cloneSlots(slots)
	return nil
}

func (r *LineupRepository) ListByFixture(_ context.Context, fixtureID string) ([]match.LineupSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneSlots(r.slots[fixtureID]), nil
}

func cloneSlots(slots []match.LineupSlot) []match.LineupSlot {
	return append([]match.LineupSlot(nil), slots...)
}
