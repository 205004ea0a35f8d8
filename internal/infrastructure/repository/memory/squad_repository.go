package memory

import (
	"context"
	"sync"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

type SquadRepository struct {
	mu      sync.RWMutex
	members map[string][]match.SquadMember
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{members: make(map[string][]match.SquadMember)}
}

func (r *SquadRepository) Replace(_ context.Context, fixtureID string, members []match.SquadMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members[fixtureID] = cloneMembers(members)
	return nil
}

func (r *SquadRepository) ListByFixture(_ context.Context, fixtureID string) ([]match.SquadMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneMembers(r.members[fixtureID]), nil
}

func cloneMembers(members []match.SquadMember) []match.SquadMember {
	out := make([]match.SquadMember, len(members))
	for i, member := range members {
		out[i] = member
		out[i].Positions = append([]string(nil), member.Positions...)
		if member.RemovedAt != nil {
			at := *member.RemovedAt
			out[i].RemovedAt = &at
		}
	}

	return out
}
