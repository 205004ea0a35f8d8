package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grassrootshq/matchday/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}

	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string, includeRemoved bool) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.TeamID != teamID {
			continue
		}
		if !includeRemoved && p.Removed() {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) SetRemoved(_ context.Context, playerID string, removedAt *time.Time, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return nil
	}
	if removedAt != nil {
		at := *removedAt
		p.RemovedAt = &at
	} else {
		p.RemovedAt = nil
	}
	p.UpdatedAt = updatedAt
	r.players[playerID] = p

	return nil
}

func clonePlayer(p player.Player) player.Player {
	out := p
	if p.SquadNumber != nil {
		number := *p.SquadNumber
		out.SquadNumber = &number
	}
	if p.RemovedAt != nil {
		at := *p.RemovedAt
		out.RemovedAt = &at
	}
	out.PreferredPositions = append([]string(nil), p.PreferredPositions...)

	return out
}
