package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/domain/player"
	"github.com/grassrootshq/matchday/internal/platform/id"
)

type CreatePlayerInput struct {
	TeamID             string
	DisplayName        string
	SquadNumber        *int
	PreferredPositions []string
}

type UpdatePlayerInput struct {
	PlayerID           string
	DisplayName        *string
	SquadNumber        *int
	PreferredPositions []string
}

// RosterService manages the team roster. Players are soft-deleted so fixtures
// recorded before a removal keep resolving their names.
type RosterService struct {
	playerRepo player.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewRosterService(playerRepo player.Repository, idGen id.Generator) *RosterService {
	return &RosterService{
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *RosterService) List(ctx context.Context, teamID string, includeRemoved bool) ([]player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID, includeRemoved)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

func (s *RosterService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.TeamID == "" {
		return player.Player{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if input.DisplayName == "" {
		return player.Player{}, fmt.Errorf("%w: display_name is required", ErrInvalidInput)
	}

	if err := s.ensureNameFree(ctx, input.TeamID, input.DisplayName, ""); err != nil {
		return player.Player{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now()
	item := player.Player{
		ID:                 playerID,
		TeamID:             input.TeamID,
		DisplayName:        input.DisplayName,
		SquadNumber:        input.SquadNumber,
		PreferredPositions: normalizePositions(input.PreferredPositions),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	return item, nil
}

func (s *RosterService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return player.Player{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, input.PlayerID)
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return player.Player{}, fmt.Errorf("%w: display_name cannot be empty", ErrInvalidInput)
		}
		if err := s.ensureNameFree(ctx, item.TeamID, name, item.ID); err != nil {
			return player.Player{}, err
		}
		item.DisplayName = name
	}
	if input.SquadNumber != nil {
		item.SquadNumber = input.SquadNumber
	}
	if input.PreferredPositions != nil {
		item.PreferredPositions = normalizePositions(input.PreferredPositions)
	}

	item.UpdatedAt = s.now()
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return item, nil
}

// Remove soft-deletes a player. The row stays so historical fixtures keep
// their name resolution.
func (s *RosterService) Remove(ctx context.Context, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if item.Removed() {
		return nil
	}

	now := s.now()
	if err := s.playerRepo.SetRemoved(ctx, playerID, &now, now); err != nil {
		return fmt.Errorf("remove player: %w", err)
	}

	return nil
}

func (s *RosterService) Restore(ctx context.Context, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if !item.Removed() {
		return nil
	}

	if err := s.playerRepo.SetRemoved(ctx, playerID, nil, s.now()); err != nil {
		return fmt.Errorf("restore player: %w", err)
	}

	return nil
}

func (s *RosterService) ensureNameFree(ctx context.Context, teamID, displayName, excludeID string) error {
	players, err := s.playerRepo.ListByTeam(ctx, teamID, true)
	if err != nil {
		return fmt.Errorf("list players for name check: %w", err)
	}

	key := match.NormalizeNameKey(displayName)
	for _, existing := range players {
		if existing.ID == excludeID {
			continue
		}
		if match.NormalizeNameKey(existing.DisplayName) == key {
			return fmt.Errorf("%w: display_name %q already in use", ErrInvalidInput, displayName)
		}
	}

	return nil
}

func normalizePositions(positions []string) []string {
	out := make([]string, 0, len(positions))
	seen := make(map[string]struct{}, len(positions))
	for _, position := range positions {
		position = strings.ToUpper(strings.TrimSpace(position))
		if position == "" {
			continue
		}
		if _, ok := seen[position]; ok {
			continue
		}
		seen[position] = struct{}{}
		out = append(out, position)
	}

	return out
}
