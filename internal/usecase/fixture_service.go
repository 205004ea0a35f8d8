package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grassrootshq/matchday/internal/codec"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/domain/player"
	"github.com/grassrootshq/matchday/internal/platform/id"
)

const fixtureDateLayout = "2006-01-02"

type SquadRoleInput struct {
	PlayerID string
	Role     string
}

type CreateFixtureInput struct {
	TeamID      string
	Opponent    string
	FixtureDate string
	KickoffTime string
	VenueType   string
	ActorID     string
	Squad       []SquadRoleInput
}

type PatchFixtureInput struct {
	FixtureID   string
	Opponent    *string
	FixtureDate *string
	VenueType   *string
}

type SaveFixtureLineupInput struct {
	FixtureID string
	Slots     []match.LineupSlot
}

type FixtureAwardInput struct {
	PlayerID string
	Type     string
	Count    int
}

type SaveFixtureResultInput struct {
	FixtureID       string
	ResultCode      string
	TeamGoals       *int
	OpponentGoals   *int
	PlayerOfMatchID string
	Awards          []FixtureAwardInput
}

// AwardView is a stored award joined with the player's display name.
type AwardView struct {
	match.Award
	PlayerName string
}

// FixtureDetailView is the fully hydrated fixture a client needs to rebuild
// its match record.
type FixtureDetailView struct {
	Fixture match.Fixture
	Squad   []match.SquadMember
	Slots   []match.LineupSlot
	Awards  []AwardView
}

// FixtureService owns the fixture lifecycle: create as DRAFT, save lineup,
// lock, record result.
type FixtureService struct {
	fixtureRepo match.Repository
	lineupRepo  match.LineupRepository
	squadRepo   match.SquadRepository
	awardRepo   match.AwardRepository
	playerRepo  player.Repository
	idGen       id.Generator
	now         func() time.Time
}

func NewFixtureService(
	fixtureRepo match.Repository,
	lineupRepo match.LineupRepository,
	squadRepo match.SquadRepository,
	awardRepo match.AwardRepository,
	playerRepo player.Repository,
	idGen id.Generator,
) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		lineupRepo:  lineupRepo,
		squadRepo:   squadRepo,
		awardRepo:   awardRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *FixtureService) Create(ctx context.Context, input CreateFixtureInput) (match.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Create")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Opponent = strings.TrimSpace(input.Opponent)
	input.FixtureDate = strings.TrimSpace(input.FixtureDate)

	if input.TeamID == "" {
		return match.Fixture{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if input.Opponent == "" {
		return match.Fixture{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}

	fixtureDate, err := time.Parse(fixtureDateLayout, input.FixtureDate)
	if err != nil {
		return match.Fixture{}, fmt.Errorf("%w: fixture_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	fixtureID, err := s.idGen.NewID()
	if err != nil {
		return match.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}

	now := s.now()
	fixture := match.Fixture{
		ID:          fixtureID,
		TeamID:      input.TeamID,
		Opponent:    input.Opponent,
		FixtureDate: fixtureDate,
		KickoffTime: strings.TrimSpace(input.KickoffTime),
		Venue:       match.ParseVenue(input.VenueType),
		Status:      match.StatusDraft,
		CreatedBy:   strings.TrimSpace(input.ActorID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.fixtureRepo.Create(ctx, fixture); err != nil {
		return match.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	if len(input.Squad) > 0 {
		members, err := s.buildSquad(ctx, fixture.ID, input.Squad)
		if err != nil {
			return match.Fixture{}, err
		}
		if err := s.squadRepo.Replace(ctx, fixture.ID, members); err != nil {
			return match.Fixture{}, fmt.Errorf("replace fixture squad: %w", err)
		}
	}

	return fixture, nil
}

func (s *FixtureService) ListByTeam(ctx context.Context, teamID string) ([]match.Fixture, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	fixtures, err := s.fixtureRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	return fixtures, nil
}

func (s *FixtureService) Detail(ctx context.Context, fixtureID string) (FixtureDetailView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Detail")
	defer span.End()

	fixture, err := s.requireFixture(ctx, fixtureID)
	if err != nil {
		return FixtureDetailView{}, err
	}

	squad, err := s.squadRepo.ListByFixture(ctx, fixture.ID)
	if err != nil {
		return FixtureDetailView{}, fmt.Errorf("list fixture squad: %w", err)
	}
	slots, err := s.lineupRepo.ListByFixture(ctx, fixture.ID)
	if err != nil {
		return FixtureDetailView{}, fmt.Errorf("list fixture slots: %w", err)
	}
	awards, err := s.awardRepo.ListByFixture(ctx, fixture.ID)
	if err != nil {
		return FixtureDetailView{}, fmt.Errorf("list fixture awards: %w", err)
	}

	nameByID := make(map[string]string, len(squad))
	for _, member := range squad {
		nameByID[member.PlayerID] = member.DisplayName
	}

	views := make([]AwardView, 0, len(awards))
	for _, award := range awards {
		name := nameByID[award.PlayerID]
		if name == "" {
			name = s.lookupName(ctx, award.PlayerID)
		}
		views = append(views, AwardView{Award: award, PlayerName: name})
	}

	return FixtureDetailView{
		Fixture: fixture,
		Squad:   squad,
		Slots:   slots,
		Awards:  views,
	}, nil
}

func (s *FixtureService) PatchMetadata(ctx context.Context, input PatchFixtureInput) (match.Fixture, error) {
	fixture, err := s.requireFixture(ctx, input.FixtureID)
	if err != nil {
		return match.Fixture{}, err
	}

	patch := match.MetadataPatch{}
	if input.Opponent != nil {
		opponent := strings.TrimSpace(*input.Opponent)
		if opponent == "" {
			return match.Fixture{}, fmt.Errorf("%w: opponent cannot be empty", ErrInvalidInput)
		}
		patch.Opponent = &opponent
		fixture.Opponent = opponent
	}
	if input.FixtureDate != nil {
		fixtureDate, err := time.Parse(fixtureDateLayout, strings.TrimSpace(*input.FixtureDate))
		if err != nil {
			return match.Fixture{}, fmt.Errorf("%w: fixture_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		patch.FixtureDate = &fixtureDate
		fixture.FixtureDate = fixtureDate
	}
	if input.VenueType != nil {
		venue := match.ParseVenue(*input.VenueType)
		patch.Venue = &venue
		fixture.Venue = venue
	}

	if patch.Opponent == nil && patch.FixtureDate == nil && patch.Venue == nil {
		return fixture, nil
	}

	now := s.now()
	if err := s.fixtureRepo.UpdateMetadata(ctx, fixture.ID, patch, now); err != nil {
		return match.Fixture{}, fmt.Errorf("patch fixture metadata: %w", err)
	}
	fixture.UpdatedAt = now

	return fixture, nil
}

// SaveLineup replaces the fixture's full slot set and re-derives squad minutes
// and positions from it. Aggregates are overwritten, never merged, so saving
// the same slots twice yields the same totals.
func (s *FixtureService) SaveLineup(ctx context.Context, input SaveFixtureLineupInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SaveLineup")
	defer span.End()

	fixture, err := s.requireFixture(ctx, input.FixtureID)
	if err != nil {
		return err
	}

	slots := make([]match.LineupSlot, 0, len(input.Slots))
	for i, slot := range input.Slots {
		slot.PlayerID = strings.TrimSpace(slot.PlayerID)
		if slot.PlayerID == "" {
			return fmt.Errorf("%w: slot %d is missing player_id", ErrInvalidInput, i)
		}
		if slot.QuarterNumber < 1 {
			return fmt.Errorf("%w: slot %d has invalid quarter %d", ErrInvalidInput, i, slot.QuarterNumber)
		}
		if slot.Minutes < 0 {
			return fmt.Errorf("%w: slot %d has negative minutes", ErrInvalidInput, i)
		}
		switch slot.Position {
		case match.PositionGoalkeeper, match.PositionDefender, match.PositionAttacker:
		default:
			return fmt.Errorf("%w: slot %d has unknown position %q", ErrInvalidInput, i, slot.Position)
		}
		slot.Wave = match.NormalizeWave(slot.Position, slot.Wave)
		slots = append(slots, slot)
	}

	members, err := s.mergeSquad(ctx, fixture, slots)
	if err != nil {
		return err
	}

	if err := s.lineupRepo.ReplaceSlots(ctx, fixture.ID, slots); err != nil {
		return fmt.Errorf("replace fixture slots: %w", err)
	}
	if err := s.squadRepo.Replace(ctx, fixture.ID, members); err != nil {
		return fmt.Errorf("replace fixture squad: %w", err)
	}

	return nil
}

func (s *FixtureService) Lock(ctx context.Context, fixtureID string) (match.Fixture, error) {
	fixture, err := s.requireFixture(ctx, fixtureID)
	if err != nil {
		return match.Fixture{}, err
	}

	switch fixture.Status {
	case match.StatusLocked:
		return fixture, nil
	case match.StatusFinal:
		return match.Fixture{}, fmt.Errorf("%w: fixture %s is already finalized", ErrInvalidInput, fixtureID)
	}

	now := s.now()
	if err := s.fixtureRepo.UpdateStatus(ctx, fixture.ID, match.StatusLocked, now); err != nil {
		return match.Fixture{}, fmt.Errorf("lock fixture: %w", err)
	}
	fixture.Status = match.StatusLocked
	fixture.UpdatedAt = now

	return fixture, nil
}

// SaveResult stores the normalized result and replaces the fixture's awards.
// A VOID or absent result code always clears the stored result and drops the
// fixture back to LOCKED, whatever else the input carries. Award entries for
// unknown players are skipped rather than failing the whole write; see
// DESIGN.md for the rationale.
func (s *FixtureService) SaveResult(ctx context.Context, input SaveFixtureResultInput) (match.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SaveResult")
	defer span.End()

	fixture, err := s.requireFixture(ctx, input.FixtureID)
	if err != nil {
		return match.Fixture{}, err
	}

	code := match.ResultCode(strings.ToUpper(strings.TrimSpace(input.ResultCode)))
	switch code {
	case match.ResultWin, match.ResultDraw, match.ResultLoss, match.ResultAbandoned, match.ResultVoid:
	case "":
		code = match.ResultVoid
	default:
		return match.Fixture{}, fmt.Errorf("%w: unknown result code %q", ErrInvalidInput, input.ResultCode)
	}

	now := s.now()
	if code == match.ResultVoid {
		if err := s.awardRepo.ReplaceForFixture(ctx, fixture.ID, nil); err != nil {
			return match.Fixture{}, fmt.Errorf("clear fixture awards: %w", err)
		}
		if err := s.fixtureRepo.UpdateResult(ctx, fixture.ID, nil, match.StatusLocked, now); err != nil {
			return match.Fixture{}, fmt.Errorf("clear fixture result: %w", err)
		}
		fixture.Result = nil
		fixture.Status = match.StatusLocked
		fixture.UpdatedAt = now
		return fixture, nil
	}

	playerOfMatchID := strings.TrimSpace(input.PlayerOfMatchID)
	if playerOfMatchID != "" {
		if _, exists, err := s.playerRepo.GetByID(ctx, playerOfMatchID); err != nil {
			return match.Fixture{}, fmt.Errorf("get player of match: %w", err)
		} else if !exists {
			return match.Fixture{}, fmt.Errorf("%w: player of match %s", ErrNotFound, playerOfMatchID)
		}
	}

	awards := make([]match.Award, 0, len(input.Awards))
	for _, entry := range input.Awards {
		awardType := match.AwardType(strings.ToUpper(strings.TrimSpace(entry.Type)))
		switch awardType {
		case match.AwardScorer, match.AwardHonorableMention, match.AwardAssist:
		default:
			return match.Fixture{}, fmt.Errorf("%w: unknown award type %q", ErrInvalidInput, entry.Type)
		}

		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			continue
		}
		if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
			return match.Fixture{}, fmt.Errorf("get award player: %w", err)
		} else if !exists {
			continue
		}

		count := entry.Count
		if count < 1 {
			count = 1
		}

		awardID, err := s.idGen.NewID()
		if err != nil {
			return match.Fixture{}, fmt.Errorf("generate award id: %w", err)
		}
		awards = append(awards, match.Award{
			ID:        awardID,
			FixtureID: fixture.ID,
			PlayerID:  playerID,
			Type:      awardType,
			Count:     count,
		})
	}

	result := &match.StoredResult{
		Code:            code,
		TeamGoals:       input.TeamGoals,
		OpponentGoals:   input.OpponentGoals,
		PlayerOfMatchID: playerOfMatchID,
	}

	if err := s.awardRepo.ReplaceForFixture(ctx, fixture.ID, awards); err != nil {
		return match.Fixture{}, fmt.Errorf("replace fixture awards: %w", err)
	}
	if err := s.fixtureRepo.UpdateResult(ctx, fixture.ID, result, match.StatusFinal, now); err != nil {
		return match.Fixture{}, fmt.Errorf("save fixture result: %w", err)
	}

	fixture.Result = result
	fixture.Status = match.StatusFinal
	fixture.UpdatedAt = now

	return fixture, nil
}

func (s *FixtureService) requireFixture(ctx context.Context, fixtureID string) (match.Fixture, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return match.Fixture{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	fixture, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return match.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return match.Fixture{}, fmt.Errorf("%w: fixture %s", ErrNotFound, fixtureID)
	}

	return fixture, nil
}

func (s *FixtureService) buildSquad(ctx context.Context, fixtureID string, input []SquadRoleInput) ([]match.SquadMember, error) {
	members := make([]match.SquadMember, 0, len(input))
	seen := make(map[string]struct{}, len(input))

	for _, entry := range input {
		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			return nil, fmt.Errorf("%w: squad entry is missing player_id", ErrInvalidInput)
		}
		if _, ok := seen[playerID]; ok {
			continue
		}
		seen[playerID] = struct{}{}

		item, exists, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("get squad player: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}

		role := match.Role(strings.ToUpper(strings.TrimSpace(entry.Role)))
		if role != match.RoleStarter && role != match.RoleBench {
			role = match.RoleStarter
		}

		memberID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate squad member id: %w", err)
		}
		members = append(members, match.SquadMember{
			ID:          memberID,
			FixtureID:   fixtureID,
			PlayerID:    playerID,
			DisplayName: item.DisplayName,
			Role:        role,
		})
	}

	return members, nil
}

// mergeSquad recomputes per-player aggregates from the slot set and upserts
// membership: slot players become STARTER (existing roles win), members
// without slots stay with zeroed aggregates.
func (s *FixtureService) mergeSquad(ctx context.Context, fixture match.Fixture, slots []match.LineupSlot) ([]match.SquadMember, error) {
	existing, err := s.squadRepo.ListByFixture(ctx, fixture.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixture squad: %w", err)
	}

	byPlayer := make(map[string]match.SquadMember, len(existing))
	order := make([]string, 0, len(existing))
	for _, member := range existing {
		byPlayer[member.PlayerID] = member
		order = append(order, member.PlayerID)
	}

	aggregates := codec.SquadAggregates(slots)
	for _, slot := range slots {
		if _, ok := byPlayer[slot.PlayerID]; ok {
			continue
		}

		item, exists, err := s.playerRepo.GetByID(ctx, slot.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get lineup player: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, slot.PlayerID)
		}

		memberID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate squad member id: %w", err)
		}
		byPlayer[slot.PlayerID] = match.SquadMember{
			ID:          memberID,
			FixtureID:   fixture.ID,
			PlayerID:    slot.PlayerID,
			DisplayName: item.DisplayName,
			Role:        match.RoleStarter,
		}
		order = append(order, slot.PlayerID)
	}

	members := make([]match.SquadMember, 0, len(order))
	for _, playerID := range order {
		member := byPlayer[playerID]
		aggregate := aggregates[playerID]
		member.Minutes = aggregate.Minutes
		member.Positions = aggregate.Positions
		members = append(members, member)
	}

	return members, nil
}

func (s *FixtureService) lookupName(ctx context.Context, playerID string) string {
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil || !exists {
		return playerID
	}
	return item.DisplayName
}
