package matchstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/grassrootshq/matchday/external/fixtureapi"
	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/codec"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/names"
)

const defaultHydrationWorkers = 4

// FixtureBackend is the slice of the remote client the store depends on.
type FixtureBackend interface {
	ListPlayers(ctx context.Context, teamID string, includeRemoved bool) ([]fixtureapi.PlayerSummary, error)
	CreateFixture(ctx context.Context, req fixtureapi.CreateFixtureRequest) (fixtureapi.FixtureSummary, error)
	ListFixtures(ctx context.Context, teamID string) ([]fixtureapi.FixtureSummary, error)
	FixtureDetail(ctx context.Context, fixtureID string) (fixtureapi.FixtureDetail, error)
	PatchFixture(ctx context.Context, fixtureID string, req fixtureapi.PatchFixtureRequest) error
	SaveLineup(ctx context.Context, fixtureID string, req fixtureapi.SaveLineupRequest) error
	LockFixture(ctx context.Context, fixtureID string) error
	SaveResult(ctx context.Context, fixtureID string, req fixtureapi.SaveResultRequest) error
}

// RemoteStore persists match records through the fixture backend. A save runs
// the create, lineup, lock, result sequence strictly in order; a failure at
// any step aborts the rest and surfaces to the caller, which is what lets the
// Selector fall back to local storage for the whole operation. The backend is
// not rolled back on a mid-sequence failure.
type RemoteStore struct {
	backend  FixtureBackend
	resolver *names.Resolver
	teamID   string
	workers  int
}

func NewRemoteStore(backend FixtureBackend, teamID string, hydrationWorkers int) *RemoteStore {
	if hydrationWorkers <= 0 {
		hydrationWorkers = defaultHydrationWorkers
	}

	store := &RemoteStore{
		backend: backend,
		teamID:  teamID,
		workers: hydrationWorkers,
	}
	store.resolver = names.NewResolver(rosterAdapter{backend: backend, teamID: teamID})

	return store
}

type rosterAdapter struct {
	backend FixtureBackend
	teamID  string
}

func (a rosterAdapter) ListRoster(ctx context.Context, includeRemoved bool) ([]names.RosterEntry, error) {
	players, err := a.backend.ListPlayers(ctx, a.teamID, includeRemoved)
	if err != nil {
		return nil, err
	}

	entries := make([]names.RosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, names.RosterEntry{ID: p.ID, Name: p.DisplayName})
	}

	return entries, nil
}

func (s *RemoteStore) SaveMatch(ctx context.Context, record match.Record) (match.Record, error) {
	nameToID, err := s.resolver.Resolve(ctx, collectNames(record), record.PlayerIDLookup)
	if err != nil {
		return match.Record{}, err
	}

	slots, err := codec.EncodeSlots(record.Allocation, nameToID)
	if err != nil {
		return match.Record{}, err
	}

	summary, err := s.backend.CreateFixture(ctx, fixtureapi.CreateFixtureRequest{
		TeamID:      s.teamID,
		Opponent:    record.Opponent,
		FixtureDate: record.Date,
		KickoffTime: record.Time,
		VenueType:   string(match.ParseVenue(venueOf(record))),
		Squad:       buildSquadRoles(record, slots, nameToID),
	})
	if err != nil {
		return match.Record{}, err
	}

	if len(slots) > 0 {
		if err := s.backend.SaveLineup(ctx, summary.ID, fixtureapi.SaveLineupRequest{Slots: slots}); err != nil {
			return match.Record{}, err
		}
	}

	if err := s.backend.LockFixture(ctx, summary.ID); err != nil {
		return match.Record{}, err
	}

	if record.Result.HasDetails() {
		encoding, err := codec.EncodeResult(*record.Result, nameToID)
		if err != nil {
			return match.Record{}, err
		}
		if err := s.backend.SaveResult(ctx, summary.ID, resultRequest(encoding)); err != nil {
			return match.Record{}, err
		}
	}

	detail, err := s.backend.FixtureDetail(ctx, summary.ID)
	if err != nil {
		return match.Record{}, err
	}

	return recordFromDetail(detail), nil
}

func (s *RemoteStore) ListMatches(ctx context.Context) ([]match.Record, error) {
	summaries, err := s.backend.ListFixtures(ctx, s.teamID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(summaries) {
		workerCount = len(summaries)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create hydration pool: %w", err)
	}
	defer pool.Release()

	records := make([]match.Record, len(summaries))
	errs := make([]error, len(summaries))

	var workers sync.WaitGroup
	for i, summary := range summaries {
		i, summary := i, summary
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			detail, detailErr := s.backend.FixtureDetail(ctx, summary.ID)
			if detailErr != nil {
				errs[i] = fmt.Errorf("hydrate fixture %s: %w", summary.ID, detailErr)
				return
			}
			records[i] = recordFromDetail(detail)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit hydration task: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

func (s *RemoteStore) UpdateMatch(ctx context.Context, matchID string, update audit.Update) (match.Record, error) {
	patch := fixtureapi.PatchFixtureRequest{
		Opponent:    update.Opponent,
		FixtureDate: update.Date,
	}
	if update.Result != nil && update.Result.Venue != "" {
		venue := string(match.ParseVenue(update.Result.Venue))
		patch.VenueType = &venue
	}
	if patch.Opponent != nil || patch.FixtureDate != nil || patch.VenueType != nil {
		if err := s.backend.PatchFixture(ctx, matchID, patch); err != nil {
			return match.Record{}, err
		}
	}

	if update.Allocation != nil || update.Result != nil {
		detail, err := s.backend.FixtureDetail(ctx, matchID)
		if err != nil {
			return match.Record{}, err
		}
		nameToID := lookupFromSquad(detail.Squad)

		if update.Allocation != nil {
			slots, err := s.encodeWithRoster(ctx, *update.Allocation, nameToID)
			if err != nil {
				return match.Record{}, err
			}
			if err := s.backend.SaveLineup(ctx, matchID, fixtureapi.SaveLineupRequest{Slots: slots}); err != nil {
				return match.Record{}, err
			}
		}

		if update.Result != nil {
			resolved, err := s.resolver.Resolve(ctx, resultNames(update.Result), nameToID)
			if err != nil {
				return match.Record{}, err
			}
			encoding, err := codec.EncodeResult(*update.Result, resolved)
			if err != nil {
				return match.Record{}, err
			}
			if err := s.backend.SaveResult(ctx, matchID, resultRequest(encoding)); err != nil {
				return match.Record{}, err
			}
		}
	}

	detail, err := s.backend.FixtureDetail(ctx, matchID)
	if err != nil {
		return match.Record{}, err
	}

	return recordFromDetail(detail), nil
}

// encodeWithRoster encodes allocation slots, falling back to a roster fetch
// for names the fixture squad does not cover.
func (s *RemoteStore) encodeWithRoster(ctx context.Context, allocation match.Allocation, seed map[string]string) ([]match.LineupSlot, error) {
	allocationNames := make([]string, 0, len(allocation.Summary))
	for _, quarter := range allocation.Quarters {
		for _, slot := range quarter.Slots {
			allocationNames = append(allocationNames, slot.Player)
		}
	}

	resolved, err := s.resolver.Resolve(ctx, allocationNames, seed)
	if err != nil {
		return nil, err
	}

	return codec.EncodeSlots(allocation, resolved)
}

// collectNames gathers every display name a save needs to resolve: players,
// allocation slots, and result references.
func collectNames(record match.Record) []string {
	var out []string
	out = append(out, record.Players...)
	for _, quarter := range record.Allocation.Quarters {
		for _, slot := range quarter.Slots {
			out = append(out, slot.Player)
		}
	}
	out = append(out, resultNames(record.Result)...)

	return out
}

func resultNames(result *match.MatchResult) []string {
	if result == nil {
		return nil
	}

	var out []string
	if strings.TrimSpace(result.PlayerOfMatch) != "" {
		out = append(out, result.PlayerOfMatch)
	}
	out = append(out, result.Scorers...)
	out = append(out, result.HonorableMentions...)

	return out
}

func venueOf(record match.Record) string {
	if record.VenueType != "" {
		return string(record.VenueType)
	}
	if record.Result != nil {
		return record.Result.Venue
	}
	return ""
}

// buildSquadRoles assigns STARTER to players with at least one slot and BENCH
// to listed players without any.
func buildSquadRoles(record match.Record, slots []match.LineupSlot, nameToID map[string]string) []fixtureapi.SquadRole {
	starters := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		starters[slot.PlayerID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(record.Players))
	roles := make([]fixtureapi.SquadRole, 0, len(record.Players))

	appendRole := func(playerID string) {
		if playerID == "" {
			return
		}
		if _, ok := seen[playerID]; ok {
			return
		}
		seen[playerID] = struct{}{}

		role := string(match.RoleBench)
		if _, ok := starters[playerID]; ok {
			role = string(match.RoleStarter)
		}
		roles = append(roles, fixtureapi.SquadRole{PlayerID: playerID, Role: role})
	}

	for _, slot := range slots {
		appendRole(slot.PlayerID)
	}
	for _, name := range record.Players {
		appendRole(nameToID[match.NormalizeNameKey(name)])
	}

	return roles
}

func lookupFromSquad(squad []fixtureapi.SquadEntry) map[string]string {
	lookup := make(map[string]string, len(squad))
	for _, member := range squad {
		lookup[member.DisplayName] = member.PlayerID
	}
	return lookup
}

func resultRequest(encoding codec.ResultEncoding) fixtureapi.SaveResultRequest {
	awards := make([]fixtureapi.AwardInput, 0, len(encoding.Awards))
	for _, award := range encoding.Awards {
		awards = append(awards, fixtureapi.AwardInput{
			PlayerID: award.PlayerID,
			Type:     string(award.Type),
			Count:    award.Count,
		})
	}

	return fixtureapi.SaveResultRequest{
		ResultCode:      string(encoding.Code),
		TeamGoals:       encoding.TeamGoals,
		OpponentGoals:   encoding.OpponentGoals,
		PlayerOfMatchID: encoding.PlayerOfMatch,
		Awards:          awards,
	}
}

// recordFromDetail converts a hydrated fixture into the client-facing record
// shape. A result object is built whenever the fixture has a stored result or
// a displayable venue, so even result-less fixtures carry the venue through.
func recordFromDetail(detail fixtureapi.FixtureDetail) match.Record {
	allocation, players := codec.DecodeSlots(detail.Slots, squadMembers(detail.Squad))

	record := match.Record{
		ID:             detail.Fixture.ID,
		Date:           detail.Fixture.FixtureDate,
		Time:           detail.Fixture.KickoffTime,
		Opponent:       detail.Fixture.Opponent,
		Players:        players,
		Allocation:     allocation,
		CreatedBy:      detail.Fixture.CreatedBy,
		CreatedAt:      detail.Fixture.CreatedAt,
		LastModifiedAt: detail.Fixture.UpdatedAt,
		PlayerIDLookup: lookupFromSquad(detail.Squad),
		VenueType:      match.VenueType(detail.Fixture.VenueType),
		Status:         detail.Fixture.Status,
	}

	venue := match.VenueType(detail.Fixture.VenueType)
	if detail.Result != nil || venue.Display() != "" {
		awards := make([]codec.AwardName, 0, len(detail.Awards))
		for _, award := range detail.Awards {
			awards = append(awards, codec.AwardName{
				PlayerName: award.PlayerName,
				Type:       match.AwardType(award.Type),
				Count:      award.Count,
			})
		}

		var (
			code          match.ResultCode
			teamGoals     *int
			opponentGoals *int
			playerOfMatch string
		)
		if detail.Result != nil {
			code = match.ResultCode(detail.Result.ResultCode)
			teamGoals = detail.Result.TeamGoals
			opponentGoals = detail.Result.OpponentGoals
			playerOfMatch = detail.Result.PlayerOfMatchName
		}

		record.Result = codec.DecodeResult(venue, code, teamGoals, opponentGoals, playerOfMatch, awards)
	}

	return record
}

func squadMembers(squad []fixtureapi.SquadEntry) []match.SquadMember {
	members := make([]match.SquadMember, 0, len(squad))
	for _, entry := range squad {
		members = append(members, match.SquadMember{
			PlayerID:    entry.PlayerID,
			DisplayName: entry.DisplayName,
			Role:        match.Role(entry.Role),
			Minutes:     entry.Minutes,
			Positions:   entry.Positions,
		})
	}
	return members
}
