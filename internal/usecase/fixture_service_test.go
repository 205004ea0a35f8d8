package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/infrastructure/repository/memory"
)

type sequenceIDGen struct {
	next int
}

func (g *sequenceIDGen) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("gen-%d", g.next), nil
}

func newFixtureService() (*FixtureService, *memory.FixtureRepository) {
	fixtureRepo := memory.NewFixtureRepository()
	service := NewFixtureService(
		fixtureRepo,
		memory.NewLineupRepository(),
		memory.NewSquadRepository(),
		memory.NewAwardRepository(),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		&sequenceIDGen{},
	)
	service.now = func() time.Time { return time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC) }

	return service, fixtureRepo
}

func createDraftFixture(t *testing.T, service *FixtureService) match.Fixture {
	t.Helper()

	fixture, err := service.Create(context.Background(), CreateFixtureInput{
		TeamID:      memory.SeedTeamID,
		Opponent:    "Rovers",
		FixtureDate: "2026-03-07",
		KickoffTime: "10:00",
		VenueType:   "home",
		ActorID:     "coach-1",
		Squad: []SquadRoleInput{
			{PlayerID: "pl-01", Role: "STARTER"},
			{PlayerID: "pl-02", Role: "BENCH"},
		},
	})
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	return fixture
}

func TestFixtureService_CreateValidatesInput(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()

	_, err := service.Create(ctx, CreateFixtureInput{Opponent: "Rovers", FixtureDate: "2026-03-07"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing team should be invalid, got %v", err)
	}

	_, err = service.Create(ctx, CreateFixtureInput{TeamID: memory.SeedTeamID, Opponent: "Rovers", FixtureDate: "07/03/2026"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date should be invalid, got %v", err)
	}

	_, err = service.Create(ctx, CreateFixtureInput{
		TeamID: memory.SeedTeamID, Opponent: "Rovers", FixtureDate: "2026-03-07",
		Squad: []SquadRoleInput{{PlayerID: "ghost"}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown squad player should be not found, got %v", err)
	}
}

func TestFixtureService_CreateStartsAsDraft(t *testing.T) {
	service, _ := newFixtureService()

	fixture := createDraftFixture(t, service)
	if fixture.Status != match.StatusDraft {
		t.Errorf("new fixture should be DRAFT, got %s", fixture.Status)
	}
	if fixture.Venue != match.VenueHome {
		t.Errorf("venue should parse to HOME, got %s", fixture.Venue)
	}

	detail, err := service.Detail(context.Background(), fixture.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.Squad) != 2 {
		t.Fatalf("expected 2 squad members, got %d", len(detail.Squad))
	}
	if detail.Squad[0].DisplayName != "Ava Thompson" {
		t.Errorf("squad member should carry display name, got %q", detail.Squad[0].DisplayName)
	}
	if detail.Squad[1].Role != match.RoleBench {
		t.Errorf("bench role should persist, got %s", detail.Squad[1].Role)
	}
}

func TestFixtureService_SaveLineupDerivesAggregates(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	slots := []match.LineupSlot{
		{QuarterNumber: 1, Position: match.PositionGoalkeeper, PlayerID: "pl-01", Wave: match.WaveFirst, Minutes: 10},
		{QuarterNumber: 1, Position: match.PositionDefender, PlayerID: "pl-03", Minutes: 10},
		{QuarterNumber: 2, Position: match.PositionAttacker, PlayerID: "pl-03", Minutes: 10},
	}
	if err := service.SaveLineup(ctx, SaveFixtureLineupInput{FixtureID: fixture.ID, Slots: slots}); err != nil {
		t.Fatalf("save lineup: %v", err)
	}

	detail, err := service.Detail(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Slots[0].Wave != match.WaveFull {
		t.Errorf("goalkeeper wave should normalize to FULL, got %s", detail.Slots[0].Wave)
	}

	byPlayer := make(map[string]match.SquadMember)
	for _, member := range detail.Squad {
		byPlayer[member.PlayerID] = member
	}
	if byPlayer["pl-03"].Minutes != 20 {
		t.Errorf("pl-03 should total 20 minutes, got %d", byPlayer["pl-03"].Minutes)
	}
	if got := byPlayer["pl-03"].Positions; len(got) != 2 || got[0] != "DEF" || got[1] != "ATT" {
		t.Errorf("pl-03 positions should be distinct in order, got %v", got)
	}
	if byPlayer["pl-03"].Role != match.RoleStarter {
		t.Errorf("slot player should join as STARTER, got %s", byPlayer["pl-03"].Role)
	}
	if byPlayer["pl-02"].Minutes != 0 {
		t.Errorf("benched member without slots should zero out, got %d", byPlayer["pl-02"].Minutes)
	}

	// Saving identical slots again must not double the totals.
	if err := service.SaveLineup(ctx, SaveFixtureLineupInput{FixtureID: fixture.ID, Slots: slots}); err != nil {
		t.Fatalf("save lineup again: %v", err)
	}
	detail, _ = service.Detail(ctx, fixture.ID)
	for _, member := range detail.Squad {
		if member.PlayerID == "pl-03" && member.Minutes != 20 {
			t.Errorf("repeated save should keep 20 minutes, got %d", member.Minutes)
		}
	}
}

func TestFixtureService_SaveLineupRejectsBadSlots(t *testing.T) {
	service, _ := newFixtureService()
	fixture := createDraftFixture(t, service)
	ctx := context.Background()

	err := service.SaveLineup(ctx, SaveFixtureLineupInput{
		FixtureID: fixture.ID,
		Slots:     []match.LineupSlot{{QuarterNumber: 0, Position: match.PositionDefender, PlayerID: "pl-02", Minutes: 10}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("quarter zero should be invalid, got %v", err)
	}

	err = service.SaveLineup(ctx, SaveFixtureLineupInput{
		FixtureID: fixture.ID,
		Slots:     []match.LineupSlot{{QuarterNumber: 1, Position: "MID", PlayerID: "pl-02", Minutes: 10}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown position should be invalid, got %v", err)
	}

	err = service.SaveLineup(ctx, SaveFixtureLineupInput{
		FixtureID: fixture.ID,
		Slots:     []match.LineupSlot{{QuarterNumber: 1, Position: match.PositionDefender, PlayerID: "ghost", Minutes: 10}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown slot player should be not found, got %v", err)
	}
}

func TestFixtureService_LockTransitions(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	locked, err := service.Lock(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if locked.Status != match.StatusLocked {
		t.Errorf("expected LOCKED, got %s", locked.Status)
	}

	// Locking again is a no-op.
	again, err := service.Lock(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("lock again: %v", err)
	}
	if again.Status != match.StatusLocked {
		t.Errorf("expected LOCKED, got %s", again.Status)
	}

	goals := 1
	if _, err := service.SaveResult(ctx, SaveFixtureResultInput{FixtureID: fixture.ID, ResultCode: "WIN", TeamGoals: &goals}); err != nil {
		t.Fatalf("save result: %v", err)
	}
	if _, err := service.Lock(ctx, fixture.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("locking a finalized fixture should fail, got %v", err)
	}
}

func TestFixtureService_SaveResultFinalizes(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	goalsFor := 3
	goalsAgainst := 1
	updated, err := service.SaveResult(ctx, SaveFixtureResultInput{
		FixtureID:       fixture.ID,
		ResultCode:      "win",
		TeamGoals:       &goalsFor,
		OpponentGoals:   &goalsAgainst,
		PlayerOfMatchID: "pl-04",
		Awards: []FixtureAwardInput{
			{PlayerID: "pl-04", Type: "SCORER", Count: 2},
			{PlayerID: "pl-05", Type: "SCORER", Count: 1},
			{PlayerID: "pl-02", Type: "HONORABLE_MENTION"},
		},
	})
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if updated.Status != match.StatusFinal {
		t.Errorf("result save should finalize, got %s", updated.Status)
	}
	if updated.Result == nil || updated.Result.Code != match.ResultWin {
		t.Errorf("unexpected stored result: %+v", updated.Result)
	}

	detail, _ := service.Detail(ctx, fixture.ID)
	if len(detail.Awards) != 3 {
		t.Fatalf("expected 3 awards, got %d", len(detail.Awards))
	}
	if detail.Awards[0].Count != 2 || detail.Awards[0].PlayerName != "Dylan Walsh" {
		t.Errorf("unexpected first award: %+v", detail.Awards[0])
	}
	if detail.Awards[2].Count != 1 {
		t.Errorf("mention count should default to 1, got %d", detail.Awards[2].Count)
	}
}

func TestFixtureService_SaveResultSkipsUnknownAwardPlayers(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	goals := 2
	_, err := service.SaveResult(ctx, SaveFixtureResultInput{
		FixtureID:  fixture.ID,
		ResultCode: "WIN",
		TeamGoals:  &goals,
		Awards: []FixtureAwardInput{
			{PlayerID: "pl-04", Type: "SCORER", Count: 2},
			{PlayerID: "ghost", Type: "SCORER", Count: 1},
		},
	})
	if err != nil {
		t.Fatalf("save result: %v", err)
	}

	detail, _ := service.Detail(ctx, fixture.ID)
	if len(detail.Awards) != 1 || detail.Awards[0].PlayerID != "pl-04" {
		t.Errorf("unknown award player should be skipped, got %+v", detail.Awards)
	}
}

func TestFixtureService_SaveResultVoidClears(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	goals := 1
	if _, err := service.SaveResult(ctx, SaveFixtureResultInput{FixtureID: fixture.ID, ResultCode: "WIN", TeamGoals: &goals}); err != nil {
		t.Fatalf("save result: %v", err)
	}

	cleared, err := service.SaveResult(ctx, SaveFixtureResultInput{FixtureID: fixture.ID, ResultCode: "VOID"})
	if err != nil {
		t.Fatalf("clear result: %v", err)
	}
	if cleared.Result != nil {
		t.Errorf("VOID without detail should clear the result, got %+v", cleared.Result)
	}
	if cleared.Status != match.StatusLocked {
		t.Errorf("clearing should drop back to LOCKED, got %s", cleared.Status)
	}

	detail, _ := service.Detail(ctx, fixture.ID)
	if len(detail.Awards) != 0 {
		t.Errorf("clearing should drop awards, got %+v", detail.Awards)
	}
}

func TestFixtureService_SaveResultVoidClearsDespiteDetails(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	goals := 0
	cleared, err := service.SaveResult(ctx, SaveFixtureResultInput{
		FixtureID:       fixture.ID,
		ResultCode:      "VOID",
		TeamGoals:       &goals,
		PlayerOfMatchID: "pl-04",
		Awards:          []FixtureAwardInput{{PlayerID: "pl-04", Type: "SCORER", Count: 1}},
	})
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if cleared.Result != nil {
		t.Errorf("VOID should clear the result even with goals and awards, got %+v", cleared.Result)
	}
	if cleared.Status != match.StatusLocked {
		t.Errorf("VOID should leave the fixture LOCKED, got %s", cleared.Status)
	}

	detail, _ := service.Detail(ctx, fixture.ID)
	if len(detail.Awards) != 0 {
		t.Errorf("VOID should drop accompanying awards, got %+v", detail.Awards)
	}
}

func TestFixtureService_PatchMetadata(t *testing.T) {
	service, _ := newFixtureService()
	ctx := context.Background()
	fixture := createDraftFixture(t, service)

	opponent := "United"
	venue := "away"
	patched, err := service.PatchMetadata(ctx, PatchFixtureInput{
		FixtureID: fixture.ID,
		Opponent:  &opponent,
		VenueType: &venue,
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Opponent != "United" || patched.Venue != match.VenueAway {
		t.Errorf("patch not applied: %+v", patched)
	}

	stored, _, _ := service.fixtureRepo.GetByID(ctx, fixture.ID)
	if stored.Opponent != "United" {
		t.Errorf("patch not persisted, got %q", stored.Opponent)
	}

	_, err = service.PatchMetadata(ctx, PatchFixtureInput{FixtureID: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown fixture should be not found, got %v", err)
	}
}
