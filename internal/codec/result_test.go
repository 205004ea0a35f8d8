package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

func TestEncodeResultGroupsScorers(t *testing.T) {
	goalsFor := 3
	goalsAgainst := 1
	result := match.MatchResult{
		Outcome:           "win",
		GoalsFor:          &goalsFor,
		GoalsAgainst:      &goalsAgainst,
		PlayerOfMatch:     "Alice",
		Scorers:           []string{"Alice", "Alice", "Bob"},
		HonorableMentions: []string{"Carol", "carol"},
	}
	lookup := map[string]string{"alice": "p-1", "bob": "p-2", "carol": "p-3"}

	encoding, err := EncodeResult(result, lookup)
	if err != nil {
		t.Fatalf("encode result: %v", err)
	}
	if encoding.Code != match.ResultWin {
		t.Errorf("expected WIN code, got %s", encoding.Code)
	}
	if encoding.PlayerOfMatch != "p-1" {
		t.Errorf("expected player of match p-1, got %s", encoding.PlayerOfMatch)
	}

	want := []AwardEntry{
		{PlayerID: "p-1", Type: match.AwardScorer, Count: 2},
		{PlayerID: "p-2", Type: match.AwardScorer, Count: 1},
		{PlayerID: "p-3", Type: match.AwardHonorableMention, Count: 1},
	}
	if !reflect.DeepEqual(encoding.Awards, want) {
		t.Errorf("unexpected awards:\n got %+v\nwant %+v", encoding.Awards, want)
	}
}

func TestEncodeResultUnknownNames(t *testing.T) {
	lookup := map[string]string{"alice": "p-1"}

	_, err := EncodeResult(match.MatchResult{Scorers: []string{"Dave"}}, lookup)
	if !errors.Is(err, ErrUnknownPlayer) || !strings.Contains(err.Error(), "unknown scorer: Dave") {
		t.Errorf("expected unknown scorer error, got %v", err)
	}

	_, err = EncodeResult(match.MatchResult{HonorableMentions: []string{"Dave"}}, lookup)
	if !errors.Is(err, ErrUnknownPlayer) || !strings.Contains(err.Error(), "unknown honorable mention: Dave") {
		t.Errorf("expected unknown honorable mention error, got %v", err)
	}

	_, err = EncodeResult(match.MatchResult{PlayerOfMatch: "Dave"}, lookup)
	if !errors.Is(err, ErrUnknownPlayer) || !strings.Contains(err.Error(), "unknown player of the match: Dave") {
		t.Errorf("expected unknown player of the match error, got %v", err)
	}
}

func TestEncodeResultDefaultsToVoid(t *testing.T) {
	encoding, err := EncodeResult(match.MatchResult{Outcome: "rained off"}, nil)
	if err != nil {
		t.Fatalf("encode result: %v", err)
	}
	if encoding.Code != match.ResultVoid {
		t.Errorf("unrecognized outcome should encode as VOID, got %s", encoding.Code)
	}
}

func TestDecodeResultExpandsAwards(t *testing.T) {
	goalsFor := 3
	awards := []AwardName{
		{PlayerName: "Alice", Type: match.AwardScorer, Count: 2},
		{PlayerName: "Bob", Type: match.AwardScorer, Count: 1},
		{PlayerName: "Carol", Type: match.AwardHonorableMention, Count: 1},
		{PlayerName: "Carol", Type: match.AwardHonorableMention, Count: 1},
	}

	result := DecodeResult(match.VenueAway, match.ResultWin, &goalsFor, nil, "Alice", awards)
	if result.Venue != "Away" {
		t.Errorf("expected venue Away, got %q", result.Venue)
	}
	if result.Outcome != "Win" {
		t.Errorf("expected outcome Win, got %q", result.Outcome)
	}
	if result.GoalsFor == nil || *result.GoalsFor != 3 {
		t.Errorf("goalsFor should pass through, got %v", result.GoalsFor)
	}
	if result.GoalsAgainst != nil {
		t.Errorf("absent goalsAgainst should stay absent, got %v", *result.GoalsAgainst)
	}
	if want := []string{"Alice", "Alice", "Bob"}; !reflect.DeepEqual(result.Scorers, want) {
		t.Errorf("scorers should expand by count, got %v", result.Scorers)
	}
	if want := []string{"Carol"}; !reflect.DeepEqual(result.HonorableMentions, want) {
		t.Errorf("honorable mentions should deduplicate, got %v", result.HonorableMentions)
	}
}

func TestHasResultDetails(t *testing.T) {
	var empty match.MatchResult
	if empty.HasDetails() {
		t.Error("empty result should have no details")
	}

	zero := 0
	withZero := match.MatchResult{GoalsFor: &zero}
	if !withZero.HasDetails() {
		t.Error("explicit zero goals should count as detail")
	}
}
