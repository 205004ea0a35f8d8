package codec

import (
	"fmt"
	"strings"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

// AwardEntry is one normalized award bound to a resolved player ID.
type AwardEntry struct {
	PlayerID string
	Type     match.AwardType
	Count    int
}

// AwardName is one award as it comes back from storage, already joined with the
// player's display name.
type AwardName struct {
	PlayerName string
	Type       match.AwardType
	Count      int
}

// ResultEncoding is the normalized form of a free-text match result, ready for
// persistence.
type ResultEncoding struct {
	Code          match.ResultCode
	TeamGoals     *int
	OpponentGoals *int
	PlayerOfMatch string
	Awards        []AwardEntry
}

// EncodeResult normalizes a free-text match result into a result code plus
// award entries. Scorer duplicates collapse into one SCORER award carrying the
// goal count; honorable mentions always carry count 1. Every referenced name
// must resolve or the whole encode fails.
func EncodeResult(result match.MatchResult, nameToID map[string]string) (ResultEncoding, error) {
	encoding := ResultEncoding{
		Code:          match.ParseOutcome(result.Outcome),
		TeamGoals:     result.GoalsFor,
		OpponentGoals: result.GoalsAgainst,
	}

	if name := strings.TrimSpace(result.PlayerOfMatch); name != "" {
		playerID, ok := nameToID[match.NormalizeNameKey(name)]
		if !ok || playerID == "" {
			return ResultEncoding{}, fmt.Errorf("%w: unknown player of the match: %s", ErrUnknownPlayer, name)
		}
		encoding.PlayerOfMatch = playerID
	}

	scorerOrder := make([]string, 0, len(result.Scorers))
	scorerCounts := make(map[string]int, len(result.Scorers))
	scorerNames := make(map[string]string, len(result.Scorers))
	for _, name := range result.Scorers {
		key := match.NormalizeNameKey(name)
		if key == "" {
			continue
		}
		if _, seen := scorerCounts[key]; !seen {
			scorerOrder = append(scorerOrder, key)
			scorerNames[key] = strings.TrimSpace(name)
		}
		scorerCounts[key]++
	}
	for _, key := range scorerOrder {
		playerID, ok := nameToID[key]
		if !ok || playerID == "" {
			return ResultEncoding{}, fmt.Errorf("%w: unknown scorer: %s", ErrUnknownPlayer, scorerNames[key])
		}
		encoding.Awards = append(encoding.Awards, AwardEntry{
			PlayerID: playerID,
			Type:     match.AwardScorer,
			Count:    scorerCounts[key],
		})
	}

	seenMentions := make(map[string]struct{}, len(result.HonorableMentions))
	for _, name := range result.HonorableMentions {
		key := match.NormalizeNameKey(name)
		if key == "" {
			continue
		}
		if _, seen := seenMentions[key]; seen {
			continue
		}
		seenMentions[key] = struct{}{}
		playerID, ok := nameToID[key]
		if !ok || playerID == "" {
			return ResultEncoding{}, fmt.Errorf("%w: unknown honorable mention: %s", ErrUnknownPlayer, name)
		}
		encoding.Awards = append(encoding.Awards, AwardEntry{
			PlayerID: playerID,
			Type:     match.AwardHonorableMention,
			Count:    1,
		})
	}

	return encoding, nil
}

// DecodeResult rebuilds the free-text result shape from stored fields. Goal
// counts pass through only when present; a SCORER award with count N expands
// into N repeated scorer entries.
func DecodeResult(venue match.VenueType, code match.ResultCode, teamGoals, opponentGoals *int, playerOfMatch string, awards []AwardName) *match.MatchResult {
	result := &match.MatchResult{
		Venue:         venue.Display(),
		Outcome:       code.Outcome(),
		GoalsFor:      teamGoals,
		GoalsAgainst:  opponentGoals,
		PlayerOfMatch: playerOfMatch,
	}

	seenMentions := make(map[string]struct{})
	for _, award := range awards {
		switch award.Type {
		case match.AwardScorer:
			count := award.Count
			if count < 1 {
				count = 1
			}
			for i := 0; i < count; i++ {
				result.Scorers = append(result.Scorers, award.PlayerName)
			}
		case match.AwardHonorableMention:
			key := match.NormalizeNameKey(award.PlayerName)
			if _, seen := seenMentions[key]; seen {
				continue
			}
			seenMentions[key] = struct{}{}
			result.HonorableMentions = append(result.HonorableMentions, award.PlayerName)
		}
	}

	return result
}
