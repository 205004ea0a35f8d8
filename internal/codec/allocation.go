package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

// ErrUnknownPlayer is returned when an encode step meets a display name with no
// entry in the resolved name lookup.
var ErrUnknownPlayer = errors.New("unknown player")

const (
	waveFirstDisplay  = "first"
	waveSecondDisplay = "second"
)

// EncodeSlots flattens a quarter-by-quarter allocation into normalized lineup
// slots. Every slot player must resolve through nameToID; waves are normalized
// with the goalkeeper rule before they leave this function.
func EncodeSlots(allocation match.Allocation, nameToID map[string]string) ([]match.LineupSlot, error) {
	var slots []match.LineupSlot
	for _, quarter := range allocation.Quarters {
		for _, slot := range quarter.Slots {
			playerID, ok := nameToID[match.NormalizeNameKey(slot.Player)]
			if !ok || playerID == "" {
				return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, slot.Player)
			}
			slots = append(slots, match.LineupSlot{
				QuarterNumber:  quarter.Quarter,
				Wave:           match.NormalizeWave(slot.Position, parseWave(slot.Wave)),
				Position:       slot.Position,
				PlayerID:       playerID,
				PlayerName:     slot.Player,
				Minutes:        slot.Minutes,
				IsSubstitution: slot.IsSubstitution,
			})
		}
	}

	return slots, nil
}

// DecodeSlots rebuilds the quarter-grouped allocation from normalized lineup
// slots and derives the per-player minutes summary. The returned player list is
// the union of squad member names and summary keys, sorted by display name.
func DecodeSlots(slots []match.LineupSlot, squad []match.SquadMember) (match.Allocation, []string) {
	byQuarter := make(map[int][]match.Slot)
	minutesByKey := make(map[string]int)
	displayNames := make(map[string]string)

	for _, slot := range slots {
		name := slot.PlayerName
		if name == "" {
			name = slot.PlayerID
		}
		byQuarter[slot.QuarterNumber] = append(byQuarter[slot.QuarterNumber], match.Slot{
			Player:         name,
			Position:       slot.Position,
			Minutes:        slot.Minutes,
			Wave:           displayWave(slot.Wave),
			IsSubstitution: slot.IsSubstitution,
		})

		// First casing seen wins as the display key for the summary.
		key := match.NormalizeNameKey(name)
		if _, ok := displayNames[key]; !ok {
			displayNames[key] = name
		}
		minutesByKey[key] += slot.Minutes
	}

	summary := make(map[string]int, len(minutesByKey))
	for key, minutes := range minutesByKey {
		summary[displayNames[key]] = minutes
	}

	numbers := make([]int, 0, len(byQuarter))
	for number := range byQuarter {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	quarters := make([]match.Quarter, 0, len(numbers))
	for _, number := range numbers {
		quarters = append(quarters, match.Quarter{Quarter: number, Slots: byQuarter[number]})
	}

	players := make(map[string]string, len(squad)+len(summary))
	for _, member := range squad {
		if member.DisplayName == "" {
			continue
		}
		players[match.NormalizeNameKey(member.DisplayName)] = member.DisplayName
	}
	for name := range summary {
		key := match.NormalizeNameKey(name)
		if _, ok := players[key]; !ok {
			players[key] = name
		}
	}

	names := make([]string, 0, len(players))
	for _, name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	return match.Allocation{Quarters: quarters, Summary: summary}, names
}

// SquadAggregates re-derives per-player totals from the full slot set. Minutes
// are summed and positions are the distinct set in first-appearance order. The
// result replaces whatever was stored before, it is never merged.
func SquadAggregates(slots []match.LineupSlot) map[string]match.SquadAggregate {
	aggregates := make(map[string]match.SquadAggregate)
	for _, slot := range slots {
		aggregate := aggregates[slot.PlayerID]
		aggregate.Minutes += slot.Minutes
		if !containsPosition(aggregate.Positions, string(slot.Position)) {
			aggregate.Positions = append(aggregate.Positions, string(slot.Position))
		}
		aggregates[slot.PlayerID] = aggregate
	}

	return aggregates
}

func parseWave(wave string) match.Wave {
	switch wave {
	case waveFirstDisplay:
		return match.WaveFirst
	case waveSecondDisplay:
		return match.WaveSecond
	default:
		return match.WaveFull
	}
}

func displayWave(wave match.Wave) string {
	switch wave {
	case match.WaveFirst:
		return waveFirstDisplay
	case match.WaveSecond:
		return waveSecondDisplay
	default:
		return ""
	}
}

func containsPosition(positions []string, position string) bool {
	for _, existing := range positions {
		if existing == position {
			return true
		}
	}
	return false
}
