package audit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

// Update carries the fields an edit may change. Nil pointers mean "not
// supplied" and are skipped entirely, which is different from supplying an
// empty value.
type Update struct {
	Opponent   *string
	Date       *string
	Time       *string
	Result     *match.MatchResult
	Allocation *match.Allocation
	Players    []string
}

// Engine produces field-level edit events by diffing a match record against a
// proposed update. Event IDs come from the injected generator so tests can pin
// them.
type Engine struct {
	nextID func() string
}

func NewEngine(nextID func() string) *Engine {
	return &Engine{nextID: nextID}
}

// Apply diffs the update against the record and returns the updated record
// together with the edit events it generated. All events share editedAt and
// editedBy. When nothing changed the record comes back untouched, including
// its last-modified timestamp.
func (e *Engine) Apply(record match.Record, update Update, editedBy string, editedAt time.Time) (match.Record, []match.EditEvent, error) {
	var events []match.EditEvent

	appendEvent := func(field match.EditField, previous, next string) {
		events = append(events, match.EditEvent{
			ID:            e.nextID(),
			Field:         field,
			PreviousValue: previous,
			NewValue:      next,
			EditedAt:      editedAt,
			EditedBy:      editedBy,
		})
	}

	if update.Opponent != nil && *update.Opponent != record.Opponent {
		appendEvent(match.FieldOpponent, record.Opponent, *update.Opponent)
		record.Opponent = *update.Opponent
	}
	if update.Date != nil && *update.Date != record.Date {
		appendEvent(match.FieldDate, record.Date, *update.Date)
		record.Date = *update.Date
	}
	if update.Time != nil && *update.Time != record.Time {
		appendEvent(match.FieldTime, record.Time, *update.Time)
		record.Time = *update.Time
	}

	if update.Result != nil {
		previous := record.Result
		if previous == nil {
			previous = &match.MatchResult{}
		}
		next := update.Result

		changed := false
		compare := func(field match.EditField, before, after string) {
			if before == after {
				return
			}
			appendEvent(field, before, after)
			changed = true
		}

		compare(match.FieldResultVenue, previous.Venue, next.Venue)
		compare(match.FieldResultOutcome, previous.Outcome, next.Outcome)
		compare(match.FieldGoalsFor, canonicalInt(previous.GoalsFor), canonicalInt(next.GoalsFor))
		compare(match.FieldGoalsAgainst, canonicalInt(previous.GoalsAgainst), canonicalInt(next.GoalsAgainst))
		compare(match.FieldPlayerOfMatch, previous.PlayerOfMatch, next.PlayerOfMatch)
		compare(match.FieldHonorableMention, canonicalList(previous.HonorableMentions), canonicalList(next.HonorableMentions))
		compare(match.FieldScorers, canonicalList(previous.Scorers), canonicalList(next.Scorers))

		if changed {
			copied := *next
			record.Result = &copied
		}
	}

	if update.Allocation != nil {
		before, err := canonicalAllocation(record.Allocation)
		if err != nil {
			return match.Record{}, nil, err
		}
		after, err := canonicalAllocation(*update.Allocation)
		if err != nil {
			return match.Record{}, nil, err
		}

		if before != after {
			appendEvent(match.FieldAllocation, before, after)
			record.Allocation = *update.Allocation

			if len(update.Players) > 0 {
				record.Players = append([]string(nil), update.Players...)
			} else {
				names := make([]string, 0, len(update.Allocation.Summary))
				for name := range update.Allocation.Summary {
					names = append(names, name)
				}
				sort.Strings(names)
				record.Players = names
			}
		}
	}

	if len(events) == 0 {
		return record, nil, nil
	}

	record.EditHistory = append(record.EditHistory, events...)
	record.LastModifiedAt = editedAt

	return record, events, nil
}

// canonicalInt renders an optional count for comparison. Absence is the empty
// string, never "0".
func canonicalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func canonicalList(values []string) string {
	return strings.Join(values, ", ")
}

func canonicalAllocation(allocation match.Allocation) (string, error) {
	blob, err := sonic.Marshal(allocation)
	if err != nil {
		return "", fmt.Errorf("serialize allocation for diff: %w", err)
	}
	return string(blob), nil
}
