package match

import (
	"strings"
	"time"
)

const (
	StatusDraft  = "DRAFT"
	StatusLocked = "LOCKED"
	StatusFinal  = "FINAL"
)

// VenueType classifies where a fixture is played from the tracked team's view.
type VenueType string

const (
	VenueHome    VenueType = "HOME"
	VenueAway    VenueType = "AWAY"
	VenueNeutral VenueType = "NEUTRAL"
)

// ParseVenue maps free-text venue input to a VenueType. Unrecognized or empty
// input defaults to HOME.
func ParseVenue(value string) VenueType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "away":
		return VenueAway
	case "neutral":
		return VenueNeutral
	default:
		return VenueHome
	}
}

// Display renders the venue for human-facing match results ("Home", "Away").
// Unknown codes fall through as title-cased text.
func (v VenueType) Display() string {
	switch v {
	case VenueHome:
		return "Home"
	case VenueAway:
		return "Away"
	case VenueNeutral:
		return "Neutral"
	default:
		return TitleCase(string(v))
	}
}

// ResultCode is the normalized match outcome. VOID doubles as the placeholder
// for fixtures without a recorded result.
type ResultCode string

const (
	ResultWin       ResultCode = "WIN"
	ResultDraw      ResultCode = "DRAW"
	ResultLoss      ResultCode = "LOSS"
	ResultAbandoned ResultCode = "ABANDONED"
	ResultVoid      ResultCode = "VOID"
)

// ParseOutcome maps free-text outcome input ("win", "Loss") to a ResultCode.
// Anything unrecognized, including empty input, is VOID.
func ParseOutcome(outcome string) ResultCode {
	switch strings.ToLower(strings.TrimSpace(outcome)) {
	case "win":
		return ResultWin
	case "draw":
		return ResultDraw
	case "loss":
		return ResultLoss
	case "abandoned":
		return ResultAbandoned
	default:
		return ResultVoid
	}
}

// Outcome renders the code back to display text ("Win", "Draw"). Unknown codes
// fall through as title-cased text.
func (c ResultCode) Outcome() string {
	switch c {
	case ResultWin:
		return "Win"
	case ResultDraw:
		return "Draw"
	case ResultLoss:
		return "Loss"
	case ResultAbandoned:
		return "Abandoned"
	case ResultVoid:
		return "Void"
	default:
		return TitleCase(string(c))
	}
}

// Position is a lineup slot position category.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionAttacker   Position = "ATT"
)

// Wave marks which half of a quarter a non-goalkeeper slot covers.
type Wave string

const (
	WaveFull   Wave = "FULL"
	WaveFirst  Wave = "FIRST"
	WaveSecond Wave = "SECOND"
)

// NormalizeWave applies the goalkeeper rule: GK slots are always FULL no matter
// what wave was supplied. Other positions keep FIRST/SECOND and default to FULL.
func NormalizeWave(position Position, wave Wave) Wave {
	if position == PositionGoalkeeper {
		return WaveFull
	}
	if wave == WaveFirst || wave == WaveSecond {
		return wave
	}
	return WaveFull
}

// Role is a squad membership role for one fixture.
type Role string

const (
	RoleStarter Role = "STARTER"
	RoleBench   Role = "BENCH"
)

// AwardType is a per-player recognition category for one fixture.
type AwardType string

const (
	AwardScorer           AwardType = "SCORER"
	AwardHonorableMention AwardType = "HONORABLE_MENTION"
	AwardAssist           AwardType = "ASSIST"
)

// EditField tags one audited match field. The set is closed; audit records with
// other tags are never produced.
type EditField string

const (
	FieldOpponent         EditField = "opponent"
	FieldDate             EditField = "date"
	FieldTime             EditField = "time"
	FieldResultVenue      EditField = "result.venue"
	FieldResultOutcome    EditField = "result.result"
	FieldGoalsFor         EditField = "result.goalsFor"
	FieldGoalsAgainst     EditField = "result.goalsAgainst"
	FieldPlayerOfMatch    EditField = "result.playerOfMatch"
	FieldHonorableMention EditField = "result.honorableMentions"
	FieldScorers          EditField = "result.scorers"
	FieldAllocation       EditField = "allocation"
)

// Slot is one player's appearance inside a quarter of the allocation blob.
// Wave is "first", "second", or empty for a full quarter.
type Slot struct {
	Player         string   `json:"player"`
	Position       Position `json:"position"`
	Minutes        int      `json:"minutes"`
	Wave           string   `json:"wave,omitempty"`
	IsSubstitution bool     `json:"isSubstitution,omitempty"`
}

// Quarter groups the slots played during one quarter of the match.
type Quarter struct {
	Quarter int    `json:"quarter"`
	Slots   []Slot `json:"slots"`
}

// Allocation is the quarter-by-quarter lineup plan. Summary and Warnings are
// derived from the quarters, never authored independently.
type Allocation struct {
	Quarters []Quarter      `json:"quarters"`
	Summary  map[string]int `json:"summary"`
	Warnings []string       `json:"warnings"`
}

// MatchResult is the free-text result a coach records against a fixture.
// Nil goal pointers mean "not recorded", which is distinct from zero.
type MatchResult struct {
	Venue             string   `json:"venue,omitempty"`
	Outcome           string   `json:"result,omitempty"`
	GoalsFor          *int     `json:"goalsFor,omitempty"`
	GoalsAgainst      *int     `json:"goalsAgainst,omitempty"`
	PlayerOfMatch     string   `json:"playerOfMatch,omitempty"`
	HonorableMentions []string `json:"honorableMentions,omitempty"`
	Scorers           []string `json:"scorers,omitempty"`
}

// HasDetails reports whether the result carries anything worth persisting as a
// real result. An explicit zero goal count counts as detail; absence does not.
func (r *MatchResult) HasDetails() bool {
	if r == nil {
		return false
	}
	if strings.TrimSpace(r.Outcome) != "" {
		return true
	}
	if r.GoalsFor != nil || r.GoalsAgainst != nil {
		return true
	}
	if strings.TrimSpace(r.PlayerOfMatch) != "" {
		return true
	}
	return len(r.Scorers) > 0 || len(r.HonorableMentions) > 0
}

// EditEvent is one immutable field-level audit entry on a match record.
type EditEvent struct {
	ID            string    `json:"id"`
	Field         EditField `json:"field"`
	PreviousValue string    `json:"previousValue"`
	NewValue      string    `json:"newValue"`
	EditedAt      time.Time `json:"editedAt"`
	EditedBy      string    `json:"editedBy"`
}

// Record is the client-facing match record shape: a fixture together with its
// allocation, result, and locally kept edit history.
type Record struct {
	ID             string       `json:"id"`
	Date           string       `json:"date"`
	Time           string       `json:"time,omitempty"`
	Opponent       string       `json:"opponent"`
	Players        []string     `json:"players"`
	Allocation     Allocation   `json:"allocation"`
	Result         *MatchResult `json:"result"`
	CreatedBy      string       `json:"createdBy,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	LastModifiedAt time.Time    `json:"lastModifiedAt"`
	EditHistory    []EditEvent  `json:"editHistory,omitempty"`

	// Metadata carried back from the remote backend; empty in local mode.
	PlayerIDLookup map[string]string `json:"playerIdLookup,omitempty"`
	VenueType      VenueType         `json:"venueType,omitempty"`
	Status         string            `json:"status,omitempty"`
}

// Fixture is the server-side match row. Lineup slots, squad membership, and
// awards live in their own tables.
type Fixture struct {
	ID          string
	TeamID      string
	Opponent    string
	FixtureDate time.Time
	KickoffTime string
	Venue       VenueType
	Status      string
	Result      *StoredResult
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoredResult is the normalized result kept on the fixture row. Display
// names are resolved back from player IDs on read.
type StoredResult struct {
	Code            ResultCode
	TeamGoals       *int
	OpponentGoals   *int
	PlayerOfMatchID string
}

// SquadMember links a fixture to a rostered player. Minutes and Positions are
// re-derived wholesale from the lineup slots on every lineup save.
type SquadMember struct {
	ID          string
	FixtureID   string
	PlayerID    string
	DisplayName string
	Role        Role
	Minutes     int
	Positions   []string
	RemovedAt   *time.Time
}

// Award is one per-player recognition row. SCORER awards carry the goal count;
// all other types carry count 1.
type Award struct {
	ID        string
	FixtureID string
	PlayerID  string
	Type      AwardType
	Count     int
}

// LineupSlot is the normalized wire shape of one allocation slot.
type LineupSlot struct {
	QuarterNumber  int      `json:"quarterNumber"`
	Wave           Wave     `json:"wave"`
	Position       Position `json:"position"`
	PlayerID       string   `json:"playerId"`
	PlayerName     string   `json:"playerName,omitempty"`
	Minutes        int      `json:"minutes"`
	IsSubstitution bool     `json:"isSubstitution"`
}

// NormalizeNameKey is the comparison key for player display names: matching is
// case-insensitive, display casing is preserved elsewhere.
func NormalizeNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(value string) string {
	words := strings.Fields(strings.TrimSpace(value))
	for i, word := range words {
		if len(word) == 0 {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
