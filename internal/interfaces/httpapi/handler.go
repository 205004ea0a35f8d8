package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/domain/player"
	"github.com/grassrootshq/matchday/internal/usecase"
)

const fixtureDateLayout = "2006-01-02"

type Handler struct {
	rosterService  *usecase.RosterService
	fixtureService *usecase.FixtureService
	defaultTeamID  string
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	fixtureService *usecase.FixtureService,
	defaultTeamID string,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:  rosterService,
		fixtureService: fixtureService,
		defaultTeamID:  defaultTeamID,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// teamIDForRequest resolves the teamId query parameter, falling back to the
// configured default team for single-team deployments.
func (h *Handler) teamIDForRequest(r *http.Request) string {
	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		teamID = h.defaultTeamID
	}
	return teamID
}

type playerDTO struct {
	ID                 string     `json:"id"`
	TeamID             string     `json:"teamId"`
	DisplayName        string     `json:"displayName"`
	SquadNumber        *int       `json:"squadNumber,omitempty"`
	PreferredPositions []string   `json:"preferredPositions,omitempty"`
	RemovedAt          *time.Time `json:"removedAt,omitempty"`
}

type fixtureDTO struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"teamId"`
	Opponent    string    `json:"opponent"`
	FixtureDate string    `json:"fixtureDate"`
	KickoffTime string    `json:"kickoffTime,omitempty"`
	VenueType   string    `json:"venueType"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type squadEntryDTO struct {
	PlayerID    string   `json:"playerId"`
	DisplayName string   `json:"displayName"`
	Role        string   `json:"role"`
	Minutes     int      `json:"minutes"`
	Positions   []string `json:"positions,omitempty"`
}

type resultDTO struct {
	ResultCode        string `json:"resultCode"`
	TeamGoals         *int   `json:"teamGoals,omitempty"`
	OpponentGoals     *int   `json:"opponentGoals,omitempty"`
	PlayerOfMatchID   string `json:"playerOfMatchId,omitempty"`
	PlayerOfMatchName string `json:"playerOfMatchName,omitempty"`
}

type awardDTO struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Type       string `json:"type"`
	Count      int    `json:"count"`
}

type fixtureDetailDTO struct {
	Fixture fixtureDTO         `json:"fixture"`
	Squad   []squadEntryDTO    `json:"squad"`
	Slots   []match.LineupSlot `json:"slots"`
	Result  *resultDTO         `json:"result,omitempty"`
	Awards  []awardDTO         `json:"awards,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:                 v.ID,
		TeamID:             v.TeamID,
		DisplayName:        v.DisplayName,
		SquadNumber:        v.SquadNumber,
		PreferredPositions: v.PreferredPositions,
		RemovedAt:          v.RemovedAt,
	}
}

func fixtureToDTO(v match.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          v.ID,
		TeamID:      v.TeamID,
		Opponent:    v.Opponent,
		FixtureDate: v.FixtureDate.Format(fixtureDateLayout),
		KickoffTime: v.KickoffTime,
		VenueType:   string(v.Venue),
		Status:      v.Status,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt.UTC(),
		UpdatedAt:   v.UpdatedAt.UTC(),
	}
}

func detailToDTO(view usecase.FixtureDetailView) fixtureDetailDTO {
	squad := make([]squadEntryDTO, 0, len(view.Squad))
	for _, member := range view.Squad {
		squad = append(squad, squadEntryDTO{
			PlayerID:    member.PlayerID,
			DisplayName: member.DisplayName,
			Role:        string(member.Role),
			Minutes:     member.Minutes,
			Positions:   member.Positions,
		})
	}

	awards := make([]awardDTO, 0, len(view.Awards))
	for _, award := range view.Awards {
		awards = append(awards, awardDTO{
			PlayerID:   award.PlayerID,
			PlayerName: award.PlayerName,
			Type:       string(award.Type),
			Count:      award.Count,
		})
	}

	out := fixtureDetailDTO{
		Fixture: fixtureToDTO(view.Fixture),
		Squad:   squad,
		Slots:   view.Slots,
		Awards:  awards,
	}
	if view.Fixture.Result != nil {
		stored := view.Fixture.Result
		out.Result = &resultDTO{
			ResultCode:        string(stored.Code),
			TeamGoals:         stored.TeamGoals,
			OpponentGoals:     stored.OpponentGoals,
			PlayerOfMatchID:   stored.PlayerOfMatchID,
			PlayerOfMatchName: playerNameFromSquad(view.Squad, stored.PlayerOfMatchID),
		}
	}

	return out
}

func playerNameFromSquad(squad []match.SquadMember, playerID string) string {
	if playerID == "" {
		return ""
	}
	for _, member := range squad {
		if member.PlayerID == playerID {
			return member.DisplayName
		}
	}
	return ""
}
