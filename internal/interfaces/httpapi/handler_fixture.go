package httpapi

import (
	"fmt"
	"net/http"

	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/usecase"
)

func (h *Handler) CreateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFixture")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createFixtureRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.TeamID == "" {
		req.TeamID = h.defaultTeamID
	}

	squad := make([]usecase.SquadRoleInput, 0, len(req.Squad))
	for _, entry := range req.Squad {
		squad = append(squad, usecase.SquadRoleInput{PlayerID: entry.PlayerID, Role: entry.Role})
	}

	fixture, err := h.fixtureService.Create(ctx, usecase.CreateFixtureInput{
		TeamID:      req.TeamID,
		Opponent:    req.Opponent,
		FixtureDate: req.FixtureDate,
		KickoffTime: req.KickoffTime,
		VenueType:   req.VenueType,
		ActorID:     principal.ActorID,
		Squad:       squad,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create fixture failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(fixture))
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	teamID := h.teamIDForRequest(r)
	fixtures, err := h.fixtureService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, fixture := range fixtures {
		items = append(items, fixtureToDTO(fixture))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFixtureDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtureDetail")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	view, err := h.fixtureService.Detail(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture detail failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detailToDTO(view))
}

func (h *Handler) PatchFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PatchFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req patchFixtureRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fixture, err := h.fixtureService.PatchMetadata(ctx, usecase.PatchFixtureInput{
		FixtureID:   fixtureID,
		Opponent:    req.Opponent,
		FixtureDate: req.FixtureDate,
		VenueType:   req.VenueType,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "patch fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(fixture))
}

func (h *Handler) SaveFixtureLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFixtureLineup")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.fixtureService.SaveLineup(ctx, usecase.SaveFixtureLineupInput{
		FixtureID: fixtureID,
		Slots:     req.Slots,
	}); err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) LockFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockFixture")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	fixture, err := h.fixtureService.Lock(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "lock fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(fixture))
}

func (h *Handler) SaveFixtureResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFixtureResult")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")
	var req saveResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	awards := make([]usecase.FixtureAwardInput, 0, len(req.Awards))
	for _, entry := range req.Awards {
		awards = append(awards, usecase.FixtureAwardInput{
			PlayerID: entry.PlayerID,
			Type:     entry.Type,
			Count:    entry.Count,
		})
	}

	fixture, err := h.fixtureService.SaveResult(ctx, usecase.SaveFixtureResultInput{
		FixtureID:       fixtureID,
		ResultCode:      req.ResultCode,
		TeamGoals:       req.TeamGoals,
		OpponentGoals:   req.OpponentGoals,
		PlayerOfMatchID: req.PlayerOfMatchID,
		Awards:          awards,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save result failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(fixture))
}

type squadRoleRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=STARTER BENCH starter bench"`
}

type createFixtureRequest struct {
	TeamID      string             `json:"teamId"`
	Opponent    string             `json:"opponent" validate:"required,max=200"`
	FixtureDate string             `json:"fixtureDate" validate:"required"`
	KickoffTime string             `json:"kickoffTime" validate:"omitempty,max=20"`
	VenueType   string             `json:"venueType" validate:"omitempty,max=20"`
	Squad       []squadRoleRequest `json:"squad" validate:"dive"`
}

type patchFixtureRequest struct {
	Opponent    *string `json:"opponent" validate:"omitempty,max=200"`
	FixtureDate *string `json:"fixtureDate"`
	VenueType   *string `json:"venueType" validate:"omitempty,max=20"`
}

type saveLineupRequest struct {
	Slots []match.LineupSlot `json:"slots"`
}

type awardRequest struct {
	PlayerID string `json:"playerId"`
	Type     string `json:"type" validate:"required"`
	Count    int    `json:"count" validate:"min=0"`
}

type saveResultRequest struct {
	ResultCode      string         `json:"resultCode"`
	TeamGoals       *int           `json:"teamGoals" validate:"omitempty,min=0"`
	OpponentGoals   *int           `json:"opponentGoals" validate:"omitempty,min=0"`
	PlayerOfMatchID string         `json:"playerOfMatchId"`
	Awards          []awardRequest `json:"awards" validate:"dive"`
}
