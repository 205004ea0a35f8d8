package httpapi

import (
	"net/http"

	"github.com/grassrootshq/matchday/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := h.teamIDForRequest(r)
	includeRemoved := r.URL.Query().Get("includeRemoved") == "true"

	players, err := h.rosterService.List(ctx, teamID, includeRemoved)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.TeamID == "" {
		req.TeamID = h.defaultTeamID
	}

	created, err := h.rosterService.Create(ctx, usecase.CreatePlayerInput{
		TeamID:             req.TeamID,
		DisplayName:        req.DisplayName,
		SquadNumber:        req.SquadNumber,
		PreferredPositions: req.PreferredPositions,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.Update(ctx, usecase.UpdatePlayerInput{
		PlayerID:           playerID,
		DisplayName:        req.DisplayName,
		SquadNumber:        req.SquadNumber,
		PreferredPositions: req.PreferredPositions,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.rosterService.Remove(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) RestorePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestorePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.rosterService.Restore(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "restore player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "restored"})
}

type createPlayerRequest struct {
	TeamID             string   `json:"teamId"`
	DisplayName        string   `json:"displayName" validate:"required,max=120"`
	SquadNumber        *int     `json:"squadNumber" validate:"omitempty,min=0,max=99"`
	PreferredPositions []string `json:"preferredPositions" validate:"max=3,dive,oneof=GK DEF ATT gk def att"`
}

type updatePlayerRequest struct {
	DisplayName        *string  `json:"displayName" validate:"omitempty,max=120"`
	SquadNumber        *int     `json:"squadNumber" validate:"omitempty,min=0,max=99"`
	PreferredPositions []string `json:"preferredPositions" validate:"omitempty,max=3,dive,oneof=GK DEF ATT gk def att"`
}
