package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"log/slog"

	"github.com/grassrootshq/matchday/internal/infrastructure/repository/memory"
	"github.com/grassrootshq/matchday/internal/usecase"
)

const testSessionSecret = "test-secret"

type stubIDGen struct {
	next int
}

func (g *stubIDGen) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%02d", g.next), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	idGen := &stubIDGen{}
	rosterService := usecase.NewRosterService(playerRepo, idGen)
	fixtureService := usecase.NewFixtureService(
		memory.NewFixtureRepository(),
		memory.NewLineupRepository(),
		memory.NewSquadRepository(),
		memory.NewAwardRepository(),
		playerRepo,
		idGen,
	)

	handler := NewHandler(rosterService, fixtureService, memory.SeedTeamID, slog.New(slog.DiscardHandler))
	return NewRouter(handler, testSessionSecret, slog.New(slog.DiscardHandler), false, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testSessionSecret)
	req.Header.Set("X-Actor-Id", "coach-anna")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal %s %s response: %v", method, path, err)
		}
	}

	return rec, envelope
}

func TestRouter_RejectsMissingSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/fixtures", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_FixtureLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/fixtures", `{
		"opponent": "Riverside Rovers",
		"fixtureDate": "2026-03-14",
		"kickoffTime": "09:30",
		"venueType": "away",
		"squad": [
			{"playerId": "pl-01", "role": "STARTER"},
			{"playerId": "pl-04", "role": "BENCH"}
		]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create fixture: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]any)
	fixtureID := data["id"].(string)
	if data["status"] != "DRAFT" {
		t.Fatalf("expected DRAFT fixture, got %v", data["status"])
	}
	if data["venueType"] != "AWAY" {
		t.Fatalf("expected AWAY venue, got %v", data["venueType"])
	}
	if data["createdBy"] != "coach-anna" {
		t.Fatalf("expected actor as creator, got %v", data["createdBy"])
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/v1/fixtures/"+fixtureID+"/lineup", `{
		"slots": [
			{"quarterNumber": 1, "position": "GK", "playerId": "pl-01", "minutes": 10, "wave": "FIRST"},
			{"quarterNumber": 1, "position": "ATT", "playerId": "pl-04", "minutes": 5, "wave": "FIRST"}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save lineup: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/fixtures/"+fixtureID+"/lock", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("lock fixture: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec, envelope = doJSON(t, router, http.MethodPut, "/v1/fixtures/"+fixtureID+"/result", `{
		"resultCode": "WIN",
		"teamGoals": 3,
		"opponentGoals": 1,
		"playerOfMatchId": "pl-04",
		"awards": [
			{"playerId": "pl-04", "type": "SCORER", "count": 2}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save result: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data = envelope["data"].(map[string]any)
	if data["status"] != "FINAL" {
		t.Fatalf("expected FINAL fixture, got %v", data["status"])
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/fixtures/"+fixtureID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fixture detail: expected 200, got %d", rec.Code)
	}
	detail := envelope["data"].(map[string]any)
	result := detail["result"].(map[string]any)
	if result["resultCode"] != "WIN" {
		t.Fatalf("expected WIN result, got %v", result["resultCode"])
	}
	if result["playerOfMatchName"] != "Dylan Walsh" {
		t.Fatalf("expected resolved player of match name, got %v", result["playerOfMatchName"])
	}
	awards := detail["awards"].([]any)
	if len(awards) != 1 {
		t.Fatalf("expected 1 award, got %d", len(awards))
	}
	slots := detail["slots"].([]any)
	gk := slots[0].(map[string]any)
	if gk["wave"] != "FULL" {
		t.Fatalf("goalkeeper slot should normalize to FULL wave, got %v", gk["wave"])
	}
}

func TestRouter_UnknownFixtureReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/fixtures/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errorObj := envelope["error"].(map[string]any)
	if errorObj["status"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND status, got %v", errorObj["status"])
	}
}

func TestRouter_ListPlayersUsesDefaultTeam(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	players := envelope["data"].([]any)
	if len(players) != 8 {
		t.Fatalf("expected seeded roster of 8, got %d", len(players))
	}
}
