package fixtureapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grassrootshq/matchday/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:       server.URL,
		SessionSecret: "secret",
		ActorID:       "coach-1",
		ActorRoles:    []string{"coach"},
		Logger:        logging.NewNop(),
	})

	return client, server
}

func TestListPlayersDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/players", r.URL.Path)
		require.Equal(t, "team-1", r.URL.Query().Get("teamId"))
		require.Equal(t, "true", r.URL.Query().Get("includeRemoved"))
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, "coach-1", r.Header.Get("X-Actor-Id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"p-1","teamId":"team-1","displayName":"Alice"}]}`))
	}))

	players, err := client.ListPlayers(context.Background(), "team-1", true)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "p-1", players[0].ID)
	require.Equal(t, "Alice", players[0].DisplayName)
}

func TestCreateFixtureSendsBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/fixtures", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"fx-1","teamId":"team-1","opponent":"Rovers","status":"DRAFT"}}`))
	}))

	summary, err := client.CreateFixture(context.Background(), CreateFixtureRequest{
		TeamID:    "team-1",
		Opponent:  "Rovers",
		VenueType: "HOME",
	})
	require.NoError(t, err)
	require.Equal(t, "fx-1", summary.ID)
	require.Equal(t, "DRAFT", summary.Status)
}

func TestNonRetryableStatusFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"fixture not found"}`, http.StatusNotFound)
	}))

	_, err := client.FixtureDetail(context.Background(), "missing")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnavailable))
	require.Equal(t, int32(1), calls.Load())
}

func TestServerErrorSurfacesAsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ListFixtures(context.Background(), "team-1")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLockFixtureIgnoresEmptyEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/fixtures/fx-1/lock", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.LockFixture(context.Background(), "fx-1"))
}
