package matchstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/platform/blob"
)

type failingStore struct {
	err error
}

func (f failingStore) SaveMatch(context.Context, match.Record) (match.Record, error) {
	return match.Record{}, f.err
}

func (f failingStore) ListMatches(context.Context) ([]match.Record, error) {
	return nil, f.err
}

func (f failingStore) UpdateMatch(context.Context, string, audit.Update) (match.Record, error) {
	return match.Record{}, f.err
}

type succeedingStore struct {
	record match.Record
}

func (s succeedingStore) SaveMatch(context.Context, match.Record) (match.Record, error) {
	return s.record, nil
}

func (s succeedingStore) ListMatches(context.Context) ([]match.Record, error) {
	return []match.Record{s.record}, nil
}

func (s succeedingStore) UpdateMatch(context.Context, string, audit.Update) (match.Record, error) {
	return s.record, nil
}

func newSelector(remoteEnabled bool, teamID string, remote Store) *Selector {
	next := 0
	nextID := func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
	local := NewLocalStore(blob.NewMemoryStore(), audit.NewEngine(nextID), nextID, time.Now, "coach")

	return NewSelector(SelectorConfig{
		RemoteEnabled: remoteEnabled,
		TeamID:        teamID,
		Remote:        remote,
		Local:         local,
		Logger:        slog.New(slog.DiscardHandler),
	})
}

func TestSelectorLocalModeWhenRemoteDisabled(t *testing.T) {
	selector := newSelector(false, "", nil)

	saved, err := selector.SaveMatch(context.Background(), match.Record{Opponent: "Rovers"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if saved.ID == "" {
		t.Error("local save should assign an id")
	}
	if selector.Mode() != ModeLocal {
		t.Errorf("expected local mode, got %s", selector.Mode())
	}
	if selector.LastError() != nil {
		t.Errorf("local mode should clear last error, got %v", selector.LastError())
	}
}

func TestSelectorRemoteSuccess(t *testing.T) {
	remote := succeedingStore{record: match.Record{ID: "fx-1", Opponent: "Rovers"}}
	selector := newSelector(true, "team-1", remote)

	saved, err := selector.SaveMatch(context.Background(), match.Record{Opponent: "Rovers"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if saved.ID != "fx-1" {
		t.Errorf("remote result should pass through, got %q", saved.ID)
	}
	if selector.Mode() != ModeAPI {
		t.Errorf("expected api mode, got %s", selector.Mode())
	}
	if selector.LastError() != nil {
		t.Errorf("api mode should clear last error, got %v", selector.LastError())
	}
}

func TestSelectorRemoteFailureFallsBack(t *testing.T) {
	remoteErr := errors.New("backend down")
	selector := newSelector(true, "team-1", failingStore{err: remoteErr})
	ctx := context.Background()

	saved, err := selector.SaveMatch(ctx, match.Record{Opponent: "Rovers"})
	if err != nil {
		t.Fatalf("save must not fail when remote is down: %v", err)
	}
	if saved.ID == "" {
		t.Error("fallback save should still assign an id")
	}
	if selector.Mode() != ModeFallback {
		t.Errorf("expected fallback mode, got %s", selector.Mode())
	}
	if !errors.Is(selector.LastError(), remoteErr) {
		t.Errorf("last error should capture the remote failure, got %v", selector.LastError())
	}

	// The fallback write must be readable through the same selector.
	records, err := selector.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected the fallback record, got %d", len(records))
	}
}

func TestSelectorMissingTeamIsConfigurationFallback(t *testing.T) {
	selector := newSelector(true, "", failingStore{err: errors.New("should never be called")})

	// The configuration error is reported before any operation runs.
	if selector.Mode() != ModeFallback {
		t.Errorf("expected fallback mode at construction, got %s", selector.Mode())
	}
	if !errors.Is(selector.LastError(), ErrTeamNotConfigured) {
		t.Errorf("construction should surface the team configuration error, got %v", selector.LastError())
	}

	_, err := selector.SaveMatch(context.Background(), match.Record{Opponent: "Rovers"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if selector.Mode() != ModeFallback {
		t.Errorf("expected fallback mode, got %s", selector.Mode())
	}
	if !errors.Is(selector.LastError(), ErrTeamNotConfigured) {
		t.Errorf("expected team configuration error, got %v", selector.LastError())
	}
}

func TestSelectorRecoversToAPIMode(t *testing.T) {
	remoteErr := errors.New("backend down")
	selector := newSelector(true, "team-1", failingStore{err: remoteErr})

	if _, err := selector.SaveMatch(context.Background(), match.Record{Opponent: "Rovers"}); err != nil {
		t.Fatalf("save match: %v", err)
	}
	if selector.Mode() != ModeFallback {
		t.Fatalf("expected fallback mode, got %s", selector.Mode())
	}

	selector.remote = succeedingStore{record: match.Record{ID: "fx-1"}}
	if _, err := selector.ListMatches(context.Background()); err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if selector.Mode() != ModeAPI {
		t.Errorf("expected api mode after recovery, got %s", selector.Mode())
	}
	if selector.LastError() != nil {
		t.Errorf("recovery should clear last error, got %v", selector.LastError())
	}
}

func TestSelectorBulkImportAlwaysLocal(t *testing.T) {
	remote := succeedingStore{record: match.Record{ID: "fx-1"}}
	selector := newSelector(true, "team-1", remote)

	added, skipped, err := selector.BulkImportMatches(context.Background(), []match.Record{
		{Opponent: "Rovers", Date: "2026-03-07"},
		{Opponent: "United", Date: "2026-03-14"},
	})
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if added != 2 || skipped != 0 {
		t.Errorf("expected 2 added and 0 skipped, got %d / %d", added, skipped)
	}
	if selector.Mode() != ModeFallback {
		t.Errorf("bulk import under remote mode should mark fallback, got %s", selector.Mode())
	}
	if selector.LastError() == nil {
		t.Error("bulk import under remote mode should capture the local-only note")
	}
}

func TestSelectorBulkImportLocalMode(t *testing.T) {
	selector := newSelector(false, "", nil)

	if _, _, err := selector.BulkImportMatches(context.Background(), []match.Record{{Opponent: "Rovers"}}); err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if selector.Mode() != ModeLocal {
		t.Errorf("expected local mode, got %s", selector.Mode())
	}
	if selector.LastError() != nil {
		t.Errorf("local bulk import should not capture an error, got %v", selector.LastError())
	}
}
