package matchstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/platform/blob"
)

func newLocalStore(now time.Time) *LocalStore {
	next := 0
	nextID := func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
	return NewLocalStore(blob.NewMemoryStore(), audit.NewEngine(nextID), nextID, func() time.Time { return now }, "coach")
}

func TestLocalStoreSaveAndList(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store := newLocalStore(now)
	ctx := context.Background()

	saved, err := store.SaveMatch(ctx, match.Record{Opponent: "Rovers", Date: "2026-03-07"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved match should get an id")
	}
	if !saved.CreatedAt.Equal(now) || !saved.LastModifiedAt.Equal(now) {
		t.Errorf("timestamps should pin to now, got %v / %v", saved.CreatedAt, saved.LastModifiedAt)
	}
	if saved.CreatedBy != "coach" {
		t.Errorf("created by should default to the actor, got %q", saved.CreatedBy)
	}

	records, err := store.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(records) != 1 || records[0].Opponent != "Rovers" {
		t.Errorf("unexpected list: %+v", records)
	}
}

func TestLocalStoreListEmpty(t *testing.T) {
	store := newLocalStore(time.Now())

	records, err := store.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fresh storage should list empty, got %d", len(records))
	}
}

func TestLocalStoreUpdateUnknownMatch(t *testing.T) {
	store := newLocalStore(time.Now())

	opponent := "United"
	_, err := store.UpdateMatch(context.Background(), "missing", audit.Update{Opponent: &opponent})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestLocalStoreUpdateRecordsHistory(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store := newLocalStore(now)
	ctx := context.Background()

	saved, err := store.SaveMatch(ctx, match.Record{Opponent: "Rovers", Date: "2026-03-07"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}

	opponent := "United"
	updated, err := store.UpdateMatch(ctx, saved.ID, audit.Update{Opponent: &opponent})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}
	if updated.Opponent != "United" {
		t.Errorf("opponent should change, got %q", updated.Opponent)
	}
	if len(updated.EditHistory) != 1 || updated.EditHistory[0].Field != match.FieldOpponent {
		t.Errorf("expected one opponent edit event, got %+v", updated.EditHistory)
	}

	// The change must survive a reload.
	records, _ := store.ListMatches(ctx)
	if records[0].Opponent != "United" || len(records[0].EditHistory) != 1 {
		t.Errorf("update not persisted: %+v", records[0])
	}
}

func TestLocalStoreUpdateNoChangesDoesNotRewrite(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store := newLocalStore(now)
	ctx := context.Background()

	saved, err := store.SaveMatch(ctx, match.Record{Opponent: "Rovers"})
	if err != nil {
		t.Fatalf("save match: %v", err)
	}

	same := "Rovers"
	updated, err := store.UpdateMatch(ctx, saved.ID, audit.Update{Opponent: &same})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}
	if len(updated.EditHistory) != 0 {
		t.Errorf("no-op update should record nothing, got %+v", updated.EditHistory)
	}
	if !updated.LastModifiedAt.Equal(saved.LastModifiedAt) {
		t.Errorf("no-op update should not bump last modified, got %v", updated.LastModifiedAt)
	}
}

func TestLocalStoreBulkImportSkipsExistingDateOpponent(t *testing.T) {
	store := newLocalStore(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := store.SaveMatch(ctx, match.Record{Opponent: "Rovers", Date: "2026-03-07"}); err != nil {
		t.Fatalf("save match: %v", err)
	}

	added, skipped, err := store.BulkImport(ctx, []match.Record{
		{Opponent: "Rovers", Date: "2026-03-07"},
		{Opponent: "United", Date: "2026-03-14"},
	})
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}
	if added != 1 || skipped != 1 {
		t.Errorf("expected 1 added and 1 skipped, got %d / %d", added, skipped)
	}

	records, _ := store.ListMatches(ctx)
	if len(records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(records))
	}
	if records[1].Opponent != "United" {
		t.Errorf("new opponent should be appended, got %q", records[1].Opponent)
	}
	if records[1].ID == "" {
		t.Error("imported record without id should get one")
	}
}

func TestLocalStoreBulkImportRerunIsNoop(t *testing.T) {
	store := newLocalStore(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	batch := []match.Record{
		{Opponent: "Rovers", Date: "2026-03-07"},
		{Opponent: "United", Date: "2026-03-14"},
	}
	if added, _, err := store.BulkImport(ctx, batch); err != nil || added != 2 {
		t.Fatalf("first import: added=%d err=%v", added, err)
	}

	added, skipped, err := store.BulkImport(ctx, batch)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if added != 0 || skipped != 2 {
		t.Errorf("re-import should skip everything, got %d added / %d skipped", added, skipped)
	}

	records, _ := store.ListMatches(ctx)
	if len(records) != 2 {
		t.Errorf("re-import should not duplicate matches, got %d", len(records))
	}
}
