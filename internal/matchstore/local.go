package matchstore

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/domain/match"
	"github.com/grassrootshq/matchday/internal/platform/blob"
)

const matchesBlobKey = "matches"

// LocalStore keeps the full match list as one JSON blob in keyed storage. It
// serves as the fallback when the remote backend is unavailable and as the
// primary store when remote mode is disabled.
type LocalStore struct {
	blobs  blob.Store
	engine *audit.Engine
	nextID func() string
	now    func() time.Time
	actor  string
}

func NewLocalStore(blobs blob.Store, engine *audit.Engine, nextID func() string, now func() time.Time, actor string) *LocalStore {
	if now == nil {
		now = time.Now
	}

	return &LocalStore{
		blobs:  blobs,
		engine: engine,
		nextID: nextID,
		now:    now,
		actor:  actor,
	}
}

func (s *LocalStore) SaveMatch(ctx context.Context, record match.Record) (match.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return match.Record{}, err
	}

	now := s.now()
	if record.ID == "" {
		record.ID = s.nextID()
	}
	if record.CreatedBy == "" {
		record.CreatedBy = s.actor
	}
	record.CreatedAt = now
	record.LastModifiedAt = now

	records = append(records, record)
	if err := s.persist(ctx, records); err != nil {
		return match.Record{}, err
	}

	return record, nil
}

func (s *LocalStore) ListMatches(ctx context.Context) ([]match.Record, error) {
	return s.load(ctx)
}

// UpdateMatch diffs the update against the stored record. When the diff yields
// no edit events the stored record comes back untouched and nothing is
// rewritten.
func (s *LocalStore) UpdateMatch(ctx context.Context, matchID string, update audit.Update) (match.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return match.Record{}, err
	}

	index := -1
	for i := range records {
		if records[i].ID == matchID {
			index = i
			break
		}
	}
	if index < 0 {
		return match.Record{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	updated, events, err := s.engine.Apply(records[index], update, s.actor, s.now())
	if err != nil {
		return match.Record{}, err
	}
	if len(events) == 0 {
		return records[index], nil
	}

	records[index] = updated
	if err := s.persist(ctx, records); err != nil {
		return match.Record{}, err
	}

	return updated, nil
}

// BulkImport appends records to local storage, skipping any whose date and
// opponent pair already exists. Re-running the same import is therefore a
// no-op. Returns how many records were added and how many were skipped.
func (s *LocalStore) BulkImport(ctx context.Context, records []match.Record) (added, skipped int, err error) {
	existing, err := s.load(ctx)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for i := range existing {
		seen[importKey(existing[i])] = struct{}{}
	}

	now := s.now()
	for _, record := range records {
		key := importKey(record)
		if _, ok := seen[key]; ok {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		if record.ID == "" {
			record.ID = s.nextID()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		if record.LastModifiedAt.IsZero() {
			record.LastModifiedAt = record.CreatedAt
		}

		existing = append(existing, record)
		added++
	}

	if added > 0 {
		if err := s.persist(ctx, existing); err != nil {
			return 0, 0, err
		}
	}

	return added, skipped, nil
}

func importKey(record match.Record) string {
	return record.Date + "|" + record.Opponent
}

func (s *LocalStore) load(ctx context.Context) ([]match.Record, error) {
	raw, ok, err := s.blobs.Get(ctx, matchesBlobKey)
	if err != nil {
		return nil, fmt.Errorf("read match storage: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var records []match.Record
	if err := sonic.UnmarshalString(raw, &records); err != nil {
		return nil, fmt.Errorf("decode match storage: %w", err)
	}

	return records, nil
}

func (s *LocalStore) persist(ctx context.Context, records []match.Record) error {
	raw, err := sonic.MarshalString(records)
	if err != nil {
		return fmt.Errorf("encode match storage: %w", err)
	}
	if err := s.blobs.Set(ctx, matchesBlobKey, raw); err != nil {
		return fmt.Errorf("write match storage: %w", err)
	}

	return nil
}
