package matchstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/domain/match"
)

// Mode reports which backend served the most recent operation.
type Mode string

const (
	// ModeAPI means the last operation succeeded against the remote backend.
	ModeAPI Mode = "api"
	// ModeLocal means remote persistence is disabled by configuration.
	ModeLocal Mode = "local"
	// ModeFallback means the remote backend was expected but unusable, so the
	// operation was served from local storage.
	ModeFallback Mode = "fallback"
)

// ErrTeamNotConfigured marks the permanent configuration error of remote mode
// being enabled without a team identifier.
var ErrTeamNotConfigured = errors.New("remote persistence enabled but no team id configured")

var errBulkImportLocalOnly = errors.New("bulk import is never attempted remotely")

// SelectorConfig wires the Selector. Remote may be nil when RemoteEnabled is
// false.
type SelectorConfig struct {
	RemoteEnabled bool
	TeamID        string
	Remote        Store
	Local         *LocalStore
	Logger        *slog.Logger
}

// Selector routes every persistence operation to the remote or local store and
// tracks the resulting mode. Remote failures never surface to the caller: the
// operation is re-run against local storage and the captured error is exposed
// through LastError instead.
type Selector struct {
	remoteEnabled bool
	teamID        string
	remote        Store
	local         *LocalStore
	logger        *slog.Logger

	mu      sync.Mutex
	mode    Mode
	lastErr error
}

func NewSelector(cfg SelectorConfig) *Selector {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Selector{
		remoteEnabled: cfg.RemoteEnabled,
		teamID:        cfg.TeamID,
		remote:        cfg.Remote,
		local:         cfg.Local,
		logger:        logger,
	}

	// Configuration problems are visible before the first operation runs.
	s.mode, s.lastErr = s.route()

	return s
}

// Mode returns the mode set by the most recent operation.
func (s *Selector) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// LastError returns the error captured by the most recent fallback, or nil
// after any successful remote or plain local operation.
func (s *Selector) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Selector) SaveMatch(ctx context.Context, record match.Record) (match.Record, error) {
	if mode, cfgErr := s.route(); mode != ModeAPI {
		s.setState(mode, cfgErr)
		return s.local.SaveMatch(ctx, record)
	}

	saved, err := s.remote.SaveMatch(ctx, record)
	if err != nil {
		s.fallback(ctx, "save match", err)
		return s.local.SaveMatch(ctx, record)
	}

	s.setState(ModeAPI, nil)
	return saved, nil
}

func (s *Selector) ListMatches(ctx context.Context) ([]match.Record, error) {
	if mode, cfgErr := s.route(); mode != ModeAPI {
		s.setState(mode, cfgErr)
		return s.local.ListMatches(ctx)
	}

	records, err := s.remote.ListMatches(ctx)
	if err != nil {
		s.fallback(ctx, "list matches", err)
		return s.local.ListMatches(ctx)
	}

	s.setState(ModeAPI, nil)
	return records, nil
}

func (s *Selector) UpdateMatch(ctx context.Context, matchID string, update audit.Update) (match.Record, error) {
	if mode, cfgErr := s.route(); mode != ModeAPI {
		s.setState(mode, cfgErr)
		return s.local.UpdateMatch(ctx, matchID, update)
	}

	updated, err := s.remote.UpdateMatch(ctx, matchID, update)
	if err != nil {
		s.fallback(ctx, "update match", err)
		return s.local.UpdateMatch(ctx, matchID, update)
	}

	s.setState(ModeAPI, nil)
	return updated, nil
}

// BulkImportMatches always writes to local storage. When remote mode would
// otherwise apply the state is marked fallback, a deliberate limitation rather
// than a failure. Returns how many records were added and how many were
// skipped as duplicates.
func (s *Selector) BulkImportMatches(ctx context.Context, records []match.Record) (added, skipped int, err error) {
	if mode, cfgErr := s.route(); mode != ModeAPI {
		s.setState(mode, cfgErr)
	} else {
		s.setState(ModeFallback, errBulkImportLocalOnly)
	}

	return s.local.BulkImport(ctx, records)
}

// route evaluates the transition rule at the start of an operation: api when
// remote is enabled and a team is configured, fallback on the missing-team
// configuration error, local when remote is disabled.
func (s *Selector) route() (Mode, error) {
	if !s.remoteEnabled {
		return ModeLocal, nil
	}
	if s.teamID == "" {
		return ModeFallback, ErrTeamNotConfigured
	}
	return ModeAPI, nil
}

func (s *Selector) fallback(ctx context.Context, operation string, err error) {
	s.logger.WarnContext(ctx, "remote persistence failed, falling back to local storage",
		"operation", operation,
		"error", err,
	)
	s.setState(ModeFallback, err)
}

func (s *Selector) setState(mode Mode, err error) {
	s.mu.Lock()
	s.mode = mode
	s.lastErr = err
	s.mu.Unlock()
}
