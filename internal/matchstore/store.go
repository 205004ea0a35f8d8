package matchstore

import (
	"context"
	"errors"

	"github.com/grassrootshq/matchday/internal/audit"
	"github.com/grassrootshq/matchday/internal/domain/match"
)

// ErrMatchNotFound is returned when an update references an unknown match ID.
var ErrMatchNotFound = errors.New("match not found")

// Store persists match records. Two implementations exist: one backed by the
// remote fixture backend and one backed by local keyed blob storage. The
// Selector decides which one serves each operation.
type Store interface {
	SaveMatch(ctx context.Context, record match.Record) (match.Record, error)
	ListMatches(ctx context.Context) ([]match.Record, error)
	UpdateMatch(ctx context.Context, matchID string, update audit.Update) (match.Record, error)
}
