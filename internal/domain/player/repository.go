package player

import (
	"context"
	"time"
)

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string, includeRemoved bool) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
	SetRemoved(ctx context.Context, playerID string, removedAt *time.Time, updatedAt time.Time) error
}
