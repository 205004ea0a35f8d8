package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is one rostered athlete on the tracked team. Players are soft-deleted
// by setting RemovedAt so historical fixtures can keep referencing them.
type Player struct {
	ID                 string
	TeamID             string
	DisplayName        string
	SquadNumber        *int
	PreferredPositions []string
	RemovedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("player display name is required")
	}
	if p.SquadNumber != nil && *p.SquadNumber < 0 {
		return fmt.Errorf("player squad number cannot be negative")
	}

	return nil
}

// Removed reports whether the player is currently soft-deleted.
func (p Player) Removed() bool {
	return p.RemovedAt != nil
}
