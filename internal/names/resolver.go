package names

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/grassrootshq/matchday/internal/domain/match"
)

// ErrUnresolvedPlayers is returned when one or more display names cannot be
// matched against the roster. The wrapped message names every missing entry.
var ErrUnresolvedPlayers = errors.New("unable to resolve player(s)")

// RosterEntry is the minimal roster row the resolver needs.
type RosterEntry struct {
	ID   string
	Name string
}

// RosterSource supplies the team roster on demand. Soft-deleted players are
// included so historical fixtures can still resolve their names.
type RosterSource interface {
	ListRoster(ctx context.Context, includeRemoved bool) ([]RosterEntry, error)
}

// Resolver maps player display names to stable player IDs. A pre-seeded lookup
// short-circuits the roster fetch; the roster is only queried for misses.
type Resolver struct {
	roster RosterSource
}

func NewResolver(roster RosterSource) *Resolver {
	return &Resolver{roster: roster}
}

// Resolve returns a name-key to player-ID map covering every input name.
// Matching is case-insensitive on trimmed names. It fails with a single
// aggregated error naming every unresolved entry, never per name.
func (r *Resolver) Resolve(ctx context.Context, playerNames []string, seed map[string]string) (map[string]string, error) {
	resolved := make(map[string]string, len(playerNames))
	for name, id := range seed {
		if name == "" || id == "" {
			continue
		}
		resolved[match.NormalizeNameKey(name)] = id
	}

	pending := make(map[string]struct{})
	for _, name := range playerNames {
		key := match.NormalizeNameKey(name)
		if key == "" {
			continue
		}
		if _, ok := resolved[key]; !ok {
			pending[key] = struct{}{}
		}
	}

	if len(pending) == 0 {
		return resolved, nil
	}

	roster, err := r.roster.ListRoster(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list roster for name resolution: %w", err)
	}

	for _, entry := range roster {
		key := match.NormalizeNameKey(entry.Name)
		if _, wanted := pending[key]; !wanted {
			continue
		}
		if _, ok := resolved[key]; !ok {
			resolved[key] = entry.ID
		}
		delete(pending, key)
	}

	if len(pending) > 0 {
		missing := make([]string, 0, len(pending))
		for key := range pending {
			missing = append(missing, key)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedPlayers, strings.Join(missing, ", "))
	}

	return resolved, nil
}
