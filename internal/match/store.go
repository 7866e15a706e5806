package match

import (
	"context"
	"errors"
)

// ErrConflicto is returned when a keyed update keeps losing against
// concurrent writers after retrying.
var ErrConflicto = errors.New("conflicto de actualización concurrente")

// UpdateFunc inspects and possibly mutates the state for one match key.
// It returns save=false to leave the stored state untouched (rejections)
// and save=true to persist the mutation atomically.
type UpdateFunc func(s *State) (save bool, err error)

// Store keeps one State per match id. Update serializes mutation per key:
// two concurrent updates of the same match never interleave, which is what
// lets one process host many independent live games.
type Store interface {
	// Load returns the current state, or a fresh starting state if the
	// match has never been touched. The result is the caller's copy.
	Load(ctx context.Context, id string) (*State, error)
	// Update applies fn under the per-key exclusion guard and returns the
	// resulting state (also a private copy).
	Update(ctx context.Context, id string, fn UpdateFunc) (*State, error)
	Close() error
}
