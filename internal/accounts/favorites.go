package accounts

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/mvx-app/mvx/internal/store"
)

// Ledger owns the logged-in user's favorite movies.
//
// All operations are guarded: with no current identity they are no-ops, even
// though callers are expected to gate the UI as well. Every mutation writes
// the full set through to the store immediately.
type Ledger struct {
	store     store.Store
	manager   *Manager
	logger    *log.Logger
	favorites []models.Movie
}

// NewLedger creates a Ledger bound to the manager's identity lifecycle:
// it loads the persisted set for the current identity (if any) and tracks
// login/logout through the manager's identity-change hook.
func NewLedger(s store.Store, manager *Manager, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := &Ledger{store: s, manager: manager, logger: logger}
	l.reload(manager.Current())
	manager.OnIdentityChange(l.reload)
	return l
}

// Add records movie as a favorite. Adding an already-present movie is a
// no-op returning false, as is adding while logged out.
func (l *Ledger) Add(movie models.Movie) bool {
	if l.manager.Current() == nil {
		return false
	}
	if l.contains(movie.ID) {
		return false
	}

	l.favorites = append(l.favorites, movie)
	l.persist()
	return true
}

// Remove deletes a favorite by movie id. With an identity present the
// post-condition is "absent", so removing a movie that was never favorited
// still returns true. Logged out it is a no-op returning false.
func (l *Ledger) Remove(movieID int) bool {
	if l.manager.Current() == nil {
		return false
	}
	if !l.contains(movieID) {
		return true
	}

	kept := l.favorites[:0]
	for _, m := range l.favorites {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	l.favorites = kept
	l.persist()
	return true
}

// IsFavorite reports whether the movie id is in the current identity's set.
func (l *Ledger) IsFavorite(movieID int) bool {
	if l.manager.Current() == nil {
		return false
	}
	return l.contains(movieID)
}

// List returns the favorites in insertion order.
func (l *Ledger) List() []models.Movie {
	out := make([]models.Movie, len(l.favorites))
	copy(out, l.favorites)
	return out
}

// Count returns the number of favorites.
func (l *Ledger) Count() int {
	return len(l.favorites)
}

func (l *Ledger) contains(movieID int) bool {
	for _, m := range l.favorites {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// persist writes the full set through to the store under the identity-scoped key.
func (l *Ledger) persist() {
	user := l.manager.Current()
	if user == nil {
		return
	}

	raw, err := json.Marshal(l.favorites)
	if err != nil {
		l.logger.Error("failed to encode favorites", "error", err)
		return
	}
	if err := l.store.Set(store.FavoritesKey(user.ID), string(raw)); err != nil {
		l.logger.Error("failed to persist favorites", "error", err)
	}
}

// reload swaps the in-memory set for the given identity's persisted set.
// A nil identity (logout) clears it.
func (l *Ledger) reload(user *models.User) {
	l.favorites = nil
	if user == nil {
		return
	}

	raw, ok, err := l.store.Get(store.FavoritesKey(user.ID))
	if err != nil {
		l.logger.Error("failed to load favorites", "error", err)
		return
	}
	if !ok {
		return
	}

	if err := json.Unmarshal([]byte(raw), &l.favorites); err != nil {
		l.logger.Warn("discarding unreadable favorites record", "error", err)
		l.favorites = nil
	}
}
