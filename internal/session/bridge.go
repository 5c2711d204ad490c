package session

import "github.com/mvx-app/mvx/internal/models"

// Snapshot is an immutable copy of session state captured for restoration
// across a navigation round trip.
type Snapshot struct {
	Query       string
	Results     []models.Movie
	Page        int
	TotalPages  int
	SortKey     SortKey
	YearFilter  string
	HasSearched bool
}

// Bridge propagates a session snapshot across a "view detail, then return"
// round trip. Delivery is exactly-once: Take clears the carried snapshot so
// an unrelated later navigation never re-applies stale state.
type Bridge struct {
	snap *Snapshot
}

// NewBridge creates an empty Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Carry attaches a snapshot to the next return navigation.
func (b *Bridge) Carry(snap Snapshot) {
	b.snap = &snap
}

// Take returns the carried snapshot, if any, and discards it. Arriving with
// no snapshot (a direct deep link) is valid: ok is false and the caller
// starts from an empty session.
func (b *Bridge) Take() (Snapshot, bool) {
	if b.snap == nil {
		return Snapshot{}, false
	}
	snap := *b.snap
	b.snap = nil
	return snap, true
}

// Drop discards any carried snapshot without delivering it.
func (b *Bridge) Drop() {
	b.snap = nil
}
