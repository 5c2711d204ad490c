// Package session implements the search-session state machine and its
// cross-navigation continuity.
//
// [Session] owns the query text, active filters and sort, the current result
// page, and pagination counts. State is replaced wholesale on every
// successful search; a failed search keeps the previous valid state intact.
// Overlapping searches are resolved with a monotonic request sequence:
// a response older than the latest issued request is discarded instead of
// overwriting newer state.
//
// [Bridge] carries an immutable [Snapshot] across a "view detail, then
// return" round trip and delivers it back exactly once.
package session
