// Package accounts owns the authenticated user session and the favorites ledger.
//
// [Manager] keeps the current identity and a persisted user registry.
// Credentials are compared in plaintext; this is a demonstration client, not
// a hardened credential store. [Ledger] keeps the logged-in user's favorite
// movies and writes every mutation through to the store immediately.
//
// Favorites are scoped per identity (one storage key per user id), so two
// accounts on the same device never share a favorites set. The ledger's
// in-memory set is cleared on logout and reloaded on the next login; the
// persisted set survives the logout/login round trip.
//
// Both types persist through [store.Store] with explicit, synchronous
// write-through calls at the point of mutation; there is no ambient global
// state and no reactive persistence.
package accounts
