// Package models defines the domain entities shared across the movie catalog client.
//
// Two categories of types live here:
//
// 1. Catalog data: immutable records fetched from the remote movie catalog
//   - [Movie] : summary record rendered in result lists and stored as favorites
//   - [MovieDetail] : lazily fetched per-detail-view payload
//   - [SearchResult] : one page of catalog results with pagination counts
//
// 2. Identity data: locally persisted account records
//   - [User] : the authenticated principal, never carries the credential
//   - [Account] : registry entry used only for login matching
//
// The canonical Movie shape follows the catalog's own field naming; any
// translation from other external formats happens at the catalog client
// boundary, not here.
package models
