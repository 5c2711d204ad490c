// Package services implements clients for the remote movie catalog.
//
// The [Catalog] interface is the only surface the rest of the application
// depends on: paginated search plus single-shot detail lookup. [TMDBService]
// is the production implementation against The Movie Database API; all
// translation from the external wire format to the canonical [models.Movie]
// shape happens here and nowhere else.
//
// Requests are rate limited client-side and authenticated either with a v3
// API key (query parameter) or a v4 read access token (bearer, via oauth2).
package services
