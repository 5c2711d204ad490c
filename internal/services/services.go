// package services defines interface Catalog for the remote movie API
package services

import (
	"context"

	"github.com/mvx-app/mvx/internal/models"
)

// Catalog defines the interface for the remote movie catalog.
// Both operations are plain request/response; a non-2xx status or malformed
// payload surfaces as a transport error.
type Catalog interface {
	// SearchMovies issues one catalog lookup for query at the given 1-based page.
	SearchMovies(ctx context.Context, query string, page int) (*models.SearchResult, error)

	// MovieDetail retrieves the full detail payload for a movie by catalog id.
	MovieDetail(ctx context.Context, id int) (*models.MovieDetail, error)

	// Name returns the name of the catalog (e.g., "TMDB")
	Name() string
}
