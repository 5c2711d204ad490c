package ui

import (
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/session"
)

// searchCompleteMsg carries a catalog search response back into Update.
// The request is kept so the session can discard stale responses.
type searchCompleteMsg struct {
	req    session.Request
	result *models.SearchResult
	err    error
}

// detailFetchedMsg carries a movie detail response back into Update.
type detailFetchedMsg struct {
	detail *models.MovieDetail
	err    error
}
