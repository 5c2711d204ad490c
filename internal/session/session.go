package session

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/services"
	"github.com/mvx-app/mvx/internal/shared"
)

// SortKey identifies a client-side result ordering.
type SortKey string

const (
	SortNone       SortKey = ""
	SortTitleAsc   SortKey = "title-asc"
	SortTitleDesc  SortKey = "title-desc"
	SortYearNewest SortKey = "year-newest"
	SortYearOldest SortKey = "year-oldest"
)

// ParseSortKey validates a user-supplied sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(s); key {
	case SortNone, SortTitleAsc, SortTitleDesc, SortYearNewest, SortYearOldest:
		return key, nil
	default:
		return SortNone, fmt.Errorf("%w: unknown sort key %q", shared.ErrInvalidArgument, s)
	}
}

// Request identifies one issued catalog lookup. Responses are applied only
// while their request is still the latest one issued.
type Request struct {
	id    uint64
	Query string
	Page  int
}

// Session is the in-memory state of one user's current search interaction.
//
// It follows an event-driven, single-threaded-cooperative model: one logical
// thread mutates it, and a search suspends only at the network call.
type Session struct {
	catalog services.Catalog
	logger  *log.Logger

	query       string
	results     []models.Movie
	page        int
	totalPages  int
	sortKey     SortKey
	yearFilter  string
	hasSearched bool

	seq uint64
}

// New creates an empty Session backed by the given catalog.
func New(catalog services.Catalog, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{catalog: catalog, logger: logger, page: 1}
}

func (s *Session) Query() string      { return s.query }
func (s *Session) Page() int          { return s.page }
func (s *Session) TotalPages() int    { return s.totalPages }
func (s *Session) SortKey() SortKey   { return s.sortKey }
func (s *Session) YearFilter() string { return s.yearFilter }
func (s *Session) HasSearched() bool  { return s.hasSearched }

// Results returns the current result page in display order.
func (s *Session) Results() []models.Movie {
	out := make([]models.Movie, len(s.results))
	copy(out, s.results)
	return out
}

// Begin registers a new catalog lookup and returns its Request.
// A blank query returns ok=false: the caller must not issue a lookup and the
// session state is untouched.
func (s *Session) Begin(query string, page int) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}
	if page < 1 {
		page = 1
	}

	s.seq++
	return Request{id: s.seq, Query: query, Page: page}, true
}

// Apply folds a catalog response into the session.
//
// A stale response (a newer request has been issued since req) is discarded
// without touching state. A transport error keeps the previous valid state
// and is returned for display. A successful response replaces the session
// state wholesale, with the active year filter and sort applied client-side
// to the returned page.
func (s *Session) Apply(req Request, result *models.SearchResult, err error) error {
	if req.id != s.seq {
		s.logger.Debug("discarding stale search response", "query", req.Query, "page", req.Page)
		return nil
	}

	if err != nil {
		s.logger.Warn("search failed", "query", req.Query, "error", err)
		if !strings.Contains(err.Error(), shared.ErrCatalogUnavailable.Error()) {
			return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
		}
		return err
	}

	s.query = req.Query
	s.hasSearched = true

	if len(result.Results) == 0 {
		// a successful lookup with zero matches is a valid empty result
		s.results = nil
		s.page = 1
		s.totalPages = 0
		return nil
	}

	filtered := filterByYear(result.Results, s.yearFilter)
	sortMovies(filtered, s.sortKey)

	s.results = filtered
	s.page = req.Page
	s.totalPages = result.TotalPages
	if s.totalPages < 1 {
		s.totalPages = 1
	}

	return nil
}

// Search issues one catalog lookup and replaces the session state with the
// outcome. An empty or whitespace-only query is a no-op.
func (s *Session) Search(ctx context.Context, query string, page int) error {
	req, ok := s.Begin(query, page)
	if !ok {
		return nil
	}

	result, err := s.catalog.SearchMovies(ctx, req.Query, req.Page)
	return s.Apply(req, result, err)
}

// SetSortKey changes the active sort without issuing a lookup. Callers that
// want the displayed page refreshed follow up with BeginRefresh or use SetSort.
func (s *Session) SetSortKey(key SortKey) {
	s.sortKey = key
}

// SetYear changes the active release-year filter ("" disables it) without
// issuing a lookup.
func (s *Session) SetYear(year string) error {
	if year != "" && len(year) != 4 {
		return fmt.Errorf("%w: year filter must be a 4-digit year", shared.ErrInvalidArgument)
	}
	s.yearFilter = year
	return nil
}

// ResetFilters clears the sort and year filter without issuing a lookup.
func (s *Session) ResetFilters() {
	s.sortKey = SortNone
	s.yearFilter = ""
}

// SetSort activates a sort key. When results are showing, the same query is
// re-searched at page 1 so filtering and sorting compound on a fresh page.
func (s *Session) SetSort(ctx context.Context, key SortKey) error {
	s.SetSortKey(key)
	return s.refresh(ctx)
}

// SetYearFilter activates a release-year filter ("" disables it).
func (s *Session) SetYearFilter(ctx context.Context, year string) error {
	if err := s.SetYear(year); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// ClearFilters resets sort and year filter, re-searching when results are showing.
func (s *Session) ClearFilters(ctx context.Context) error {
	s.ResetFilters()
	return s.refresh(ctx)
}

// BeginRefresh registers a page-1 lookup of the current query, for use after
// a local sort or filter change. ok is false when nothing is showing.
func (s *Session) BeginRefresh() (Request, bool) {
	if !s.hasSearched || s.query == "" {
		return Request{}, false
	}
	return s.Begin(s.query, 1)
}

func (s *Session) refresh(ctx context.Context) error {
	req, ok := s.BeginRefresh()
	if !ok {
		return nil
	}

	result, err := s.catalog.SearchMovies(ctx, req.Query, req.Page)
	return s.Apply(req, result, err)
}

// ExternalSearch handles a query supplied from outside the session's own
// input. A non-empty query is treated identically to a locally typed one; an
// empty query clears the session without issuing a network call.
func (s *Session) ExternalSearch(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		s.Clear()
		return nil
	}
	return s.Search(ctx, query, 1)
}

// Clear empties the session without destroying it. The request sequence is
// advanced so any in-flight response is discarded on arrival.
func (s *Session) Clear() {
	s.seq++
	s.query = ""
	s.results = nil
	s.page = 1
	s.totalPages = 0
	s.hasSearched = false
}

// Snapshot captures an immutable copy of the session state for restoration
// across a navigation round trip.
func (s *Session) Snapshot() Snapshot {
	results := make([]models.Movie, len(s.results))
	copy(results, s.results)

	return Snapshot{
		Query:       s.query,
		Results:     results,
		Page:        s.page,
		TotalPages:  s.totalPages,
		SortKey:     s.sortKey,
		YearFilter:  s.yearFilter,
		HasSearched: s.hasSearched,
	}
}

// Restore replaces the live session state with the snapshot wholesale.
func (s *Session) Restore(snap Snapshot) {
	s.seq++
	s.query = snap.Query
	s.results = append([]models.Movie(nil), snap.Results...)
	s.page = snap.Page
	s.totalPages = snap.TotalPages
	s.sortKey = snap.SortKey
	s.yearFilter = snap.YearFilter
	s.hasSearched = snap.HasSearched
	if s.page < 1 {
		s.page = 1
	}
}

// filterByYear keeps movies whose 4-character release-year prefix equals
// year. Movies with no release date never match a non-empty filter.
func filterByYear(movies []models.Movie, year string) []models.Movie {
	if year == "" {
		return append([]models.Movie(nil), movies...)
	}

	var filtered []models.Movie
	for _, m := range movies {
		if m.Year() == year {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// sortMovies orders movies in place. Ties keep their original order, so the
// catalog's relevance ordering survives within equal keys.
func sortMovies(movies []models.Movie, key SortKey) {
	switch key {
	case SortTitleAsc:
		sort.SliceStable(movies, func(i, j int) bool {
			return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(movies, func(i, j int) bool {
			return strings.ToLower(movies[i].Title) > strings.ToLower(movies[j].Title)
		})
	case SortYearNewest:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].YearNum() > movies[j].YearNum()
		})
	case SortYearOldest:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].YearNum() < movies[j].YearNum()
		})
	}
}
