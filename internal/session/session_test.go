package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
	mvxtest "github.com/mvx-app/mvx/internal/testing"
)

func titles(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fixedCatalog(movies []models.Movie, totalPages int) *mvxtest.MockCatalog {
	return &mvxtest.MockCatalog{
		SearchFunc: func(ctx context.Context, query string, page int) (*models.SearchResult, error) {
			return &models.SearchResult{
				Results:    append([]models.Movie(nil), movies...),
				Page:       page,
				TotalPages: totalPages,
			}, nil
		},
	}
}

func TestSessionSearch(t *testing.T) {
	t.Run("replaces state on success", func(t *testing.T) {
		catalog := fixedCatalog([]models.Movie{
			{ID: 1, Title: "Dune", ReleaseDate: "2021-10-22"},
			{ID: 2, Title: "Arrival", ReleaseDate: "2016-11-11"},
		}, 3)
		s := New(catalog, nil)

		if err := s.Search(context.Background(), "dune", 2); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if s.Query() != "dune" {
			t.Errorf("expected query %q, got %q", "dune", s.Query())
		}
		if s.Page() != 2 || s.TotalPages() != 3 {
			t.Errorf("expected page 2/3, got %d/%d", s.Page(), s.TotalPages())
		}
		if !s.HasSearched() {
			t.Error("expected hasSearched after a successful search")
		}
		if len(s.Results()) != 2 {
			t.Errorf("expected 2 results, got %d", len(s.Results()))
		}
	})

	t.Run("blank query issues no lookup", func(t *testing.T) {
		catalog := &mvxtest.MockCatalog{}
		s := New(catalog, nil)

		if err := s.Search(context.Background(), "   ", 1); err != nil {
			t.Fatalf("blank search should be a no-op: %v", err)
		}
		if catalog.Searches != 0 {
			t.Errorf("expected 0 catalog calls, got %d", catalog.Searches)
		}
		if s.HasSearched() {
			t.Error("blank search should not mark the session as searched")
		}
	})

	t.Run("repeating a search is idempotent", func(t *testing.T) {
		catalog := fixedCatalog([]models.Movie{{ID: 1, Title: "Dune"}}, 1)
		s := New(catalog, nil)

		s.Search(context.Background(), "dune", 1)
		first := s.Snapshot()
		s.Search(context.Background(), "dune", 1)
		second := s.Snapshot()

		if first.Query != second.Query || first.Page != second.Page ||
			len(first.Results) != len(second.Results) {
			t.Error("identical searches should yield identical state")
		}
	})

	t.Run("failure keeps previous state", func(t *testing.T) {
		good := fixedCatalog([]models.Movie{{ID: 1, Title: "Dune"}}, 1)
		s := New(good, nil)
		s.Search(context.Background(), "dune", 1)

		s.catalog = &mvxtest.MockCatalog{
			SearchFunc: func(ctx context.Context, query string, page int) (*models.SearchResult, error) {
				return nil, shared.ErrCatalogUnavailable
			},
		}

		err := s.Search(context.Background(), "arrival", 1)
		if !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
		}

		if s.Query() != "dune" {
			t.Errorf("failed search should keep prior query, got %q", s.Query())
		}
		if len(s.Results()) != 1 {
			t.Errorf("failed search should keep prior results, got %d", len(s.Results()))
		}
	})

	t.Run("zero matches is a valid empty result", func(t *testing.T) {
		s := New(fixedCatalog(nil, 0), nil)

		if err := s.Search(context.Background(), "zzzz", 1); err != nil {
			t.Fatalf("empty result should not be an error: %v", err)
		}
		if !s.HasSearched() {
			t.Error("empty result still marks the session as searched")
		}
		if len(s.Results()) != 0 || s.TotalPages() != 0 {
			t.Errorf("expected empty state, got %d results %d pages", len(s.Results()), s.TotalPages())
		}
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		s := New(&mvxtest.MockCatalog{}, nil)

		older, _ := s.Begin("first", 1)
		newer, _ := s.Begin("second", 1)

		if err := s.Apply(older, &models.SearchResult{
			Results:    []models.Movie{{ID: 1, Title: "Old"}},
			TotalPages: 1,
		}, nil); err != nil {
			t.Fatalf("stale apply should not error: %v", err)
		}
		if s.HasSearched() || len(s.Results()) != 0 {
			t.Error("stale response must not overwrite state")
		}

		if err := s.Apply(newer, &models.SearchResult{
			Results:    []models.Movie{{ID: 2, Title: "New"}},
			TotalPages: 1,
		}, nil); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if s.Query() != "second" || len(s.Results()) != 1 {
			t.Error("latest response should apply")
		}
	})
}

func TestSessionSort(t *testing.T) {
	movies := []models.Movie{
		{ID: 1, Title: "B", ReleaseDate: "2001-01-01"},
		{ID: 2, Title: "a", ReleaseDate: ""},
		{ID: 3, Title: "C", ReleaseDate: "1999-06-01"},
	}

	t.Run("title ascending is case-insensitive", func(t *testing.T) {
		s := New(fixedCatalog(movies, 1), nil)
		s.Search(context.Background(), "q", 1)

		if err := s.SetSort(context.Background(), SortTitleAsc); err != nil {
			t.Fatalf("setSort failed: %v", err)
		}

		got := titles(s.Results())
		if !equalStrings(got, []string{"a", "B", "C"}) {
			t.Errorf("expected [a B C], got %v", got)
		}
	})

	t.Run("year newest places missing years last", func(t *testing.T) {
		s := New(fixedCatalog(movies, 1), nil)
		s.Search(context.Background(), "q", 1)

		if err := s.SetSort(context.Background(), SortYearNewest); err != nil {
			t.Fatalf("setSort failed: %v", err)
		}

		got := titles(s.Results())
		if !equalStrings(got, []string{"B", "C", "a"}) {
			t.Errorf("expected [B C a], got %v", got)
		}
	})

	t.Run("changing sort re-searches at page 1", func(t *testing.T) {
		catalog := fixedCatalog(movies, 5)
		s := New(catalog, nil)
		s.Search(context.Background(), "q", 3)

		calls := catalog.Searches
		s.SetSort(context.Background(), SortTitleDesc)

		if catalog.Searches != calls+1 {
			t.Error("sort change on showing results should re-search")
		}
		if s.Page() != 1 {
			t.Errorf("sort change should return to page 1, got %d", s.Page())
		}
	})

	t.Run("sort before any search does not call the catalog", func(t *testing.T) {
		catalog := &mvxtest.MockCatalog{}
		s := New(catalog, nil)

		s.SetSort(context.Background(), SortTitleAsc)
		if catalog.Searches != 0 {
			t.Errorf("expected 0 catalog calls, got %d", catalog.Searches)
		}
	})
}

func TestSessionYearFilter(t *testing.T) {
	movies := []models.Movie{
		{ID: 1, Title: "Tenet", ReleaseDate: "2020-08-26"},
		{ID: 2, Title: "Dune", ReleaseDate: "2021-10-22"},
		{ID: 3, Title: "Lost Tape", ReleaseDate: ""},
	}

	t.Run("keeps only matching years", func(t *testing.T) {
		s := New(fixedCatalog(movies, 1), nil)
		s.Search(context.Background(), "q", 1)

		if err := s.SetYearFilter(context.Background(), "2020"); err != nil {
			t.Fatalf("setYearFilter failed: %v", err)
		}

		got := s.Results()
		if len(got) != 1 || got[0].Title != "Tenet" {
			t.Errorf("expected only Tenet, got %v", titles(got))
		}
	})

	t.Run("missing release date never matches", func(t *testing.T) {
		s := New(fixedCatalog(movies, 1), nil)
		s.Search(context.Background(), "q", 1)
		s.SetYearFilter(context.Background(), "2021")

		for _, m := range s.Results() {
			if m.ReleaseDate == "" {
				t.Error("dateless movie should be excluded by a year filter")
			}
		}
	})

	t.Run("rejects malformed filter", func(t *testing.T) {
		s := New(fixedCatalog(movies, 1), nil)

		if err := s.SetYearFilter(context.Background(), "20"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("clearFilters resets and re-searches", func(t *testing.T) {
		catalog := fixedCatalog(movies, 1)
		s := New(catalog, nil)
		s.Search(context.Background(), "q", 1)
		s.SetSort(context.Background(), SortTitleAsc)
		s.SetYearFilter(context.Background(), "2020")

		if err := s.ClearFilters(context.Background()); err != nil {
			t.Fatalf("clearFilters failed: %v", err)
		}
		if s.SortKey() != SortNone || s.YearFilter() != "" {
			t.Error("clearFilters should reset sort and filter")
		}
		if len(s.Results()) != 3 {
			t.Errorf("expected full page after clearing, got %d", len(s.Results()))
		}
	})
}

func TestSessionExternalSearch(t *testing.T) {
	t.Run("non-empty behaves like a local search", func(t *testing.T) {
		catalog := fixedCatalog([]models.Movie{{ID: 1, Title: "Dune"}}, 1)
		s := New(catalog, nil)

		if err := s.ExternalSearch(context.Background(), "dune"); err != nil {
			t.Fatalf("external search failed: %v", err)
		}
		if s.Query() != "dune" || s.Page() != 1 {
			t.Errorf("expected query dune page 1, got %q page %d", s.Query(), s.Page())
		}
	})

	t.Run("empty clears without a network call", func(t *testing.T) {
		catalog := fixedCatalog([]models.Movie{{ID: 1, Title: "Dune"}}, 1)
		s := New(catalog, nil)
		s.Search(context.Background(), "dune", 1)

		calls := catalog.Searches
		if err := s.ExternalSearch(context.Background(), "  "); err != nil {
			t.Fatalf("empty external search failed: %v", err)
		}

		if catalog.Searches != calls {
			t.Error("empty external search must not hit the catalog")
		}
		if s.HasSearched() || s.Query() != "" || len(s.Results()) != 0 {
			t.Error("empty external search should clear the session")
		}
	})
}

func TestSessionParseSortKey(t *testing.T) {
	if _, err := ParseSortKey("title-asc"); err != nil {
		t.Errorf("known key should parse: %v", err)
	}
	if _, err := ParseSortKey("by-rating"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
