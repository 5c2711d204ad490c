// TMDB implementation of [Catalog]
//
// Response types based on https://developer.themoviedb.org/reference/search-movie
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultRateLimit    = 4.0
	maxCastCredits      = 10
)

// TMDBMovie represents a movie summary in a TMDB search response.
type TMDBMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// TMDBSearchResponse represents a paginated TMDB search response.
type TMDBSearchResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBGenre represents a genre record.
type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDBCountry represents a production country.
type TMDBCountry struct {
	Name string `json:"name"`
}

// TMDBLanguage represents a spoken language.
type TMDBLanguage struct {
	EnglishName string `json:"english_name"`
}

// TMDBCastMember represents a cast credit.
type TMDBCastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// TMDBCrewMember represents a crew credit.
type TMDBCrewMember struct {
	Job  string `json:"job"`
	Name string `json:"name"`
}

// TMDBCredits contains cast and crew for a movie.
type TMDBCredits struct {
	Cast []TMDBCastMember `json:"cast"`
	Crew []TMDBCrewMember `json:"crew"`
}

type externalIDs struct {
	IMDbID string `json:"imdb_id"`
}

// TMDBMovieDetail represents a full TMDB movie detail response
// (with credits and external_ids appended).
type TMDBMovieDetail struct {
	TMDBMovie
	Overview    string         `json:"overview"`
	Runtime     int            `json:"runtime"`
	Genres      []TMDBGenre    `json:"genres"`
	Countries   []TMDBCountry  `json:"production_countries"`
	Languages   []TMDBLanguage `json:"spoken_languages"`
	Credits     TMDBCredits    `json:"credits"`
	ExternalIDs externalIDs    `json:"external_ids"`
	IMDbID      string         `json:"imdb_id"`
}

// tmdbStatus is TMDB's error envelope (e.g., status_code 34 for a missing resource).
type tmdbStatus struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// TMDBService implements the [Catalog] interface for TMDB API interactions.
//
// Authentication uses either a v3 API key appended as a query parameter or a
// v4 read access token carried as a bearer token through an [oauth2] client.
// Requests are throttled with a [rate.Limiter].
type TMDBService struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewTMDBService creates a new TMDB catalog client from configuration.
// A custom http.Client may be injected for testing; when nil, one is built
// from the configured credentials.
func NewTMDBService(cfg shared.CatalogConfig, rateLimit float64, client *http.Client) (*TMDBService, error) {
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: catalog api_key or access_token required", shared.ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	imageBaseURL := cfg.ImageBaseURL
	if imageBaseURL == "" {
		imageBaseURL = defaultImageBaseURL
	}

	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	apiKey := cfg.APIKey
	if client == nil {
		if cfg.AccessToken != "" {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
			client = oauth2.NewClient(context.Background(), src)
			apiKey = "" // bearer auth wins when both are configured
		} else {
			client = http.DefaultClient
		}
	}

	return &TMDBService{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		apiKey:       apiKey,
		httpClient:   client,
		limiter:      rate.NewLimiter(rate.Limit(rateLimit), 1),
	}, nil
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

// doRequest performs a rate-limited GET to the TMDB API and decodes the JSON response.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	if s.apiKey != "" {
		query.Set("api_key", s.apiKey)
	}

	apiURL := s.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		var status tmdbStatus
		if err := json.NewDecoder(resp.Body).Decode(&status); err == nil && status.StatusMessage != "" {
			return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, status.StatusMessage)
		}
		return shared.ErrMovieNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrCatalogUnavailable, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrCatalogUnavailable, err)
		}
	}

	return nil
}

// SearchMovies issues one catalog lookup for query at the given 1-based page.
func (s *TMDBService) SearchMovies(ctx context.Context, query string, page int) (*models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprintf("%d", page))

	var response TMDBSearchResponse
	if err := s.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, err
	}

	result := &models.SearchResult{
		Page:       response.Page,
		TotalPages: response.TotalPages,
		Results:    make([]models.Movie, 0, len(response.Results)),
	}
	if result.Page == 0 {
		result.Page = page
	}

	for _, m := range response.Results {
		result.Results = append(result.Results, s.convertMovie(m))
	}

	return result, nil
}

// MovieDetail retrieves the full detail payload for a movie by catalog id.
func (s *TMDBService) MovieDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,external_ids")

	var response TMDBMovieDetail
	if err := s.doRequest(ctx, fmt.Sprintf("/movie/%d", id), params, &response); err != nil {
		return nil, err
	}

	detail := &models.MovieDetail{
		Movie:    s.convertMovie(response.TMDBMovie),
		Overview: response.Overview,
		Runtime:  response.Runtime,
		IMDbID:   response.ExternalIDs.IMDbID,
	}
	if detail.IMDbID == "" {
		detail.IMDbID = response.IMDbID
	}

	for _, g := range response.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	for _, c := range response.Countries {
		detail.Countries = append(detail.Countries, c.Name)
	}
	for _, l := range response.Languages {
		detail.Languages = append(detail.Languages, l.EnglishName)
	}

	for i, member := range response.Credits.Cast {
		if i >= maxCastCredits {
			break
		}
		detail.Cast = append(detail.Cast, member.Name)
	}

	for _, member := range response.Credits.Crew {
		if member.Job == "Director" {
			detail.Director = member.Name
			break
		}
	}

	return detail, nil
}

// convertMovie maps a TMDB wire record to the canonical [models.Movie] shape.
func (s *TMDBService) convertMovie(m TMDBMovie) models.Movie {
	movie := models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
	}

	if m.PosterPath != "" {
		movie.PosterURL = s.imageBaseURL + m.PosterPath
	}

	return movie
}
