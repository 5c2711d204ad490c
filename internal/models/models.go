package models

import (
	"strconv"
)

// Movie is a summary record from the movie catalog.
// Identity is the catalog key; records are immutable once fetched.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"` // "YYYY-MM-DD", may be empty
	PosterURL   string  `json:"poster_url"`   // fully resolved, may be empty
	VoteAverage float64 `json:"vote_average"`
}

// Year returns the 4-character year prefix of the release date, or "" when unset.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// YearNum returns the release year as an int. Missing or malformed dates return 0.
func (m Movie) YearNum() int {
	year, err := strconv.Atoi(m.Year())
	if err != nil {
		return 0
	}
	return year
}

// MovieDetail is the full per-detail-view payload for a movie.
type MovieDetail struct {
	Movie
	Overview  string   `json:"overview"`
	Runtime   int      `json:"runtime"` // minutes
	Genres    []string `json:"genres"`
	Director  string   `json:"director"`
	Cast      []string `json:"cast"`
	Countries []string `json:"countries"`
	Languages []string `json:"languages"`
	IMDbID    string   `json:"imdb_id"`
}

// IMDbURL returns the movie's IMDb page URL, or "" when no external id exists.
func (d MovieDetail) IMDbURL() string {
	if d.IMDbID == "" {
		return ""
	}
	return "https://www.imdb.com/title/" + d.IMDbID
}

// SearchResult is one page of catalog search results.
type SearchResult struct {
	Results    []Movie `json:"results"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

// User is the authenticated principal. It never includes the credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is a user registry entry, used only for login matching.
// The password is stored in plaintext; this client is a demonstration,
// not a hardened credential store.
type Account struct {
	User
	Password string `json:"password"`
}
