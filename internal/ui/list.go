package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mvx-app/mvx/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.favorite {
		return "★ " + i.movie.Title
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	year := i.movie.Year()
	if year == "" {
		year = "year unknown"
	}
	return fmt.Sprintf("%s • %.1f", year, i.movie.VoteAverage)
}
