package main

import (
	"context"
	"fmt"

	"github.com/mvx-app/mvx/internal/formatter"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the logged-in identity's saved movies.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	manager, ledger, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	user := manager.Current()
	if user == nil {
		return shared.ErrNotLoggedIn
	}

	favorites := ledger.List()

	if save := cmd.String("save"); save != "" {
		csvFile, err := formatter.WriteCSVExport(favorites, save)
		if err != nil {
			return err
		}
		r.writePlain("✓ Favorites saved to %s\n", csvFile)
	}

	if cmd.Bool("json") {
		return r.writeJSON(favorites, cmd.Bool("pretty"))
	}

	if len(favorites) == 0 {
		return r.writePlain("No saved movies yet\n")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites for %s", user.Name))
	for i, movie := range favorites {
		yearPart := ""
		if year := movie.Year(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		r.writePlain("%d. %s%s #%d\n", i+1, movie.Title, yearPart, movie.ID)
	}

	return nil
}

// FavoritesAdd saves a movie by catalog id, fetching its record first so the
// stored entry carries the full display fields.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	manager, ledger, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	if manager.Current() == nil {
		return shared.ErrNotLoggedIn
	}

	detail, err := r.catalog.MovieDetail(ctx, id)
	if err != nil {
		return err
	}

	if !ledger.Add(detail.Movie) {
		return r.writePlain("'%s' is already in your favorites\n", detail.Title)
	}

	return r.writePlain("✓ Added '%s' to favorites\n", detail.Title)
}

// FavoritesRemove removes a saved movie by catalog id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	manager, ledger, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	if manager.Current() == nil {
		return shared.ErrNotLoggedIn
	}

	ledger.Remove(id)
	return r.writePlain("✓ Movie #%d is no longer in your favorites\n", id)
}
