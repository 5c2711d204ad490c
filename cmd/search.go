package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvx-app/mvx/internal/formatter"
	"github.com/mvx-app/mvx/internal/models"
	"github.com/mvx-app/mvx/internal/session"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a one-shot catalog search with optional sort and year filter.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	sess := session.New(r.catalog, r.logger)

	if sortFlag := cmd.String("sort"); sortFlag != "" {
		key, err := session.ParseSortKey(sortFlag)
		if err != nil {
			return err
		}
		sess.SetSortKey(key)
	}
	if year := cmd.String("year"); year != "" {
		if err := sess.SetYear(year); err != nil {
			return err
		}
	}

	r.logger.Infof("searching catalog for %q", query)

	if err := sess.Search(ctx, query, int(cmd.Int("page"))); err != nil {
		return err
	}

	movies := sess.Results()

	if save := cmd.String("save"); save != "" {
		csvFile, err := formatter.WriteCSVExport(movies, save)
		if err != nil {
			return err
		}
		r.writePlain("✓ Results saved to %s\n", csvFile)
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.SearchResult{
			Results:    movies,
			Page:       sess.Page(),
			TotalPages: sess.TotalPages(),
		}, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("No movies found for '%s'\n", sess.Query())
	}

	r.writePlainHeader(fmt.Sprintf("Results for '%s' (page %d/%d)", sess.Query(), sess.Page(), sess.TotalPages()))
	for i, movie := range movies {
		yearPart := ""
		if year := movie.Year(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		r.writePlain("%d. %s%s [%.1f] #%d\n", i+1, movie.Title, yearPart, movie.VoteAverage, movie.ID)
	}

	return nil
}
