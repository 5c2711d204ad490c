package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mvx-app/mvx/internal/formatter"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

func movieIDArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id must be numeric, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// MovieGet fetches and prints the full detail for one movie.
func (r *Runner) MovieGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching movie %d", id)

	detail, err := r.catalog.MovieDetail(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(detail.Title)
	return r.writePlain("%s", formatter.DetailToText(detail))
}

// MovieExport writes a movie detail to a Markdown directory, optionally
// downloading the poster image alongside it.
func (r *Runner) MovieExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.catalog.MovieDetail(ctx, id)
	if err != nil {
		return err
	}

	imageURL := ""
	if cmd.Bool("poster") {
		imageURL = detail.PosterURL
	}

	result, err := formatter.WriteMarkdownExport(detail, cmd.String("output"), imageURL)
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported '%s' to %s\n", detail.Title, result.Directory)
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}

	return nil
}
