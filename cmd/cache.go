package main

import (
	"context"
	"errors"
	"time"

	"github.com/desertthunder/gamelog/internal/catalog"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheSync fetches the catalog and stores it for offline listing.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.cache()
	if err != nil {
		return err
	}
	r.engine.SetCache(repo)

	r.logger.Info("syncing catalog", "database", r.config.Database.Path)

	progressCh, stop := r.progressPrinter(false)
	result, err := r.engine.Sync(ctx, progressCh)
	stop()
	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Catalog Cached")
	r.writePlain("Games:  %d\n", result.Record.GameCount)
	r.writePlain("Series: %d\n", result.Record.SeriesCount)
	r.writePlain("Synced: %s\n", result.Record.SyncedAt.Local().Format(time.DateTime))
	r.writePlainln("Browse offline with 'gamelog games list --cached'.")
	return nil
}

// CacheShow describes the cached catalog without calling the API.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.cache()
	if err != nil {
		return err
	}

	rec, err := repo.LastSynced()
	if errors.Is(err, shared.ErrCacheEmpty) {
		r.writePlain("Cache is empty. Run 'gamelog cache sync' to fill it.\n")
		return nil
	} else if err != nil {
		return err
	}

	c, err := repo.Load()
	if err != nil {
		return err
	}
	counts := catalog.Counts(catalog.BuildEntries(c))

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"syncId":      rec.ID,
			"syncedAt":    rec.SyncedAt,
			"gameCount":   rec.GameCount,
			"seriesCount": rec.SeriesCount,
			"statuses":    counts,
		}, true)
	}

	r.writePlainHeader("Catalog Cache")
	r.writePlain("Database: %s\n", r.config.Database.Path)
	r.writePlain("Synced:   %s (%s ago)\n", rec.SyncedAt.Local().Format(time.DateTime), time.Since(rec.SyncedAt).Round(time.Second))
	r.writePlain("Games:    %d\n", rec.GameCount)
	r.writePlain("Series:   %d\n", rec.SeriesCount)
	for _, s := range models.Statuses {
		if n := counts[s]; n > 0 {
			r.writePlain("  %s %-12s %d\n", s.Glyph(), s.Label()+":", n)
		}
	}
	return nil
}

// cacheCommand handles the local catalog cache.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cache the catalog locally for offline listing",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Fetch the catalog and replace the cached copy",
				Action: r.CacheSync,
			},
			{
				Name:  "show",
				Usage: "Show when the cache was last synced and what it holds",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheShow,
			},
		},
	}
}

