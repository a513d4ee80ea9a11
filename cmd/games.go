package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/gamelog/internal/catalog"
	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/formatter"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/desertthunder/gamelog/internal/tasks"
	"github.com/urfave/cli/v3"
)

const noMask = -1

// GamesList prints the catalog, optionally filtered and sorted.
func (r *Runner) GamesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	filter, err := parseFilter(cmd)
	if err != nil {
		return err
	}
	key, err := catalog.ParseSortKey(cmd.String("sort"))
	if err != nil {
		return err
	}

	entries, err := r.loadEntries(ctx, cmd.Bool("cached"), useJSON)
	if err != nil {
		return err
	}
	entries = catalog.Sort(filter.Apply(entries), key, cmd.Bool("desc"))

	if useJSON {
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	data, err := formatter.ExportToText(entries)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// GamesAdd creates a game, or a series when --game is given at least once.
func (r *Runner) GamesAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: game or series name is required", shared.ErrMissingArgument)
	}

	ed := editor.New()
	ed.SetMainName(name)
	for _, g := range cmd.StringSlice("game") {
		ed.SetFieldValue(ed.AddField(), g)
	}

	if idx := cmd.Int("mask"); idx != noMask {
		mask, err := editor.ParseMask(idx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		ed.ApplyMask(mask)
	}

	draft := ed.Draft()
	if cmd.Bool("dry-run") {
		r.writeDraft(draft)
		return nil
	}

	r.logger.Info("creating entry", "name", draft.MainName, "series", draft.IsSeries())
	if err := ed.Confirm(ctx, r.engine); err != nil {
		return fmt.Errorf("failed to create %q: %w", draft.MainName, err)
	}

	if draft.IsSeries() {
		r.writePlain("✓ Created series %s with %d games\n", draft.MainName, len(draft.GameNames()))
	} else {
		r.writePlain("✓ Created game %s\n", draft.MainName)
	}
	return nil
}

// GamesImport submits every block of an import file.
func (r *Runner) GamesImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: import file is required", shared.ErrMissingArgument)
	}

	var mask *editor.Mask
	if idx := cmd.Int("mask"); idx != noMask {
		m, err := editor.ParseMask(idx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		mask = &m
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	drafts, err := tasks.ParseDrafts(f, mask)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	r.logger.Info("importing drafts", "file", path, "count", len(drafts), "dry_run", dryRun)

	if dryRun {
		for _, d := range drafts {
			r.writeDraft(d)
		}
		r.writePlainln("%d entries would be created", len(drafts))
		return nil
	}

	progressCh, stop := r.progressPrinter(false)
	report, err := r.engine.Import(ctx, progressCh, drafts, tasks.ImportOpts{RateLimit: r.config.Playlist.RateLimit})
	stop()

	if report != nil {
		r.writePlain("\n")
		r.writePlainHeader("Import Complete")
		r.writePlain("Created: %d\n", report.Created)
		r.writePlain("Failed:  %d\n", report.Failed)
		for _, res := range report.Results {
			if res.Err != nil {
				r.writePlain("  - %s: %v\n", res.Draft.MainName, res.Err)
			}
		}
		if report.Created > 0 {
			r.writePlainln("Run 'gamelog cache sync' to refresh the offline catalog.")
		}
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d entries failed", shared.ErrAPIRequest, report.Failed, len(drafts))
	}
	return nil
}

// GamesExport writes the catalog to a file in one of the export formats.
func (r *Runner) GamesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	filter, err := parseFilter(cmd)
	if err != nil {
		return err
	}
	key, err := catalog.ParseSortKey(cmd.String("sort"))
	if err != nil {
		return err
	}

	entries, err := r.loadEntries(ctx, cmd.Bool("cached"), false)
	if err != nil {
		return err
	}
	entries = catalog.Sort(filter.Apply(entries), key, cmd.Bool("desc"))

	path, err := formatter.WriteExport(entries, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("catalog exported", "path", path, "format", format, "entries", len(entries))
	r.writePlain("✓ Exported %d entries to %s\n", len(entries), path)
	return nil
}

// loadEntries fetches the live catalog, or reads the cached copy when cached is set.
func (r *Runner) loadEntries(ctx context.Context, cached, quiet bool) ([]catalog.Entry, error) {
	if cached {
		repo, err := r.cache()
		if err != nil {
			return nil, err
		}
		c, err := repo.Load()
		if err != nil {
			if errors.Is(err, shared.ErrCacheEmpty) {
				return nil, fmt.Errorf("%w: run 'gamelog cache sync' first", err)
			}
			return nil, err
		}
		return catalog.BuildEntries(c), nil
	}

	progressCh, stop := r.progressPrinter(true)
	result, err := r.engine.Sync(ctx, progressCh)
	stop()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("catalog fetched", "games", len(result.Catalog.Games), "series", len(result.Catalog.GameSeries))
	return result.Entries, nil
}

func (r *Runner) writeDraft(d editor.Draft) {
	if !d.IsSeries() {
		r.writePlain("game   %s\n", d.MainName)
		return
	}
	r.writePlain("series %s\n", d.MainName)
	for _, g := range d.GameNames() {
		r.writePlain("       - %s\n", g)
	}
}

func parseFilter(cmd *cli.Command) (catalog.Filter, error) {
	filter := catalog.Filter{Query: cmd.String("query")}
	for _, raw := range cmd.StringSlice("status") {
		s, err := models.ParseStatus(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		filter.Statuses = append(filter.Statuses, s)
	}
	return filter, nil
}

func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "status",
			Usage: "Only show entries with this status (repeatable)",
		},
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "Only show entries whose name or games contain the query",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort by name, status or id (default: API order)",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Reverse the sort order",
		},
		&cli.BoolFlag{
			Name:  "cached",
			Usage: "Read the locally cached catalog instead of calling the API",
		},
	}
}

func maskFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "mask",
		Aliases: []string{"m"},
		Usage:   "Apply a name mask (0-6) to every game name",
		Value:   noMask,
	}
}

// gamesCommand handles catalog listing, creation, import and export.
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "games",
		Aliases: []string{"g"},
		Usage:   "List, add, import and export games and series",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List games and series",
				Flags: append(viewFlags(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				),
				Action: r.GamesList,
			},
			{
				Name:  "add",
				Usage: "Add a game, or a series with --game",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "game",
						Aliases: []string{"g"},
						Usage:   "Game in the series (repeatable)",
					},
					maskFlag(),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print what would be created without calling the API",
					},
				},
				Action: r.GamesAdd,
			},
			{
				Name:  "import",
				Usage: "Add every game and series listed in a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					maskFlag(),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print what would be created without calling the API",
					},
				},
				Action: r.GamesImport,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to a file",
				Flags: append(viewFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: txt, csv, markdown or json",
						Value:   string(formatter.FormatText),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: games.<ext>)",
					},
				),
				Action: r.GamesExport,
			},
		},
	}
}
