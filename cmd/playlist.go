package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gamelog/internal/formatter"
	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/desertthunder/gamelog/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistLength reports how long it takes to watch one or more playlists.
func (r *Runner) PlaylistLength(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("%w: at least one playlist link or id is required", shared.ErrMissingArgument)
	}
	useJSON := cmd.Bool("json")

	opts := tasks.PlaylistLengthOpts{
		NumWorkers: r.config.Playlist.Workers,
		RateLimit:  r.config.Playlist.RateLimit,
	}
	if n := cmd.Int("workers"); n > 0 {
		opts.NumWorkers = n
	}

	r.logger.Info("measuring playlists", "count", len(inputs), "workers", opts.NumWorkers)

	progressCh, stop := r.progressPrinter(useJSON || len(inputs) == 1)
	report, err := r.engine.PlaylistLengths(ctx, progressCh, inputs, opts)
	stop()
	if report == nil {
		return err
	}

	if useJSON {
		if jerr := r.writeJSON(playlistReportJSON(report), cmd.Bool("pretty")); jerr != nil {
			return jerr
		}
	} else {
		r.writePlaylistReport(report)
	}

	if err != nil {
		return err
	}
	if report.Succeeded == 0 {
		return fmt.Errorf("%w: no playlist could be measured", shared.ErrAPIRequest)
	}
	return nil
}

func (r *Runner) writePlaylistReport(report *tasks.PlaylistLengthReport) {
	for _, res := range report.Results {
		if res.Err != nil {
			continue
		}
		r.writePlain("\n%s", formatter.PlaylistSummary(res.PlaylistID, *res.Info))
	}

	if report.Succeeded > 1 {
		r.writePlain("\n")
		r.writePlain("%s", formatter.PlaylistSummary(fmt.Sprintf("All %d playlists", report.Succeeded), report.Total))
	}

	if report.Failed > 0 {
		r.writePlain("\nFailed to measure %d playlists:\n", report.Failed)
		for _, res := range report.Results {
			if res.Err != nil {
				r.writePlain("  - %s: %v\n", res.Input, res.Err)
			}
		}
	}
}

type playlistResultJSON struct {
	Input                string `json:"input"`
	PlaylistID           string `json:"playlistId,omitempty"`
	VideoCount           int    `json:"videoCount"`
	TotalDurationSeconds int    `json:"totalDurationSeconds"`
	Error                string `json:"error,omitempty"`
}

type playlistReport struct {
	Results              []playlistResultJSON `json:"results"`
	Succeeded            int                  `json:"succeeded"`
	Failed               int                  `json:"failed"`
	VideoCount           int                  `json:"videoCount"`
	TotalDurationSeconds int                  `json:"totalDurationSeconds"`
}

func playlistReportJSON(report *tasks.PlaylistLengthReport) playlistReport {
	out := playlistReport{
		Results:              make([]playlistResultJSON, 0, len(report.Results)),
		Succeeded:            report.Succeeded,
		Failed:               report.Failed,
		VideoCount:           report.Total.VideoCount,
		TotalDurationSeconds: report.Total.TotalDurationSeconds,
	}
	for _, res := range report.Results {
		row := playlistResultJSON{Input: res.Input, PlaylistID: res.PlaylistID}
		if res.Info != nil {
			row.VideoCount = res.Info.VideoCount
			row.TotalDurationSeconds = res.Info.TotalDurationSeconds
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		out.Results = append(out.Results, row)
	}
	return out
}

// playlistCommand handles let's-play playlist helpers.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist helpers",
		Commands: []*cli.Command{
			{
				Name:      "length",
				Usage:     "Show how long it takes to watch playlists",
				ArgsUsage: "<link or id>...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent lookups (default from config)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.PlaylistLength,
			},
		},
	}
}
