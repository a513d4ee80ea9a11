package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gamelog/internal/services"
	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/urfave/cli/v3"
)

var openBrowser = shared.OpenBrowser

// resolveLink maps a bookmark label or a playlist link/id onto a web address.
func (r *Runner) resolveLink(input string) (string, error) {
	if l, ok := r.config.FindLink(input); ok {
		return l.URL, nil
	}
	id, err := services.ParsePlaylistID(input)
	if err != nil {
		return "", fmt.Errorf("%w: %q is neither a bookmark nor a playlist", shared.ErrInvalidArgument, input)
	}
	return services.PlaylistURL(id), nil
}

// Links lists the configured bookmarks. Arguments are bookmark labels or
// playlists; each one is printed and, with --open, opened in the browser.
func (r *Runner) Links(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	open := cmd.Bool("open")

	if len(inputs) == 0 {
		if open {
			return fmt.Errorf("%w: --open needs a bookmark label or playlist", shared.ErrMissingArgument)
		}
		if len(r.config.Links) == 0 {
			r.writePlain("No bookmarks configured. Add [[links]] entries to %s.\n", defaultConfigPath)
			return nil
		}
		r.writePlainHeader("Links")
		for _, l := range r.config.Links {
			r.writePlain("%-16s %s\n", l.Label+":", l.URL)
		}
		return nil
	}

	var failed int
	for _, in := range inputs {
		link, err := r.resolveLink(in)
		if err != nil {
			r.logger.Warn("skipping input", "input", in, "error", err)
			failed++
			continue
		}

		r.writePlain("%s\n", link)
		if !open {
			continue
		}
		if err := openBrowser(link); err != nil {
			r.logger.Warn("failed to open browser", "link", link, "error", err)
			failed++
		}
	}

	if failed == len(inputs) {
		return fmt.Errorf("%w: no usable links", shared.ErrInvalidArgument)
	}
	return nil
}

// linksCommand prints and opens bookmarks and playlist pages.
func linksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "links",
		Usage:     "List bookmarks, or print and open bookmarks and playlist pages",
		ArgsUsage: "[label | playlist link or id]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open each given bookmark or playlist page in the browser",
			},
		},
		Action: r.Links,
	}
}
