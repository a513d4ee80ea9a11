package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/shared"
	"golang.org/x/time/rate"
)

// ImportOpts configures [Engine.Import].
type ImportOpts struct {
	RateLimit float64 // Submissions per second (default: 5)
	DryRun    bool    // Report what would be sent without calling the backend
}

// ImportResult is the outcome for a single draft.
type ImportResult struct {
	Draft editor.Draft
	Err   error
}

// ImportReport aggregates an import run.
type ImportReport struct {
	Results []ImportResult
	Created int
	Failed  int
}

// ParseDrafts reads the bulk import format:
//
//	# comment
//	Halo
//	Combat Evolved
//	2
//
//	Celeste
//
// Blocks are separated by blank lines. The first line of a block is the main
// name and every following line becomes a field. When mask is non-nil it is
// applied to every field of every block.
func ParseDrafts(r io.Reader, mask *editor.Mask) ([]editor.Draft, error) {
	if mask != nil && !mask.Valid() {
		return nil, fmt.Errorf("%w: %d", editor.ErrUnknownMask, int(*mask))
	}

	var (
		drafts []editor.Draft
		block  []string
	)

	flush := func() {
		if len(block) == 0 {
			return
		}
		ed := editor.New()
		ed.SetMainName(block[0])
		for _, line := range block[1:] {
			ed.SetFieldValue(ed.AddField(), line)
		}
		if mask != nil {
			ed.ApplyMask(*mask)
		}
		drafts = append(drafts, ed.Draft())
		block = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case line == "":
			flush()
		default:
			block = append(block, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drafts: %w", err)
	}
	flush()

	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no games found", shared.ErrInvalidInput)
	}
	return drafts, nil
}

// Import submits drafts one at a time under a rate limit. Failed drafts are
// recorded and the run continues; only a cancelled context stops it early.
func (e *Engine) Import(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	drafts []editor.Draft,
	opts ImportOpts,
) (*ImportReport, error) {
	if e.games == nil && !opts.DryRun {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	report := &ImportReport{Results: make([]ImportResult, 0, len(drafts))}

	for i, d := range drafts {
		if err := limiter.Wait(ctx); err != nil {
			return report, err
		}

		var err error
		if !opts.DryRun {
			err = e.Submit(ctx, d)
		}

		report.Results = append(report.Results, ImportResult{Draft: d, Err: err})
		if err != nil {
			report.Failed++
		} else {
			report.Created++
		}
		e.sendProgress(progress, submitDraftUpdate(i+1, len(drafts), d, err))
	}

	return report, nil
}
