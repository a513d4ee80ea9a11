package tasks

import (
	"fmt"

	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Phase identifies the stage an operation is in.
type Phase int

const (
	FetchCatalog Phase = iota
	CacheCatalog
	LookupPlaylists
	SubmitDrafts
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case CacheCatalog:
		return "cache_catalog"
	case LookupPlaylists:
		return "lookup_playlists"
	case SubmitDrafts:
		return "submit_drafts"
	default:
		return ""
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching catalog...",
	}
}

func fetchedCatalogUpdate(c *models.Catalog) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d games in %d series", len(c.Games), len(c.GameSeries)),
		Data:    c,
	}
}

func cacheCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheCatalog,
		Step:    1,
		Total:   1,
		Message: "Writing catalog cache...",
	}
}

func playlistDoneUpdate(step, total int, res PlaylistLengthResult) ProgressUpdate {
	if res.Err != nil {
		return ProgressUpdate{
			Phase:   LookupPlaylists,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Input, res.Err),
		}
	}
	return ProgressUpdate{
		Phase:   LookupPlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d videos, %s)", step, total, res.PlaylistID, res.Info.VideoCount, shared.FormatDuration(res.Info.TotalDurationSeconds)),
		Data:    res.Info,
	}
}

func submitDraftUpdate(step, total int, d editor.Draft, err error) ProgressUpdate {
	kind := "game"
	if d.IsSeries() {
		kind = fmt.Sprintf("series, %d games", len(d.GameNames()))
	}
	if err != nil {
		return ProgressUpdate{
			Phase:   SubmitDrafts,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, d.MainName, err),
		}
	}
	return ProgressUpdate{
		Phase:   SubmitDrafts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, d.MainName, kind),
	}
}
