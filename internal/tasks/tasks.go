package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/gamelog/internal/catalog"
	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/repositories"
	"github.com/desertthunder/gamelog/internal/services"
	"github.com/desertthunder/gamelog/internal/shared"
)

// CatalogCache stores catalog snapshots, usually a [repositories.CatalogRepository].
type CatalogCache interface {
	ReplaceAll(c *models.Catalog) (*repositories.SyncRecord, error)
}

// SyncResult is the outcome of [Engine.Sync].
type SyncResult struct {
	Catalog *models.Catalog
	Entries []catalog.Entry
	Record  *repositories.SyncRecord // nil when no cache is configured
}

// Engine orchestrates catalog operations on top of the backend services.
type Engine struct {
	games     services.CatalogService
	playlists services.PlaylistService
	cache     CatalogCache
}

var _ editor.Submitter = (*Engine)(nil)

// NewEngine creates an Engine. Either service may be nil; operations that need
// a missing one fail with [shared.ErrServiceUnavailable].
func NewEngine(games services.CatalogService, playlists services.PlaylistService) *Engine {
	return &Engine{games: games, playlists: playlists}
}

// SetCache enables caching of synced catalogs.
func (e *Engine) SetCache(cache CatalogCache) {
	e.cache = cache
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Submit sends a confirmed draft to the backend: a series when the draft has
// game names, otherwise a single game.
func (e *Engine) Submit(ctx context.Context, d editor.Draft) error {
	if e.games == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	if d.IsSeries() {
		return e.games.CreateSeries(ctx, models.SeriesRequest{Name: d.MainName, GameNames: d.GameNames()})
	}
	return e.games.CreateGame(ctx, d.MainName)
}

// Sync fetches the whole catalog and, when a cache is set, replaces the cached copy.
func (e *Engine) Sync(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.games == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchCatalogUpdate())
	c, err := e.games.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	e.sendProgress(progress, fetchedCatalogUpdate(c))

	result := &SyncResult{Catalog: c, Entries: catalog.BuildEntries(c)}
	if e.cache == nil {
		return result, nil
	}

	e.sendProgress(progress, cacheCatalogUpdate())
	rec, err := e.cache.ReplaceAll(c)
	if err != nil {
		return result, fmt.Errorf("catalog fetched but cache update failed: %w", err)
	}
	result.Record = rec
	return result, nil
}
