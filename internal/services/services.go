package services

import (
	"context"

	"github.com/desertthunder/gamelog/internal/models"
)

// CatalogService creates and lists games and series.
type CatalogService interface {
	// CreateGame adds a standalone game.
	CreateGame(ctx context.Context, name string) error

	// CreateSeries adds a series together with its games.
	CreateSeries(ctx context.Context, req models.SeriesRequest) error

	// ListAll returns every series and game known to the backend.
	ListAll(ctx context.Context) (*models.Catalog, error)
}

// PlaylistService looks up YouTube playlist statistics.
type PlaylistService interface {
	PlaylistInfo(ctx context.Context, playlistID string) (*models.PlaylistInfo, error)
}

var (
	_ CatalogService  = (*CatalogClient)(nil)
	_ PlaylistService = (*PlaylistClient)(nil)
)
