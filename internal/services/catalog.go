package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

// CatalogClient implements [CatalogService] over HTTP.
type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

// CreateGame calls POST /game.
func (c *CatalogClient) CreateGame(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: game name is empty", shared.ErrInvalidInput)
	}
	return c.client.Post(ctx, "/game", models.GameRequest{Name: name}, nil)
}

// CreateSeries calls POST /game-series.
func (c *CatalogClient) CreateSeries(ctx context.Context, req models.SeriesRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("%w: series name is empty", shared.ErrInvalidInput)
	}
	if req.GameNames == nil {
		req.GameNames = []string{}
	}
	return c.client.Post(ctx, "/game-series", req, nil)
}

// ListAll calls GET /game/all.
func (c *CatalogClient) ListAll(ctx context.Context) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := c.client.Get(ctx, "/game/all", &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}
