package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

var (
	playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,}$`)
	// Bare input must carry a known playlist prefix so plain words are
	// not taken for ids.
	bareIDPattern = regexp.MustCompile(`^(PL|UU|OL|FL|RD|LL|WL|UL|PU)[A-Za-z0-9_-]+$`)
)

// ParsePlaylistID returns the playlist id from a pasted link such as
// https://www.youtube.com/playlist?list=PL123 or from a bare id.
func ParsePlaylistID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", shared.ErrInvalidPlaylistURL)
	}

	if bareIDPattern.MatchString(input) {
		return input, nil
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidPlaylistURL, input)
	}

	id := u.Query().Get("list")
	if !playlistIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q has no list parameter", shared.ErrInvalidPlaylistURL, input)
	}
	return id, nil
}

// PlaylistURL is the canonical watch page for a playlist id.
func PlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + url.QueryEscape(id)
}

// PlaylistClient implements [PlaylistService] over HTTP.
type PlaylistClient struct {
	client *Client
}

func NewPlaylistClient(client *Client) *PlaylistClient {
	return &PlaylistClient{client: client}
}

// PlaylistInfo calls GET /youtube/playlist-info.
func (p *PlaylistClient) PlaylistInfo(ctx context.Context, playlistID string) (*models.PlaylistInfo, error) {
	if !playlistIDPattern.MatchString(playlistID) {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidPlaylistURL, playlistID)
	}

	var info models.PlaylistInfo
	path := "/youtube/playlist-info?" + url.Values{"playlistId": {playlistID}}.Encode()
	if err := p.client.Get(ctx, path, &info); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return nil, err
	}

	info.PlaylistID = playlistID
	return &info, nil
}
