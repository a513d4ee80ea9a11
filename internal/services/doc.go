// Package services talks to the game catalog backend.
//
// # Client
//
// [Client] is the JSON transport shared by every service. Each request carries
// an X-Request-ID header so backend logs can be matched to CLI runs. Non-2xx
// responses become a [*StatusError] which unwraps to [shared.ErrAPIRequest];
// the detail is read from the body's "detail" or "message" field when present.
//
// When a token is configured, [NewHTTPClient] returns an [oauth2] client that
// attaches it as a bearer token to every request.
//
// # Catalog
//
// [CatalogClient] implements [CatalogService]:
//   - POST /game          {name}
//   - POST /game-series   {name, gameNames}
//   - GET  /game/all      {gameSeries, games}
//
// # Playlists
//
// [PlaylistClient] implements [PlaylistService] over
// GET /youtube/playlist-info?playlistId=ID. [ParsePlaylistID] accepts either
// a pasted YouTube link or a bare playlist id.
//
// # Error Handling
//
//   - [shared.ErrAPIRequest] : non-2xx response or transport failure
//   - [shared.ErrTimeout] : request deadline exceeded
//   - [shared.ErrServiceUnavailable] : backend answered 502/503/504
//   - [shared.ErrPlaylistNotFound] : playlist-info answered 404
//   - [shared.ErrInvalidPlaylistURL] : input is neither a link nor an id
package services
