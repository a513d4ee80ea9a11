// Package models defines the data transfer objects exchanged with the remote catalog API.
//
//   - [Game] : a single catalog entry with its play [Status]
//   - [GameSeries] : a named group of games sharing a main name
//   - [Catalog] : the response of the list-all endpoint
//   - [SeriesRequest] : the create-series request body
//   - [PlaylistInfo] : video count and total duration of a let's-play playlist
package models
