// Package repositories implements the SQLite cache of the remote catalog.
//
// [CatalogRepository] stores the last response of GET /game/all so the
// catalog can be listed and exported without reaching the backend. A sync
// replaces every cached row in one transaction and records a sync_log row;
// the newest sync_log row dates the cache.
//
// Row order is kept in a position column so a reload yields the same order
// the backend returned.
package repositories
