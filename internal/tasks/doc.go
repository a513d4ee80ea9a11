// Package tasks runs the multi-step catalog operations behind the CLI and TUI.
//
// # Core Operations
//
// [Engine] wraps the backend services and the optional catalog cache:
//
//  1. [Engine.Submit] : sends an editor draft to the backend
//     - drafts with game names create a series
//     - drafts without create a single game
//
//  2. [Engine.Sync] : fetches the catalog and refreshes the cache
//
//  3. [Engine.PlaylistLengths] : looks up many playlists at once
//     - inputs are links or bare ids; unparsable inputs fail individually
//     - lookups run on a bounded worker pool behind a rate limiter
//     - totals only include successful lookups
//
//  4. [Engine.Import] : submits drafts read by [ParseDrafts] one by one
//
// # Progress Reporting
//
// Operations take an optional ProgressUpdate channel. Sends use select with
// default so a slow or absent reader never stalls the operation.
package tasks
