// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [CatalogView] : the catalog list with status glyphs, status filter and sort cycling
//  2. [FormView] : the bulk add form for a game or a series of games
//  3. [PlaylistView] : playlist length lookup
//
// The add form is a projection of an [editor.Editor]. Every key either runs an
// editor operation (navigation, masks, undo/redo, clear, confirm) or edits the
// focused text input, whose value is written back to the editor. After each
// operation the inputs are rebuilt from the editor state, so the editor stays
// the single source of truth.
//
// Backend calls run as [tea.Cmd]s and report back through the Msg union type.
package ui
