package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogSynced MsgKind = iota
	MsgDraftSubmitted
	MsgPlaylistsMeasured
)

type catalogSynced struct {
	result *tasks.SyncResult
	err    error
}

type draftSubmitted struct {
	draft editor.Draft
	err   error
}

type playlistsMeasured struct {
	report *tasks.PlaylistLengthReport
	err    error
}

// catalogSyncedMsg is the constructor for [MsgCatalogSynced]
func catalogSyncedMsg(result *tasks.SyncResult, err error) Msg {
	return Msg{kind: MsgCatalogSynced, data: catalogSynced{result, err}}
}

// draftSubmittedMsg is the constructor for [MsgDraftSubmitted]
func draftSubmittedMsg(d editor.Draft, err error) Msg {
	return Msg{kind: MsgDraftSubmitted, data: draftSubmitted{d, err}}
}

// playlistsMeasuredMsg is the constructor for [MsgPlaylistsMeasured]
func playlistsMeasuredMsg(report *tasks.PlaylistLengthReport, err error) Msg {
	return Msg{kind: MsgPlaylistsMeasured, data: playlistsMeasured{report, err}}
}
