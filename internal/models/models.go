package models

import (
	"fmt"
	"strings"
)

// Status is the play state of a game.
type Status string

const (
	StatusNone       Status = "none"
	StatusInProgress Status = "inProgress"
	StatusComplete   Status = "complete"
	StatusBad        Status = "bad"
	StatusWait       Status = "wait"
)

// Statuses lists every status in the order the status picker shows them.
var Statuses = []Status{StatusComplete, StatusBad, StatusInProgress, StatusWait, StatusNone}

var statusInfo = map[Status]struct {
	label, color, glyph string
}{
	StatusNone:       {"None", "#ffffff", "○"},
	StatusInProgress: {"In progress", "#0b79d0", "▶"},
	StatusComplete:   {"Complete", "#11c46f", "✓"},
	StatusBad:        {"Bad", "#ee204d", "✗"},
	StatusWait:       {"Waiting", "#ebeb63", "◷"},
}

// ParseStatus accepts the API spelling or a loose variant ("in-progress", "waiting", "done").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)) {
	case "", "none":
		return StatusNone, nil
	case "inprogress", "playing":
		return StatusInProgress, nil
	case "complete", "completed", "done":
		return StatusComplete, nil
	case "bad":
		return StatusBad, nil
	case "wait", "waiting":
		return StatusWait, nil
	}
	return StatusNone, fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusInfo[s]
	return ok
}

// Label is the human readable status name.
func (s Status) Label() string {
	if info, ok := statusInfo[s]; ok {
		return info.label
	}
	return string(s)
}

// Color is the hex color the status is rendered with.
func (s Status) Color() string {
	if info, ok := statusInfo[s]; ok {
		return info.color
	}
	return "#000000"
}

// Glyph is a single-cell icon for the status.
func (s Status) Glyph() string {
	if info, ok := statusInfo[s]; ok {
		return info.glyph
	}
	return " "
}

// Game is a single catalog entry.
type Game struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Status       Status `json:"status"`
	GameSeriesID *int   `json:"gameSeriesId,omitempty"`
	ThemeID      *int   `json:"themeId,omitempty"`
	StatsID      *int   `json:"statsId,omitempty"`
	ShowcaseID   *int   `json:"showcaseId,omitempty"`
}

// InSeries reports whether the game belongs to a series.
func (g Game) InSeries() bool {
	return g.GameSeriesID != nil && *g.GameSeriesID != 0
}

// GameSeries is a named group of games.
type GameSeries struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Games []Game `json:"games"`
}

// Catalog is the response body of GET /game/all.
type Catalog struct {
	GameSeries []GameSeries `json:"gameSeries"`
	Games      []Game       `json:"games"`
}

// GameRequest is the body of POST /game.
type GameRequest struct {
	Name string `json:"name"`
}

// SeriesRequest is the body of POST /game-series.
type SeriesRequest struct {
	Name      string   `json:"name"`
	GameNames []string `json:"gameNames"`
}
