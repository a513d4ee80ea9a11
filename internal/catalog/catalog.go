// Package catalog turns the flat list-all response into displayable entries
// and provides the filtering and sorting applied to them.
package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

// Kind distinguishes standalone games from series.
type Kind string

const (
	KindGame   Kind = "game"
	KindSeries Kind = "series"
)

// Entry is one row of the catalog: a standalone game or a series with its games.
//
// A series entry takes the id of the game that introduced it, so ids stay
// unique across the list and sorting by id follows first appearance.
// SeriesID keeps the series' own id.
type Entry struct {
	Kind     Kind          `json:"type"`
	ID       int           `json:"id"`
	SeriesID int           `json:"seriesId,omitempty"`
	Name     string        `json:"name"`
	Status   models.Status `json:"status"`
	Games    []models.Game `json:"games,omitempty"`
}

// IsSeries reports whether the entry groups several games.
func (e Entry) IsSeries() bool { return e.Kind == KindSeries }

// BuildEntries walks the games in API order, emitting each series once at the
// position of its first game. Games pointing at an unknown series stay standalone.
func BuildEntries(c *models.Catalog) []Entry {
	if c == nil {
		return nil
	}

	series := make(map[int]models.GameSeries, len(c.GameSeries))
	for _, s := range c.GameSeries {
		series[s.ID] = s
	}

	members := make(map[int][]models.Game)
	for _, g := range c.Games {
		if g.InSeries() {
			members[*g.GameSeriesID] = append(members[*g.GameSeriesID], g)
		}
	}

	used := make(map[int]bool)
	entries := make([]Entry, 0, len(c.Games))
	for _, g := range c.Games {
		s, known := series[seriesID(g)]
		if !g.InSeries() || !known {
			entries = append(entries, Entry{Kind: KindGame, ID: g.ID, Name: g.Name, Status: statusOf(g)})
			continue
		}
		if used[s.ID] {
			continue
		}
		used[s.ID] = true

		games := s.Games
		if len(games) == 0 {
			games = members[s.ID]
		}
		entries = append(entries, Entry{
			Kind:     KindSeries,
			ID:       g.ID,
			SeriesID: s.ID,
			Name:     s.Name,
			Status:   Rollup(games),
			Games:    slices.Clone(games),
		})
	}

	return entries
}

func seriesID(g models.Game) int {
	if g.GameSeriesID == nil {
		return 0
	}
	return *g.GameSeriesID
}

func statusOf(g models.Game) models.Status {
	if g.Status == "" {
		return models.StatusNone
	}
	return g.Status
}

// Rollup derives a series status from its games.
//
// Anything in progress wins, then anything waiting; a series finished with a
// mix of complete and bad games counts as complete.
func Rollup(games []models.Game) models.Status {
	counts := make(map[models.Status]int)
	for _, g := range games {
		counts[statusOf(g)]++
	}

	switch {
	case len(games) == 0:
		return models.StatusNone
	case counts[models.StatusInProgress] > 0:
		return models.StatusInProgress
	case counts[models.StatusWait] > 0:
		return models.StatusWait
	case counts[models.StatusComplete] == len(games):
		return models.StatusComplete
	case counts[models.StatusBad] == len(games):
		return models.StatusBad
	case counts[models.StatusComplete]+counts[models.StatusBad] == len(games):
		return models.StatusComplete
	default:
		return models.StatusNone
	}
}

// Filter narrows entries by name query and status set. Zero values match everything.
type Filter struct {
	Query    string
	Statuses []models.Status
}

func (f Filter) matches(e Entry) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, e.Status) {
		return false
	}

	q := shared.NormalizeName(f.Query)
	if q == "" || strings.Contains(shared.NormalizeName(e.Name), q) {
		return true
	}
	for _, g := range e.Games {
		if strings.Contains(shared.NormalizeName(g.Name), q) {
			return true
		}
	}
	return false
}

// Apply returns the entries matching the filter, preserving order.
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortKey selects the ordering used by [Sort].
type SortKey string

const (
	SortNone   SortKey = ""
	SortName   SortKey = "name"
	SortStatus SortKey = "status"
	SortID     SortKey = "id"
)

var statusRank = map[models.Status]int{
	models.StatusInProgress: 0,
	models.StatusWait:       1,
	models.StatusNone:       2,
	models.StatusComplete:   3,
	models.StatusBad:        4,
}

// Sort returns a stably sorted copy of entries. [SortNone] keeps API order.
func Sort(entries []Entry, key SortKey, desc bool) []Entry {
	out := slices.Clone(entries)

	var compare func(a, b Entry) int
	switch key {
	case SortName:
		compare = func(a, b Entry) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortStatus:
		compare = func(a, b Entry) int { return cmp.Compare(statusRank[a.Status], statusRank[b.Status]) }
	case SortID:
		compare = func(a, b Entry) int { return cmp.Compare(a.ID, b.ID) }
	default:
		if desc {
			slices.Reverse(out)
		}
		return out
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// Counts tallies games per status, counting each game of a series individually.
func Counts(entries []Entry) map[models.Status]int {
	counts := make(map[models.Status]int)
	for _, e := range entries {
		if !e.IsSeries() {
			counts[e.Status]++
			continue
		}
		for _, g := range e.Games {
			counts[statusOf(g)]++
		}
	}
	return counts
}

// ParseSortKey validates a sort key given on the command line.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortName, SortStatus, SortID:
		return k, nil
	}
	return SortNone, fmt.Errorf("%w: unknown sort key %q (want name, status or id)", shared.ErrInvalidFlag, s)
}
