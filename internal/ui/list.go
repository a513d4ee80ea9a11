package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/gamelog/internal/catalog"
)

var _ list.Item = entryItem{}

// entryItem wraps [catalog.Entry] to implement [list.Item].
type entryItem struct {
	entry catalog.Entry
}

func (i entryItem) FilterValue() string {
	if !i.entry.IsSeries() {
		return i.entry.Name
	}
	names := make([]string, 0, len(i.entry.Games)+1)
	names = append(names, i.entry.Name)
	for _, g := range i.entry.Games {
		names = append(names, g.Name)
	}
	return strings.Join(names, " ")
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%s %s", styles.Status(i.entry.Status), i.entry.Name)
}

func (i entryItem) Description() string {
	if !i.entry.IsSeries() {
		return i.entry.Status.Label()
	}
	return fmt.Sprintf("%s • series of %d", i.entry.Status.Label(), len(i.entry.Games))
}

func entryItems(entries []catalog.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}
