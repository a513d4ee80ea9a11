package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/gamelog/internal/catalog"
	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/formatter"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	FormView
	PlaylistView
)

var (
	sortCycle   = []catalog.SortKey{catalog.SortNone, catalog.SortName, catalog.SortStatus, catalog.SortID}
	filterCycle = append([]models.Status{""}, models.Statuses...)
)

// Options configures [NewModel].
type Options struct {
	Engine   *tasks.Engine
	Logger   *log.Logger
	Playlist tasks.PlaylistLengthOpts
	// MaxHistory bounds the form's undo stack; zero keeps every step.
	MaxHistory int
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine *tasks.Engine
	logger *log.Logger
	width  int
	height int

	catalogList list.Model
	entries     []catalog.Entry
	filterIdx   int
	sortIdx     int
	loading     bool
	flash       string

	form *form

	playlistInput  textinput.Model
	playlistOpts   tasks.PlaylistLengthOpts
	playlistReport *tasks.PlaylistLengthReport
	measuring      bool

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Games"
	l.SetShowHelp(false)

	pi := newInput("playlist link or id, several separated by spaces")
	pi.Width = 72

	return &Model{
		ctx:           ctx,
		view:          CatalogView,
		engine:        opts.Engine,
		logger:        logger,
		catalogList:   l,
		form:          newForm(editor.New(editor.WithMaxHistory(opts.MaxHistory))),
		playlistInput: pi,
		playlistOpts:  opts.Playlist,
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init initializes the TUI by syncing the catalog.
func (m *Model) Init() tea.Cmd {
	return m.syncCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.catalogList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case CatalogView:
			return m.handleCatalogKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case PlaylistView:
			return m.handlePlaylistKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == CatalogView {
		var cmd tea.Cmd
		m.catalogList, cmd = m.catalogList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogSynced:
		data := msg.data.(catalogSynced)
		m.loading = false
		if data.err != nil {
			m.logger.Error("catalog sync failed", "error", data.err)
			m.err = data.err
		} else {
			m.err = nil
		}
		if data.result != nil {
			m.entries = data.result.Entries
		}
		return m, m.applyView()

	case MsgDraftSubmitted:
		data := msg.data.(draftSubmitted)
		m.form.submitting = false
		m.form.project()
		if data.err != nil {
			m.logger.Error("submit failed", "name", data.draft.MainName, "error", data.err)
			m.form.err = data.err
			return m, nil
		}
		m.logger.Info("submitted", "name", data.draft.MainName, "games", len(data.draft.GameNames()))
		m.flash = fmt.Sprintf("Added %s", data.draft.MainName)
		m.view = CatalogView
		return m, m.syncCatalog()

	case MsgPlaylistsMeasured:
		data := msg.data.(playlistsMeasured)
		m.measuring = false
		m.playlistReport = data.report
		m.err = data.err
		if data.err != nil {
			m.logger.Error("playlist lookup failed", "error", data.err)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catalogList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.catalogList, cmd = m.catalogList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.flash = ""
		m.view = FormView
		m.form.project()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.playlist):
		m.view = PlaylistView
		m.err = nil
		m.playlistInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.filter):
		m.filterIdx = (m.filterIdx + 1) % len(filterCycle)
		return m, m.applyView()
	case key.Matches(msg, m.keys.sort):
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		return m, m.applyView()
	case key.Matches(msg, m.keys.refresh):
		return m, m.syncCatalog()
	}

	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	if key.Matches(msg, m.keys.back) {
		m.form.ed.Reset()
		m.form.focus = editor.MainFocus
		m.form.err = nil
		m.form.project()
		m.view = CatalogView
		return m, nil
	}

	cmd, submit := m.form.update(msg, m.keys)
	if submit {
		m.form.submitting = true
		return m, m.submitDraft()
	}
	return m, cmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = CatalogView
		m.err = nil
		m.playlistInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		inputs := strings.Fields(m.playlistInput.Value())
		if len(inputs) == 0 || m.measuring {
			return m, nil
		}
		m.measuring = true
		m.err = nil
		return m, m.measurePlaylists(inputs)
	}

	var cmd tea.Cmd
	m.playlistInput, cmd = m.playlistInput.Update(msg)
	return m, cmd
}

// applyView re-filters and re-sorts the entries into the list.
func (m *Model) applyView() tea.Cmd {
	f := catalog.Filter{}
	if s := filterCycle[m.filterIdx]; s != "" {
		f.Statuses = []models.Status{s}
	}
	entries := catalog.Sort(f.Apply(m.entries), sortCycle[m.sortIdx], false)
	return m.catalogList.SetItems(entryItems(entries))
}

func (m *Model) syncCatalog() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	m.loading = true
	return func() tea.Msg {
		result, err := m.engine.Sync(m.ctx, nil)
		return catalogSyncedMsg(result, err)
	}
}

// submitDraft confirms the editor off the event loop. Keys are ignored until
// the result arrives, so nothing else touches the editor meanwhile.
func (m *Model) submitDraft() tea.Cmd {
	ed := m.form.ed
	draft := ed.Draft()
	var sub editor.Submitter
	if m.engine != nil {
		sub = m.engine
	}
	return func() tea.Msg {
		return draftSubmittedMsg(draft, ed.Confirm(m.ctx, sub))
	}
}

func (m *Model) measurePlaylists(inputs []string) tea.Cmd {
	opts := m.playlistOpts
	return func() tea.Msg {
		if m.engine == nil {
			return playlistsMeasuredMsg(nil, fmt.Errorf("no backend configured"))
		}
		report, err := m.engine.PlaylistLengths(m.ctx, nil, inputs, opts)
		return playlistsMeasuredMsg(report, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CatalogView:
		return m.renderCatalog()
	case FormView:
		return m.form.view(m.keys.formHelp(), m.help.ShortHelpView)
	case PlaylistView:
		return m.renderPlaylist()
	default:
		return ""
	}
}

func (m *Model) renderCatalog() string {
	var status []string
	if s := filterCycle[m.filterIdx]; s != "" {
		status = append(status, "filter: "+s.Label())
	}
	if k := sortCycle[m.sortIdx]; k != catalog.SortNone {
		status = append(status, "sort: "+string(k))
	}
	counts := catalog.Counts(m.entries)
	for _, s := range models.Statuses {
		if n := counts[s]; n > 0 {
			status = append(status, fmt.Sprintf("%s %d", styles.Status(s), n))
		}
	}

	var line string
	switch {
	case m.loading:
		line = styles.warn.Render("Syncing catalog...")
	case m.err != nil:
		line = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.flash != "":
		line = styles.ok.Render("✓ " + m.flash)
	}

	helpView := m.help.ShortHelpView(m.keys.catalogHelp())
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", m.catalogList.View(), styles.help.Render(strings.Join(status, " · ")), line, helpView)
}

func (m *Model) renderPlaylist() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Playlist length"))
	b.WriteString("\n")
	b.WriteString(m.playlistInput.View())
	b.WriteString("\n\n")

	switch {
	case m.measuring:
		b.WriteString(styles.warn.Render("Looking up playlists..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.playlistReport != nil:
		b.WriteString(renderReport(m.playlistReport))
	}

	enter := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "look up"))
	back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{enter, back}))
	return b.String()
}

func renderReport(r *tasks.PlaylistLengthReport) string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.Err != nil {
			b.WriteString(styles.err.Render(fmt.Sprintf("✗ %s: %v", res.Input, res.Err)))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(formatter.PlaylistSummary(styles.ok.Render(res.PlaylistID), *res.Info))
		b.WriteString("\n")
	}
	if r.Succeeded > 1 {
		b.WriteString(formatter.PlaylistSummary(styles.ok.Render("All playlists"), r.Total))
	}
	return b.String()
}
