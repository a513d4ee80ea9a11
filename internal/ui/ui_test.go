package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/gamelog/internal/editor"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/services"
	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/desertthunder/gamelog/internal/tasks"
	tu "github.com/desertthunder/gamelog/internal/testing"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func newTestModel(svc services.CatalogService, pl services.PlaylistService) *Model {
	return NewModel(context.Background(), Options{Engine: tasks.NewEngine(svc, pl)})
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// resolve runs cmd synchronously and feeds the message back into the model.
func resolve(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, next := m.Update(msg)
	return next
}

func TestFormProjection(t *testing.T) {
	m := newTestModel(&tu.MockCatalogService{}, nil)
	press(m, runes("a"))
	require.Equal(t, FormView, m.view)

	press(m, runes("Halo"), keyOf(tea.KeyEnter), runes("CE"), keyOf(tea.KeyEnter), runes("2"))

	ed := m.form.ed
	assert.Equal(t, "Halo", ed.MainName())
	assert.Equal(t, []string{"CE", "2"}, ed.Values())
	assert.Equal(t, 1, m.form.focus)
	require.Len(t, m.form.inputs, 2)
	assert.Equal(t, "2", m.form.inputs[1].Value())
	assert.True(t, m.form.inputs[1].Focused())
	assert.False(t, m.form.main.Focused())

	t.Run("apply mask to all fields", func(t *testing.T) {
		press(m, keyOf(tea.KeyCtrlA))
		assert.Equal(t, []string{"Halo: CE", "Halo: 2"}, ed.Values())
		assert.Equal(t, "Halo: CE", m.form.inputs[0].Value())
	})

	t.Run("undo and redo reproject inputs", func(t *testing.T) {
		press(m, keyOf(tea.KeyCtrlZ))
		assert.Equal(t, []string{"CE", "2"}, ed.Values())
		assert.Equal(t, "CE", m.form.inputs[0].Value())

		press(m, keyOf(tea.KeyCtrlY))
		assert.Equal(t, []string{"Halo: CE", "Halo: 2"}, ed.Values())
	})

	t.Run("mask cycling and apply one", func(t *testing.T) {
		press(m, keyOf(tea.KeyCtrlZ), keyOf(tea.KeyCtrlN), keyOf(tea.KeyCtrlN), keyOf(tea.KeyCtrlE))
		assert.Equal(t, editor.MaskPrefix, m.form.mask)
		assert.Equal(t, []string{"CE", "2 Halo"}, ed.Values())

		press(m, keyOf(tea.KeyCtrlP))
		assert.Equal(t, editor.MaskSpace, m.form.mask)
	})

	t.Run("clear keeps fields", func(t *testing.T) {
		press(m, keyOf(tea.KeyCtrlL))
		assert.Equal(t, []string{"", ""}, ed.Values())
		assert.Len(t, m.form.inputs, 2)
	})

	t.Run("backspace on empty field removes it", func(t *testing.T) {
		press(m, keyOf(tea.KeyBackspace))
		assert.Equal(t, 1, ed.Len())
		assert.Len(t, m.form.inputs, 1)
		assert.Equal(t, 0, m.form.focus)

		press(m, keyOf(tea.KeyBackspace))
		assert.Equal(t, 0, ed.Len())
		assert.Equal(t, editor.MainFocus, m.form.focus)
		assert.True(t, m.form.main.Focused())
	})

	t.Run("backspace on main name edits text", func(t *testing.T) {
		press(m, keyOf(tea.KeyBackspace))
		assert.Equal(t, "Hal", ed.MainName())
	})
}

func TestFormHistoryLimit(t *testing.T) {
	tc := []struct {
		name       string
		maxHistory int
		wantUndo   int
	}{
		{name: "bounded", maxHistory: 2, wantUndo: 2},
		{name: "unbounded", maxHistory: 0, wantUndo: 6},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(context.Background(), Options{
				Engine:     tasks.NewEngine(&tu.MockCatalogService{}, nil),
				MaxHistory: tt.maxHistory,
			})
			press(m, runes("a"), runes("Halo"), keyOf(tea.KeyEnter), runes("CE"), keyOf(tea.KeyEnter), runes("2"), keyOf(tea.KeyCtrlA))
			require.Equal(t, []string{"Halo: CE", "Halo: 2"}, m.form.ed.Values())
			assert.Equal(t, tt.wantUndo, m.form.undo)

			for range tt.wantUndo + 1 {
				press(m, keyOf(tea.KeyCtrlZ))
			}
			assert.False(t, m.form.ed.CanUndo())
			assert.Equal(t, tt.wantUndo, m.form.redo)
		})
	}
}

func TestFormRevertEdit(t *testing.T) {
	m := newTestModel(&tu.MockCatalogService{}, nil)
	press(m, runes("a"), runes("Zelda"))
	assert.True(t, m.form.editing)
	assert.Contains(t, m.View(), "· editing")

	press(m, keyOf(tea.KeyEnter), runes("Ocarina"))
	require.Equal(t, []string{"Ocarina"}, m.form.ed.Values())

	press(m, keyOf(tea.KeyCtrlR))
	assert.Equal(t, []string{""}, m.form.ed.Values())
	assert.Equal(t, "", m.form.inputs[0].Value())
	assert.Equal(t, "Zelda", m.form.ed.MainName())
	assert.False(t, m.form.editing)
	assert.NotContains(t, m.View(), "· editing")

	t.Run("revert without open edit is a no-op", func(t *testing.T) {
		undo := m.form.undo
		press(m, keyOf(tea.KeyCtrlR))
		assert.Equal(t, []string{""}, m.form.ed.Values())
		assert.Equal(t, undo, m.form.undo)
	})
}

func TestFormNavigation(t *testing.T) {
	m := newTestModel(&tu.MockCatalogService{}, nil)
	press(m, runes("a"), runes("Zelda"))

	press(m, keyOf(tea.KeyDown))
	assert.Equal(t, editor.MainFocus, m.form.focus, "down without fields stays on the main name")

	press(m, keyOf(tea.KeyEnter), keyOf(tea.KeyEnter), keyOf(tea.KeyEnter))
	assert.Equal(t, 3, m.form.ed.Len())
	assert.Equal(t, 2, m.form.focus)

	press(m, keyOf(tea.KeyUp), keyOf(tea.KeyUp))
	assert.Equal(t, 0, m.form.focus)

	press(m, keyOf(tea.KeyShiftTab))
	assert.Equal(t, editor.MainFocus, m.form.focus)

	press(m, keyOf(tea.KeyTab), keyOf(tea.KeyTab), keyOf(tea.KeyCtrlX))
	assert.Equal(t, 2, m.form.ed.Len())
	assert.Equal(t, 0, m.form.focus)
}

func TestFormTypingIsOneUndoStep(t *testing.T) {
	m := newTestModel(&tu.MockCatalogService{}, nil)
	press(m, runes("a"), runes("H"), runes("a"), runes("d"), runes("e"), runes("s"))
	require.Equal(t, "Hades", m.form.ed.MainName())

	press(m, keyOf(tea.KeyEnter))
	press(m, keyOf(tea.KeyCtrlZ))
	assert.Equal(t, "Hades", m.form.ed.MainName(), "undo removes the added field first")
	assert.Equal(t, 0, m.form.ed.Len())

	press(m, keyOf(tea.KeyCtrlZ))
	assert.Empty(t, m.form.ed.MainName())
	assert.Empty(t, m.form.main.Value())
}

func TestFormConfirm(t *testing.T) {
	t.Run("empty main name is rejected", func(t *testing.T) {
		m := newTestModel(&tu.MockCatalogService{}, nil)
		cmd := press(m, runes("a"), runes("   "), keyOf(tea.KeyCtrlS))

		assert.Nil(t, cmd)
		assert.ErrorIs(t, m.form.err, editor.ErrEmptyMainName)
		assert.False(t, m.form.submitting)
	})

	t.Run("series is submitted and form resets", func(t *testing.T) {
		svc := &tu.MockCatalogService{}
		m := newTestModel(svc, nil)
		press(m, runes("a"), runes("Halo"), keyOf(tea.KeyEnter), runes("CE"), keyOf(tea.KeyEnter))

		cmd := press(m, keyOf(tea.KeyCtrlS))
		assert.True(t, m.form.submitting)
		assert.Nil(t, press(m, runes("x")), "keys are ignored while submitting")

		next := resolve(t, m, cmd)
		assert.NotNil(t, next, "successful submit triggers a catalog sync")
		assert.Equal(t, CatalogView, m.view)
		assert.Equal(t, "Added Halo", m.flash)
		assert.Equal(t, []models.SeriesRequest{{Name: "Halo", GameNames: []string{"CE"}}}, svc.Series)
		assert.Empty(t, m.form.ed.MainName())
		assert.Empty(t, m.form.inputs)
		assert.Equal(t, editor.MainFocus, m.form.focus)
	})

	t.Run("failed submit keeps the editor", func(t *testing.T) {
		svc := &tu.MockCatalogService{CreateErr: shared.ErrAPIRequest}
		m := newTestModel(svc, nil)
		press(m, runes("a"), runes("Celeste"))

		resolve(t, m, press(m, keyOf(tea.KeyCtrlS)))
		assert.Equal(t, FormView, m.view)
		assert.ErrorIs(t, m.form.err, shared.ErrAPIRequest)
		assert.Equal(t, "Celeste", m.form.ed.MainName())
		assert.Equal(t, "Celeste", m.form.main.Value())
		assert.Contains(t, m.View(), "API request failed")
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newTestModel(&tu.MockCatalogService{}, nil)
		press(m, runes("a"), runes("Hades"), keyOf(tea.KeyEnter), keyOf(tea.KeyEsc))

		assert.Equal(t, CatalogView, m.view)
		assert.Empty(t, m.form.ed.MainName())
		assert.Equal(t, 0, m.form.ed.Len())
		assert.False(t, m.form.ed.CanUndo())
	})
}

func TestCatalogView(t *testing.T) {
	seriesID := 7
	svc := &tu.MockCatalogService{Catalog: &models.Catalog{
		GameSeries: []models.GameSeries{{ID: 7, Name: "Halo"}},
		Games: []models.Game{
			{ID: 1, Name: "Celeste", Status: models.StatusInProgress},
			{ID: 2, Name: "Halo 1", Status: models.StatusComplete, GameSeriesID: &seriesID},
			{ID: 3, Name: "Antichamber", Status: models.StatusComplete},
		},
	}}
	m := newTestModel(svc, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	resolve(t, m, m.Init())
	require.Len(t, m.catalogList.Items(), 3)
	assert.False(t, m.loading)

	t.Run("status filter cycles", func(t *testing.T) {
		press(m, runes("f"))
		assert.Equal(t, models.StatusComplete, filterCycle[m.filterIdx])
		assert.Len(t, m.catalogList.Items(), 2)
		assert.Contains(t, m.View(), "filter: Complete")

		for range len(filterCycle) - 1 {
			press(m, runes("f"))
		}
		assert.Len(t, m.catalogList.Items(), 3)
	})

	t.Run("sort cycles", func(t *testing.T) {
		press(m, runes("s"))
		items := m.catalogList.Items()
		assert.Equal(t, "Antichamber", items[0].(entryItem).entry.Name)
		assert.Equal(t, "Halo", items[2].(entryItem).entry.Name)
	})

	t.Run("sync error is shown", func(t *testing.T) {
		svc.ListErr = shared.ErrServiceUnavailable
		defer func() { svc.ListErr = nil }()

		resolve(t, m, press(m, runes("r")))
		assert.ErrorIs(t, m.err, shared.ErrServiceUnavailable)
		assert.Len(t, m.catalogList.Items(), 3, "previous entries stay listed")
	})

	t.Run("quit", func(t *testing.T) {
		cmd := press(m, runes("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestPlaylistView(t *testing.T) {
	pl := &tu.MockPlaylistService{Infos: map[string]models.PlaylistInfo{
		"PLone": {VideoCount: 4, TotalDurationSeconds: 1200},
	}}
	m := newTestModel(&tu.MockCatalogService{}, pl)

	press(m, runes("p"))
	require.Equal(t, PlaylistView, m.view)

	press(m, runes("https://www.youtube.com/playlist?list=PLone"))
	cmd := press(m, keyOf(tea.KeyEnter))
	assert.True(t, m.measuring)

	resolve(t, m, cmd)
	assert.False(t, m.measuring)
	require.NotNil(t, m.playlistReport)
	assert.Equal(t, 1, m.playlistReport.Succeeded)
	assert.Contains(t, m.View(), "Total:    20:00")

	press(m, keyOf(tea.KeyEsc))
	assert.Equal(t, CatalogView, m.view)
}
