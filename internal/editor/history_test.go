package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory[int](0)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Undo(0)
	assert.False(t, ok, "undo on empty history")

	h.Push(1)
	h.Push(2)

	got, ok := h.Undo(3)
	assert.True(t, ok)
	assert.Equal(t, 2, got)
	assert.True(t, h.CanRedo())

	got, ok = h.Redo(2)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	undo, redo := h.Depth()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestHistory_PushClearsRedo(t *testing.T) {
	h := NewHistory[string](0)
	h.Push("a")
	h.Undo("b")
	assert.True(t, h.CanRedo())

	h.Push("c")
	assert.False(t, h.CanRedo())
	_, ok := h.Redo("c")
	assert.False(t, ok)
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory[int](2)
	h.Push(1)
	h.Push(2)
	h.Push(3)

	undo, _ := h.Depth()
	assert.Equal(t, 2, undo)

	got, _ := h.Undo(4)
	assert.Equal(t, 3, got)
	got, _ = h.Undo(3)
	assert.Equal(t, 2, got)
	_, ok := h.Undo(2)
	assert.False(t, ok, "oldest entry was evicted")
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory[int](-5)
	h.Push(1)
	h.Undo(2)
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
