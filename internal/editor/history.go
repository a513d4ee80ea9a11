package editor

// History is a linear undo/redo stack of snapshots.
//
// A zero max keeps every entry; otherwise the oldest undo entry is evicted once
// max is reached.
type History[S any] struct {
	undo []S
	redo []S
	max  int
}

// NewHistory creates a History bounded to max undo entries (0 for unbounded).
func NewHistory[S any](max int) *History[S] {
	if max < 0 {
		max = 0
	}
	return &History[S]{max: max}
}

// Push records the state preceding a mutation and drops any redo entries.
func (h *History[S]) Push(state S) {
	if h.max > 0 && len(h.undo) >= h.max {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, state)
	h.redo = nil
}

// Undo pops the most recent snapshot and stashes current for [History.Redo].
func (h *History[S]) Undo(current S) (S, bool) {
	if len(h.undo) == 0 {
		var zero S
		return zero, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last, true
}

// Redo is the mirror of [History.Undo].
func (h *History[S]) Redo(current S) (S, bool) {
	if len(h.redo) == 0 {
		var zero S
		return zero, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}

// Clear empties both stacks.
func (h *History[S]) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History[S]) CanUndo() bool { return len(h.undo) > 0 }
func (h *History[S]) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History[S]) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
