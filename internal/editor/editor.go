package editor

import (
	"context"
	"errors"
	"slices"
	"strings"
)

var (
	// ErrEmptyMainName blocks [Editor.Confirm] while the main name is blank.
	ErrEmptyMainName = errors.New("main name is empty")
	// ErrNoSubmitter is returned when [Editor.Confirm] has nowhere to send the draft.
	ErrNoSubmitter = errors.New("no submitter configured")
)

// Field is one entry of the bulk form. IDs are never reused within an editor's lifetime.
type Field struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// State is a full snapshot of the editor contents.
type State struct {
	MainName string  `json:"mainName"`
	Fields   []Field `json:"fields"`
}

func (s State) clone() State {
	return State{MainName: s.MainName, Fields: slices.Clone(s.Fields)}
}

func (s State) equal(o State) bool {
	return s.MainName == o.MainName && slices.Equal(s.Fields, o.Fields)
}

// Draft is what a confirmed form submits.
type Draft struct {
	MainName string  `json:"name"`
	Fields   []Field `json:"fields"`
}

// GameNames returns the trimmed, non-blank field values in order.
func (d Draft) GameNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if v := strings.TrimSpace(f.Value); v != "" {
			names = append(names, v)
		}
	}
	return names
}

// IsSeries reports whether the draft describes a series rather than a single game.
func (d Draft) IsSeries() bool {
	return len(d.GameNames()) > 0
}

// Submitter receives confirmed drafts, e.g. the create-game / create-series API.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) error
}

// SubmitterFunc adapts a function to [Submitter].
type SubmitterFunc func(ctx context.Context, draft Draft) error

func (f SubmitterFunc) Submit(ctx context.Context, draft Draft) error { return f(ctx, draft) }

// Editor holds the main name, the ordered fields and their undo/redo history.
type Editor struct {
	state   State
	nextID  int
	history *History[State]
	session *State
}

// Option configures an [Editor].
type Option func(*Editor)

// WithMaxHistory bounds the undo stack to n entries.
func WithMaxHistory(n int) Option {
	return func(e *Editor) { e.history = NewHistory[State](n) }
}

// New creates an empty editor.
func New(opts ...Option) *Editor {
	e := &Editor{nextID: 1, history: NewHistory[State](0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// mutate runs fn against the live state and records the previous snapshot if anything changed.
func (e *Editor) mutate(fn func(s *State)) bool {
	e.CommitEdit()
	before := e.state.clone()
	fn(&e.state)
	if e.state.equal(before) {
		return false
	}
	e.history.Push(before)
	return true
}

// AddField appends an empty field and returns its identifier.
func (e *Editor) AddField() int {
	id := e.nextID
	e.nextID++
	e.mutate(func(s *State) {
		s.Fields = append(s.Fields, Field{ID: id})
	})
	return id
}

// RemoveField removes the field with the given id. Unknown ids are ignored.
func (e *Editor) RemoveField(id int) bool {
	idx := e.Index(id)
	if idx < 0 {
		return false
	}
	return e.mutate(func(s *State) {
		s.Fields = slices.Delete(s.Fields, idx, idx+1)
	})
}

// BeginEdit opens an edit session if none is open.
func (e *Editor) BeginEdit() {
	if e.session != nil {
		return
	}
	snapshot := e.state.clone()
	e.session = &snapshot
}

// CommitEdit closes the open edit session, recording one history entry if it changed anything.
func (e *Editor) CommitEdit() bool {
	if e.session == nil {
		return false
	}
	before := *e.session
	e.session = nil
	if e.state.equal(before) {
		return false
	}
	e.history.Push(before)
	return true
}

// DiscardEdit closes the open edit session and restores the state it started from.
func (e *Editor) DiscardEdit() {
	if e.session == nil {
		return
	}
	e.state = *e.session
	e.session = nil
}

// Editing reports whether an edit session is open.
func (e *Editor) Editing() bool { return e.session != nil }

// SetMainName replaces the main name inside the current edit session.
func (e *Editor) SetMainName(value string) {
	e.BeginEdit()
	e.state.MainName = value
}

// SetFieldValue replaces a field value inside the current edit session. Unknown ids are ignored.
func (e *Editor) SetFieldValue(id int, value string) bool {
	idx := e.Index(id)
	if idx < 0 {
		return false
	}
	e.BeginEdit()
	e.state.Fields[idx].Value = value
	return true
}

// ApplyMask rewrites every field with m as a single history entry.
func (e *Editor) ApplyMask(m Mask) bool {
	main := e.state.MainName
	return e.mutate(func(s *State) {
		for i := range s.Fields {
			s.Fields[i].Value = m.Apply(main, s.Fields[i].Value, i)
		}
	})
}

// ApplyMaskAt rewrites only the field at index. Out-of-range indices are ignored.
func (e *Editor) ApplyMaskAt(m Mask, index int) bool {
	if index < 0 || index >= len(e.state.Fields) {
		return false
	}
	main := e.state.MainName
	return e.mutate(func(s *State) {
		s.Fields[index].Value = m.Apply(main, s.Fields[index].Value, index)
	})
}

// ClearFields empties every field value, keeping the fields themselves.
func (e *Editor) ClearFields() bool {
	return e.mutate(func(s *State) {
		for i := range s.Fields {
			s.Fields[i].Value = ""
		}
	})
}

// Undo restores the previous snapshot.
func (e *Editor) Undo() bool {
	e.CommitEdit()
	prev, ok := e.history.Undo(e.state)
	if !ok {
		return false
	}
	e.state = prev
	return true
}

// Redo re-applies the most recently undone snapshot.
func (e *Editor) Redo() bool {
	e.CommitEdit()
	next, ok := e.history.Redo(e.state)
	if !ok {
		return false
	}
	e.state = next
	return true
}

// Reset empties the editor and its history.
func (e *Editor) Reset() {
	e.state = State{}
	e.nextID = 1
	e.session = nil
	e.history.Clear()
}

// CanConfirm reports whether the main name holds anything but whitespace.
func (e *Editor) CanConfirm() bool {
	return strings.TrimSpace(e.state.MainName) != ""
}

// Draft assembles the current contents for submission.
func (e *Editor) Draft() Draft {
	return Draft{
		MainName: strings.TrimSpace(e.state.MainName),
		Fields:   slices.Clone(e.state.Fields),
	}
}

// Confirm submits the draft and resets the editor on success.
//
// A submitter error is returned as is and leaves the editor untouched.
func (e *Editor) Confirm(ctx context.Context, sub Submitter) error {
	e.CommitEdit()
	if !e.CanConfirm() {
		return ErrEmptyMainName
	}
	if sub == nil {
		return ErrNoSubmitter
	}
	if err := sub.Submit(ctx, e.Draft()); err != nil {
		return err
	}
	e.Reset()
	return nil
}

func (e *Editor) MainName() string { return e.state.MainName }
func (e *Editor) Len() int         { return len(e.state.Fields) }
func (e *Editor) CanUndo() bool    { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool    { return e.history.CanRedo() }

// Fields returns a copy of the fields in order.
func (e *Editor) Fields() []Field { return slices.Clone(e.state.Fields) }

// State returns a copy of the full editor state.
func (e *Editor) State() State { return e.state.clone() }

// Values returns the field values in order.
func (e *Editor) Values() []string {
	values := make([]string, len(e.state.Fields))
	for i, f := range e.state.Fields {
		values[i] = f.Value
	}
	return values
}

// Field returns the field at index.
func (e *Editor) Field(index int) (Field, bool) {
	if index < 0 || index >= len(e.state.Fields) {
		return Field{}, false
	}
	return e.state.Fields[index], true
}

// Index returns the position of the field with id, or -1.
func (e *Editor) Index(id int) int {
	return slices.IndexFunc(e.state.Fields, func(f Field) bool { return f.ID == id })
}

// HistoryDepth returns the sizes of the undo and redo stacks.
func (e *Editor) HistoryDepth() (undo, redo int) {
	return e.history.Depth()
}
