package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/gamelog/internal/editor"
)

const inputWidth = 48

// form projects an [editor.Editor] onto text inputs.
type form struct {
	ed     *editor.Editor
	main   textinput.Model
	inputs []textinput.Model
	focus  int
	mask   editor.Mask

	submitting bool
	err        error

	// Read by view so rendering never touches the editor while a submit runs.
	title      string
	undo, redo int
	editing    bool
}

func newForm(ed *editor.Editor) *form {
	f := &form{ed: ed, focus: editor.MainFocus, main: newInput("Game or series name")}
	f.project()
	return f
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = inputWidth
	return ti
}

// project rebuilds every input from the editor state and moves input focus
// to f.focus, clamped to the current field count.
func (f *form) project() {
	if f.main.Value() != f.ed.MainName() {
		f.main.SetValue(f.ed.MainName())
	}

	values := f.ed.Values()
	if len(f.inputs) > len(values) {
		f.inputs = f.inputs[:len(values)]
	}
	for len(f.inputs) < len(values) {
		f.inputs = append(f.inputs, newInput("game name"))
	}
	for i, v := range values {
		if f.inputs[i].Value() != v {
			f.inputs[i].SetValue(v)
		}
	}

	if f.focus >= len(values) {
		f.focus = len(values) - 1
	}
	if f.focus < editor.MainFocus {
		f.focus = editor.MainFocus
	}

	f.title = "Add game"
	if d := f.ed.Draft(); d.IsSeries() {
		f.title = fmt.Sprintf("Add series (%d games)", len(d.GameNames()))
	}
	f.undo, f.redo = f.ed.HistoryDepth()
	f.editing = f.ed.Editing()

	f.main.Blur()
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	if f.focus == editor.MainFocus {
		f.main.Focus()
	} else {
		f.inputs[f.focus].Focus()
	}
}

func (f *form) navigate(k editor.Key) bool {
	next, handled := f.ed.Navigate(f.focus, k)
	if handled {
		if next != f.focus {
			f.ed.CommitEdit()
		}
		f.focus = next
	}
	return handled
}

// update applies one key press. It returns submit=true when the user asked to confirm.
func (f *form) update(msg tea.KeyMsg, keys keyMap) (cmd tea.Cmd, submit bool) {
	f.err = nil

	switch {
	case key.Matches(msg, keys.confirm):
		f.ed.CommitEdit()
		if !f.ed.CanConfirm() {
			f.err = editor.ErrEmptyMainName
			return nil, false
		}
		return nil, true
	case key.Matches(msg, keys.revert):
		f.ed.DiscardEdit()
	case key.Matches(msg, keys.undo):
		f.ed.Undo()
	case key.Matches(msg, keys.redo):
		f.ed.Redo()
	case key.Matches(msg, keys.maskNext):
		f.mask = f.mask.Next()
	case key.Matches(msg, keys.maskPrev):
		f.mask = f.mask.Prev()
	case key.Matches(msg, keys.applyAll):
		f.ed.ApplyMask(f.mask)
	case key.Matches(msg, keys.applyOne):
		if f.focus >= 0 {
			f.ed.ApplyMaskAt(f.mask, f.focus)
		}
	case key.Matches(msg, keys.clear):
		f.ed.ClearFields()
	case key.Matches(msg, keys.remove):
		if fld, ok := f.ed.Field(f.focus); ok {
			f.ed.RemoveField(fld.ID)
			if f.focus > 0 || f.ed.Len() == 0 {
				f.focus--
			}
		}
	case key.Matches(msg, keys.enter):
		f.navigate(editor.KeyEnter)
	case key.Matches(msg, keys.up):
		f.navigate(editor.KeyUp)
	case key.Matches(msg, keys.down):
		f.navigate(editor.KeyDown)
	case msg.Type == tea.KeyBackspace && f.navigate(editor.KeyBackspace):
	default:
		cmd = f.typeInto(msg)
	}

	f.project()
	return cmd, false
}

// typeInto forwards the key to the focused input and writes its value back.
func (f *form) typeInto(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == editor.MainFocus {
		f.main, cmd = f.main.Update(msg)
		if v := f.main.Value(); v != f.ed.MainName() {
			f.ed.SetMainName(v)
		}
		return cmd
	}

	fld, ok := f.ed.Field(f.focus)
	if !ok {
		return nil
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if v := f.inputs[f.focus].Value(); v != fld.Value {
		f.ed.SetFieldValue(fld.ID, v)
	}
	return cmd
}

func (f *form) view(keys []key.Binding, helpView func([]key.Binding) string) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")

	b.WriteString(f.row(editor.MainFocus, "Name", f.main.View()))
	for i := range f.inputs {
		b.WriteString(f.row(i, fmt.Sprintf("%4d", i+1), f.inputs[i].View()))
	}
	if len(f.inputs) == 0 {
		b.WriteString(styles.help.Render("      press enter to add the first game of a series"))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("undo %d · redo %d", f.undo, f.redo)
	if f.editing {
		status += " · editing"
	}
	fmt.Fprintf(&b, "\n%s %s   %s\n",
		styles.label.Render("Mask:"),
		styles.focused.Render(f.mask.Label()),
		styles.help.Render(status),
	)

	switch {
	case f.submitting:
		b.WriteString(styles.warn.Render("Submitting..."))
		b.WriteString("\n")
	case f.err != nil:
		b.WriteString(styles.err.Render(f.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpView(keys))
	return b.String()
}

func (f *form) row(idx int, label, input string) string {
	marker := "  "
	style := styles.label
	if idx == f.focus {
		marker = "› "
		style = styles.focused
	}
	return fmt.Sprintf("%s%s %s\n", marker, style.Render(label), input)
}
