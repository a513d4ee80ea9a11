package editor

// Key is a navigation key understood by [Editor.Navigate].
type Key int

const (
	KeyEnter Key = iota
	KeyUp
	KeyDown
	KeyBackspace
)

// MainFocus is the focus index of the main-name input.
const MainFocus = -1

// Navigate applies key to the input at focus and returns the new focus.
//
// Enter may append a field and Backspace on an empty field removes it; handled
// is false when the key should fall through to the input itself.
func (e *Editor) Navigate(focus int, key Key) (next int, handled bool) {
	n := len(e.state.Fields)
	if focus < MainFocus || n == 0 {
		focus = MainFocus
	} else if focus >= n {
		focus = n - 1
	}

	if focus == MainFocus {
		switch key {
		case KeyEnter:
			if n == 0 {
				e.AddField()
			}
			return 0, true
		case KeyDown:
			if n == 0 {
				return MainFocus, true
			}
			return 0, true
		case KeyUp:
			return MainFocus, true
		}
		return MainFocus, false
	}

	switch key {
	case KeyEnter:
		if focus == n-1 {
			e.AddField()
		}
		return focus + 1, true
	case KeyUp:
		return focus - 1, true
	case KeyDown:
		if focus+1 < n {
			return focus + 1, true
		}
		return focus, true
	case KeyBackspace:
		f := e.state.Fields[focus]
		if f.Value != "" {
			return focus, false
		}
		e.RemoveField(f.ID)
		switch {
		case focus > 0:
			return focus - 1, true
		case e.Len() > 0:
			return 0, true
		default:
			return MainFocus, true
		}
	}
	return focus, false
}
