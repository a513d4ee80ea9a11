// Package editor implements the bulk-entry editor behind the Add Game form.
//
// An [Editor] holds one main name and an ordered list of [Field] values. The
// main name becomes the game (or series) name; each field becomes one game of
// the series. Every operation runs to completion synchronously and the editor
// is not safe for concurrent use.
//
// # Masks
//
// A [Mask] rewrites field values from the main name, the current value and the
// field's position, e.g. [MaskRomanColon] turns ["a", "b"] under "Foo" into
// ["Foo: a", "Foo II: b"]. [Editor.ApplyMask] rewrites every field,
// [Editor.ApplyMaskAt] a single one.
//
// # History
//
// Structural operations ([Editor.AddField], [Editor.RemoveField], masks,
// [Editor.ClearFields]) push the pre-mutation snapshot onto a [History] and
// clear the redo stack. Text edits are grouped into edit sessions: the first
// [Editor.SetMainName] or [Editor.SetFieldValue] opens a session and
// [Editor.CommitEdit] records it as a single entry, so typing a name does not
// produce one undo step per keystroke. Operations that change nothing record
// nothing.
//
// # Confirming
//
// [Editor.Confirm] hands a [Draft] to a [Submitter] and resets the editor on
// success. It refuses to run while the main name is blank.
//
// # Keyboard navigation
//
// [Editor.Navigate] implements the focus contract of the form: Enter moves to
// the next field or appends one, arrows move between fields and the main name
// ([MainFocus]), Backspace on an empty field removes it.
package editor
