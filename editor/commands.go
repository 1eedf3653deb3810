package editor

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/richtext"
	"github.com/npillmayer/richtext/formats"
	"github.com/npillmayer/richtext/inline"
)

// Bold toggles format bold for the selection.
func (e *Editor) Bold() { e.format(formats.Bold, nil) }

// Code toggles format code for the selection.
func (e *Editor) Code() { e.format(formats.Code, nil) }

// Italic toggles format italic for the selection.
func (e *Editor) Italic() { e.format(formats.Italic, nil) }

// StrikeThrough toggles format strikeThrough for the selection.
func (e *Editor) StrikeThrough() { e.format(formats.StrikeThrough, nil) }

// Subscript toggles format subscript for the selection.
func (e *Editor) Subscript() { e.format(formats.Subscript, nil) }

// Superscript toggles format superscript for the selection.
func (e *Editor) Superscript() { e.format(formats.Superscript, nil) }

// ToggleFormat toggles an arbitrary format for the selection. A caret
// selection is left untouched.
func (e *Editor) ToggleFormat(name string, attrs richtext.Attributes) {
	e.format(name, attrs)
}

func (e *Editor) format(name string, attrs richtext.Attributes) {
	start, length := e.sel.Start, e.sel.Length
	if length == 0 {
		return
	}
	action := richtext.ActionAddFormat
	if e.doc.HasFormat(name, start, length) {
		action = richtext.ActionRemoveFormat
	}
	e.doc.ToggleFormat(name, start, length, attrs)
	e.update(action)
	e.Select(start, length)
}

// Link makes the selection a link to href.
func (e *Editor) Link(href string) {
	start, length := e.sel.Start, e.sel.Length
	if length == 0 || href == "" {
		return
	}
	e.doc.AddFormat(formats.Link, start, length, richtext.Attributes{formats.Href: href})
	e.update(richtext.ActionAddFormat)
	e.Select(start, length)
}

// Unlink removes links from the selection.
func (e *Editor) Unlink() {
	start, length := e.sel.Start, e.sel.Length
	e.doc.RemoveFormat(formats.Link, start, length)
	e.update(richtext.ActionRemoveFormat)
	e.Select(start, length)
}

// Insert inserts text before position at (richtext.End appends) and places
// the caret after it. If the resulting text fires a trigger, its callback is
// called.
func (e *Editor) Insert(text string, at int) {
	if text == "" {
		return
	}
	if at < 0 || at > e.doc.Length() {
		at = e.doc.Length()
	}
	trigger, fired := e.doc.InsertText(text, at)
	e.update(richtext.ActionInsertText)
	e.Select(at+runeCount(text), 0)
	if fired {
		if fn := e.triggers[trigger]; fn != nil {
			tracer().Debugf("editor: trigger %q", trigger)
			fn(e)
		}
	}
}

// Type replaces the selection by text, as typing on a keyboard does.
func (e *Editor) Type(text string) {
	if !e.sel.IsCaret() {
		e.Delete()
	}
	e.Insert(text, e.sel.Start)
}

// Delete removes the selection. For a caret, the grapheme before the caret
// is removed, as by a backspace key.
func (e *Editor) Delete() {
	start, length := e.sel.Start, e.sel.Length
	if length == 0 {
		length = e.graphemeBefore(start)
		start -= length
	}
	if length == 0 {
		return
	}
	e.doc.RemoveText(start, length)
	e.update(richtext.ActionRemoveText)
	e.Select(start, 0)
}

// DeleteForward removes the selection. For a caret, the grapheme after the
// caret is removed.
func (e *Editor) DeleteForward() {
	start, length := e.sel.Start, e.sel.Length
	if length == 0 {
		length = e.graphemeAfter(start)
	}
	if length == 0 {
		return
	}
	e.doc.RemoveText(start, length)
	e.update(richtext.ActionRemoveText)
	e.Select(start, 0)
}

// Enter inserts a line break at the caret. It reports false if line breaks
// are disabled.
func (e *Editor) Enter() bool {
	if !e.breaks {
		return false
	}
	e.Insert("\n", e.sel.Start)
	return true
}

// Paste inserts markup at the caret. Block structure is flattened first,
// the caret is placed after the pasted content.
func (e *Editor) Paste(markup string) error {
	flat, err := inline.Normalize(markup)
	if err != nil {
		return err
	}
	chars, err := inline.ParseHTML(flat, e.doc.Registry())
	if err != nil {
		return err
	}
	if len(chars) == 0 {
		return nil
	}
	at := e.sel.Start
	e.doc.Inject(chars, at)
	e.update(richtext.ActionInject)
	e.Select(at+len(chars), 0)
	return nil
}

// Undo reverts the most recent change.
func (e *Editor) Undo() bool {
	return e.doc.Undo()
}

// Redo re-applies the most recently undone change.
func (e *Editor) Redo() bool {
	return e.doc.Redo()
}

// --- Dispatch --------------------------------------------------------------

// Command dispatches a command by name, as bound to a toolbar button or a
// keyboard shortcut. Names are the ones of the editor's methods with a lower
// case initial, e.g. "bold" or "deleteForward". Arguments are
//
//	insert   text [at]
//	type     text
//	link     href
//	paste    markup
//	select   start [length]
func (e *Editor) Command(name string, args ...string) error {
	switch name {
	case "bold":
		e.Bold()
	case "code":
		e.Code()
	case "italic":
		e.Italic()
	case "strikeThrough":
		e.StrikeThrough()
	case "subscript":
		e.Subscript()
	case "superscript":
		e.Superscript()
	case "link":
		if len(args) < 1 {
			return fmt.Errorf("%w: link needs an href", richtext.ErrIllegalArguments)
		}
		e.Link(args[0])
	case "unlink":
		e.Unlink()
	case "insert":
		if len(args) < 1 {
			return fmt.Errorf("%w: insert needs a text", richtext.ErrIllegalArguments)
		}
		at := e.sel.Start
		if len(args) > 1 {
			var err error
			if at, err = intArg(args[1]); err != nil {
				return err
			}
		}
		e.Insert(args[0], at)
	case "type":
		if len(args) < 1 {
			return fmt.Errorf("%w: type needs a text", richtext.ErrIllegalArguments)
		}
		e.Type(args[0])
	case "delete":
		e.Delete()
	case "deleteForward":
		e.DeleteForward()
	case "enter":
		e.Enter()
	case "paste":
		if len(args) < 1 {
			return fmt.Errorf("%w: paste needs markup", richtext.ErrIllegalArguments)
		}
		return e.Paste(args[0])
	case "undo":
		e.Undo()
	case "redo":
		e.Redo()
	case "select":
		if len(args) < 1 {
			return fmt.Errorf("%w: select needs a start position", richtext.ErrIllegalArguments)
		}
		start, err := intArg(args[0])
		if err != nil {
			return err
		}
		length := 0
		if len(args) > 1 {
			if length, err = intArg(args[1]); err != nil {
				return err
			}
		}
		e.Select(start, length)
	case "selectAll":
		e.SelectAll()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return nil
}

func intArg(s string) (int, error) {
	n, err := strconv.Atoi(trimArg(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", richtext.ErrIllegalArguments, s)
	}
	return n, nil
}
