/*
Package editor implements the command layer of a rich text editor.

An Editor couples a document with a selection and offers the commands a
toolbar or a keyboard handler would issue: toggling formats, creating links,
typing, deleting, pasting and navigating the history. The selection takes the
place of a native (DOM) selection; commands operate on it and move it to where
a user would expect the caret afterwards.

Every change of the document is published as a Change to subscribers, which
may re-render the document's markup:

	ed, _ := editor.New("Hello <strong>world</strong>")
	changes, _ := ed.Subscribe(ctx, 8)
	ed.Select(0, 5)
	ed.Bold()
	fmt.Println((<-changes).HTML)   // <strong>Hello world</strong>

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package editor

import (
	"context"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/richtext"
	"github.com/npillmayer/richtext/formats"
	"github.com/npillmayer/richtext/inline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

// ErrUnknownCommand is returned by Command for names it cannot dispatch.
const ErrUnknownCommand = richtext.Error("unknown editor command")

// Selection is a range of characters. A selection of length 0 is a caret
// position.
type Selection struct {
	Start  int
	Length int
}

// End returns the position after the selection.
func (sel Selection) End() int {
	return sel.Start + sel.Length
}

// IsCaret is true for an empty selection.
func (sel Selection) IsCaret() bool {
	return sel.Length == 0
}

// Change is published after every modification of the document.
type Change struct {
	Action richtext.Action
	HTML   string
}

// Editor is a document with a selection and a set of commands.
//
// Like a document, an editor is meant to be driven by a single caller.
// Subscribers receive changes asynchronously.
type Editor struct {
	doc      *richtext.Document
	sel      Selection
	breaks   bool
	triggers map[string]func(*Editor)
	cast     *caster.Caster
}

// --- Options ---------------------------------------------------------------

type options struct {
	registry *richtext.Registry
	limit    int
	breaks   bool
	triggers []richtext.Trigger
	actions  map[string]func(*Editor)
}

// Option configures an editor.
type Option func(*options)

// WithRegistry sets the format registry. The default is formats.Default().
func WithRegistry(reg *richtext.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithHistoryLimit sets the number of undo steps.
func WithHistoryLimit(limit int) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithBreaks enables or disables line breaks by Enter. Breaks are enabled by
// default.
func WithBreaks(breaks bool) Option {
	return func(o *options) {
		o.breaks = breaks
	}
}

// WithTrigger registers fn to be called whenever typing leaves the document
// with text pattern. For identical patterns the first registration wins.
func WithTrigger(pattern string, fn func(*Editor)) Option {
	return func(o *options) {
		if _, exists := o.actions[pattern]; exists {
			return
		}
		o.triggers = append(o.triggers, richtext.Trigger{Pattern: pattern, Name: pattern})
		o.actions[pattern] = fn
	}
}

var setupGraphemes sync.Once

// New creates an editor for a fragment of markup. The caret is placed at the
// end of the content.
func New(markup string, opts ...Option) (*Editor, error) {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	o := options{breaks: true, actions: map[string]func(*Editor){}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = formats.Default()
	}
	chars, err := inline.ParseHTML(markup, o.registry)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		breaks:   o.breaks,
		triggers: o.actions,
		cast:     caster.New(nil),
	}
	e.doc = richtext.New(
		richtext.WithRegistry(o.registry),
		richtext.WithHistoryLimit(o.limit),
		richtext.WithContent(chars),
		richtext.WithTriggers(o.triggers...),
		richtext.OnUndo(e.onHistory),
		richtext.OnRedo(e.onHistory),
	)
	e.sel = Selection{Start: e.doc.Length()}
	return e, nil
}

// Document returns the document of the editor.
func (e *Editor) Document() *richtext.Document {
	return e.doc
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	return e.sel
}

// Select sets the selection. Values are clamped to the document.
func (e *Editor) Select(start, length int) {
	n := e.doc.Length()
	if start < 0 {
		start = 0
	} else if start > n {
		start = n
	}
	if length < 0 {
		length = 0
	} else if length > n-start {
		length = n - start
	}
	e.sel = Selection{Start: start, Length: length}
}

// SelectAll selects the complete document.
func (e *Editor) SelectAll() {
	e.Select(0, e.doc.Length())
}

// ActiveFormats returns the formats applied to the whole selection.
func (e *Editor) ActiveFormats() []string {
	return e.doc.ActiveFormats(e.sel.Start, e.sel.Length)
}

// ActiveLink returns the attributes of the last link within the selection.
func (e *Editor) ActiveLink() (richtext.Attributes, bool) {
	return e.doc.ActiveLink(e.sel.Start, e.sel.Length)
}

// ToHTML renders the complete document.
func (e *Editor) ToHTML() string {
	return e.doc.ToHTML(0, richtext.ToEnd)
}

// ToText returns the plain text of the document.
func (e *Editor) ToText() string {
	return e.doc.ToText(0, richtext.ToEnd)
}

// ToJSON serializes the document.
func (e *Editor) ToJSON() string {
	return e.doc.ToJSON(0, richtext.ToEnd)
}

// --- Change notification ---------------------------------------------------

// Subscribe returns a channel of changes, buffering up to capacity changes.
// The channel is closed when ctx is done or the editor is closed. Subscribers
// have to drain their channel, otherwise publishing blocks.
func (e *Editor) Subscribe(ctx context.Context, capacity uint) (<-chan Change, bool) {
	sub, ok := e.cast.Sub(ctx, capacity)
	if !ok {
		return nil, false
	}
	changes := make(chan Change, capacity)
	go func() {
		defer close(changes)
		for msg := range sub {
			if c, ok := msg.(Change); ok {
				changes <- c
			}
		}
	}()
	return changes, true
}

// Close stops change notification and closes all subscriber channels.
func (e *Editor) Close() {
	e.cast.Close()
}

func (e *Editor) update(action richtext.Action) {
	markup := e.ToHTML()
	tracer().Debugf("editor: %s => %q", action, markup)
	e.cast.Pub(Change{Action: action, HTML: markup})
}

// onHistory moves the selection to the range reported for a recalled state.
func (e *Editor) onHistory(_ []richtext.Character, action richtext.Action, args richtext.Args) {
	if action != richtext.ActionInit {
		e.Select(args.Start, args.Length)
	} else {
		e.Select(e.sel.Start, e.sel.Length)
	}
	e.update(action)
}

// --- Graphemes -------------------------------------------------------------

// graphemeBefore returns the number of characters of the grapheme cluster
// ending at pos.
func (e *Editor) graphemeBefore(pos int) int {
	if pos <= 0 {
		return 0
	}
	gstr := grapheme.StringFromString(e.doc.ToText(0, pos))
	if gstr.Len() == 0 {
		return 1
	}
	return len([]rune(gstr.Nth(gstr.Len() - 1)))
}

// graphemeAfter returns the number of characters of the grapheme cluster
// starting at pos.
func (e *Editor) graphemeAfter(pos int) int {
	text := e.doc.ToText(pos, richtext.ToEnd)
	if text == "" {
		return 0
	}
	gstr := grapheme.StringFromString(text)
	if gstr.Len() == 0 {
		return 1
	}
	return len([]rune(gstr.Nth(0)))
}

func runeCount(s string) int {
	return len([]rune(s))
}

func trimArg(s string) string {
	return strings.TrimSpace(s)
}
