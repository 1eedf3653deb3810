package richtext

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"unicode/utf8"

	"github.com/npillmayer/richtext/history"
)

// Action names a mutating document operation, as reported to hooks and
// stored in the history.
type Action string

// Actions of a document.
const (
	ActionInit          Action = "init"
	ActionInsertText    Action = "insertText"
	ActionRemoveText    Action = "removeText"
	ActionAddFormat     Action = "addFormat"
	ActionRemoveFormat  Action = "removeFormat"
	ActionRemoveFormats Action = "removeFormats"
	ActionAppend        Action = "append"
	ActionInject        Action = "inject"
)

// Args are the parameters of a committed action. Start and Length report the
// range affected by the action; for insertions, Start is the position right
// after the inserted text. Hosts use them to re-derive a caret position after
// undo and redo.
type Args struct {
	Text       string
	Format     string
	Attributes Attributes
	Start      int
	Length     int
	Content    []Character
}

// Hook is called with a buffer, an action and its arguments.
//
// A commit hook receives the live buffer of the commit and may alter its
// characters in place; the document adopts the altered buffer.
type Hook func(buffer []Character, action Action, args Args)

// Entry is a history entry: a snapshot of the buffer after an action.
type Entry struct {
	Snapshot []Character
	Action   Action
	Args     Args
}

// Document is an editable rich text, held as a flat sequence of characters.
//
// All range arguments denote [start, start+length). A negative length
// (ToEnd) selects everything after start. Out-of-range values are clamped,
// operations never fail. Every mutation is committed to a bounded history.
type Document struct {
	chars    []Character
	registry *Registry
	history  *history.History[*Entry]
	triggers *triggerTable
	onCommit Hook
	onUndo   Hook
	onRedo   Hook
}

// --- Options ---------------------------------------------------------------

type options struct {
	registry *Registry
	limit    int
	content  []Character
	onCommit Hook
	onUndo   Hook
	onRedo   Hook
	triggers []Trigger
}

// Option configures a document at construction time.
type Option func(*options)

// WithRegistry sets the format registry used for rendering markup.
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithHistoryLimit sets the number of undo steps (default 100).
func WithHistoryLimit(limit int) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithContent sets the initial characters of a document.
func WithContent(chars []Character) Option {
	return func(o *options) {
		o.content = chars
	}
}

// OnCommit sets a hook which is called for every committed mutation.
func OnCommit(hook Hook) Option {
	return func(o *options) {
		o.onCommit = hook
	}
}

// OnUndo sets a hook which is called after a successful undo.
func OnUndo(hook Hook) Option {
	return func(o *options) {
		o.onUndo = hook
	}
}

// OnRedo sets a hook which is called after a successful redo.
func OnRedo(hook Hook) Option {
	return func(o *options) {
		o.onRedo = hook
	}
}

// WithTriggers sets text patterns which are reported by InsertText.
// For identical patterns the first one wins.
func WithTriggers(triggers ...Trigger) Option {
	return func(o *options) {
		o.triggers = append(o.triggers, triggers...)
	}
}

// New creates a document. Without a registry, markup output carries no
// formatting tags. The initial state is remembered in the history.
func New(opts ...Option) *Document {
	o := options{limit: history.DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}
	doc := &Document{
		chars:    CloneCharacters(o.content),
		registry: o.registry,
		history:  history.New[*Entry](o.limit),
		triggers: newTriggerTable(o.triggers),
		onCommit: o.onCommit,
		onUndo:   o.onUndo,
		onRedo:   o.onRedo,
	}
	if doc.registry == nil {
		doc.registry = NewRegistry()
	}
	doc.remember(doc.chars, ActionInit, Args{})
	return doc
}

// Registry returns the format registry of the document.
func (doc *Document) Registry() *Registry {
	return doc.registry
}

// Length returns the number of characters.
func (doc *Document) Length() int {
	return len(doc.chars)
}

// LengthAfter returns the number of characters after position start.
func (doc *Document) LengthAfter(start int) int {
	return toSpan(start, ToEnd, len(doc.chars)).len()
}

// --- Mutations -------------------------------------------------------------

// InsertText inserts text before position pos (End appends). Each inserted
// character inherits the formats of the character currently at its position,
// thus typing within a formatted run extends the run.
//
// Text is inserted code point by code point, as if typed. If after any of
// these steps the complete text of the document equals one of the document's
// trigger patterns, the name of the first trigger fired is returned. The
// whole insertion is committed as a single action.
func (doc *Document) InsertText(text string, pos int) (string, bool) {
	if text == "" {
		return "", false
	}
	n := len(doc.chars)
	if pos < 0 || pos > n {
		pos = n
	}
	buf := make([]Character, 0, n+utf8.RuneCountInString(text))
	buf = append(buf, doc.chars[:pos]...)
	tail := doc.chars[pos:]
	trigger, fired := "", false
	for _, r := range text {
		format := Format{}
		if len(tail) > 0 {
			format = tail[0].Format.Clone()
		}
		buf = append(buf, Character{Text: r, Format: format})
		if !fired && len(buf)+len(tail) <= doc.triggers.longest {
			step := append(buf[:len(buf):len(buf)], tail...)
			trigger, fired = doc.triggers.match(step)
		}
	}
	buf = append(buf, tail...)
	caret := pos + utf8.RuneCountInString(text)
	doc.commit(buf, ActionInsertText, Args{Text: text, Start: caret})
	if fired {
		tracer().Debugf("insertion of %q fired trigger %s", text, trigger)
	}
	return trigger, fired
}

// RemoveText removes length characters (at least one) starting at pos.
// A pos of End removes the last character.
func (doc *Document) RemoveText(pos, length int) {
	n := len(doc.chars)
	if pos < 0 {
		pos = n - 1
	}
	if length < 1 {
		length = 1
	}
	spn := toSpan(pos, length, n)
	buf := make([]Character, 0, n-spn.len())
	buf = append(buf, doc.chars[:spn.l]...)
	buf = append(buf, doc.chars[spn.r:]...)
	doc.commit(buf, ActionRemoveText, Args{Start: spn.l, Length: spn.len()})
}

// AddFormat sets format name on every character in range. A nil attrs value
// makes it a marker format.
func (doc *Document) AddFormat(name string, start, length int, attrs Attributes) {
	spn := toSpan(start, length, len(doc.chars))
	buf := doc.chars
	for i := spn.l; i < spn.r; i++ {
		buf[i].Format = buf[i].Format.With(name, attrs)
	}
	doc.commit(buf, ActionAddFormat, Args{
		Format:     name,
		Attributes: attrs.Clone(),
		Start:      spn.l,
		Length:     spn.len(),
	})
}

// RemoveFormat deletes format name from every character in range.
func (doc *Document) RemoveFormat(name string, start, length int) {
	spn := toSpan(start, length, len(doc.chars))
	buf := doc.chars
	for i := spn.l; i < spn.r; i++ {
		buf[i].Format = buf[i].Format.Without(name)
	}
	doc.commit(buf, ActionRemoveFormat, Args{Format: name, Start: spn.l, Length: spn.len()})
}

// RemoveFormats clears all formats from every character in range.
func (doc *Document) RemoveFormats(start, length int) {
	spn := toSpan(start, length, len(doc.chars))
	buf := doc.chars
	for i := spn.l; i < spn.r; i++ {
		buf[i].Format = Format{}
	}
	doc.commit(buf, ActionRemoveFormats, Args{Start: spn.l, Length: spn.len()})
}

// ToggleFormat removes format name if it is present on the whole range, and
// adds it otherwise.
func (doc *Document) ToggleFormat(name string, start, length int, attrs Attributes) {
	if doc.HasFormat(name, start, length) {
		doc.RemoveFormat(name, start, length)
		return
	}
	doc.AddFormat(name, start, length, attrs)
}

// Append adds characters at the end of the document.
func (doc *Document) Append(content []Character) {
	start := len(doc.chars)
	buf := append(doc.chars[:len(doc.chars):len(doc.chars)], CloneCharacters(content)...)
	doc.commit(buf, ActionAppend, Args{
		Content: CloneCharacters(content),
		Start:   start,
		Length:  len(content),
	})
}

// Inject splices characters into the document before index start
// (End appends).
func (doc *Document) Inject(content []Character, start int) {
	n := len(doc.chars)
	if start < 0 || start > n {
		start = n
	}
	buf := make([]Character, 0, n+len(content))
	buf = append(buf, doc.chars[:start]...)
	buf = append(buf, CloneCharacters(content)...)
	buf = append(buf, doc.chars[start:]...)
	doc.commit(buf, ActionInject, Args{
		Content: CloneCharacters(content),
		Start:   start,
		Length:  len(content),
	})
}

// Replace swaps the document's characters without committing to the history.
func (doc *Document) Replace(chars []Character) {
	doc.chars = CloneCharacters(chars)
}

// --- History ---------------------------------------------------------------

// commit remembers buf in the history, calls the commit hook and makes the
// (possibly altered) buffer the live buffer.
func (doc *Document) commit(buf []Character, action Action, args Args) {
	doc.remember(buf, action, args)
	if doc.onCommit != nil {
		doc.onCommit(buf, action, args)
	}
	doc.chars = CloneCharacters(buf)
}

func (doc *Document) remember(buf []Character, action Action, args Args) {
	doc.history.Push(&Entry{
		Snapshot: CloneCharacters(buf),
		Action:   action,
		Args:     args,
	})
}

// CanUndo is true if there is a state before the current one.
func (doc *Document) CanUndo() bool {
	return doc.history.CanUndo()
}

// CanRedo is true if an undone action may be redone.
func (doc *Document) CanRedo() bool {
	return doc.history.CanRedo()
}

// Undo restores the state before the most recent action. It reports whether
// anything has been undone; the initial state cannot be undone.
func (doc *Document) Undo() bool {
	if !doc.history.CanUndo() {
		return false
	}
	entry, ok := doc.history.Undo()
	return doc.recall(entry, ok, doc.onUndo)
}

// Redo restores the state after the most recently undone action.
func (doc *Document) Redo() bool {
	entry, ok := doc.history.Redo()
	return doc.recall(entry, ok, doc.onRedo)
}

func (doc *Document) recall(entry *Entry, ok bool, hook Hook) bool {
	if !ok || entry == nil {
		return false
	}
	doc.chars = CloneCharacters(entry.Snapshot)
	tracer().Debugf("recalled state after action %s", entry.Action)
	if hook != nil {
		hook(CloneCharacters(entry.Snapshot), entry.Action, entry.Args)
	}
	return true
}
