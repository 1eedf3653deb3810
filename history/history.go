/*
Package history implements a bounded undo/redo journal with two stacks.

Values pushed to a History are kept on an undo stack. Undo moves the top value
to a redo stack and returns the value below it, i.e., the state before the
most recent change. Redo moves it back. Pushing a new value discards all
values which could have been redone.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package history

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

// DefaultLimit is the number of undo steps kept if no limit is given.
const DefaultLimit = 100

// History is a bounded two-stack journal of values.
//
// Values are compared by identity (==) against the top of the undo stack; a
// value equal to the current top is not pushed again. For pointer types this
// is reference equality.
type History[T comparable] struct {
	undo  *arraylist.List
	redo  *arraylist.List
	limit int
}

// New creates a history which allows for at most limit undo steps. The undo
// stack holds up to limit+1 values, the bottom one being the initial state.
// A limit ≤ 0 selects DefaultLimit.
func New[T comparable](limit int) *History[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History[T]{
		undo:  arraylist.New(),
		redo:  arraylist.New(),
		limit: limit,
	}
}

// Limit returns the maximum number of undo steps.
func (h *History[T]) Limit() int {
	return h.limit
}

// Push adds a value on top of the undo stack, unless it is identical to the
// current top. The oldest values are dropped if the stack exceeds its limit.
// The redo stack is cleared in any case.
func (h *History[T]) Push(value T) {
	if top, ok := h.top(); !ok || top != value {
		h.undo.Add(value)
	}
	for h.undo.Size() > h.limit+1 {
		h.undo.Remove(0)
	}
	if !h.redo.Empty() {
		tracer().Debugf("history: discarding %d redo entries", h.redo.Size())
		h.redo.Clear()
	}
}

// Undo moves the top of the undo stack to the redo stack and returns the new
// top of the undo stack, if any.
func (h *History[T]) Undo() (T, bool) {
	var zero T
	value, ok := pop(h.undo)
	if !ok {
		return zero, false
	}
	h.redo.Add(value)
	return h.top()
}

// Redo moves the top of the redo stack back to the undo stack and returns it.
func (h *History[T]) Redo() (T, bool) {
	var zero T
	value, ok := pop(h.redo)
	if !ok {
		return zero, false
	}
	h.undo.Add(value)
	return value.(T), true
}

// CanUndo is true if there is a state below the current one.
func (h *History[T]) CanUndo() bool {
	return h.undo.Size() > 1
}

// CanRedo is true if there are values to redo.
func (h *History[T]) CanRedo() bool {
	return h.redo.Size() > 0
}

// Len returns the number of values on the undo stack.
func (h *History[T]) Len() int {
	return h.undo.Size()
}

func (h *History[T]) top() (T, bool) {
	var zero T
	if h.undo.Empty() {
		return zero, false
	}
	v, _ := h.undo.Get(h.undo.Size() - 1)
	return v.(T), true
}

func pop(l *arraylist.List) (interface{}, bool) {
	if l.Empty() {
		return nil, false
	}
	i := l.Size() - 1
	v, _ := l.Get(i)
	l.Remove(i)
	return v, true
}
