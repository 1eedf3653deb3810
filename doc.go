/*
Package richtext holds rich text as a flat sequence of characters, each of
which carries its own set of formats.

Rich text

Editable text surfaces in a browser usually operate on a tree of markup
elements. Trees are a poor fit for editing operations: selections cut across
element boundaries, formats overlap, and the same visual result may be expressed
by many different trees. This package therefore keeps text in a much simpler
shape: a slice of single-code-point cells (Characters). Every Character owns an
ordered set of named formats, like “bold” or “link”, optionally carrying
attributes (e.g., the href of a link).

Markup is produced on demand by merging adjacent characters with identical
formats into runs and wrapping each run with the renderers of a format
Registry. The reverse direction, turning a markup tree into characters, is
handled by sub-package inline. Default formats live in sub-package formats.

Every mutating operation of a Document is committed to a bounded history,
which allows for undo and redo. Range arguments follow a half-open
[start, start+length) convention and are silently clamped to the buffer;
operations on a Document never fail because of bad positions.

A Document is not safe for concurrent use. Clients have to serialize their
calls, which is the natural situation for an editor reacting to user input.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file in the repository root.

*/
package richtext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

// Error is an error type for the richtext module
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = Error("illegal arguments")

// ErrInvalidJSON is flagged if serialized characters cannot be read back.
const ErrInvalidJSON = Error("invalid JSON for rich text characters")
