/*
Package inline converts markup trees into rich text characters.

Conversion happens in two stages. The Inliner normalizes an arbitrary tree
into purely inline markup: decorative and void elements are removed, block
elements are flattened and separated by blank lines, and headings are kept as
they are. The Parser then walks an inline tree and emits one character per
code point, each carrying the formats of its enclosing elements, as detected
by a format registry.

Markup trees are the ones of package golang.org/x/net/html. Clients having
markup text at hand may use ParseHTML or DocumentFromHTML.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}
