/*
Package formats provides the default format rules for rich text.

Each format consists of a detector, recognizing the format in markup
elements, and a renderer, wrapping markup for a run of formatted text.
Detection accepts both semantic elements and inline styles:

	<strong>A</strong>
	<b>A</b>
	<span style="font-weight: bold">A</span>

are all detected as format “bold” and rendered as

	<strong>A</strong>

The order of rules within the default registry is significant: it is the order
in which formats of nested elements are recorded, and therefore determines the
nesting of tags when text is rendered again.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package formats

import (
	"strings"

	"github.com/npillmayer/richtext"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer writes to trace with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

// Names of the default formats.
const (
	Bold          = "bold"
	Code          = "code"
	Italic        = "italic"
	Link          = richtext.LinkFormat
	StrikeThrough = "strikeThrough"
	Subscript     = "subscript"
	Superscript   = "superscript"
)

// Default creates a registry with the default formats, in this order:
// bold, code, italic, link, strikeThrough, subscript, superscript.
//
// Clients may extend the registry by calling With on the result.
func Default() *richtext.Registry {
	return richtext.NewRegistry().
		With(Bold, BoldRule()).
		With(Code, CodeRule()).
		With(Italic, ItalicRule()).
		With(Link, LinkRule()).
		With(StrikeThrough, StrikeThroughRule()).
		With(Subscript, SubscriptRule()).
		With(Superscript, SuperscriptRule())
}

// Tag creates a rule for a marker format, detected by a set of element names
// and rendered by wrapping markup into tag.
func Tag(tag string, detectTags ...string) richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: func(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
			return richtext.Marker, el.Is(detectTags...)
		},
		RenderFunc: wrap(tag),
	}
}

func wrap(tag string) func(string, richtext.Attributes) string {
	return func(markup string, _ richtext.Attributes) string {
		return "<" + tag + ">" + markup + "</" + tag + ">"
	}
}

// BoldRule detects <b>, <strong> and bold font weights, and renders <strong>.
func BoldRule() richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: func(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
			if el.Is("b", "strong") {
				return richtext.Marker, true
			}
			switch el.StyleProperty("font-weight") {
			case "bold", "bolder", "500", "600", "700", "800", "900":
				return richtext.Marker, true
			}
			return nil, false
		},
		RenderFunc: wrap("strong"),
	}
}

// CodeRule detects and renders <code>.
func CodeRule() richtext.Rule {
	return Tag("code", "code")
}

// ItalicRule detects <i>, <em> and italic font styles, and renders <em>.
func ItalicRule() richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: func(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
			if el.Is("i", "em") || el.StyleProperty("font-style") == "italic" {
				return richtext.Marker, true
			}
			return nil, false
		},
		RenderFunc: wrap("em"),
	}
}

// StrikeThroughRule detects <del>, <s>, <strike> and line-through text
// decorations, and renders <del>.
func StrikeThroughRule() richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: func(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
			if el.Is("del", "s", "strike") {
				return richtext.Marker, true
			}
			deco := el.StyleProperty("text-decoration")
			if deco == "" {
				deco = el.StyleProperty("text-decoration-line")
			}
			return richtext.Marker, strings.Contains(deco, "line-through")
		},
		RenderFunc: wrap("del"),
	}
}

// SubscriptRule detects <sub> and vertical-align: sub, and renders <sub>.
func SubscriptRule() richtext.Rule {
	return verticalAlign("sub", "sub")
}

// SuperscriptRule detects <sup> and vertical-align: super, and renders <sup>.
func SuperscriptRule() richtext.Rule {
	return verticalAlign("sup", "super")
}

func verticalAlign(tag, align string) richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: func(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
			if el.Is(tag) || el.StyleProperty("vertical-align") == align {
				return richtext.Marker, true
			}
			return nil, false
		},
		RenderFunc: wrap(tag),
	}
}

// --- Links -----------------------------------------------------------------

// Attribute keys of the link format.
const (
	Href   = "href"
	Rel    = "rel"
	Target = "target"
	Title  = "title"
)

// relProtect is always part of the rel attribute of rendered links.
const relProtect = "noopener noreferrer"

// LinkRule detects <a> elements with a non-empty href. The link's href, rel,
// target and title attributes become the attributes of the format (only the
// ones present). It renders
//
//	<a href="…" target="…" title="…" rel="noopener noreferrer …">…</a>
//
// Without an href, text is left unwrapped.
func LinkRule() richtext.Rule {
	return richtext.RuleFuncs{
		DetectFunc: detectLink,
		RenderFunc: renderLink,
	}
}

func detectLink(el *richtext.Element, _ richtext.Format) (richtext.Attributes, bool) {
	if !el.Is("a") {
		return nil, false
	}
	href, ok := el.Attribute(Href)
	if !ok || href == "" {
		tracer().Debugf("link without href ignored")
		return nil, false
	}
	attrs := richtext.Attributes{Href: href}
	for _, key := range []string{Rel, Target, Title} {
		if v, ok := el.Attribute(key); ok {
			attrs[key] = v
		}
	}
	return attrs, true
}

func renderLink(markup string, attrs richtext.Attributes) string {
	href := attrs.Get(Href)
	if href == "" {
		return markup
	}
	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(href))
	sb.WriteByte('"')
	if target := attrs.Get(Target); target != "" {
		sb.WriteString(` target="`)
		sb.WriteString(html.EscapeString(target))
		sb.WriteByte('"')
	}
	if title := attrs.Get(Title); title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(html.EscapeString(title))
		sb.WriteByte('"')
	}
	rel := relProtect
	for _, r := range strings.Fields(attrs.Get(Rel)) {
		if r != "noopener" && r != "noreferrer" {
			rel += " " + r
		}
	}
	sb.WriteString(` rel="`)
	sb.WriteString(html.EscapeString(rel))
	sb.WriteString(`">`)
	sb.WriteString(markup)
	sb.WriteString("</a>")
	return sb.String()
}
