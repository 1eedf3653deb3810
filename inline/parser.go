package inline

import (
	"io"
	"strings"

	"github.com/npillmayer/richtext"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineElements are element names which do not introduce a line break.
var inlineElements = map[string]bool{
	"b": true, "big": true, "i": true, "small": true, "tt": true,
	"abbr": true, "acronym": true, "cite": true, "code": true, "dfn": true,
	"em": true, "kbd": true, "strong": true, "samp": true, "var": true,
	"a": true, "bdo": true, "br": true, "img": true, "map": true,
	"object": true, "q": true, "script": true, "span": true, "sub": true,
	"sup": true, "button": true, "input": true, "label": true, "select": true,
	"textarea": true,
	"del": true, "s": true, "strike": true,
}

// IsInline reports whether an element name belongs to the inline vocabulary.
func IsInline(tag string) bool {
	return inlineElements[strings.ToLower(tag)]
}

// nbsp is the character ToHTML appends as a placeholder after a final line break.
const nbsp = '\u00a0'

// Parse converts the content of a markup node into characters. The node
// itself is treated as a container and does not contribute formats.
//
// Every code point of a text node becomes a character, carrying the formats
// of its enclosing elements. Formats are detected with the rules of reg, in
// registration order. A format already present on an enclosing element is
// propagated without detecting it again, so <b><b>A</b></b> yields a single
// bold format. A <br> yields a line break, and so does the end of every element
// which is not inline.
//
// The returned characters own their formats.
func Parse(root *html.Node, reg *richtext.Registry) []richtext.Character {
	if root == nil {
		return []richtext.Character{}
	}
	chars := charsInNode(root, richtext.Format{}, reg)
	return richtext.CloneCharacters(chars)
}

func charsInNode(n *html.Node, inherited richtext.Format, reg *richtext.Registry) []richtext.Character {
	chars := []richtext.Character{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			chars = append(chars, richtext.Chars(c.Data, inherited)...)
		case html.ElementNode:
			el := richtext.NewElement(c)
			if el.TagName() == "br" {
				chars = append(chars, richtext.Character{Text: '\n'})
				continue
			}
			tracer().Debugf("parser: collect text of <%s>", el.TagName())
			chars = append(chars, charsInNode(c, nodeFormats(el, inherited, reg), reg)...)
			if !IsInline(el.TagName()) {
				chars = append(chars, richtext.Character{Text: '\n'})
			}
		case html.DocumentNode:
			chars = append(chars, charsInNode(c, inherited, reg)...)
		}
	}
	return chars
}

// nodeFormats computes the formats for the content of an element. Every
// registered format is either inherited or detected; the result is a new
// format set and inherited is left untouched.
func nodeFormats(el *richtext.Element, inherited richtext.Format, reg *richtext.Registry) richtext.Format {
	result := richtext.Format{}
	for _, name := range reg.Names() {
		if attrs, ok := inherited.Get(name); ok {
			result = result.With(name, attrs)
			continue
		}
		rule, ok := reg.Rule(name)
		if !ok {
			tracer().Errorf("the detector for format %s does not exist", name)
			continue
		}
		if attrs, ok := rule.Detect(el, inherited); ok {
			result = result.With(name, attrs)
		}
	}
	return result
}

// ParseBlocks flattens a markup tree with Inline and parses the result.
func ParseBlocks(root *html.Node, reg *richtext.Registry) ([]richtext.Character, error) {
	if root == nil {
		return []richtext.Character{}, nil
	}
	return ParseHTML(Inline(root), reg)
}

// ParseHTML parses a fragment of markup text and converts it into characters.
//
// A non-breaking space following a final line break is dropped: it is the
// placeholder which Document.ToHTML appends to keep an empty last line
// visible. Therefore
//
//	ParseHTML(doc.ToHTML(0, richtext.ToEnd), reg)
//
// reproduces the characters of doc. The placeholder cannot be told apart from
// an unformatted U+00A0 which a document ends with after a line break; such a
// character is lost in the round trip.
func ParseHTML(markup string, reg *richtext.Registry) ([]richtext.Character, error) {
	container, err := fragment(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	chars := Parse(container, reg)
	if n := len(chars); n >= 2 && chars[n-1].Text == nbsp && chars[n-2].Text == '\n' &&
		chars[n-1].Format.IsEmpty() {
		chars = chars[:n-1]
	}
	return chars, nil
}

// DocumentFromHTML creates a document from the content of a markup fragment.
// Formats are detected and rendered with reg; opts may configure the document
// further.
func DocumentFromHTML(input io.Reader, reg *richtext.Registry, opts ...richtext.Option) (*richtext.Document, error) {
	b, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	chars, err := ParseHTML(string(b), reg)
	if err != nil {
		return nil, err
	}
	opts = append([]richtext.Option{richtext.WithRegistry(reg), richtext.WithContent(chars)}, opts...)
	return richtext.New(opts...), nil
}

// fragment parses markup text in the context of a <div> and returns a
// <div> container holding the resulting nodes.
func fragment(input io.Reader) (*html.Node, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(input, container)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}
