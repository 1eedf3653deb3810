package richtext

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Rule is the pair of functions which make up a named format.
//
// Detect inspects a markup element and reports whether the format applies,
// optionally returning attributes. It is called only if the inherited formats
// do not already carry the format. Render wraps markup for a run of text
// carrying the format; for formats with data it must tolerate missing
// attributes by not wrapping at all.
type Rule interface {
	Detect(el *Element, inherited Format) (Attributes, bool)
	Render(markup string, attrs Attributes) string
}

// RuleFuncs adapts a pair of functions to interface Rule.
// A nil function is treated as a configuration error: the format is never
// detected and renders as unwrapped text.
type RuleFuncs struct {
	DetectFunc func(el *Element, inherited Format) (Attributes, bool)
	RenderFunc func(markup string, attrs Attributes) string
}

// Detect is part of interface Rule.
func (rf RuleFuncs) Detect(el *Element, inherited Format) (Attributes, bool) {
	if rf.DetectFunc == nil {
		tracer().Errorf("format rule has no detector")
		return nil, false
	}
	return rf.DetectFunc(el, inherited)
}

// Render is part of interface Rule.
func (rf RuleFuncs) Render(markup string, attrs Attributes) string {
	if rf.RenderFunc == nil {
		tracer().Errorf("format rule has no renderer")
		return markup
	}
	return rf.RenderFunc(markup, attrs)
}

// --- Registry --------------------------------------------------------------

// Registry is an ordered set of named format rules.
//
// A Registry is immutable: With returns an extended copy. The order of
// registration is the order in which formats are detected when parsing markup,
// and therefore the order of wrapping when rendering parsed text.
type Registry struct {
	names []string
	rules map[string]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{}}
}

// With returns a copy of the registry with an additional rule. If name is
// already registered, its rule is replaced, keeping its position.
func (r *Registry) With(name string, rule Rule) *Registry {
	reg := NewRegistry()
	if r != nil {
		reg.names = append(reg.names, r.names...)
		for n, rl := range r.rules {
			reg.rules[n] = rl
		}
	}
	if _, ok := reg.rules[name]; !ok {
		reg.names = append(reg.names, name)
	}
	reg.rules[name] = rule
	return reg
}

// Rule returns the rule registered for name.
func (r *Registry) Rule(name string) (Rule, bool) {
	if r == nil {
		return nil, false
	}
	rule, ok := r.rules[name]
	if ok && rule == nil {
		return nil, false
	}
	return rule, ok
}

// Names returns the registered format names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Render wraps markup for format name. Unknown formats leave markup unwrapped.
func (r *Registry) Render(name string, markup string, attrs Attributes) string {
	rule, ok := r.Rule(name)
	if !ok {
		tracer().Debugf("no renderer for format '%s', leaving text unwrapped", name)
		return markup
	}
	return rule.Render(markup, attrs)
}

// --- Element ---------------------------------------------------------------

// Element is a read-only view of a markup element node, as needed by format
// detectors: its tag name, its attributes and its inline style properties.
type Element struct {
	node  *html.Node
	style map[string]string
}

// NewElement wraps an element node. It returns nil for nodes of other types.
func NewElement(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{node: n}
}

// Node returns the underlying markup node.
func (el *Element) Node() *html.Node {
	return el.node
}

// TagName returns the lower-case name of the element.
func (el *Element) TagName() string {
	return strings.ToLower(el.node.Data)
}

// Is reports whether the element's tag is one of tags.
func (el *Element) Is(tags ...string) bool {
	name := el.TagName()
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

// Attribute returns the value of an attribute of the element.
func (el *Element) Attribute(key string) (string, bool) {
	for _, a := range el.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// StyleProperty returns the value of an inline style property, e.g.
// "font-weight", or the empty string. Values are trimmed and lower-case.
func (el *Element) StyleProperty(prop string) string {
	if el.style == nil {
		el.style = inlineStyle(el)
	}
	return el.style[strings.ToLower(prop)]
}

func inlineStyle(el *Element) map[string]string {
	props := map[string]string{}
	style, ok := el.Attribute("style")
	if !ok || strings.TrimSpace(style) == "" {
		return props
	}
	// the last declaration needs a terminating semicolon to keep its value
	style = strings.TrimSpace(style)
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		tracer().Errorf("cannot parse inline style of <%s>: %v", el.TagName(), err)
		return props
	}
	for _, d := range decls {
		props[strings.ToLower(d.Property)] = strings.ToLower(strings.TrimSpace(d.Value))
	}
	return props
}
