package inline

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements are removed from a tree before flattening, together with
// their content.
var voidElements = cascadia.MustCompile(
	"area,base,col,command,embed,hr,img,input,keygen,link,menuitem,meta,param,object,source,svg,track,video,wbr",
)

// keepElements survive flattening with their tags.
var keepElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var (
	multiSpace = regexp.MustCompile(`[ ]{2,}`)
	multiBreak = regexp.MustCompile(`\n{3,}`)
)

// Inline flattens a markup tree into a sequence of inline markup blocks,
// separated by blank lines. Void and embedding elements are removed, block
// elements are unwrapped and headings are kept as they are. Content of every
// leaf block is trimmed and runs of spaces are collapsed to a single one.
//
// Inline alters the tree of root.
func Inline(root *html.Node) string {
	if root == nil {
		return ""
	}
	for _, n := range voidElements.MatchAll(root) {
		if n != root && n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	var blocks []string
	removeBlockElements(root, &blocks)
	tracer().Debugf("inliner: %d blocks", len(blocks))
	return strings.Join(blocks, "\n\n")
}

func removeBlockElements(n *html.Node, blocks *[]string) {
	if !hasBlockElements(n) {
		inner := trimNode(n)
		if inner == "" {
			return
		}
		if n.Type == html.ElementNode && keepElements[n.Data] {
			*blocks = append(*blocks, outerHTML(n))
		} else {
			*blocks = append(*blocks, inner)
		}
		return
	}
	for _, child := range elementChildren(n) {
		removeBlockElements(child, blocks)
		if !IsInline(child.Data) {
			trimNode(child)
			if !keepElements[child.Data] {
				unwrap(child)
			}
		}
	}
}

// hasBlockElements is true if any element below n is not inline.
func hasBlockElements(n *html.Node) bool {
	for _, child := range elementChildren(n) {
		if !IsInline(child.Data) || hasBlockElements(child) {
			return true
		}
	}
	return false
}

// trimNode normalizes the whitespace of the content of n and returns the
// resulting inner markup.
func trimNode(n *html.Node) string {
	inner := multiSpace.ReplaceAllString(strings.TrimSpace(innerHTML(n)), " ")
	inner = multiBreak.ReplaceAllString(inner, "\n\n")
	ctx := n
	if n.Type != html.ElementNode {
		ctx = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	nodes, err := html.ParseFragment(strings.NewReader(inner), ctx)
	if err != nil {
		tracer().Errorf("inliner: cannot re-parse content of <%s>: %v", n.Data, err)
		return inner
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return innerHTML(n)
}

// unwrap replaces n by its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			tracer().Errorf("inliner: %v", err)
		}
	}
	return sb.String()
}

func outerHTML(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		tracer().Errorf("inliner: %v", err)
	}
	return sb.String()
}

// Normalize parses a fragment of markup text and flattens it with Inline.
func Normalize(markup string) (string, error) {
	container, err := fragment(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	return Inline(container), nil
}
