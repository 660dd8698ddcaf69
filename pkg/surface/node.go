package surface

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Placeholder is the markup that keeps an empty block from collapsing.
const Placeholder = "<br>"

// NewElement creates a detached element with the given attributes.
// Attributes are added in key order so output is stable.
func NewElement(tag string, attrs map[string]string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     SortedAttrs(attrs),
	}
}

// SortedAttrs returns attrs ordered by key. Every serialization of block
// elements uses this order.
func SortedAttrs(attrs map[string]string) []html.Attribute {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, html.Attribute{Key: k, Val: attrs[k]})
	}
	return out
}

// Rename changes the tag of an element in place, keeping its children and
// attributes.
func Rename(el *html.Node, tag string) {
	el.Data = tag
	el.DataAtom = atom.Lookup([]byte(tag))
}

// Attr returns the value of attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns the element's attributes as a map.
func Attrs(n *html.Node) map[string]string {
	out := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace == "" {
			out[a.Key] = a.Val
		}
	}
	return out
}

// SetAttr sets or replaces attribute key.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key if present.
func RemoveAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// HasClass reports whether the element's class list contains class.
func HasClass(n *html.Node, class string) bool {
	val, _ := Attr(n, "class")
	return slices.Contains(strings.Fields(val), class)
}

// AddClass adds class to the element's class list.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	val, _ := Attr(n, "class")
	SetAttr(n, "class", strings.TrimSpace(val+" "+class))
}

// RemoveClass removes class from the element's class list. The class
// attribute is dropped when it becomes empty.
func RemoveClass(n *html.Node, class string) {
	val, ok := Attr(n, "class")
	if !ok {
		return
	}
	fields := slices.DeleteFunc(strings.Fields(val), func(f string) bool { return f == class })
	if len(fields) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(fields, " "))
}

// ParseFragment parses inline markup in the context of el.
func ParseFragment(el *html.Node, markup string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), contextFor(el))
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// SetInnerHTML replaces the children of el with the parsed markup.
func SetInnerHTML(el *html.Node, markup string) error {
	nodes, err := ParseFragment(el, markup)
	if err != nil {
		return err
	}
	ReplaceChildren(el, nodes)
	return nil
}

// ReplaceChildren swaps the children of el for nodes, which must be
// detached.
func ReplaceChildren(el *html.Node, nodes []*html.Node) {
	RemoveChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// RenderNodes renders a node list in order.
func RenderNodes(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		_ = html.Render(&sb, n)
	}
	return sb.String()
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// TextContent concatenates the data of every text node below n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}

// IsPlaceholderOnly reports whether el holds nothing but a <br> placeholder.
func IsPlaceholderOnly(el *html.Node) bool {
	c := el.FirstChild
	return c != nil && c.NextSibling == nil && c.Type == html.ElementNode && c.DataAtom == atom.Br
}

// Contains reports whether node is ancestor or equal to n.
func Contains(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// contextFor returns a fragment parsing context carrying el's tag. Parsing
// against a detached copy keeps the fragment parser from touching el.
func contextFor(el *html.Node) *html.Node {
	if el == nil || el.Type != html.ElementNode {
		return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	return &html.Node{Type: html.ElementNode, Data: el.Data, DataAtom: el.DataAtom}
}
