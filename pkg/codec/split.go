package codec

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/surface"
)

// Split cuts the children of el at a plain-text offset. Inline elements
// that straddle the offset are copied into both halves; elements left
// without any text are dropped. el is not modified.
func Split(el *html.Node, offset int) (pre, post []*html.Node) {
	offset = clamp(offset, 0, Length(el))
	pre, post = splitChildren(el, offset)
	return prune(pre), prune(post)
}

func splitChildren(n *html.Node, offset int) (pre, post []*html.Node) {
	acc := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		length := utf8.RuneCountInString(surface.TextContent(c))
		switch {
		case acc+length <= offset:
			pre = append(pre, deepClone(c))
		case acc >= offset:
			post = append(post, deepClone(c))
		case c.Type == html.TextNode:
			runes := []rune(c.Data)
			at := offset - acc
			pre = append(pre, &html.Node{Type: html.TextNode, Data: string(runes[:at])})
			post = append(post, &html.Node{Type: html.TextNode, Data: string(runes[at:])})
		default:
			left, right := splitChildren(c, offset-acc)
			pre = append(pre, shallowWith(c, left))
			post = append(post, shallowWith(c, right))
		}
		acc += length
	}
	return pre, post
}

// prune drops nodes that carry no text.
func prune(nodes []*html.Node) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if surface.TextContent(n) == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func shallowWith(n *html.Node, children []*html.Node) *html.Node {
	cp := shallowClone(n)
	for _, c := range children {
		cp.AppendChild(c)
	}
	return cp
}

func shallowClone(n *html.Node) *html.Node {
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cp.Attr = make([]html.Attribute, len(n.Attr))
		copy(cp.Attr, n.Attr)
	}
	return cp
}

func deepClone(n *html.Node) *html.Node {
	cp := shallowClone(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(deepClone(c))
	}
	return cp
}
