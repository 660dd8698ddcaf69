package codec

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/surface"
)

// PlainText returns the text content of el.
func PlainText(el *html.Node) string {
	return surface.TextContent(el)
}

// Length returns the rune length of el's plain text.
func Length(el *html.Node) int {
	return utf8.RuneCountInString(PlainText(el))
}

// OffsetOf converts a surface caret into a plain-text offset within el.
func OffsetOf(el *html.Node, caret surface.Caret) (int, error) {
	if caret.Node == nil || !surface.Contains(el, caret.Node) {
		return 0, ErrCaretOutside
	}

	if caret.Node.Type == html.TextNode {
		acc := 0
		for d := range el.Descendants() {
			if d == caret.Node {
				return acc + clamp(caret.Offset, 0, utf8.RuneCountInString(d.Data)), nil
			}
			if d.Type == html.TextNode {
				acc += utf8.RuneCountInString(d.Data)
			}
		}
		return acc, nil
	}

	// Element caret: count the text that precedes the boundary child.
	boundary := childAt(caret.Node, caret.Offset)
	if boundary == nil {
		boundary = nextOutside(caret.Node, el)
	}
	acc := 0
	for d := range el.Descendants() {
		if d == boundary {
			return acc, nil
		}
		if d.Type == html.TextNode {
			acc += utf8.RuneCountInString(d.Data)
		}
	}
	return acc, nil
}

// Locate converts a plain-text offset within el into a surface caret. The
// offset is clamped. At a boundary between two text nodes the earlier node
// wins. A block without text yields a caret on the block itself.
func Locate(el *html.Node, offset int) surface.Caret {
	if offset < 0 {
		offset = 0
	}
	acc := 0
	var last *html.Node
	for d := range el.Descendants() {
		if d.Type != html.TextNode {
			continue
		}
		n := utf8.RuneCountInString(d.Data)
		if offset <= acc+n {
			return surface.Caret{Node: d, Offset: offset - acc}
		}
		acc += n
		last = d
	}
	if last != nil {
		return surface.Caret{Node: last, Offset: utf8.RuneCountInString(last.Data)}
	}
	return surface.Caret{Node: el, Offset: 0}
}

func childAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return n.FirstChild
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// nextOutside returns the first node after n's subtree that is still inside
// root, or nil.
func nextOutside(n, root *html.Node) *html.Node {
	for p := n; p != nil && p != root; p = p.Parent {
		if p.NextSibling != nil {
			return p.NextSibling
		}
	}
	return nil
}
