package surface

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoContainer is returned when container markup holds no element.
var ErrNoContainer = errors.New("surface: markup has no container element")

// DOM is an in-memory Surface. It also offers the editing primitives a
// browser performs on its own between a keydown and the following input
// event, so hosts and tests can emulate typing.
type DOM struct {
	root   *html.Node
	sel    Range
	hasSel bool
}

var _ Surface = (*DOM)(nil)

// NewDOM wraps an existing container element.
func NewDOM(root *html.Node) *DOM {
	return &DOM{root: root}
}

// ParseContainer parses markup such as `<div id="app"></div>` and returns the
// first element it contains, detached from the parse tree.
func ParseContainer(markup string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parse container: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, ErrNoContainer
}

// Root returns the container element.
func (d *DOM) Root() *html.Node {
	return d.root
}

// SetRoot replaces the container element, e.g. after the editor swapped a
// non-div container for a div.
func (d *DOM) SetRoot(root *html.Node) {
	d.root = root
	d.ClearSelection()
}

// Selection returns the current selection.
func (d *DOM) Selection() (Range, bool) {
	return d.sel, d.hasSel
}

// SetSelection replaces the current selection.
func (d *DOM) SetSelection(r Range) {
	d.sel = r
	d.hasSel = !r.Start.IsZero()
}

// ClearSelection removes the selection entirely.
func (d *DOM) ClearSelection() {
	d.sel = Range{}
	d.hasSel = false
}

// InsertText inserts s at the caret, replacing the selected range first when
// the selection is not collapsed. A lone <br> placeholder is dropped, the
// way browsers do when typing into an empty line.
func (d *DOM) InsertText(s string) error {
	if !d.hasSel {
		return errors.New("surface: insert text without selection")
	}
	if !d.sel.IsCollapsed() {
		if err := d.deleteRange(); err != nil {
			return err
		}
	}

	caret := d.sel.Start
	switch caret.Node.Type {
	case html.TextNode:
		runes := []rune(caret.Node.Data)
		at := clamp(caret.Offset, 0, len(runes))
		caret.Node.Data = string(runes[:at]) + s + string(runes[at:])
		d.SetSelection(Collapsed(Caret{Node: caret.Node, Offset: at + utf8.RuneCountInString(s)}))
		return nil
	case html.ElementNode:
		el := caret.Node
		at := clamp(caret.Offset, 0, childCount(el))
		if IsPlaceholderOnly(el) {
			el.RemoveChild(el.FirstChild)
			at = 0
		}
		text := &html.Node{Type: html.TextNode, Data: s}
		el.InsertBefore(text, childAt(el, at))
		d.SetSelection(Collapsed(Caret{Node: text, Offset: utf8.RuneCountInString(s)}))
		return nil
	default:
		return fmt.Errorf("surface: cannot insert text into node type %d", caret.Node.Type)
	}
}

// DeleteBackward removes the rune before a collapsed caret that sits inside
// a text node. It is a no-op at the start of a text node.
func (d *DOM) DeleteBackward() error {
	if !d.hasSel {
		return errors.New("surface: delete without selection")
	}
	if !d.sel.IsCollapsed() {
		return d.deleteRange()
	}
	caret := d.sel.Start
	if caret.Node.Type != html.TextNode || caret.Offset <= 0 {
		return nil
	}
	runes := []rune(caret.Node.Data)
	at := clamp(caret.Offset, 1, len(runes))
	caret.Node.Data = string(runes[:at-1]) + string(runes[at:])
	d.SetSelection(Collapsed(Caret{Node: caret.Node, Offset: at - 1}))
	return nil
}

// deleteRange removes a selection that starts and ends in the same text node.
func (d *DOM) deleteRange() error {
	start, end := d.sel.Start, d.sel.End
	if start.Node != end.Node || start.Node.Type != html.TextNode {
		return errors.New("surface: only single text node ranges can be deleted")
	}
	runes := []rune(start.Node.Data)
	from := clamp(start.Offset, 0, len(runes))
	to := clamp(end.Offset, from, len(runes))
	start.Node.Data = string(runes[:from]) + string(runes[to:])
	d.SetSelection(Collapsed(Caret{Node: start.Node, Offset: from}))
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func childCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// childAt returns the i-th child of n, or nil when i is past the end.
func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}
