// Package surface defines the rendering-surface contract the editor mutates
// and provides an in-memory implementation backed by golang.org/x/net/html.
//
// The surface is a synchronization target: the editor keeps its own block
// model and writes markup into the surface after every mutation. Positions on
// the surface are (node, offset) pairs. For text nodes the offset counts runes
// of the node's data; for element nodes it counts children, as in the DOM
// Range model.
package surface

import "golang.org/x/net/html"

// Caret is a single position on the surface.
type Caret struct {
	Node   *html.Node
	Offset int
}

// IsZero reports whether the caret points nowhere.
func (c Caret) IsZero() bool {
	return c.Node == nil
}

// Range is a selection between two carets. Start precedes End in document
// order; a collapsed range is a plain caret.
type Range struct {
	Start Caret
	End   Caret
}

// Collapsed returns a range whose start and end are both c.
func Collapsed(c Caret) Range {
	return Range{Start: c, End: c}
}

// IsCollapsed reports whether the range has no extent.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// Surface is the capability set the editor needs from a rendering surface:
// access to the editable tree and to the current selection.
type Surface interface {
	// Root returns the editable container element.
	Root() *html.Node

	// Selection returns the current selection, if any.
	Selection() (Range, bool)

	// SetSelection replaces the current selection.
	SetSelection(r Range)
}
