// Package codec converts between positions on the rendering surface and
// plain-text offsets inside a block, and splits block markup at the caret.
//
// Plain-text offsets count runes of the block's text content with all markup
// stripped. They are the canonical selection representation: the surface
// position is derived from them only when the caret has to be placed.
package codec

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/surface"
)

var (
	// ErrNoSelection is returned when the surface has no selection.
	ErrNoSelection = errors.New("codec: surface has no selection")

	// ErrCaretOutside is returned when a caret is not inside the block.
	ErrCaretOutside = errors.New("codec: caret is outside the block")
)

// State is a selection expressed as plain-text offsets within one block.
type State struct {
	Start int
	End   int
}

// Caret returns a collapsed state at offset.
func Caret(offset int) State {
	return State{Start: offset, End: offset}
}

// IsCollapsed reports whether the state has no extent.
func (s State) IsCollapsed() bool {
	return s.Start == s.End
}

// Clamp returns s limited to [0, length] with Start <= End.
func (s State) Clamp(length int) State {
	start := clamp(s.Start, 0, length)
	end := clamp(s.End, 0, length)
	if end < start {
		start, end = end, start
	}
	return State{Start: start, End: end}
}

// Touches reports whether the state overlaps or borders [from, to].
func (s State) Touches(from, to int) bool {
	return s.Start <= to && s.End >= from
}

// Chop is the result of splitting a block's markup at the caret.
type Chop struct {
	// Pre is the markup before the selection.
	Pre string

	// Post is the markup after the selection.
	Post string

	// Offset is the plain-text offset the block was split at.
	Offset int
}

// Codec reads and writes the selection of a surface in plain-text terms.
type Codec struct {
	surface surface.Surface
}

// New creates a codec bound to s.
func New(s surface.Surface) *Codec {
	return &Codec{surface: s}
}

// ExportSelection returns the surface selection as offsets relative to el.
func (c *Codec) ExportSelection(el *html.Node) (State, error) {
	sel, ok := c.surface.Selection()
	if !ok {
		return State{}, ErrNoSelection
	}
	start, err := OffsetOf(el, sel.Start)
	if err != nil {
		return State{}, fmt.Errorf("export selection start: %w", err)
	}
	end, err := OffsetOf(el, sel.End)
	if err != nil {
		return State{}, fmt.Errorf("export selection end: %w", err)
	}
	if end < start {
		start, end = end, start
	}
	return State{Start: start, End: end}, nil
}

// ImportSelection places the surface selection at state inside el. Offsets
// beyond the block's text saturate.
func (c *Codec) ImportSelection(state State, el *html.Node) {
	state = state.Clamp(Length(el))
	c.surface.SetSelection(surface.Range{
		Start: Locate(el, state.Start),
		End:   Locate(el, state.End),
	})
}

// MoveCursor collapses the selection at offset inside el.
func (c *Codec) MoveCursor(el *html.Node, offset int) {
	c.ImportSelection(Caret(offset), el)
}

// ChopByCursor splits el's markup around the current selection. Selected
// text belongs to neither half, like a line break typed over a selection.
// The block itself is not modified.
func (c *Codec) ChopByCursor(el *html.Node) (Chop, error) {
	state, err := c.ExportSelection(el)
	if err != nil {
		return Chop{}, err
	}
	pre, _ := Split(el, state.Start)
	_, post := Split(el, state.End)
	return Chop{
		Pre:    surface.RenderNodes(pre),
		Post:   surface.RenderNodes(post),
		Offset: state.Start,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
