package markdown

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/mdast"
	"github.com/yaklabco/mdlive/pkg/surface"
)

const placeholder = surface.Placeholder

// renderer emits every byte of the block text exactly once, either as plain
// text, as a marker span or as content of an inline element.
type renderer struct {
	t       *Transformer
	content []byte
	block   mdast.BlockInfo
	root    *mdast.Node
	sel     codec.State
	sb      strings.Builder
}

func newRenderer(t *Transformer, snap *mdast.Snapshot, sel codec.State) *renderer {
	return &renderer{
		t:       t,
		content: snap.Content,
		block:   snap.Block,
		root:    snap.Root,
		sel:     sel,
	}
}

func (r *renderer) render() string {
	pos := 0
	if r.block.Kind == mdast.NodeHeading && !r.block.Marker.IsEmpty() {
		r.marker(r.block.Marker, r.touched(r.block.Marker))
		pos = r.block.Marker.EndOffset
	}
	pos = r.children(r.root, pos, len(r.content))
	r.text(pos, len(r.content))
	return r.sb.String()
}

// children renders the spans below parent that start at or after pos and
// end before limit. It returns the offset rendering continues from.
func (r *renderer) children(parent *mdast.Node, pos, limit int) int {
	for c := range parent.Children() {
		if c.Span.StartOffset < pos || c.Span.EndOffset > limit {
			continue
		}
		r.text(pos, c.Span.StartOffset)
		r.span(c)
		pos = c.Span.EndOffset
	}
	return pos
}

func (r *renderer) span(n *mdast.Node) {
	tag := tagFor(n.Kind)
	visible := r.touched(n.Span)

	r.sb.WriteString("<" + tag)
	if n.Kind == mdast.NodeLink {
		r.sb.WriteString(` href="` + html.EscapeString(n.Destination) + `"`)
	}
	r.sb.WriteString(">")

	r.marker(n.OpenMarker(), visible)
	pos := n.Content.StartOffset
	if n.Kind != mdast.NodeCodeSpan {
		pos = r.children(n, pos, n.Content.EndOffset)
	}
	r.text(pos, n.Content.EndOffset)
	r.marker(n.CloseMarker(), visible)

	r.sb.WriteString("</" + tag + ">")
}

func (r *renderer) marker(rng mdast.SourceRange, visible bool) {
	if rng.IsEmpty() {
		return
	}
	class := r.t.markerClass
	if !visible {
		class += " " + r.t.hiddenClass
	}
	r.sb.WriteString(`<span class="` + html.EscapeString(class) + `">`)
	r.text(rng.StartOffset, rng.EndOffset)
	r.sb.WriteString("</span>")
}

func (r *renderer) text(from, to int) {
	if from >= to {
		return
	}
	r.sb.WriteString(html.EscapeString(string(r.content[from:to])))
}

// touched reports whether the selection overlaps or borders rng. The
// selection counts runes, ranges count bytes.
func (r *renderer) touched(rng mdast.SourceRange) bool {
	from := utf8.RuneCount(r.content[:rng.StartOffset])
	to := from + utf8.RuneCount(r.content[rng.StartOffset:rng.EndOffset])
	return r.sel.Touches(from, to)
}

func tagFor(kind mdast.NodeKind) string {
	switch kind {
	case mdast.NodeEmphasis:
		return "em"
	case mdast.NodeStrong:
		return "strong"
	case mdast.NodeCodeSpan:
		return "code"
	case mdast.NodeStrikethrough:
		return "del"
	case mdast.NodeLink:
		return "a"
	default:
		return "span"
	}
}

// canonical re-serializes markup so equivalent markup compares equal
// regardless of how it was written (e.g. "<br>" vs "<br/>").
func canonical(markup string) string {
	ctx := surface.NewElement("p", nil)
	nodes, err := surface.ParseFragment(ctx, markup)
	if err != nil {
		return markup
	}
	return surface.RenderNodes(nodes)
}
