// Package mdast provides the markdown span tree of a single editor block.
//
// A Snapshot holds the block's raw text, the classification of its leading
// block construct and a tree of the inline spans the editor renders
// (emphasis, strong, code spans, strikethrough, links). Every span records
// both its full source range and the range of its content, so the markers
// are exactly the bytes in between.
package mdast

import "iter"

// NodeKind classifies a node of the span tree.
type NodeKind uint16

// Node kinds. Block kinds only appear in BlockInfo; the span tree itself is a
// NodeDocument root with inline children.
const (
	NodeDocument NodeKind = iota

	// Block-level constructs.
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeCodeBlock
	NodeOtherBlock

	// Inline spans.
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeStrikethrough
	NodeLink
)

var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeThematicBreak: "ThematicBreak",
	NodeCodeBlock:     "CodeBlock",
	NodeOtherBlock:    "OtherBlock",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeCodeSpan:      "CodeSpan",
	NodeStrikethrough: "Strikethrough",
	NodeLink:          "Link",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is a node of the span tree.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the full source range, markers included.
	Span SourceRange

	// Content is the range between the opening and closing markers.
	Content SourceRange

	// Destination holds the link target for NodeLink.
	Destination string
}

// Children yields the direct children of n in source order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.FirstChild; c != nil; c = c.Next {
			if !yield(c) {
				return
			}
		}
	}
}

// OpenMarker returns the range of the opening marker.
func (n *Node) OpenMarker() SourceRange {
	return SourceRange{StartOffset: n.Span.StartOffset, EndOffset: n.Content.StartOffset}
}

// CloseMarker returns the range of the closing marker (for links, the
// whole `](destination)` tail).
func (n *Node) CloseMarker() SourceRange {
	return SourceRange{StartOffset: n.Content.EndOffset, EndOffset: n.Span.EndOffset}
}
