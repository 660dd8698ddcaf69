package goldmark

import (
	"slices"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdlive/pkg/mdast"
)

// maxBlockIndent is the indentation CommonMark allows before a block marker.
const maxBlockIndent = 3

// mapper converts a goldmark AST into mdast spans.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// classify describes the first block of the goldmark document.
func (m *mapper) classify(gmDoc ast.Node) mdast.BlockInfo {
	first := gmDoc.FirstChild()
	switch n := first.(type) {
	case nil:
		return mdast.BlockInfo{Kind: mdast.NodeParagraph}
	case *ast.Heading:
		info := mdast.BlockInfo{Kind: mdast.NodeHeading, HeadingLevel: n.Level}
		if end, ok := m.atxMarkerEnd(); ok {
			info.Marker = mdast.SourceRange{StartOffset: 0, EndOffset: end}
		}
		return info
	case *ast.ThematicBreak:
		return mdast.BlockInfo{Kind: mdast.NodeThematicBreak}
	case *ast.FencedCodeBlock:
		info := mdast.BlockInfo{Kind: mdast.NodeCodeBlock}
		if n.Info != nil {
			info.Info = string(n.Info.Segment.Value(m.content))
		}
		return info
	case *ast.Paragraph:
		return mdast.BlockInfo{Kind: mdast.NodeParagraph}
	default:
		return mdast.BlockInfo{Kind: mdast.NodeOtherBlock}
	}
}

// atxMarkerEnd returns the end of a leading "## " heading marker, including
// indentation and the whitespace after the hashes.
func (m *mapper) atxMarkerEnd() (int, bool) {
	pos := 0
	for pos < len(m.content) && pos < maxBlockIndent && m.content[pos] == ' ' {
		pos++
	}
	hashes := 0
	for pos < len(m.content) && m.content[pos] == '#' {
		pos++
		hashes++
	}
	if hashes == 0 {
		return 0, false
	}
	for pos < len(m.content) && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos++
	}
	return pos, true
}

// mapChildren walks the children of a goldmark node and attaches every
// recognized inline span to parent. Unrecognized containers are transparent:
// their spans attach to parent directly.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// mapNode attaches gmNode to parent when it is a recognized span.
func (m *mapper) mapNode(gmNode ast.Node, parent *mdast.Node) {
	switch gmNode.(type) {
	case *ast.Text, *ast.String, *ast.RawHTML, *ast.AutoLink, *ast.Image:
		// Rendered as plain text.
		return
	case *ast.Emphasis, *ast.CodeSpan, *ast.Link, *east.Strikethrough:
		node := m.mapSpan(gmNode)
		if node == nil || !fits(parent, node) {
			m.mapChildren(gmNode, parent)
			return
		}
		mdast.AppendChild(parent, node)
		if _, isCode := gmNode.(*ast.CodeSpan); !isCode {
			m.mapChildren(gmNode, node)
		}
	default:
		m.mapChildren(gmNode, parent)
	}
}

// mapSpan builds the mdast node for a recognized inline span, or nil when
// its source range cannot be recovered.
func (m *mapper) mapSpan(gmNode ast.Node) *mdast.Node {
	content, ok := m.childRange(gmNode)
	if !ok {
		return nil
	}

	switch gmn := gmNode.(type) {
	case *ast.Emphasis:
		kind := mdast.NodeEmphasis
		if gmn.Level >= 2 {
			kind = mdast.NodeStrong
		}
		span, ok := m.delimited(content, gmn.Level, '*', '_')
		if !ok {
			return nil
		}
		return mdast.NewSpan(kind, span, content)

	case *east.Strikethrough:
		span, ok := m.runOf(content, '~')
		if !ok {
			return nil
		}
		return mdast.NewSpan(mdast.NodeStrikethrough, span, content)

	case *ast.CodeSpan:
		span, ok := m.codeSpan(content)
		if !ok {
			return nil
		}
		return mdast.NewSpan(mdast.NodeCodeSpan, span, content)

	case *ast.Link:
		span, ok := m.link(content)
		if !ok {
			return nil
		}
		node := mdast.NewSpan(mdast.NodeLink, span, content)
		node.Destination = string(gmn.Destination)
		return node
	}
	return nil
}

// rangeOf returns the source range of any inline node.
func (m *mapper) rangeOf(gmNode ast.Node) (mdast.SourceRange, bool) {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		return mdast.SourceRange{StartOffset: gmn.Segment.Start, EndOffset: gmn.Segment.Stop}, true
	case *ast.RawHTML:
		if gmn.Segments == nil || gmn.Segments.Len() == 0 {
			return mdast.SourceRange{}, false
		}
		return mdast.SourceRange{
			StartOffset: gmn.Segments.At(0).Start,
			EndOffset:   gmn.Segments.At(gmn.Segments.Len() - 1).Stop,
		}, true
	case *ast.Emphasis, *ast.CodeSpan, *ast.Link, *east.Strikethrough:
		node := m.mapSpan(gmNode)
		if node == nil {
			return mdast.SourceRange{}, false
		}
		return node.Span, true
	case *ast.Image:
		inner, ok := m.childRange(gmn)
		if !ok || inner.StartOffset < 2 || m.content[inner.StartOffset-2] != '!' {
			return mdast.SourceRange{}, false
		}
		span, ok := m.link(inner)
		if !ok {
			return mdast.SourceRange{}, false
		}
		span.StartOffset--
		return span, true
	default:
		return mdast.SourceRange{}, false
	}
}

// childRange is the range from the first child's start to the last child's end.
func (m *mapper) childRange(gmNode ast.Node) (mdast.SourceRange, bool) {
	first, last := gmNode.FirstChild(), gmNode.LastChild()
	if first == nil || last == nil {
		return mdast.SourceRange{}, false
	}
	head, ok := m.rangeOf(first)
	if !ok {
		return mdast.SourceRange{}, false
	}
	tail, ok := m.rangeOf(last)
	if !ok {
		return mdast.SourceRange{}, false
	}
	if head.StartOffset > tail.EndOffset {
		return mdast.SourceRange{}, false
	}
	return mdast.SourceRange{StartOffset: head.StartOffset, EndOffset: tail.EndOffset}, true
}

// delimited widens content by width marker bytes on each side. Both sides
// must consist of the same marker byte, drawn from allowed.
func (m *mapper) delimited(content mdast.SourceRange, width int, allowed ...byte) (mdast.SourceRange, bool) {
	start, end := content.StartOffset-width, content.EndOffset+width
	if width <= 0 || start < 0 || end > len(m.content) {
		return mdast.SourceRange{}, false
	}
	marker := m.content[start]
	if !slices.Contains(allowed, marker) {
		return mdast.SourceRange{}, false
	}
	for i := range width {
		if m.content[start+i] != marker || m.content[content.EndOffset+i] != marker {
			return mdast.SourceRange{}, false
		}
	}
	return mdast.SourceRange{StartOffset: start, EndOffset: end}, true
}

// runOf widens content by equally long runs of marker on each side.
func (m *mapper) runOf(content mdast.SourceRange, marker byte) (mdast.SourceRange, bool) {
	left := 0
	for content.StartOffset-left-1 >= 0 && m.content[content.StartOffset-left-1] == marker {
		left++
	}
	right := 0
	for content.EndOffset+right < len(m.content) && m.content[content.EndOffset+right] == marker {
		right++
	}
	width := min(left, right)
	if width == 0 {
		return mdast.SourceRange{}, false
	}
	return mdast.SourceRange{StartOffset: content.StartOffset - width, EndOffset: content.EndOffset + width}, true
}

// codeSpan finds the backtick runs around code content. A single space
// between backticks and content belongs to the marker.
func (m *mapper) codeSpan(content mdast.SourceRange) (mdast.SourceRange, bool) {
	start := content.StartOffset
	if start > 0 && m.content[start-1] == ' ' {
		start--
	}
	end := content.EndOffset
	if end < len(m.content) && m.content[end] == ' ' {
		end++
	}
	open := 0
	for start-open-1 >= 0 && m.content[start-open-1] == '`' {
		open++
	}
	closing := 0
	for end+closing < len(m.content) && m.content[end+closing] == '`' {
		closing++
	}
	if open == 0 || open != closing {
		return mdast.SourceRange{}, false
	}
	return mdast.SourceRange{StartOffset: start - open, EndOffset: end + closing}, true
}

// link finds the brackets around link text and the destination that follows.
func (m *mapper) link(content mdast.SourceRange) (mdast.SourceRange, bool) {
	start, pos := content.StartOffset-1, content.EndOffset
	if start < 0 || m.content[start] != '[' || pos >= len(m.content) || m.content[pos] != ']' {
		return mdast.SourceRange{}, false
	}
	pos++

	if pos < len(m.content) {
		switch m.content[pos] {
		case '(':
			if end, ok := m.matching(pos, '(', ')'); ok {
				return mdast.SourceRange{StartOffset: start, EndOffset: end}, true
			}
		case '[':
			if end, ok := m.matching(pos, '[', ']'); ok {
				return mdast.SourceRange{StartOffset: start, EndOffset: end}, true
			}
		}
	}
	return mdast.SourceRange{StartOffset: start, EndOffset: pos}, true
}

// matching returns the offset just past the bracket closing the one at pos,
// honoring nesting and backslash escapes.
func (m *mapper) matching(pos int, open, closing byte) (int, bool) {
	depth := 0
	for i := pos; i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// fits reports whether node can be appended to parent without overlapping
// the parent's markers or its previous children.
func fits(parent, node *mdast.Node) bool {
	if parent.Kind != mdast.NodeDocument && !parent.Content.Encloses(node.Span) {
		return false
	}
	if parent.LastChild != nil && parent.LastChild.Span.EndOffset > node.Span.StartOffset {
		return false
	}
	return true
}
