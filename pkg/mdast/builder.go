package mdast

// NewSpan creates an inline node covering span with the given content range.
func NewSpan(kind NodeKind, span, content SourceRange) *Node {
	return &Node{Kind: kind, Span: span, Content: content}
}

// AppendChild links a detached child as the last child of parent. Spans are
// appended in source order while a tree is built and never move afterwards.
func AppendChild(parent, child *Node) {
	child.Parent = parent
	child.Prev = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}
