package mdast

// BlockInfo classifies the leading block construct of a block's text.
type BlockInfo struct {
	// Kind is one of the block-level node kinds.
	Kind NodeKind

	// HeadingLevel is 1-6 for NodeHeading.
	HeadingLevel int

	// Marker is the range of the leading block marker, e.g. "## " of an ATX
	// heading. Empty when the construct has none.
	Marker SourceRange

	// Info is the info string of an opening code fence.
	Info string
}

// Snapshot is the parsed view of one block's text.
type Snapshot struct {
	// Content is the block's raw text.
	Content []byte

	// Block classifies the leading block construct.
	Block BlockInfo

	// Root is a NodeDocument whose descendants are the recognized inline spans
	// in source order.
	Root *Node
}

// NewSnapshot creates a snapshot with an empty span tree.
func NewSnapshot(content []byte) *Snapshot {
	return &Snapshot{
		Content: content,
		Block:   BlockInfo{Kind: NodeParagraph},
		Root:    &Node{Kind: NodeDocument},
	}
}
