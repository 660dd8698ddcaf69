package mdast

// SourceRange represents a byte range in the block text.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Encloses returns true if other lies entirely inside r.
func (r SourceRange) Encloses(other SourceRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// Text returns the bytes of content covered by the range, or nil when the
// range does not fit.
func (r SourceRange) Text(content []byte) []byte {
	if r.StartOffset < 0 || r.EndOffset > len(content) || r.StartOffset > r.EndOffset {
		return nil
	}
	return content[r.StartOffset:r.EndOffset]
}
