package block

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownTag is returned when a tag names no block kind.
var ErrUnknownTag = errors.New("unknown block tag")

// Tag is the kind of a block: a paragraph or a heading.
type Tag string

// Supported block tags.
const (
	TagParagraph Tag = "p"
	TagH1        Tag = "h1"
	TagH2        Tag = "h2"
	TagH3        Tag = "h3"
	TagH4        Tag = "h4"
	TagH5        Tag = "h5"
	TagH6        Tag = "h6"
)

// MaxHeadingLevel is the deepest heading level.
const MaxHeadingLevel = 6

// ParseTag parses an element tag name, case-insensitively.
func ParseTag(s string) (Tag, error) {
	tag := Tag(strings.ToLower(strings.TrimSpace(s)))
	if tag == TagParagraph || tag.IsHeading() {
		return tag, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// HeadingTag returns the tag of a heading level.
func HeadingTag(level int) (Tag, bool) {
	if level < 1 || level > MaxHeadingLevel {
		return "", false
	}
	return Tag("h" + strconv.Itoa(level)), true
}

// IsHeading reports whether t is h1 through h6.
func (t Tag) IsHeading() bool {
	return t.Level() > 0
}

// Level returns the heading level of t, or 0 for non-headings.
func (t Tag) Level() int {
	if len(t) != 2 || t[0] != 'h' {
		return 0
	}
	level := int(t[1] - '0')
	if level < 1 || level > MaxHeadingLevel {
		return 0
	}
	return level
}

// String returns the tag name.
func (t Tag) String() string {
	return string(t)
}

// UpdateKind classifies a pending block type change.
type UpdateKind int

const (
	// UpdateNone means the block already has the target type.
	UpdateNone UpdateKind = iota

	// UpdateInline is a change driven by markers inside the text, such as a
	// heading promotion. The block keeps its content and identity.
	UpdateInline

	// UpdateBlock is a change that restructures the block, such as a
	// thematic break or code fence.
	UpdateBlock
)

var updateKindNames = [...]string{"none", "inline", "block"}

// String returns the name of the update kind.
func (k UpdateKind) String() string {
	if int(k) < len(updateKindNames) {
		return updateKindNames[k]
	}
	return "UpdateKind(" + strconv.Itoa(int(k)) + ")"
}

// ClassifyUpdate classifies changing a block of type current into target,
// where target is a block tag or a structural tag such as "hr" or "pre".
func ClassifyUpdate(current Tag, target string) UpdateKind {
	if target == "" || Tag(target) == current {
		return UpdateNone
	}
	if tag := Tag(target); tag == TagParagraph || tag.IsHeading() {
		return UpdateInline
	}
	return UpdateBlock
}
