package block

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/surface"
)

var (
	// ErrNotFound is returned when no live block matches. During editing it
	// means the caret reported a position outside every block.
	ErrNotFound = errors.New("block not found")

	// ErrDuplicateID is returned when a block id is already in the document.
	ErrDuplicateID = errors.New("duplicate block id")
)

// Document is the ordered sequence of blocks under the content root.
type Document struct {
	blocks []*Block
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Append adds b at the end of the document.
func (d *Document) Append(b *Block) error {
	if d.Index(b.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}
	d.blocks = append(d.blocks, b)
	return nil
}

// InsertAfter inserts newBlock right after existing.
func (d *Document) InsertAfter(newBlock, existing *Block) error {
	if d.Index(newBlock.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, newBlock.ID)
	}
	idx := d.Index(existing.ID)
	if idx < 0 {
		return fmt.Errorf("insert after %s: %w", existing.ID, ErrNotFound)
	}
	d.blocks = slices.Insert(d.blocks, idx+1, newBlock)
	return nil
}

// Get returns the block with id.
func (d *Document) Get(id string) (*Block, bool) {
	if idx := d.Index(id); idx >= 0 {
		return d.blocks[idx], true
	}
	return nil, false
}

// Index returns the position of the block with id, or -1.
func (d *Document) Index(id string) int {
	return slices.IndexFunc(d.blocks, func(b *Block) bool { return b.ID == id })
}

// Blocks returns the blocks in document order.
func (d *Document) Blocks() []*Block {
	return slices.Clone(d.blocks)
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Clear removes every block.
func (d *Document) Clear() {
	d.blocks = nil
}

// Markdown returns the markdown source: the text of every non-empty block,
// separated by blank lines.
func (d *Document) Markdown() string {
	texts := make([]string, 0, len(d.blocks))
	for _, b := range d.blocks {
		if b.IsEmpty() {
			continue
		}
		texts = append(texts, b.Text)
	}
	return strings.Join(texts, "\n\n")
}

// HTML returns the rendered markup of every block, one element per line.
// Attributes, id included, are sorted by key like on the surface.
func (d *Document) HTML() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("<" + string(b.Tag))
		for _, a := range surface.SortedAttrs(b.attrsWithID()) {
			sb.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
		}
		sb.WriteString(">" + b.Markup + "</" + string(b.Tag) + ">")
	}
	return sb.String()
}
