// Package block holds the block model: paragraphs and headings with stable
// identifiers, the ordered document root that owns them, and the helpers
// that locate and retype blocks on the rendering surface.
package block

import (
	"maps"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/blockid"
	"github.com/yaklabco/mdlive/pkg/surface"
)

// AttrID is the element attribute that carries the block id.
const AttrID = "id"

// Block is one paragraph or heading of the document.
type Block struct {
	// ID is unique among live blocks and never changes.
	ID string

	// Tag is the block kind.
	Tag Tag

	// Text is the plain text of the block, markdown markers included.
	Text string

	// Markup is the rendered inline markup.
	Markup string

	// Attrs are extra element attributes, excluding id.
	Attrs map[string]string

	// Active marks the block holding the caret.
	Active bool
}

// CreateEmptyBlock allocates an id from reg and returns an empty block of
// kind tag. Attributes are copied, except id. The markup is a placeholder
// so the block is never visually void.
func CreateEmptyBlock(reg *blockid.Registry, tag Tag, attrs map[string]string) *Block {
	b := &Block{
		ID:     reg.Allocate(),
		Tag:    tag,
		Markup: surface.Placeholder,
		Attrs:  make(map[string]string, len(attrs)),
	}
	for k, v := range attrs {
		if k == AttrID {
			continue
		}
		b.Attrs[k] = v
	}
	return b
}

// IsEmpty reports whether the block has no text.
func (b *Block) IsEmpty() bool {
	return b.Text == ""
}

// NewElement builds the surface element of b.
func (b *Block) NewElement() (*html.Node, error) {
	el := surface.NewElement(string(b.Tag), b.attrsWithID())
	if err := surface.SetInnerHTML(el, b.Markup); err != nil {
		return nil, err
	}
	return el, nil
}

// attrsWithID returns a copy of the block's attributes including its id.
func (b *Block) attrsWithID() map[string]string {
	attrs := maps.Clone(b.Attrs)
	if attrs == nil {
		attrs = make(map[string]string, 1)
	}
	attrs[AttrID] = b.ID
	return attrs
}

// Sync copies text, markup and type from the block's surface element.
func (b *Block) Sync(el *html.Node) {
	if tag, err := ParseTag(el.Data); err == nil {
		b.Tag = tag
	}
	b.Text = surface.TextContent(el)
	b.Markup = surface.InnerHTML(el)
}

// UpdateType changes the kind of b to tag and renames its element. Content,
// id and attributes are kept. It reports whether anything changed.
func UpdateType(b *Block, el *html.Node, tag Tag) bool {
	if b.Tag == tag {
		return false
	}
	b.Tag = tag
	if el != nil {
		surface.Rename(el, string(tag))
	}
	return true
}
