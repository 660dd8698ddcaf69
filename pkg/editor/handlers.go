package editor

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/device"
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/surface"
)

// caretBlock resolves the block holding the start of the selection.
func (e *Editor) caretBlock() (*block.Block, *html.Node, error) {
	sel, ok := e.dom.Selection()
	if !ok {
		return nil, nil, fmt.Errorf("caret block: %w", block.ErrNotFound)
	}
	return block.FindNearestElement(e.doc, sel.Start.Node, e.dom.Root())
}

// handleInput runs after the surface changed the text of a block. It
// promotes the block to the heading its marker implies, or demotes a
// heading whose marker is gone.
func (e *Editor) handleInput(*device.Event) error {
	if err := e.adoptLooseText(); err != nil {
		return err
	}
	b, el, err := e.caretBlock()
	if err != nil {
		return err
	}
	state, err := e.codec.ExportSelection(el)
	if err != nil {
		return err
	}
	text := surface.TextContent(el)

	if p, ok := e.md.DetectLineBreakPattern(text); ok && block.ClassifyUpdate(b.Tag, p.Tag) == block.UpdateBlock {
		e.logger.Debug("line break pattern detected",
			logging.FieldBlockID, b.ID,
			logging.FieldPattern, p.Tag,
			logging.FieldLanguage, p.Language)
	}

	target := b.Tag
	if p, ok := e.md.DetectInlinePattern(text); ok {
		target = block.Tag(p.Tag)
	} else if b.Tag.IsHeading() && e.cfg.ShouldDemoteHeadings() {
		target = block.TagParagraph
	}

	if block.ClassifyUpdate(b.Tag, string(target)) == block.UpdateInline {
		old := b.Tag
		block.UpdateType(b, el, target)
		e.codec.ImportSelection(state, el)
		e.logger.Debug("block retyped",
			logging.FieldBlockID, b.ID,
			logging.FieldTag, fmt.Sprintf("%s->%s", old, target))
	}

	b.Sync(el)
	return nil
}

// adoptLooseText wraps a text node typed directly into the container into
// a new paragraph. The caret keeps pointing at the moved text node.
func (e *Editor) adoptLooseText() error {
	sel, ok := e.dom.Selection()
	if !ok {
		return nil
	}
	node, root := sel.Start.Node, e.dom.Root()
	if node.Type != html.TextNode || node.Parent != root {
		return nil
	}

	b := block.CreateEmptyBlock(e.ids, block.TagParagraph, nil)
	el, err := b.NewElement()
	if err != nil {
		return fmt.Errorf("adopt loose text: %w", err)
	}
	var prev *block.Block
	for p := node.PrevSibling; p != nil && prev == nil; p = p.PrevSibling {
		if id, ok := surface.Attr(p, block.AttrID); ok {
			prev, _ = e.doc.Get(id)
		}
	}
	if prev != nil {
		err = e.doc.InsertAfter(b, prev)
	} else {
		err = e.insertFirst(b)
	}
	if err != nil {
		e.ids.Release(b.ID)
		return err
	}

	root.InsertBefore(el, node)
	root.RemoveChild(node)
	surface.RemoveChildren(el)
	el.AppendChild(node)
	e.logger.Debug("loose text wrapped", logging.FieldBlockID, b.ID)
	return nil
}

// insertFirst puts b at the start of the document.
func (e *Editor) insertFirst(b *block.Block) error {
	rest := e.doc.Blocks()
	e.doc.Clear()
	if err := e.doc.Append(b); err != nil {
		return err
	}
	for _, r := range rest {
		if err := e.doc.Append(r); err != nil {
			return err
		}
	}
	return nil
}

// handleMarkedText re-renders the inline markup of the caret block when it
// is stale, then restores the selection.
func (e *Editor) handleMarkedText(*device.Event) error {
	b, el, err := e.caretBlock()
	if err != nil {
		return err
	}
	state, err := e.codec.ExportSelection(el)
	if err != nil {
		return err
	}
	text := surface.TextContent(el)
	markup, stale := e.md.Reparse(surface.InnerHTML(el), text, state)
	if !stale {
		return nil
	}

	if err := surface.SetInnerHTML(el, markup); err != nil {
		return fmt.Errorf("reparse %s: %w", b.ID, err)
	}
	e.codec.ImportSelection(state, el)
	b.Sync(el)

	e.logger.Debug("markup reparsed",
		logging.FieldBlockID, b.ID,
		logging.FieldSelection, state)

	return e.events.Dispatch(event.MarkupReparsed{Block: b, Selection: state})
}

// handleEnter splits the caret block. The original block keeps the text
// before the selection, a new block of the same kind gets the text after it
// and the caret. Selected text is dropped.
func (e *Editor) handleEnter(ev *device.Event) error {
	if ev.Key != device.KeyEnter {
		return nil
	}
	ev.PreventDefault()

	b, el, err := e.caretBlock()
	if err != nil {
		return err
	}
	chop, err := e.codec.ChopByCursor(el)
	if err != nil {
		return err
	}

	attrs := surface.Attrs(el)
	delete(attrs, "class")
	nb := block.CreateEmptyBlock(e.ids, b.Tag, attrs)
	nel, err := nb.NewElement()
	if err != nil {
		e.ids.Release(nb.ID)
		return fmt.Errorf("create block: %w", err)
	}
	if err := surface.SetInnerHTML(nel, orPlaceholder(chop.Post)); err != nil {
		e.ids.Release(nb.ID)
		return fmt.Errorf("fill new block: %w", err)
	}
	pre, err := surface.ParseFragment(el, orPlaceholder(chop.Pre))
	if err != nil {
		e.ids.Release(nb.ID)
		return fmt.Errorf("truncate block: %w", err)
	}
	if err := e.doc.InsertAfter(nb, b); err != nil {
		e.ids.Release(nb.ID)
		return err
	}
	// Nothing below can fail, so the document and the surface stay in step.
	surface.ReplaceChildren(el, pre)
	el.Parent.InsertBefore(nel, el.NextSibling)

	b.Sync(el)
	nb.Sync(nel)
	e.codec.MoveCursor(nel, 0)

	e.logger.Debug("line committed",
		logging.FieldBlockID, b.ID,
		logging.FieldNewBlock, nb.ID,
		logging.FieldOffset, chop.Offset)

	if err := e.events.Dispatch(event.LineCommitted{Block: b, NewBlock: nb}); err != nil {
		return err
	}
	return e.checkBlockChange()
}

// handleArrow forwards arrow keys as notifications. The surface moves the
// caret on its own.
func (e *Editor) handleArrow(ev *device.Event) error {
	dir, ok := event.DirectionOf(ev.Key)
	if !ok {
		return nil
	}
	if err := e.events.Dispatch(event.ArrowPressed{Direction: dir}); err != nil {
		return err
	}
	return e.checkBlockChange()
}

// checkBlockChange moves the active designation to the caret block when
// it differs from the active one.
func (e *Editor) checkBlockChange() error {
	resolved, el, err := e.caretBlock()
	if err != nil {
		return err
	}
	next, changed := Transition(e.active, resolved)
	if !changed {
		return nil
	}

	prev := e.active
	if prev.Block != nil {
		prev.Block.Active = false
		if oldEl, ok := e.Element(prev.ID); ok {
			surface.RemoveClass(oldEl, e.cfg.ActiveClass)
		}
	}
	surface.AddClass(el, e.cfg.ActiveClass)
	resolved.Active = true
	e.active = next

	e.logger.Debug("block changed",
		logging.FieldOldBlock, prev.ID,
		logging.FieldNewBlock, next.ID)

	return e.events.Dispatch(event.BlockChanged{Old: prev.Block, New: resolved})
}

func orPlaceholder(markup string) string {
	if markup == "" {
		return surface.Placeholder
	}
	return markup
}
