// Package editor is the editing core: it owns the content root, turns
// device events into block edits, live markdown rendering and caret
// restoration, and tracks the active block.
//
// An Editor is single-threaded. Every handler runs to completion and leaves
// the surface, the document and the active block consistent before the
// next device event is delivered.
package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/blockid"
	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/device"
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/markdown"
	"github.com/yaklabco/mdlive/pkg/surface"
)

// Container attributes set at initialization.
const (
	ContainerID       = "write"
	AttrEditable      = "contenteditable"
	AttrEditorElement = "data-mdlive-editor"
)

// ErrNoContainer is returned when the surface has no container element.
var ErrNoContainer = errors.New("editor: surface has no container")

// Editor is an initialized editing session on one container.
type Editor struct {
	dom    *surface.DOM
	target device.Target
	codec  *codec.Codec
	md     *markdown.Transformer
	ids    *blockid.Registry
	doc    *block.Document
	events *event.Center
	cfg    *config.Config
	logger *log.Logger

	active    ActiveBlock
	destroyed bool
}

// Initialize takes over the container of dom, creates the first empty
// block with the caret in it and starts listening on target.
//
// A container that is not a div is replaced by a div carrying its
// attributes. Existing children are discarded: the document owns all
// content below the container.
func Initialize(dom *surface.DOM, target device.Target, opts ...Option) (*Editor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if dom == nil || dom.Root() == nil {
		return nil, ErrNoContainer
	}

	e := &Editor{
		dom:    dom,
		target: target,
		codec:  codec.New(dom),
		md: markdown.New(
			markdown.WithFlavor(string(o.cfg.Flavor)),
			markdown.WithMarkerClasses(o.cfg.MarkerClass, o.cfg.HiddenMarkerClass),
		),
		ids:    blockid.New(o.cfg.IDPrefix),
		doc:    block.NewDocument(),
		events: event.NewCenter(),
		cfg:    o.cfg,
		logger: o.logger,
	}

	e.ensureContainerDiv()
	root := e.dom.Root()
	surface.RemoveChildren(root)
	surface.SetAttr(root, AttrEditable, "true")
	surface.SetAttr(root, AttrEditorElement, "true")
	surface.SetAttr(root, "id", ContainerID)

	e.attach()

	if err := e.generateLastEmptyBlock(); err != nil {
		e.events.DetachAll()
		return nil, err
	}

	e.logger.Debug("editor initialized",
		logging.FieldFlavor, e.md.Flavor(),
		logging.FieldBlockID, e.active.ID)

	return e, nil
}

// ensureContainerDiv swaps a non-div container for a div with the same
// attributes.
func (e *Editor) ensureContainerDiv() {
	root := e.dom.Root()
	if root.DataAtom == atom.Div {
		return
	}
	div := surface.NewElement("div", surface.Attrs(root))
	if parent := root.Parent; parent != nil {
		parent.InsertBefore(div, root)
		parent.RemoveChild(root)
	}
	e.logger.Debug("container replaced by div", logging.FieldTag, root.Data)
	e.dom.SetRoot(div)
}

// attach installs the device listeners. Listeners on one event type run in
// this order, so a click re-renders the block before the active block is
// re-evaluated.
func (e *Editor) attach() {
	on := func(typ device.Type, name string, fn func(*device.Event) error) {
		e.events.AttachDeviceEvent(e.target, typ, e.guard(name, fn))
	}
	if e.target == nil {
		return
	}
	on(device.Click, "markedText", e.handleMarkedText)
	on(device.KeyUp, "markedText", e.handleMarkedText)
	on(device.KeyDown, "enter", e.handleEnter)
	on(device.Click, "blockChange", func(*device.Event) error { return e.checkBlockChange() })
	on(device.KeyDown, "arrow", e.handleArrow)
	on(device.Input, "input", e.handleInput)
}

// guard is the error boundary of device handlers: an error aborts the
// current event cycle only and is logged.
func (e *Editor) guard(name string, fn func(*device.Event) error) device.Listener {
	return func(ev *device.Event) {
		if e.destroyed {
			return
		}
		if err := fn(ev); err != nil {
			e.logger.Error("event handler failed",
				logging.FieldEvent, name,
				logging.FieldKey, ev.Key,
				logging.FieldError, err)
		}
	}
}

// generateLastEmptyBlock appends an empty paragraph, moves the caret into
// it and makes it active.
func (e *Editor) generateLastEmptyBlock() error {
	b := block.CreateEmptyBlock(e.ids, block.TagParagraph, nil)
	el, err := b.NewElement()
	if err != nil {
		return fmt.Errorf("create block: %w", err)
	}
	if err := e.doc.Append(b); err != nil {
		return err
	}
	e.dom.Root().AppendChild(el)
	e.codec.MoveCursor(el, 0)

	surface.AddClass(el, e.cfg.ActiveClass)
	b.Active = true
	e.active = ActiveBlock{ID: b.ID, Block: b}
	return nil
}

// Destroy detaches every device listener, drops all subscriptions and
// releases the block identifiers. The editor must not be used afterwards.
func (e *Editor) Destroy() {
	if e.destroyed {
		return
	}
	e.events.DetachAll()
	e.events.Reset()
	e.ids.Clear()
	e.active = ActiveBlock{}
	e.destroyed = true
	e.logger.Debug("editor destroyed")
}

// Events returns the event center host code subscribes to.
func (e *Editor) Events() *event.Center {
	return e.events
}

// Active returns the active block pointer.
func (e *Editor) Active() ActiveBlock {
	return e.active
}

// Document returns the block sequence.
func (e *Editor) Document() *block.Document {
	return e.doc
}

// Surface returns the rendering surface the editor mutates.
func (e *Editor) Surface() *surface.DOM {
	return e.dom
}

// Root returns the container element.
func (e *Editor) Root() *html.Node {
	return e.dom.Root()
}

// Element returns the surface element of the block with id.
func (e *Editor) Element(id string) (*html.Node, bool) {
	for c := e.dom.Root().FirstChild; c != nil; c = c.NextSibling {
		if v, ok := surface.Attr(c, block.AttrID); ok && v == id {
			return c, true
		}
	}
	return nil, false
}

// MarkdownSource returns the markdown text of the document.
func (e *Editor) MarkdownSource() string {
	e.syncAll()
	return e.doc.Markdown()
}

// RenderedMarkup returns the rendered HTML of the document.
func (e *Editor) RenderedMarkup() string {
	e.syncAll()
	return e.doc.HTML()
}

// syncAll refreshes every block from its element, picking up edits the
// surface made without an input event.
func (e *Editor) syncAll() {
	if e.destroyed {
		return
	}
	for _, b := range e.doc.Blocks() {
		if el, ok := e.Element(b.ID); ok {
			b.Sync(el)
		}
	}
}
