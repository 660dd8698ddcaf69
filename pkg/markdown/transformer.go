// Package markdown detects live markdown patterns in block text and renders
// block text into inline markup.
//
// Rendering is lossless over text: the text content of the produced markup is
// exactly the input, markers included. Markers are wrapped in marker spans
// and hidden by class when the selection does not touch their run.
package markdown

import (
	"context"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/langdetect"
	"github.com/yaklabco/mdlive/pkg/mdast"
	"github.com/yaklabco/mdlive/pkg/parser/goldmark"
)

// Default CSS classes of marker spans.
const (
	DefaultMarkerClass = "md-marker"
	DefaultHiddenClass = "md-hide"
)

// Block pattern tags that are not headings.
const (
	TagThematicBreak = "hr"
	TagCodeFence     = "pre"
)

// Pattern is a block type implied by the leading text of a block.
type Pattern struct {
	// Tag is the target tag: "h1".."h6", "hr" or "pre".
	Tag string

	// Level is the heading level for heading patterns.
	Level int

	// Language is the normalized fence language for "pre" patterns.
	Language string
}

// Transformer detects patterns and renders inline markup.
type Transformer struct {
	parser      *goldmark.Parser
	markerClass string
	hiddenClass string
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithFlavor selects the markdown flavor ("commonmark" or "gfm").
func WithFlavor(flavor string) Option {
	return func(t *Transformer) {
		t.parser = goldmark.New(flavor)
	}
}

// WithMarkerClasses overrides the marker span classes. Empty values keep
// the defaults.
func WithMarkerClasses(marker, hidden string) Option {
	return func(t *Transformer) {
		if marker != "" {
			t.markerClass = marker
		}
		if hidden != "" {
			t.hiddenClass = hidden
		}
	}
}

// New creates a Transformer. The default flavor is CommonMark.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		parser:      goldmark.New(goldmark.FlavorCommonMark),
		markerClass: DefaultMarkerClass,
		hiddenClass: DefaultHiddenClass,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Flavor returns the markdown flavor in use.
func (t *Transformer) Flavor() string {
	return t.parser.Flavor()
}

// DetectLineBreakPattern reports block types implied by a whole line: a
// thematic break or an opening code fence.
func (t *Transformer) DetectLineBreakPattern(text string) (Pattern, bool) {
	snap := t.parse(text)
	switch snap.Block.Kind {
	case mdast.NodeThematicBreak:
		return Pattern{Tag: TagThematicBreak}, true
	case mdast.NodeCodeBlock:
		return Pattern{Tag: TagCodeFence, Language: langdetect.FenceLanguage(snap.Block.Info)}, true
	default:
		return Pattern{}, false
	}
}

// DetectInlinePattern reports a heading level implied by a leading ATX
// marker. The marker counts only once whitespace follows the hashes, so
// "## " promotes while "#tag" does not.
func (t *Transformer) DetectInlinePattern(text string) (Pattern, bool) {
	snap := t.parse(text)
	if snap.Block.Kind != mdast.NodeHeading || snap.Block.Marker.IsEmpty() {
		return Pattern{}, false
	}
	marker := string(snap.Block.Marker.Text(snap.Content))
	if strings.TrimRight(marker, " \t") == marker {
		return Pattern{}, false
	}
	level := snap.Block.HeadingLevel
	return Pattern{Tag: "h" + strconv.Itoa(level), Level: level}, true
}

// RenderInlineMarkup renders text into inline markup. Empty text renders as
// a placeholder so the block never collapses.
func (t *Transformer) RenderInlineMarkup(text string, sel codec.State) string {
	if text == "" {
		return placeholder
	}
	r := newRenderer(t, t.parse(text), sel)
	return r.render()
}

// NeedsReparse reports whether markup is stale for text and sel, i.e.
// rendering again would produce different markup.
func (t *Transformer) NeedsReparse(markup, text string, sel codec.State) bool {
	_, stale := t.Reparse(markup, text, sel)
	return stale
}

// Reparse renders text once and returns the fresh markup along with whether
// it differs from markup. Callers replace stale markup with the result
// instead of rendering again.
func (t *Transformer) Reparse(markup, text string, sel codec.State) (string, bool) {
	fresh := t.RenderInlineMarkup(text, sel)
	return fresh, canonical(markup) != canonical(fresh)
}

// parse never fails: the only parser error is cancellation, and a background
// context cannot be cancelled.
func (t *Transformer) parse(text string) *mdast.Snapshot {
	snap, err := t.parser.Parse(context.Background(), []byte(text))
	if err != nil {
		return mdast.NewSnapshot([]byte(text))
	}
	return snap
}
