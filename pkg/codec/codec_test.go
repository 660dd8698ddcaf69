package codec_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/surface"
)

// newBlock builds a container holding one paragraph with the given markup
// and returns the DOM and the paragraph.
func newBlock(t *testing.T, markup string) (*surface.DOM, *html.Node) {
	t.Helper()

	root, err := surface.ParseContainer(`<div id="write"></div>`)
	require.NoError(t, err)

	para := surface.NewElement("p", map[string]string{"id": "b-1"})
	root.AppendChild(para)
	require.NoError(t, surface.SetInnerHTML(para, markup))

	return surface.NewDOM(root), para
}

const styledMarkup = `He<strong><span class="md-marker">**</span>llo<span class="md-marker">**</span></strong> <em>wor</em>ld`

func TestPlainText(t *testing.T) {
	t.Parallel()

	_, para := newBlock(t, styledMarkup)

	assert.Equal(t, "He**llo** world", codec.PlainText(para))
	assert.Equal(t, 15, codec.Length(para))
}

func TestSelectionRoundTrip(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, styledMarkup)
	c := codec.New(dom)

	for offset := 0; offset <= codec.Length(para); offset++ {
		t.Run(fmt.Sprintf("offset %d", offset), func(t *testing.T) {
			c.MoveCursor(para, offset)

			state, err := c.ExportSelection(para)
			require.NoError(t, err)
			assert.Equal(t, codec.Caret(offset), state)

			c.ImportSelection(state, para)
			again, err := c.ExportSelection(para)
			require.NoError(t, err)
			assert.Equal(t, state, again)
		})
	}
}

func TestSelectionSurvivesMarkupRewrite(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, "He**llo** world")
	c := codec.New(dom)

	c.ImportSelection(codec.State{Start: 3, End: 7}, para)
	state, err := c.ExportSelection(para)
	require.NoError(t, err)

	require.NoError(t, surface.SetInnerHTML(para, styledMarkup))
	c.ImportSelection(state, para)

	again, err := c.ExportSelection(para)
	require.NoError(t, err)
	assert.Equal(t, codec.State{Start: 3, End: 7}, again)
}

func TestImportSelection_Clamps(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, "abc")
	c := codec.New(dom)

	c.ImportSelection(codec.State{Start: -4, End: 99}, para)
	state, err := c.ExportSelection(para)
	require.NoError(t, err)
	assert.Equal(t, codec.State{Start: 0, End: 3}, state)
}

func TestExportSelection_Errors(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, "abc")
	c := codec.New(dom)

	_, err := c.ExportSelection(para)
	require.ErrorIs(t, err, codec.ErrNoSelection)

	other := surface.NewElement("p", nil)
	dom.Root().AppendChild(other)
	require.NoError(t, surface.SetInnerHTML(other, "xyz"))
	c.MoveCursor(other, 1)

	_, err = c.ExportSelection(para)
	require.ErrorIs(t, err, codec.ErrCaretOutside)
}

func TestOffsetOf_ElementCaret(t *testing.T) {
	t.Parallel()

	_, para := newBlock(t, "ab<em>cd</em>ef")

	tests := []struct {
		name   string
		caret  surface.Caret
		expect int
	}{
		{"before first child", surface.Caret{Node: para, Offset: 0}, 0},
		{"before em", surface.Caret{Node: para, Offset: 1}, 2},
		{"after em", surface.Caret{Node: para, Offset: 2}, 4},
		{"past the end", surface.Caret{Node: para, Offset: 3}, 6},
		{"inside em element", surface.Caret{Node: para.FirstChild.NextSibling, Offset: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := codec.OffsetOf(para, tt.caret)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestLocate_EmptyBlock(t *testing.T) {
	t.Parallel()

	_, para := newBlock(t, surface.Placeholder)

	caret := codec.Locate(para, 5)
	assert.Equal(t, para, caret.Node)
	assert.Zero(t, caret.Offset)
}

func TestChopByCursor_Lossless(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, styledMarkup)
	c := codec.New(dom)
	text := codec.PlainText(para)

	for offset := 0; offset <= codec.Length(para); offset++ {
		c.MoveCursor(para, offset)
		chop, err := c.ChopByCursor(para)
		require.NoError(t, err)

		pre := fragmentText(t, chop.Pre)
		post := fragmentText(t, chop.Post)

		assert.Equal(t, text, pre+post, "offset %d", offset)
		assert.Equal(t, offset, len([]rune(pre)), "offset %d", offset)
	}

	// The block itself is untouched.
	assert.Equal(t, text, codec.PlainText(para))
}

func TestChopByCursor_Edges(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, "HelloWorld")
	c := codec.New(dom)

	c.MoveCursor(para, 0)
	chop, err := c.ChopByCursor(para)
	require.NoError(t, err)
	assert.Empty(t, chop.Pre)
	assert.Equal(t, "HelloWorld", chop.Post)

	c.MoveCursor(para, 10)
	chop, err = c.ChopByCursor(para)
	require.NoError(t, err)
	assert.Equal(t, "HelloWorld", chop.Pre)
	assert.Empty(t, chop.Post)

	c.MoveCursor(para, 5)
	chop, err = c.ChopByCursor(para)
	require.NoError(t, err)
	assert.Equal(t, "Hello", chop.Pre)
	assert.Equal(t, "World", chop.Post)
	assert.Equal(t, 5, chop.Offset)
}

func TestChopByCursor_DropsSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		markup     string
		start, end int
		pre, post  string
	}{
		{name: "plain", markup: "HelloWorld", start: 2, end: 7, pre: "He", post: "rld"},
		{name: "whole block", markup: "HelloWorld", start: 0, end: 10, pre: "", post: ""},
		{name: "across formatting", markup: "a<em>bc</em>d", start: 1, end: 3, pre: "a", post: "d"},
		{name: "inside formatting", markup: "a<em>bcd</em>e", start: 2, end: 3, pre: "a<em>b</em>", post: "<em>d</em>e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dom, para := newBlock(t, tt.markup)
			c := codec.New(dom)

			c.ImportSelection(codec.State{Start: tt.start, End: tt.end}, para)
			chop, err := c.ChopByCursor(para)
			require.NoError(t, err)

			assert.Equal(t, tt.pre, chop.Pre)
			assert.Equal(t, tt.post, chop.Post)
			assert.Equal(t, tt.start, chop.Offset)
		})
	}
}

func TestChopByCursor_KeepsFormatting(t *testing.T) {
	t.Parallel()

	dom, para := newBlock(t, "a<em>bc</em>d")
	c := codec.New(dom)

	c.MoveCursor(para, 2)
	chop, err := c.ChopByCursor(para)
	require.NoError(t, err)

	assert.Equal(t, "a<em>b</em>", chop.Pre)
	assert.Equal(t, "<em>c</em>d", chop.Post)
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, codec.Caret(3).IsCollapsed())
	assert.Equal(t, codec.State{Start: 1, End: 4}, codec.State{Start: 4, End: 1}.Clamp(10))
	assert.True(t, codec.State{Start: 2, End: 2}.Touches(2, 5))
	assert.True(t, codec.State{Start: 5, End: 5}.Touches(2, 5))
	assert.False(t, codec.State{Start: 6, End: 7}.Touches(2, 5))
}

func fragmentText(t *testing.T, markup string) string {
	t.Helper()

	el := surface.NewElement("p", nil)
	require.NoError(t, surface.SetInnerHTML(el, markup))
	return codec.PlainText(el)
}
