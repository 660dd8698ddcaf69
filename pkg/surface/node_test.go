package surface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/surface"
)

func TestNewElement(t *testing.T) {
	t.Parallel()

	el := surface.NewElement("p", map[string]string{"id": "a", "class": "x", "dir": "ltr"})
	assert.Equal(t, `<p class="x" dir="ltr" id="a"></p>`, surface.OuterHTML(el))

	surface.Rename(el, "h2")
	assert.Equal(t, `<h2 class="x" dir="ltr" id="a"></h2>`, surface.OuterHTML(el))
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	el := surface.NewElement("p", nil)
	_, ok := surface.Attr(el, "id")
	assert.False(t, ok)

	surface.SetAttr(el, "id", "a")
	surface.SetAttr(el, "id", "b")
	v, ok := surface.Attr(el, "id")
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, map[string]string{"id": "b"}, surface.Attrs(el))

	surface.RemoveAttr(el, "id")
	assert.Empty(t, surface.Attrs(el))
}

func TestClasses(t *testing.T) {
	t.Parallel()

	el := surface.NewElement("p", nil)
	surface.AddClass(el, "active")
	surface.AddClass(el, "active")
	surface.AddClass(el, "x")
	assert.True(t, surface.HasClass(el, "active"))

	v, _ := surface.Attr(el, "class")
	assert.Equal(t, "active x", v)

	surface.RemoveClass(el, "active")
	assert.False(t, surface.HasClass(el, "active"))
	surface.RemoveClass(el, "x")
	_, ok := surface.Attr(el, "class")
	assert.False(t, ok)
}

func TestInnerHTML(t *testing.T) {
	t.Parallel()

	el := surface.NewElement("p", nil)
	require.NoError(t, surface.SetInnerHTML(el, `a <em>b</em> &amp; c`))
	assert.Equal(t, `a <em>b</em> &amp; c`, surface.InnerHTML(el))
	assert.Equal(t, "a b & c", surface.TextContent(el))

	require.NoError(t, surface.SetInnerHTML(el, surface.Placeholder))
	assert.True(t, surface.IsPlaceholderOnly(el))
	assert.Equal(t, "<br/>", surface.InnerHTML(el))
	assert.Empty(t, surface.TextContent(el))

	surface.RemoveChildren(el)
	assert.False(t, surface.IsPlaceholderOnly(el))
	assert.Nil(t, el.FirstChild)
}

func TestReplaceChildren(t *testing.T) {
	t.Parallel()

	el := surface.NewElement("p", nil)
	require.NoError(t, surface.SetInnerHTML(el, `old <em>text</em>`))

	nodes, err := surface.ParseFragment(el, `new <strong>text</strong>`)
	require.NoError(t, err)
	// Parsing leaves el alone until the nodes are swapped in.
	assert.Equal(t, `old <em>text</em>`, surface.InnerHTML(el))

	surface.ReplaceChildren(el, nodes)
	assert.Equal(t, `new <strong>text</strong>`, surface.InnerHTML(el))
	assert.Same(t, el, el.LastChild.Parent)
}

func TestContains(t *testing.T) {
	t.Parallel()

	root, err := surface.ParseContainer(`<div><p><em>x</em></p><p>y</p></div>`)
	require.NoError(t, err)

	text := root.FirstChild.FirstChild.FirstChild
	assert.True(t, surface.Contains(root, text))
	assert.True(t, surface.Contains(root.FirstChild, text))
	assert.False(t, surface.Contains(root.LastChild, text))
	assert.True(t, surface.Contains(root, root))
}
