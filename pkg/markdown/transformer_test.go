package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/markdown"
	"github.com/yaklabco/mdlive/pkg/surface"
)

func TestDetectInlinePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		wantOK bool
		tag    string
		level  int
	}{
		{"h1", "# Heading", true, "h1", 1},
		{"h2", "## Heading", true, "h2", 2},
		{"h6", "###### Heading", true, "h6", 6},
		{"marker just typed", "## ", true, "h2", 2},
		{"indented marker", "   # Heading", true, "h1", 1},
		{"plain", "Heading", false, "", 0},
		{"hash without space", "#tag", false, "", 0},
		{"lone hash", "#", false, "", 0},
		{"seven hashes", "####### Heading", false, "", 0},
		{"indented code", "    # Heading", false, "", 0},
		{"empty", "", false, "", 0},
	}

	tr := markdown.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tr.DetectInlinePattern(tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.tag, got.Tag)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestDetectLineBreakPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		wantOK bool
		want   markdown.Pattern
	}{
		{"dashes", "---", true, markdown.Pattern{Tag: markdown.TagThematicBreak}},
		{"spaced stars", "* * *", true, markdown.Pattern{Tag: markdown.TagThematicBreak}},
		{"fence", "```", true, markdown.Pattern{Tag: markdown.TagCodeFence}},
		{"fence with language", "```golang", true, markdown.Pattern{Tag: markdown.TagCodeFence, Language: "go"}},
		{"tilde fence", "~~~ py", true, markdown.Pattern{Tag: markdown.TagCodeFence, Language: "python"}},
		{"paragraph", "Hello", false, markdown.Pattern{}},
		{"heading", "# Hello", false, markdown.Pattern{}},
	}

	tr := markdown.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tr.DetectLineBreakPattern(tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderInlineMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []markdown.Option
		text string
		sel  codec.State
		want string
	}{
		{
			name: "empty renders placeholder",
			text: "",
			want: "<br>",
		},
		{
			name: "plain text is escaped",
			text: "a < b & c",
			sel:  codec.Caret(0),
			want: "a &lt; b &amp; c",
		},
		{
			name: "emphasis with caret inside",
			text: "*a*",
			sel:  codec.Caret(1),
			want: `<em><span class="md-marker">*</span>a<span class="md-marker">*</span></em>`,
		},
		{
			name: "emphasis with caret away",
			text: "*a* bc",
			sel:  codec.Caret(6),
			want: `<em><span class="md-marker md-hide">*</span>a<span class="md-marker md-hide">*</span></em> bc`,
		},
		{
			name: "caret bordering the run",
			text: "**a** bc",
			sel:  codec.Caret(5),
			want: `<strong><span class="md-marker">**</span>a<span class="md-marker">**</span></strong> bc`,
		},
		{
			name: "heading marker",
			text: "# Hi",
			sel:  codec.Caret(4),
			want: `<span class="md-marker md-hide"># </span>Hi`,
		},
		{
			name: "code span keeps inner markers as text",
			text: "`*x*`",
			sel:  codec.Caret(0),
			want: "<code><span class=\"md-marker\">`</span>*x*<span class=\"md-marker\">`</span></code>",
		},
		{
			name: "link",
			text: "[a](u)",
			sel:  codec.Caret(0),
			want: `<a href="u"><span class="md-marker">[</span>a<span class="md-marker">](u)</span></a>`,
		},
		{
			name: "nested spans",
			text: "**a *b***",
			sel:  codec.Caret(0),
			want: `<strong><span class="md-marker">**</span>a ` +
				`<em><span class="md-marker md-hide">*</span>b<span class="md-marker md-hide">*</span></em>` +
				`<span class="md-marker">**</span></strong>`,
		},
		{
			name: "offsets count runes",
			text: "é *b*",
			sel:  codec.Caret(2),
			want: `é <em><span class="md-marker">*</span>b<span class="md-marker">*</span></em>`,
		},
		{
			name: "custom classes",
			opts: []markdown.Option{markdown.WithMarkerClasses("m", "h")},
			text: "*a* bc",
			sel:  codec.Caret(6),
			want: `<em><span class="m h">*</span>a<span class="m h">*</span></em> bc`,
		},
		{
			name: "strikethrough in gfm",
			opts: []markdown.Option{markdown.WithFlavor("gfm")},
			text: "~~a~~",
			sel:  codec.Caret(0),
			want: `<del><span class="md-marker">~~</span>a<span class="md-marker">~~</span></del>`,
		},
		{
			name: "strikethrough is text in commonmark",
			text: "~~a~~",
			sel:  codec.Caret(0),
			want: "~~a~~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := markdown.New(tt.opts...).RenderInlineMarkup(tt.text, tt.sel)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderInlineMarkup_Lossless(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"plain",
		"*a* and **b**",
		"# Heading *x*",
		"## Closed heading ##",
		"a `code` b",
		"`` a ` b ``",
		"[link](http://x.y/?a=1&b=2) tail",
		"![img](x.png) after",
		"<b>raw</b> & stuff",
		"***both***",
		"unclosed *a",
		"héllo *wörld*",
		"_under_ and __double__",
		"~~gfm~~ text",
		"a\\*b\\*",
	}

	for _, flavor := range []string{"commonmark", "gfm"} {
		tr := markdown.New(markdown.WithFlavor(flavor))
		for _, text := range texts {
			for _, sel := range []codec.State{codec.Caret(0), codec.Caret(len([]rune(text)))} {
				markup := tr.RenderInlineMarkup(text, sel)

				el := surface.NewElement("p", nil)
				require.NoError(t, surface.SetInnerHTML(el, markup))
				assert.Equal(t, text, codec.PlainText(el), "flavor %s, markup %q", flavor, markup)
			}
		}
	}
}

func TestNeedsReparse(t *testing.T) {
	t.Parallel()

	tr := markdown.New()

	t.Run("fresh render", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"", "plain", "*a* b", "# H **x**"} {
			markup := tr.RenderInlineMarkup(text, codec.Caret(0))
			assert.False(t, tr.NeedsReparse(markup, text, codec.Caret(0)), text)
		}
	})

	t.Run("serialized surface markup", func(t *testing.T) {
		t.Parallel()
		el := surface.NewElement("p", nil)
		require.NoError(t, surface.SetInnerHTML(el, surface.Placeholder))
		assert.False(t, tr.NeedsReparse(surface.InnerHTML(el), "", codec.Caret(0)))
	})

	t.Run("marker typed into plain text", func(t *testing.T) {
		t.Parallel()
		assert.True(t, tr.NeedsReparse("*a*", "*a*", codec.Caret(3)))
	})

	t.Run("marker deleted from styled run", func(t *testing.T) {
		t.Parallel()
		markup := tr.RenderInlineMarkup("*a*", codec.Caret(3))
		assert.True(t, tr.NeedsReparse(markup, "*a", codec.Caret(2)))
	})

	t.Run("caret left the run", func(t *testing.T) {
		t.Parallel()
		markup := tr.RenderInlineMarkup("*a* bc", codec.Caret(0))
		assert.True(t, tr.NeedsReparse(markup, "*a* bc", codec.Caret(6)))
	})
}

func TestReparse(t *testing.T) {
	t.Parallel()

	tr := markdown.New()

	tests := []struct {
		name      string
		markup    string
		text      string
		sel       codec.State
		wantStale bool
	}{
		{name: "fresh markup", markup: tr.RenderInlineMarkup("*a* b", codec.Caret(0)), text: "*a* b", sel: codec.Caret(0)},
		{name: "marker typed", markup: "*a*", text: "*a*", sel: codec.Caret(3), wantStale: true},
		{name: "caret left the run", markup: tr.RenderInlineMarkup("*a* bc", codec.Caret(0)), text: "*a* bc", sel: codec.Caret(6), wantStale: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markup, stale := tr.Reparse(tt.markup, tt.text, tt.sel)
			assert.Equal(t, tt.wantStale, stale)
			assert.Equal(t, tt.wantStale, tr.NeedsReparse(tt.markup, tt.text, tt.sel))
			// The returned markup is the render the caller would otherwise redo.
			assert.Equal(t, tr.RenderInlineMarkup(tt.text, tt.sel), markup)
			_, again := tr.Reparse(markup, tt.text, tt.sel)
			assert.False(t, again)
		})
	}
}

func TestTransformer_Flavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "commonmark", markdown.New().Flavor())
	assert.Equal(t, "gfm", markdown.New(markdown.WithFlavor("gfm")).Flavor())
}
