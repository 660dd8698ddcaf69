package replay_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/fsutil"
	"github.com/yaklabco/mdlive/pkg/replay"
)

func newPlayer(opts ...replay.Option) *replay.Player {
	opts = append([]replay.Option{replay.WithLogger(logging.NewWithWriter(&bytes.Buffer{}, "debug"))}, opts...)
	return replay.NewPlayer(opts...)
}

func play(t *testing.T, src string, opts ...replay.Option) *replay.Result {
	t.Helper()
	script, err := replay.Parse([]byte(src))
	require.NoError(t, err)
	result, err := newPlayer(opts...).Play(context.Background(), script)
	require.NoError(t, err)
	return result
}

func TestParse_InvalidSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"empty step", "steps:\n  - {}\n"},
		{"two actions", "steps:\n  - {type: a, enter: 1}\n"},
		{"unknown arrow", "steps:\n  - arrow: sideways\n"},
		{"negative count", "steps:\n  - backspace: -1\n"},
		{"negative offset", "steps:\n  - click: {index: 0, offset: -2}\n"},
		{"bad selector", "steps:\n  - click: {selector: \"p[\"}\n"},
		{"block and selector", "steps:\n  - click: {block: mdl-1, selector: p}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := replay.Parse([]byte(tt.src))
			require.ErrorIs(t, err, replay.ErrInvalidStep)
			assert.Contains(t, err.Error(), "step 1")
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := replay.Parse([]byte("steps: [\n"))
	require.Error(t, err)
}

func TestStep_Action(t *testing.T) {
	t.Parallel()

	text := "x"
	assert.Equal(t, "type", replay.Step{Type: &text}.Action())
	assert.Equal(t, "arrow", replay.Step{Arrow: "up"}.Action())
	assert.Empty(t, replay.Step{}.Action())
	assert.Empty(t, replay.Step{Enter: 1, Key: "a"}.Action())
}

func TestPlay_HeadingAndParagraph(t *testing.T) {
	t.Parallel()

	result := play(t, `
name: heading
steps:
  - type: "# Title\nBody"
expect:
  markdown: "# Title\n\nBody"
  tags: [h1, p]
  active: mdl-2
`)

	assert.True(t, result.Passed(), result.Mismatches)
	assert.Equal(t, "heading", result.Name)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 1, result.Events[event.NameLineCommitted])
	assert.Equal(t, 1, result.Events[event.NameBlockChanged])
	require.Len(t, result.Blocks, 2)
	assert.True(t, result.Blocks[1].Active)
	assert.Contains(t, result.HTML, `<h1 id="mdl-1">`)
}

func TestPlay_ClickAndArrows(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: "ab\ncd"
  - click: {index: 0, offset: 1}
  - arrow: down
  - type: X
  - arrow: up
`)

	assert.Equal(t, "ab\n\ncXd", result.Markdown)
	assert.Equal(t, "mdl-1", result.Active)
	assert.Equal(t, 2, result.Events[event.NameArrowPressed])
	// enter, click, down, up
	assert.Equal(t, 4, result.Events[event.NameBlockChanged])
}

func TestPlay_ArrowsCrossBlockBoundaries(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: "ab\ncd"
  - click: {block: mdl-2, offset: 0}
  - arrow: left
  - type: "!"
  - arrow: right
  - arrow: right
  - type: "?"
`)

	assert.Equal(t, "ab!\n\nc?d", result.Markdown)
	assert.Equal(t, "mdl-2", result.Active)
}

func TestPlay_ClickBySelector(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: "# Title\nbody"
  - click: {selector: h1, offset: 7}
  - type: "!"
  - click: {selector: p}
  - type: ">"
`)

	assert.Equal(t, "# Title!\n\n>body", result.Markdown)
	assert.Equal(t, "mdl-2", result.Active)
}

func TestPlay_SelectReplacesRange(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: hello
  - select: {index: 0, offset: 1, end: 4}
  - type: EY
`)

	assert.Equal(t, "hEYo", result.Markdown)
}

func TestPlay_Backspace(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: "## Title"
  - click: {index: 0, offset: 3}
  - backspace: 1
expect:
  tags: [p]
`)

	assert.True(t, result.Passed(), result.Mismatches)
	assert.Equal(t, "##Title", result.Markdown)
}

func TestPlay_ScriptConfigOverridesPlayer(t *testing.T) {
	t.Parallel()

	result := play(t, `
config:
  id_prefix: doc
  demote_headings: false
steps:
  - type: "## Title"
  - click: {index: 0, offset: 3}
  - backspace: 1
`, replay.WithConfig(&config.Config{IDPrefix: "base", Flavor: config.FlavorGFM}))

	require.Len(t, result.Blocks, 1)
	assert.Equal(t, "doc-1", result.Blocks[0].ID)
	assert.Equal(t, "h2", result.Blocks[0].Tag.String())
}

func TestPlay_ExpectationMismatch(t *testing.T) {
	t.Parallel()

	result := play(t, `
steps:
  - type: hi
expect:
  markdown: bye
  active: mdl-9
`)

	assert.False(t, result.Passed())
	assert.Equal(t, []string{
		`markdown: want "bye", got "hi"`,
		"active: want mdl-9, got mdl-1",
	}, result.Mismatches)
}

func TestPlay_StepErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unknown id", "steps:\n  - click: {block: nope}\n"},
		{"index out of range", "steps:\n  - select: {index: 3}\n"},
		{"selector without match", "steps:\n  - click: {selector: h3}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			script, err := replay.Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = newPlayer().Play(context.Background(), script)
			require.ErrorIs(t, err, replay.ErrNoBlock)
			assert.Contains(t, err.Error(), "step 1")
		})
	}
}

func TestPlay_Cancelled(t *testing.T) {
	t.Parallel()

	script, err := replay.Parse([]byte("steps:\n  - type: a\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newPlayer().Play(ctx, script)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlay_LoggerFromContext(t *testing.T) {
	t.Parallel()

	script, err := replay.Parse([]byte("name: ctx\nsteps:\n  - type: a\n"))
	require.NoError(t, err)

	var fromCtx, fromOption bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&fromCtx, "debug"))

	_, err = replay.NewPlayer().Play(ctx, script)
	require.NoError(t, err)
	assert.Contains(t, fromCtx.String(), "script played")
	assert.Contains(t, fromCtx.String(), "path=ctx")

	fromCtx.Reset()
	_, err = replay.NewPlayer(replay.WithLogger(logging.NewWithWriter(&fromOption, "debug"))).Play(ctx, script)
	require.NoError(t, err)
	assert.Contains(t, fromOption.String(), "script played")
	assert.Empty(t, fromCtx.String())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - type: a\n"), 0o644))

	script, err := replay.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, script.Path)
	assert.Equal(t, path, script.Name)
	require.Len(t, script.Steps, 1)

	_, err = replay.Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
