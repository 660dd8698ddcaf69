package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/replay"
	"github.com/yaklabco/mdlive/pkg/runner"
)

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	blocks := []block.Block{
		{ID: "mdl-1", Tag: block.TagH1, Text: "# Title"},
		{ID: "mdl-2", Tag: block.TagParagraph, Active: true},
		{ID: "mdl-10", Tag: block.TagParagraph, Text: "a long paragraph that will not fit in the column"},
	}

	got := pretty.NewDocumentFormatter(pretty.NewStyles(false), 40).FormatDocument(blocks)
	assert.Equal(t, ""+
		"  ID      TAG  TEXT\n"+
		"  mdl-1   h1   # Title\n"+
		"* mdl-2   p    (empty)\n"+
		"  mdl-10  p    a long paragraph that ...\n", got)
}

func TestFormatDocument_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewDocumentFormatter(pretty.NewStyles(false), 0).FormatDocument(nil))
}

func TestFormatDocument_MinimumTextWidth(t *testing.T) {
	t.Parallel()

	blocks := []block.Block{{ID: "x-1", Tag: block.TagParagraph, Text: "0123456789012345678901234"}}

	got := pretty.NewDocumentFormatter(pretty.NewStyles(false), 10).FormatDocument(blocks)
	assert.Contains(t, got, "  x-1  p    01234567890123456...\n")
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		outcome runner.ScriptOutcome
		want    string
	}{
		{
			name: "pass",
			outcome: runner.ScriptOutcome{Path: "a.yaml", Result: &replay.Result{
				Steps:  1,
				Blocks: make([]block.Block, 2),
			}},
			want: "  PASS   a.yaml  (1 step, 2 blocks)\n",
		},
		{
			name: "fail",
			outcome: runner.ScriptOutcome{Path: "b.yaml", Result: &replay.Result{
				Steps:      2,
				Blocks:     make([]block.Block, 1),
				Mismatches: []string{`markdown: want "x", got "y"`},
			}},
			want: "  FAIL   b.yaml  (2 steps, 1 block)\n" +
				"    markdown: want \"x\", got \"y\"\n",
		},
		{
			name:    "error",
			outcome: runner.ScriptOutcome{Path: "c.yaml", Error: errors.New("step 1: boom")},
			want:    "  ERROR  c.yaml\n    step 1: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatOutcome(tt.outcome))
		})
	}
}

func TestFormatCaretContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "    ab\n      ^\n", styles.FormatCaretContext("ab", codec.Caret(2)))
	assert.Equal(t, "    héllo\n     ^~\n", styles.FormatCaretContext("héllo", codec.State{Start: 1, End: 3}))
	assert.Equal(t, "    ab\n      ^\n", styles.FormatCaretContext("ab", codec.Caret(9)))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing found", runner.Stats{}, "No scripts found\n"},
		{
			"all passed",
			runner.Stats{ScriptsDiscovered: 2, ScriptsPlayed: 2, StepsPlayed: 5, BlocksTotal: 1},
			"All 2 scripts passed (5 steps, 1 block)\n",
		},
		{
			"mixed",
			runner.Stats{ScriptsDiscovered: 3, ScriptsPlayed: 2, ScriptsFailed: 1, ScriptsErrored: 1, StepsPlayed: 4, BlocksTotal: 3},
			"3 scripts: 1 passed, 1 failed, 1 errored (4 steps, 3 blocks)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatSummary(runner.Stats{
		ScriptsPlayed: 2,
		ScriptsFailed: 1,
		StepsPlayed:   7,
		BlocksTotal:   4,
		Events: map[event.Name]int{
			event.NameLineCommitted: 2,
			event.NameBlockChanged:  3,
		},
	})

	assert.Contains(t, got, "  Scripts played:    2\n")
	assert.Contains(t, got, "  Scripts failed:    1\n")
	assert.NotContains(t, got, "errored")
	assert.Contains(t, got, "    blockChanged:      3\n    lineCommitted:     2\n")
	assert.Contains(t, got, "Replay failed\n")

	assert.Contains(t, styles.FormatSummary(runner.Stats{ScriptsPlayed: 1}), "Replay passed\n")
}
