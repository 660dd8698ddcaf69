// Package textdiff computes line diffs between an expected and an actual
// document and prints them in unified format.
package textdiff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around changes.
const contextLines = 3

// LineKind tells whether a diff line is shared, added or removed.
type LineKind int

const (
	// Context is a line present on both sides.
	Context LineKind = iota

	// Add is a line only present in the actual document.
	Add

	// Remove is a line only present in the expected document.
	Remove
)

// Line is one line of a hunk, without its diff prefix.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based;
// an empty side starts at the line before the hunk.
type Hunk struct {
	WantStart int
	WantCount int
	GotStart  int
	GotCount  int
	Lines     []Line
}

// Diff is the difference between an expected and an actual document.
type Diff struct {
	WantLabel string
	GotLabel  string
	Hunks     []Hunk

	Additions int
	Deletions int
}

// op is one step of the edit script with the 1-based line numbers it sits
// at on both sides.
type op struct {
	kind     LineKind
	text     string
	wantLine int
	gotLine  int
}

// Compute diffs want against got line by line. It returns nil when both
// are equal.
func Compute(wantLabel, gotLabel, want, got string) *Diff {
	if want == got {
		return nil
	}

	ops := editScript(splitLines(want), splitLines(got))
	hunks := group(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{WantLabel: wantLabel, GotLabel: gotLabel, Hunks: hunks}
	for _, o := range ops {
		switch o.kind {
		case Add:
			diff.Additions++
		case Remove:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "--- want" and "+++ got" lines.
func (d *Diff) Header() (string, string) {
	return "--- " + d.WantLabel, "+++ " + d.GotLabel
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var sb strings.Builder
	minus, plus := d.Header()
	sb.WriteString(minus + "\n" + plus + "\n")
	for _, h := range d.Hunks {
		sb.WriteString(h.Range() + "\n")
		for _, l := range h.Lines {
			sb.WriteString(l.String() + "\n")
		}
	}
	return sb.String()
}

// Range returns the "@@ -a,b +c,d @@" line of h.
func (h Hunk) Range() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.WantStart, h.WantCount, h.GotStart, h.GotCount)
}

// String returns l with its diff prefix.
func (l Line) String() string {
	switch l.Kind {
	case Add:
		return "+" + l.Text
	case Remove:
		return "-" + l.Text
	default:
		return " " + l.Text
	}
}

// splitLines splits s into lines. A trailing newline does not start an
// extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// editScript walks the longest common subsequence of want and got. On ties
// removals come before additions.
func editScript(want, got []string) []op {
	// lcs[i][j] is the LCS length of want[i:] and got[j:].
	lcs := make([][]int, len(want)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(got)+1)
	}
	for i := len(want) - 1; i >= 0; i-- {
		for j := len(got) - 1; j >= 0; j-- {
			if want[i] == got[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, len(want)+len(got))
	i, j := 0, 0
	emit := func(kind LineKind, text string) {
		ops = append(ops, op{kind: kind, text: text, wantLine: i + 1, gotLine: j + 1})
	}
	for i < len(want) || j < len(got) {
		switch {
		case i < len(want) && j < len(got) && want[i] == got[j]:
			emit(Context, want[i])
			i++
			j++
		case j == len(got) || (i < len(want) && lcs[i+1][j] >= lcs[i][j+1]):
			emit(Remove, want[i])
			i++
		default:
			emit(Add, got[j])
			j++
		}
	}
	return ops
}

// group cuts the edit script into hunks. Changes separated by no more than
// twice the context share a hunk.
func group(ops []op) []Hunk {
	var hunks []Hunk

	for i := 0; i < len(ops); {
		for i < len(ops) && ops[i].kind == Context {
			i++
		}
		if i == len(ops) {
			break
		}

		start := max(0, i-contextLines)
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].kind != Context {
				end = j + 1
				continue
			}
			if j-end >= 2*contextLines {
				break
			}
		}
		stop := min(len(ops), end+contextLines)

		hunks = append(hunks, newHunk(ops[start:stop]))
		i = stop
	}

	return hunks
}

func newHunk(ops []op) Hunk {
	h := Hunk{
		WantStart: ops[0].wantLine,
		GotStart:  ops[0].gotLine,
		Lines:     make([]Line, 0, len(ops)),
	}
	for _, o := range ops {
		h.Lines = append(h.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Add {
			h.WantCount++
		}
		if o.kind != Remove {
			h.GotCount++
		}
	}
	if h.WantCount == 0 {
		h.WantStart--
	}
	if h.GotCount == 0 {
		h.GotStart--
	}
	return h
}
