package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdlive/pkg/block"
)

// Table formatting constants.
const (
	activeSymbol     = "*"
	tablePadding     = 2
	minTextWidth     = 20
	defaultTermWidth = 100
	ellipsis         = "..."
	emptyText        = "(empty)"
)

// DocumentFormatter prints a document as a table of blocks.
type DocumentFormatter struct {
	styles    *Styles
	termWidth int
}

// NewDocumentFormatter creates a formatter that fits rows into termWidth
// columns.
func NewDocumentFormatter(styles *Styles, termWidth int) *DocumentFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &DocumentFormatter{styles: styles, termWidth: termWidth}
}

type documentWidths struct {
	id   int
	tag  int
	text int
}

// FormatDocument renders one row per block: the active marker, id, tag and
// text. Text that does not fit is truncated.
func (f *DocumentFormatter) FormatDocument(blocks []block.Block) string {
	if len(blocks) == 0 {
		return ""
	}

	widths := f.widths(blocks)
	var sb strings.Builder

	sb.WriteString(f.styles.TableHeader.Render(
		"  " + padRight("ID", widths.id) + pad() + padRight("TAG", widths.tag) + pad() + "TEXT"))
	sb.WriteString("\n")

	for _, b := range blocks {
		marker := " "
		if b.Active {
			marker = f.styles.Active.Render(activeSymbol)
		}

		tagStyle := f.styles.Tag
		if b.Tag.IsHeading() {
			tagStyle = f.styles.Heading
		}

		text := f.styles.Text.Render(truncate(b.Text, widths.text))
		if b.IsEmpty() {
			text = f.styles.Dim.Render(emptyText)
		}

		sb.WriteString(marker + " " +
			f.styles.BlockID.Render(padRight(b.ID, widths.id)) + pad() +
			tagStyle.Render(padRight(b.Tag.String(), widths.tag)) + pad() +
			text)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (f *DocumentFormatter) widths(blocks []block.Block) documentWidths {
	w := documentWidths{id: len("ID"), tag: len("TAG")}
	for _, b := range blocks {
		w.id = max(w.id, lipgloss.Width(b.ID))
		w.tag = max(w.tag, lipgloss.Width(b.Tag.String()))
	}
	used := 2 + w.id + w.tag + 2*tablePadding
	w.text = max(f.termWidth-used, minTextWidth)
	return w
}

func pad() string {
	return strings.Repeat(" ", tablePadding)
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens s to at most maxWidth visible columns, ending in "..."
// when anything was cut.
func truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return ellipsis[:max(maxWidth, 0)]
	}

	limit := maxWidth - len(ellipsis)
	var sb strings.Builder
	width := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if width+rw > limit {
			break
		}
		sb.WriteRune(r)
		width += rw
	}
	return sb.String() + ellipsis
}
