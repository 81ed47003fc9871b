// Package table renders agent snapshots, catalog entries and workflow steps
// as terminal tables (lipgloss) or as Markdown for the console.
// Consumers supply data via the TableData interface rather than building
// lipgloss tables directly.
package table

import (
	"fmt"
	"os"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a table.
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Return nil to skip a row.
	// Wrap a value in Bold{} to emphasise it.
	Row(i int) []any
}

// Bold wraps a cell value so that it is emphasised when rendered.
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table data as a string suitable for terminal output.
// The table is constrained to the terminal width only when its natural
// width exceeds it.
func Render(data TableData) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		t.Row(cells...)
	}

	result := t.Render()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		if widest(result) > w {
			t.Width(w)
			result = t.Render()
		}
	}
	return result
}

// RenderMarkdown renders the table data as a Markdown table, for the
// console which renders Markdown through glamour.
func RenderMarkdown(data TableData) string {
	header := data.Header()
	if len(header) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("|")
	for _, h := range header {
		buf.WriteString(" " + h + " |")
	}
	buf.WriteString("\n|")
	for range header {
		buf.WriteString("---|")
	}
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		buf.WriteString("\n|")
		for j := range header {
			cell := "-"
			if j < len(row) {
				cell = markdownCell(row[j])
			}
			buf.WriteString(" " + cell + " |")
		}
	}
	return buf.String()
}

// Summary returns a one-line summary of the number of rows displayed.
func Summary(n int, noun string) string {
	switch n {
	case 0:
		return fmt.Sprintf("No %ss", noun)
	case 1:
		return fmt.Sprintf("1 %s", noun)
	default:
		return fmt.Sprintf("%d %ss", n, noun)
	}
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a terminal cell.
// Empty values are shown as "-".
func FormatCell(v any) string {
	if b, ok := v.(Bold); ok {
		if s := plainCell(b.Value); s != "-" {
			return boldStyle.Render(s)
		}
		return "-"
	}
	return plainCell(v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func markdownCell(v any) string {
	if b, ok := v.(Bold); ok {
		if s := markdownCell(b.Value); s != "-" {
			return "**" + s + "**"
		}
		return "-"
	}
	return strings.ReplaceAll(plainCell(v), "|", "\\|")
}

func plainCell(v any) string {
	if v == nil {
		return "-"
	}
	switch val := v.(type) {
	case Bold:
		return plainCell(val.Value)
	case string:
		if val == "" {
			return "-"
		}
		return val
	case fmt.Stringer:
		if s := val.String(); s != "" {
			return s
		}
		return "-"
	default:
		if s := fmt.Sprint(val); s != "" {
			return s
		}
		return "-"
	}
}

func widest(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n = max(n, len([]rune(line)))
	}
	return n
}
