package render

import (
	"strings"
	"unicode/utf8"

	"github.com/fitchkit/fitch/internal/truthtab"
)

func boolCell(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

func centerCell(s string, w int) string {
	pad := w - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// TableText renders a truth table with one column per atom and the formula
// as the final column.
func TableText(t *truthtab.Table) string {
	headers := make([]string, 0, len(t.Atoms)+1)
	headers = append(headers, t.Atoms...)
	headers = append(headers, t.Formula.String())

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = centerCell(h, widths[i])
	}
	b.WriteString(" " + strings.Join(cells, " | ") + "\n")

	rules := make([]string, len(headers))
	for i := range headers {
		rules[i] = strings.Repeat("-", widths[i]+2)
	}
	b.WriteString(strings.Join(rules, "+") + "\n")

	for _, row := range t.Rows {
		for i := range t.Atoms {
			cells[i] = centerCell(boolCell(row.Inputs[i]), widths[i])
		}
		cells[len(cells)-1] = centerCell(boolCell(row.Value), widths[len(cells)-1])
		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
	}
	return b.String()
}

// TableMarkdown renders the same table as a pipe table.
func TableMarkdown(t *truthtab.Table) string {
	var b strings.Builder
	b.WriteString("|")
	for _, atom := range t.Atoms {
		b.WriteString(" " + mdEscape(atom) + " |")
	}
	b.WriteString(" " + mdEscape(t.Formula.String()) + " |\n")

	b.WriteString("|")
	for range t.Atoms {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")

	for _, row := range t.Rows {
		b.WriteString("|")
		for i := range t.Atoms {
			b.WriteString(" " + boolCell(row.Inputs[i]) + " |")
		}
		b.WriteString(" " + boolCell(row.Value) + " |\n")
	}
	return b.String()
}
