package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitchkit/fitch/internal/proof"
)

// TextOptions controls the terminal renderer. Callers decide Styled from
// TTY detection or config; the renderer itself never probes the terminal.
type TextOptions struct {
	Styled bool
}

func (o TextOptions) style(s lipgloss.Style, text string) string {
	if !o.Styled {
		return text
	}
	return s.Render(text)
}

type textRow struct {
	num     string
	gutter  string
	stmt    string
	rule    string
	cite    string
	comment string
	fence   bool
}

// Text renders the proof in Fitch layout: numbered lines, one gutter bar
// per open level, a fence under each assumption, then statement, rule
// label, citations, and comment.
func Text(p *proof.Proof, opts TextOptions) string {
	lines := p.Lines()
	blocks := p.Blocks()

	numW := len(fmt.Sprintf("%d", len(lines)-1))
	if numW < 2 {
		numW = 2
	}

	rows := make([]textRow, 0, len(lines)*2)
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		stmt := line.Statement.String()
		rows = append(rows, textRow{
			num:     fmt.Sprintf("%*d", numW, i),
			gutter:  strings.Repeat("│ ", line.Level+1),
			stmt:    stmt,
			rule:    RuleLabel(line.Rule),
			cite:    citation(line, blocks),
			comment: line.Comment,
		})
		if line.Rule == proof.RuleAssumption {
			rows = append(rows, textRow{
				num:    strings.Repeat(" ", numW),
				gutter: strings.Repeat("│ ", line.Level),
				stmt:   "├" + strings.Repeat("─", utf8.RuneCountInString(stmt)+1),
				fence:  true,
			})
		}
	}

	leftW, ruleW := 0, 0
	for _, row := range rows {
		if w := utf8.RuneCountInString(row.gutter) + utf8.RuneCountInString(row.stmt); w > leftW {
			leftW = w
		}
		if w := utf8.RuneCountInString(row.rule); w > ruleW {
			ruleW = w
		}
	}

	var b strings.Builder
	if p.Name() != "" {
		fmt.Fprintf(&b, "Proof: %s\n", p.Name())
	}
	b.WriteString(opts.style(StyleGoal, fmt.Sprintf("Goal:  %s", p.Goal())))
	b.WriteString("\n\n")

	for _, row := range rows {
		text := row.num + " " + opts.style(StyleGutter, row.gutter) + row.stmt
		if !row.fence {
			pad := leftW - utf8.RuneCountInString(row.gutter) - utf8.RuneCountInString(row.stmt)
			text += strings.Repeat(" ", pad+2) + fmt.Sprintf("%-*s", ruleW, row.rule)
			if row.cite != "" {
				text += "  " + row.cite
			}
			if row.comment != "" {
				text += "  " + row.comment
			}
		}
		b.WriteString(strings.TrimRight(text, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.IsComplete() {
		b.WriteString(opts.style(StyleOK, "Complete ✓"))
	} else {
		b.WriteString(opts.style(StyleErr, "Incomplete"))
	}
	b.WriteString("\n")
	return b.String()
}
