package render

import (
	"fmt"
	"strings"

	"github.com/fitchkit/fitch/internal/proof"
)

// Markdown renders the proof as a pipe table, one row per line, with the
// goal labeled in the number column. Nesting shows as dot markers before
// the statement.
func Markdown(p *proof.Proof) string {
	lines := p.Lines()
	blocks := p.Blocks()

	var b strings.Builder
	if p.Name() != "" {
		fmt.Fprintf(&b, "### %s\n\n", p.Name())
	}
	b.WriteString("| # | Statement | Rule | Lines | Blocks | Comment |\n")
	b.WriteString("|---|-----------|------|-------|--------|---------|\n")
	fmt.Fprintf(&b, "| Goal | %s | | | | |\n", mdEscape(lines[0].Statement.String()))
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		fmt.Fprintf(&b, "| %d | %s%s | %s | %s | %s | %s |\n",
			i,
			strings.Repeat("· ", line.Level),
			mdEscape(line.Statement.String()),
			RuleLabel(line.Rule),
			citeLines(line.CitedLines),
			citeBlocks(line.CitedBlocks, blocks),
			mdEscape(line.Comment),
		)
	}
	if p.IsComplete() {
		b.WriteString("\n**Complete**\n")
	} else {
		b.WriteString("\nIncomplete\n")
	}
	return b.String()
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
