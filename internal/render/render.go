// Package render turns proof state into human-readable listings: a styled
// Fitch layout for terminals, Markdown and LaTeX for documents, and truth
// table views. It consumes the read-only accessors only; display labels
// for rule tags live here, not in the core.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitchkit/fitch/internal/proof"
)

// Styles shared by the text renderer and the TUI.
var (
	StyleGoal   = lipgloss.NewStyle().Bold(true)
	StyleGutter = lipgloss.NewStyle().Faint(true)
	StyleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	StyleErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var ruleLabels = map[proof.RuleTag]string{
	proof.RuleGoal:         "Goal",
	proof.RulePremise:      "Premise",
	proof.RuleAssumption:   "Assumption",
	proof.RuleReiteration:  "Reiteration",
	proof.RuleAndIntro:     "∧ Intro",
	proof.RuleAndElim:      "∧ Elim",
	proof.RuleOrIntro:      "∨ Intro",
	proof.RuleOrElim:       "∨ Elim",
	proof.RuleImpliesIntro: "→ Intro",
	proof.RuleImpliesElim:  "→ Elim",
	proof.RuleNotIntro:     "¬ Intro",
	proof.RuleNotElim:      "¬ Elim",
	proof.RuleIffIntro:     "↔ Intro",
	proof.RuleIffElim:      "↔ Elim",
	proof.RuleExplosion:    "⊥ Elim",
}

// RuleLabel returns the display label for a rule tag.
func RuleLabel(r proof.RuleTag) string {
	if label, ok := ruleLabels[r]; ok {
		return label
	}
	return r.String()
}

// citeLines joins cited line numbers for a citation column.
func citeLines(cited []int) string {
	if len(cited) == 0 {
		return ""
	}
	parts := make([]string, len(cited))
	for i, line := range cited {
		parts[i] = fmt.Sprintf("%d", line)
	}
	return strings.Join(parts, ", ")
}

// citeBlocks renders cited blocks as line spans, the conventional Fitch
// citation for a discharged subproof.
func citeBlocks(cited []int, blocks []proof.Block) string {
	if len(cited) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cited))
	for _, id := range cited {
		if id < 0 || id >= len(blocks) {
			parts = append(parts, fmt.Sprintf("?%d", id))
			continue
		}
		blk := blocks[id]
		if blk.Start == blk.End {
			parts = append(parts, fmt.Sprintf("%d", blk.Start))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d-%d", blk.Start, blk.End))
	}
	return strings.Join(parts, ", ")
}

func citation(line proof.Line, blocks []proof.Block) string {
	lines := citeLines(line.CitedLines)
	spans := citeBlocks(line.CitedBlocks, blocks)
	switch {
	case lines == "":
		return spans
	case spans == "":
		return lines
	default:
		return lines + ", " + spans
	}
}

// Summary reports the proof metadata in a short key/value listing.
func Summary(p *proof.Proof) string {
	var b strings.Builder
	name := p.Name()
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "Name:      %s\n", name)
	fmt.Fprintf(&b, "Goal:      %s\n", p.Goal())

	premises := p.Premises()
	if len(premises) == 0 {
		b.WriteString("Premises:  none\n")
	} else {
		parts := make([]string, len(premises))
		for i, premise := range premises {
			parts[i] = premise.String()
		}
		fmt.Fprintf(&b, "Premises:  %s\n", strings.Join(parts, "; "))
	}

	fmt.Fprintf(&b, "Lines:     %d\n", len(p.Lines())-1)
	fmt.Fprintf(&b, "Blocks:    %d\n", len(p.Blocks())-1)
	if p.IsComplete() {
		b.WriteString("Complete:  yes\n")
	} else {
		b.WriteString("Complete:  no\n")
	}
	return b.String()
}
