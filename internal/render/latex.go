package render

import (
	"fmt"
	"strings"

	"github.com/fitchkit/fitch/internal/proof"
	"github.com/fitchkit/fitch/internal/prop"
)

// latexFormula reuses the display layout and swaps the connectives for
// math macros, so both renderers parenthesize identically.
var latexReplacer = strings.NewReplacer(
	"¬", `\lnot `,
	"∧", `\land`,
	"∨", `\lor`,
	"→", `\rightarrow`,
	"↔", `\leftrightarrow`,
	"⊕", `\oplus`,
	"↑", `\uparrow`,
	"↓", `\downarrow`,
	"⊙", `\odot`,
	"⊤", `\top`,
	"⊥", `\bot`,
	"_", `\_`,
)

func latexFormula(p prop.Prop) string {
	return latexReplacer.Replace(p.String())
}

var latexRuleLabels = map[proof.RuleTag]string{
	proof.RuleGoal:         `\text{Goal}`,
	proof.RulePremise:      `\text{Premise}`,
	proof.RuleAssumption:   `\text{Assumption}`,
	proof.RuleReiteration:  `\text{Reiteration}`,
	proof.RuleAndIntro:     `\land\text{ Intro}`,
	proof.RuleAndElim:      `\land\text{ Elim}`,
	proof.RuleOrIntro:      `\lor\text{ Intro}`,
	proof.RuleOrElim:       `\lor\text{ Elim}`,
	proof.RuleImpliesIntro: `\rightarrow\text{ Intro}`,
	proof.RuleImpliesElim:  `\rightarrow\text{ Elim}`,
	proof.RuleNotIntro:     `\lnot\text{ Intro}`,
	proof.RuleNotElim:      `\lnot\text{ Elim}`,
	proof.RuleIffIntro:     `\leftrightarrow\text{ Intro}`,
	proof.RuleIffElim:      `\leftrightarrow\text{ Elim}`,
	proof.RuleExplosion:    `\bot\text{ Elim}`,
}

// LaTeX renders the proof as a displayed array, one row per line: number,
// statement, rule, citations.
func LaTeX(p *proof.Proof) string {
	lines := p.Lines()
	blocks := p.Blocks()

	var b strings.Builder
	b.WriteString("\\[\n\\begin{array}{r l l l}\n")
	fmt.Fprintf(&b, "\\text{Goal} & %s & & \\\\\n", latexFormula(lines[0].Statement))
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		cite := citation(line, blocks)
		if cite != "" {
			cite = `\text{` + cite + `}`
		}
		fmt.Fprintf(&b, "%d & %s & %s & %s \\\\\n",
			i, latexFormula(line.Statement), latexRuleLabels[line.Rule], cite)
	}
	b.WriteString("\\end{array}\n\\]\n")
	return b.String()
}
