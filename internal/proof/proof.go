// Package proof implements Fitch-style natural deduction for propositional
// logic: an append-only ledger of proof lines, nested assumption blocks,
// and one validating constructor per inference rule.
//
// Every rule call is an atomic validate-then-append transition. All checks
// run before anything is stored, so a failed call leaves the proof
// unchanged and returns one of the structured errors in this package. The
// proof completes the moment a line structurally equal to the goal is
// appended at the root level; after that every mutating call fails with
// ProofAlreadyComplete.
//
// A Proof is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves, one lock per proof.
package proof

import "github.com/fitchkit/fitch/internal/prop"

// Proof owns a single derivation: the goal, the premises, the line ledger,
// and the block scope stack. Create one with New, then drive it through the
// rule methods.
type Proof struct {
	name     string
	goal     prop.Prop
	premises []prop.Prop
	led      *ledger
	status   Status
}

// New starts an empty proof of the given goal. The goal occupies line 0 of
// the ledger; premises and derived lines are appended from index 1.
func New(goal prop.Prop) *Proof {
	return &Proof{
		goal: goal,
		led:  newLedger(goal),
	}
}

// Name returns the display name of the proof, possibly empty.
func (p *Proof) Name() string { return p.name }

// SetName sets the display name. The name has no bearing on validation.
func (p *Proof) SetName(name string) { p.name = name }

// Goal returns the statement the proof must derive at the root level.
func (p *Proof) Goal() prop.Prop { return p.goal }

// Premises returns the premises in the order they were added.
func (p *Proof) Premises() []prop.Prop {
	out := make([]prop.Prop, len(p.premises))
	copy(out, p.premises)
	return out
}

// Lines returns a copy of the ledger, goal row included at index 0.
func (p *Proof) Lines() []Line {
	out := make([]Line, len(p.led.lines))
	copy(out, p.led.lines)
	return out
}

// Blocks returns a copy of every block opened so far, root first.
func (p *Proof) Blocks() []Block {
	out := make([]Block, len(p.led.blocks))
	copy(out, p.led.blocks)
	return out
}

// IsComplete reports whether the goal has been derived at the root level.
func (p *Proof) IsComplete() bool { return p.status == StatusComplete }

// Status returns the lifecycle state.
func (p *Proof) Status() Status { return p.status }

// CurrentLevel returns the nesting depth of the current scope, 0 at root.
func (p *Proof) CurrentLevel() int { return p.led.currentLevel() }

// CurrentBlock returns the id of the innermost open block.
func (p *Proof) CurrentBlock() int { return p.led.currentID() }

func (p *Proof) mutable() error {
	if p.status == StatusComplete {
		return &ProofAlreadyComplete{}
	}
	return nil
}

// appendLine stores a validated line and runs the completion check. On
// completion the terminal line's comment is re-tagged.
func (p *Proof) appendLine(stmt prop.Prop, rule RuleTag, citedLines, citedBlocks []int, comment string) int {
	index := p.led.append(stmt, rule, citedLines, citedBlocks, comment)
	if p.led.currentLevel() == 0 && prop.Equal(stmt, p.goal) {
		p.status = StatusComplete
		line := &p.led.lines[index]
		if line.Comment == "" {
			line.Comment = "Complete"
		} else {
			line.Comment += "; Complete"
		}
	}
	return index
}

// AddPremise appends a premise. Premises are only legal at the root level
// before any derived line exists. A premise structurally equal to the goal
// completes the proof immediately.
func (p *Proof) AddPremise(stmt prop.Prop, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	if p.led.currentLevel() != 0 || len(p.led.lines)-1 != len(p.premises) {
		return 0, &PremiseNotAtStart{Premise: stmt}
	}
	index := p.appendLine(stmt, RulePremise, nil, nil, comment)
	p.premises = append(p.premises, stmt)
	return index, nil
}

// OpenBlock opens a nested scope whose first line is the assumption.
func (p *Proof) OpenBlock(assumption prop.Prop, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	p.led.openBlock()
	return p.appendLine(assumption, RuleAssumption, nil, nil, comment), nil
}

// CloseBlock finalizes the current block and returns to the parent scope.
func (p *Proof) CloseBlock() error {
	if err := p.mutable(); err != nil {
		return err
	}
	return p.led.closeBlock()
}

// Reiterate repeats an accessible line in the current scope.
func (p *Proof) Reiterate(line int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	cited, err := p.cite(line)
	if err != nil {
		return 0, err
	}
	return p.appendLine(cited.Statement, RuleReiteration, []int{line}, nil, comment), nil
}

// AndIntro conjoins two accessible lines, first as the left conjunct.
func (p *Proof) AndIntro(first, second int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	l1, err := p.cite(first)
	if err != nil {
		return 0, err
	}
	l2, err := p.cite(second)
	if err != nil {
		return 0, err
	}
	stmt := prop.And{Left: l1.Statement, Right: l2.Statement}
	return p.appendLine(stmt, RuleAndIntro, []int{first, second}, nil, comment), nil
}

// AndElim splits an accessible conjunction, appending each conjunct as its
// own line. If the first conjunct completes the proof the second is not
// appended; the returned indices cover what was actually added.
func (p *Proof) AndElim(line int, comment string) ([]int, error) {
	if err := p.mutable(); err != nil {
		return nil, err
	}
	cited, err := p.cite(line)
	if err != nil {
		return nil, err
	}
	conj, ok := cited.Statement.(prop.And)
	if !ok {
		return nil, &NotConjunction{Line: line, Statement: cited.Statement}
	}
	indices := []int{p.appendLine(conj.Left, RuleAndElim, []int{line}, nil, comment)}
	if p.status == StatusOpen {
		indices = append(indices, p.appendLine(conj.Right, RuleAndElim, []int{line}, nil, comment))
	}
	return indices, nil
}

// OrIntro weakens an accessible line into a disjunction. The cited
// statement becomes the left disjunct.
func (p *Proof) OrIntro(newDisjunct prop.Prop, line int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	cited, err := p.cite(line)
	if err != nil {
		return 0, err
	}
	stmt := prop.Or{Left: cited.Statement, Right: newDisjunct}
	return p.appendLine(stmt, RuleOrIntro, []int{line}, nil, comment), nil
}

// OrElim discharges a case analysis. The cited line must hold a
// disjunction; every cited block must be closed and sit exactly one level
// below the disjunction's line; the block assumptions must match the
// disjuncts both ways; and all block conclusions must be identical. The
// common conclusion is appended in the current scope.
func (p *Proof) OrElim(line int, blockIDs []int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	cited, err := p.cite(line)
	if err != nil {
		return 0, err
	}
	disj, ok := cited.Statement.(prop.Or)
	if !ok {
		return 0, &NotDisjunction{Line: line, Statement: cited.Statement}
	}

	assumptions := make([]prop.Prop, len(blockIDs))
	conclusions := make([]prop.Prop, len(blockIDs))
	for i, id := range blockIDs {
		start, end, err := p.led.blockSpan(id)
		if err != nil {
			return 0, err
		}
		blk := p.led.blocks[id]
		if blk.Level != cited.Level+1 {
			return 0, &ScopeError{Line: -1, Block: id, Level: blk.Level, CurrentLevel: p.led.currentLevel()}
		}
		assumptions[i] = p.led.lines[start].Statement
		conclusions[i] = p.led.lines[end].Statement
	}

	for _, disjunct := range []prop.Prop{disj.Left, disj.Right} {
		if !containsProp(assumptions, disjunct) {
			return 0, &DisjunctNotFound{Disjunct: disjunct, Disjunction: disj, Line: line}
		}
	}
	for _, assumption := range assumptions {
		if !prop.Equal(assumption, disj.Left) && !prop.Equal(assumption, disj.Right) {
			return 0, &AssumptionNotFound{Assumption: assumption, Disjunction: disj}
		}
	}
	for _, conclusion := range conclusions[1:] {
		if !prop.Equal(conclusion, conclusions[0]) {
			return 0, &ConclusionsNotTheSame{Conclusion: conclusions[0], NonMatching: conclusion}
		}
	}
	return p.appendLine(conclusions[0], RuleOrElim, []int{line}, blockIDs, comment), nil
}

// ImpliesIntro discharges a closed block one level below it, turning its
// assumption and conclusion into an implication.
func (p *Proof) ImpliesIntro(blockID int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	start, end, err := p.dischargeable(blockID)
	if err != nil {
		return 0, err
	}
	stmt := prop.Implies{
		Antecedent: p.led.lines[start].Statement,
		Consequent: p.led.lines[end].Statement,
	}
	return p.appendLine(stmt, RuleImpliesIntro, nil, []int{blockID}, comment), nil
}

// ImpliesElim applies modus ponens to two accessible lines in either
// argument order and appends the consequent.
func (p *Proof) ImpliesElim(first, second int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	l1, err := p.cite(first)
	if err != nil {
		return 0, err
	}
	l2, err := p.cite(second)
	if err != nil {
		return 0, err
	}
	if imp, ok := l2.Statement.(prop.Implies); ok && prop.Equal(l1.Statement, imp.Antecedent) {
		return p.appendLine(imp.Consequent, RuleImpliesElim, []int{first, second}, nil, comment), nil
	}
	if imp, ok := l1.Statement.(prop.Implies); ok && prop.Equal(l2.Statement, imp.Antecedent) {
		return p.appendLine(imp.Consequent, RuleImpliesElim, []int{first, second}, nil, comment), nil
	}
	if imp, ok := l1.Statement.(prop.Implies); ok {
		return 0, &NotAntecedent{Antecedent: l2.Statement, Implication: imp}
	}
	return 0, &NotAntecedent{Antecedent: l1.Statement, Implication: l2.Statement}
}

// NotIntro discharges a closed block whose conclusion is false, appending
// the negated assumption one level below it.
func (p *Proof) NotIntro(blockID int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	start, end, err := p.dischargeable(blockID)
	if err != nil {
		return 0, err
	}
	conclusion := p.led.lines[end].Statement
	if !prop.Equal(conclusion, prop.False{}) {
		return 0, &NotFalse{Line: end, Statement: conclusion}
	}
	stmt := prop.Not{P: p.led.lines[start].Statement}
	return p.appendLine(stmt, RuleNotIntro, nil, []int{blockID}, comment), nil
}

// NotElim derives false from two accessible lines where one is the
// negation of the other, in either order.
func (p *Proof) NotElim(first, second int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	l1, err := p.cite(first)
	if err != nil {
		return 0, err
	}
	l2, err := p.cite(second)
	if err != nil {
		return 0, err
	}
	if !prop.Equal(prop.Not{P: l1.Statement}, l2.Statement) &&
		!prop.Equal(prop.Not{P: l2.Statement}, l1.Statement) {
		return 0, &NotContradiction{First: first, Second: second}
	}
	return p.appendLine(prop.False{}, RuleNotElim, []int{first, second}, nil, comment), nil
}

// Explosion appends an arbitrary statement after a contradiction. The
// immediately preceding line must be false and its block must still be
// open.
func (p *Proof) Explosion(stmt prop.Prop, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	last := len(p.led.lines) - 1
	prev := p.led.lines[last]
	if last < 1 || !prop.Equal(prev.Statement, prop.False{}) {
		return 0, &NotFalse{Line: last, Statement: prev.Statement}
	}
	if p.led.blocks[prev.BlockID].Closed {
		return 0, &BlockClosed{Block: prev.BlockID}
	}
	return p.appendLine(stmt, RuleExplosion, []int{last}, nil, comment), nil
}

// IffIntro discharges two closed sibling blocks into a biconditional: the
// first must derive B from assumption A, the second A from assumption B.
// The result is Iff(A, B) one level below the blocks.
func (p *Proof) IffIntro(firstBlock, secondBlock int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	start1, end1, err := p.dischargeable(firstBlock)
	if err != nil {
		return 0, err
	}
	start2, end2, err := p.dischargeable(secondBlock)
	if err != nil {
		return 0, err
	}
	left := p.led.lines[start1].Statement
	forward := p.led.lines[end1].Statement
	back := p.led.lines[start2].Statement
	if !prop.Equal(back, forward) {
		return 0, &ConclusionsNotTheSame{Conclusion: forward, NonMatching: back}
	}
	if !prop.Equal(p.led.lines[end2].Statement, left) {
		return 0, &ConclusionsNotTheSame{Conclusion: left, NonMatching: p.led.lines[end2].Statement}
	}
	stmt := prop.Iff{Left: left, Right: forward}
	return p.appendLine(stmt, RuleIffIntro, nil, []int{firstBlock, secondBlock}, comment), nil
}

// IffElim takes a biconditional and one of its sides, in either argument
// order, and appends the other side.
func (p *Proof) IffElim(first, second int, comment string) (int, error) {
	if err := p.mutable(); err != nil {
		return 0, err
	}
	l1, err := p.cite(first)
	if err != nil {
		return 0, err
	}
	l2, err := p.cite(second)
	if err != nil {
		return 0, err
	}
	if other, ok := iffOther(l2.Statement, l1.Statement); ok {
		return p.appendLine(other, RuleIffElim, []int{first, second}, nil, comment), nil
	}
	if other, ok := iffOther(l1.Statement, l2.Statement); ok {
		return p.appendLine(other, RuleIffElim, []int{first, second}, nil, comment), nil
	}
	if iff, ok := l1.Statement.(prop.Iff); ok {
		return 0, &NotEquivalence{Side: l2.Statement, Equivalence: iff}
	}
	return 0, &NotEquivalence{Side: l1.Statement, Equivalence: l2.Statement}
}

// iffOther matches side against one side of a biconditional and returns
// the opposite side.
func iffOther(candidate, side prop.Prop) (prop.Prop, bool) {
	iff, ok := candidate.(prop.Iff)
	if !ok {
		return nil, false
	}
	if prop.Equal(side, iff.Left) {
		return iff.Right, true
	}
	if prop.Equal(side, iff.Right) {
		return iff.Left, true
	}
	return nil, false
}

// cite resolves a line citation: the line must exist and be accessible
// from the current scope.
func (p *Proof) cite(line int) (Line, error) {
	cited, err := p.led.getLine(line)
	if err != nil {
		return Line{}, err
	}
	if !p.led.accessible(line) {
		return Line{}, &ScopeError{
			Line:         line,
			Block:        -1,
			Level:        cited.Level,
			CurrentLevel: p.led.currentLevel(),
		}
	}
	return cited, nil
}

// dischargeable resolves a block for a discharge rule: closed, exactly one
// level below the current scope, opened by an assumption.
func (p *Proof) dischargeable(blockID int) (start, end int, err error) {
	start, end, err = p.led.blockSpan(blockID)
	if err != nil {
		return 0, 0, err
	}
	blk := p.led.blocks[blockID]
	if blk.Level != p.led.currentLevel()+1 {
		return 0, 0, &ScopeError{Line: -1, Block: blockID, Level: blk.Level, CurrentLevel: p.led.currentLevel()}
	}
	if p.led.lines[start].Rule != RuleAssumption {
		return 0, 0, &NotAssumption{Line: start}
	}
	return start, end, nil
}

func containsProp(props []prop.Prop, target prop.Prop) bool {
	for _, candidate := range props {
		if prop.Equal(candidate, target) {
			return true
		}
	}
	return false
}
