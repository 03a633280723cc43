package proof

import (
	"fmt"

	"github.com/fitchkit/fitch/internal/prop"
)

// ProofError is implemented by every rule-validation error. ErrorKind
// returns a stable snake_case name for surfaces that report errors by kind,
// such as the HTTP API.
type ProofError interface {
	error
	ErrorKind() string
}

// NoSuchLine reports a cited line index outside the proof. The goal row at
// index 0 is not citable.
type NoSuchLine struct {
	Line int
}

func (e *NoSuchLine) Error() string {
	return fmt.Sprintf("line %d does not exist in the proof", e.Line)
}

func (e *NoSuchLine) ErrorKind() string { return "no_such_line" }

// BlockNotFound reports a cited block id that was never opened.
type BlockNotFound struct {
	Block int
}

func (e *BlockNotFound) Error() string {
	return fmt.Sprintf("block %d does not exist in the proof", e.Block)
}

func (e *BlockNotFound) ErrorKind() string { return "block_not_found" }

// BlockNotClosed reports a cited block that is still open where a closed
// block was required.
type BlockNotClosed struct {
	Block int
}

func (e *BlockNotClosed) Error() string {
	return fmt.Sprintf("block %d has not been closed", e.Block)
}

func (e *BlockNotClosed) ErrorKind() string { return "block_not_closed" }

// CannotCloseRootBlock reports an attempt to close the level-0 scope.
type CannotCloseRootBlock struct{}

func (e *CannotCloseRootBlock) Error() string {
	return "the root block cannot be closed"
}

func (e *CannotCloseRootBlock) ErrorKind() string { return "cannot_close_root_block" }

// ScopeError reports a citation that is not accessible from the current
// scope. Line is -1 when the error concerns a block, Block is -1 when it
// concerns a line.
type ScopeError struct {
	Line         int
	Block        int
	Level        int
	CurrentLevel int
}

func (e *ScopeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("line %d at level %d is not accessible from level %d", e.Line, e.Level, e.CurrentLevel)
	}
	return fmt.Sprintf("block %d at level %d is not usable from level %d", e.Block, e.Level, e.CurrentLevel)
}

func (e *ScopeError) ErrorKind() string { return "scope_error" }

// NotAssumption reports a block whose first line does not carry the
// Assumption tag.
type NotAssumption struct {
	Line int
}

func (e *NotAssumption) Error() string {
	return fmt.Sprintf("line %d is not an assumption", e.Line)
}

func (e *NotAssumption) ErrorKind() string { return "not_assumption" }

// NotConjunction reports a cited statement that is not an And.
type NotConjunction struct {
	Line      int
	Statement prop.Prop
}

func (e *NotConjunction) Error() string {
	return fmt.Sprintf("the statement %v on line %d is not a conjunction", e.Statement, e.Line)
}

func (e *NotConjunction) ErrorKind() string { return "not_conjunction" }

// NotDisjunction reports a cited statement that is not an Or.
type NotDisjunction struct {
	Line      int
	Statement prop.Prop
}

func (e *NotDisjunction) Error() string {
	return fmt.Sprintf("the statement %v on line %d is not a disjunction", e.Statement, e.Line)
}

func (e *NotDisjunction) ErrorKind() string { return "not_disjunction" }

// NotAntecedent reports an implication elimination where neither cited
// statement is the antecedent of the other.
type NotAntecedent struct {
	Antecedent  prop.Prop
	Implication prop.Prop
}

func (e *NotAntecedent) Error() string {
	return fmt.Sprintf("the statement %v is not the antecedent of %v", e.Antecedent, e.Implication)
}

func (e *NotAntecedent) ErrorKind() string { return "not_antecedent" }

// NotEquivalence reports a biconditional elimination where the cited
// statements do not form a biconditional and one of its sides.
type NotEquivalence struct {
	Side        prop.Prop
	Equivalence prop.Prop
}

func (e *NotEquivalence) Error() string {
	return fmt.Sprintf("the statement %v is not a side of the biconditional %v", e.Side, e.Equivalence)
}

func (e *NotEquivalence) ErrorKind() string { return "not_equivalence" }

// NotContradiction reports two cited lines that are not a statement and its
// negation.
type NotContradiction struct {
	First  int
	Second int
}

func (e *NotContradiction) Error() string {
	return fmt.Sprintf("the statements at lines %d and %d are not contradictory", e.First, e.Second)
}

func (e *NotContradiction) ErrorKind() string { return "not_contradiction" }

// NotFalse reports a line that was required to be the constant false.
type NotFalse struct {
	Line      int
	Statement prop.Prop
}

func (e *NotFalse) Error() string {
	return fmt.Sprintf("line %d contains %v, which is not false", e.Line, e.Statement)
}

func (e *NotFalse) ErrorKind() string { return "not_false" }

// DisjunctNotFound reports a disjunct with no matching case-block
// assumption in a disjunction elimination.
type DisjunctNotFound struct {
	Disjunct    prop.Prop
	Disjunction prop.Prop
	Line        int
}

func (e *DisjunctNotFound) Error() string {
	return fmt.Sprintf("the disjunct %v of %v on line %d is not assumed by any cited block", e.Disjunct, e.Disjunction, e.Line)
}

func (e *DisjunctNotFound) ErrorKind() string { return "disjunct_not_found" }

// AssumptionNotFound reports a case-block assumption that is not a disjunct
// of the eliminated disjunction.
type AssumptionNotFound struct {
	Assumption  prop.Prop
	Disjunction prop.Prop
}

func (e *AssumptionNotFound) Error() string {
	return fmt.Sprintf("the assumption %v does not match a disjunct of %v", e.Assumption, e.Disjunction)
}

func (e *AssumptionNotFound) ErrorKind() string { return "assumption_not_found" }

// ConclusionsNotTheSame reports case blocks whose conclusions differ where
// they were required to be identical.
type ConclusionsNotTheSame struct {
	Conclusion  prop.Prop
	NonMatching prop.Prop
}

func (e *ConclusionsNotTheSame) Error() string {
	return fmt.Sprintf("the conclusion %v does not match %v", e.NonMatching, e.Conclusion)
}

func (e *ConclusionsNotTheSame) ErrorKind() string { return "conclusions_not_the_same" }

// PremiseNotAtStart reports a premise added after derivation began.
type PremiseNotAtStart struct {
	Premise prop.Prop
}

func (e *PremiseNotAtStart) Error() string {
	return fmt.Sprintf("the premise %v was added after the proof began deriving lines", e.Premise)
}

func (e *PremiseNotAtStart) ErrorKind() string { return "premise_not_at_start" }

// BlockClosed reports an explosion whose false line sits in an already
// closed block.
type BlockClosed struct {
	Block int
}

func (e *BlockClosed) Error() string {
	return fmt.Sprintf("block %d has already been closed", e.Block)
}

func (e *BlockClosed) ErrorKind() string { return "block_closed" }

// ProofAlreadyComplete reports a mutating call after the goal was reached.
type ProofAlreadyComplete struct{}

func (e *ProofAlreadyComplete) Error() string {
	return "the proof is already complete"
}

func (e *ProofAlreadyComplete) ErrorKind() string { return "proof_already_complete" }
