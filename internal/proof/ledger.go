package proof

import "github.com/fitchkit/fitch/internal/prop"

// Line represents one immutable ledger entry. Index 0 always holds the goal
// declaration and is not counted among proof lines.
type Line struct {
	Statement   prop.Prop
	Level       int
	BlockID     int
	Rule        RuleTag
	CitedLines  []int
	CitedBlocks []int
	Comment     string
}

// Block represents a scope descriptor. Start is the index of the opening
// assumption line; End is the index of the last line before closing and is
// meaningful only once Closed is set. Block 0 is the level-0 root, which
// never closes.
type Block struct {
	ID     int
	Level  int
	Start  int
	End    int
	Closed bool
}

// ledger owns the append-only line store and the block stack. Lines are
// never removed or rewritten; blocks are never deleted. The open stack
// holds the ids of the currently open blocks, root first, so the stack is
// exactly the ancestor chain of the current scope.
type ledger struct {
	lines  []Line
	blocks []Block
	open   []int
}

func newLedger(goal prop.Prop) *ledger {
	l := &ledger{
		blocks: []Block{{ID: 0, Level: 0, Start: 0}},
		open:   []int{0},
	}
	l.lines = append(l.lines, Line{Statement: goal, Rule: RuleGoal})
	return l
}

func (l *ledger) currentID() int { return l.open[len(l.open)-1] }

func (l *ledger) currentLevel() int { return l.blocks[l.currentID()].Level }

// append stores a line in the current scope and returns its index.
func (l *ledger) append(stmt prop.Prop, rule RuleTag, citedLines, citedBlocks []int, comment string) int {
	l.lines = append(l.lines, Line{
		Statement:   stmt,
		Level:       l.currentLevel(),
		BlockID:     l.currentID(),
		Rule:        rule,
		CitedLines:  citedLines,
		CitedBlocks: citedBlocks,
		Comment:     comment,
	})
	return len(l.lines) - 1
}

// getLine resolves a citable line index. Index 0 is the goal declaration
// and cannot be cited.
func (l *ledger) getLine(index int) (Line, error) {
	if index <= 0 || index >= len(l.lines) {
		return Line{}, &NoSuchLine{Line: index}
	}
	return l.lines[index], nil
}

// openBlock pushes a fresh block one level deeper. The caller appends the
// assumption line immediately afterwards, so Start points at it.
func (l *ledger) openBlock() *Block {
	id := len(l.blocks)
	l.blocks = append(l.blocks, Block{
		ID:    id,
		Level: l.currentLevel() + 1,
		Start: len(l.lines),
	})
	l.open = append(l.open, id)
	return &l.blocks[id]
}

// closeBlock finalizes the current block and pops it. The new current block
// is the new stack top, the parent scope.
func (l *ledger) closeBlock() error {
	id := l.currentID()
	if id == 0 {
		return &CannotCloseRootBlock{}
	}
	blk := &l.blocks[id]
	blk.End = len(l.lines) - 1
	blk.Closed = true
	l.open = l.open[:len(l.open)-1]
	return nil
}

// accessible reports whether a line may be cited from the current scope. A
// line is accessible iff its block is still on the open stack, which holds
// exactly the ancestor chain. Lines in closed blocks are reachable only
// through rules that cite the block as a whole.
func (l *ledger) accessible(index int) bool {
	blockID := l.lines[index].BlockID
	for _, id := range l.open {
		if id == blockID {
			return true
		}
	}
	return false
}

// block resolves a block id.
func (l *ledger) block(id int) (Block, error) {
	if id < 0 || id >= len(l.blocks) {
		return Block{}, &BlockNotFound{Block: id}
	}
	return l.blocks[id], nil
}

// blockSpan resolves a closed block to its start and end line indices.
func (l *ledger) blockSpan(id int) (start, end int, err error) {
	blk, err := l.block(id)
	if err != nil {
		return 0, 0, err
	}
	if !blk.Closed {
		return 0, 0, &BlockNotClosed{Block: id}
	}
	return blk.Start, blk.End, nil
}
