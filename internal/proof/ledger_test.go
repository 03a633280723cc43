package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/prop"
)

func TestNewLedgerSeedsRootAndGoal(t *testing.T) {
	l := newLedger(pA)

	require.Len(t, l.lines, 1)
	assert.Equal(t, RuleGoal, l.lines[0].Rule)
	assert.True(t, prop.Equal(pA, l.lines[0].Statement))

	require.Len(t, l.blocks, 1)
	assert.Equal(t, 0, l.blocks[0].ID)
	assert.Equal(t, 0, l.blocks[0].Level)
	assert.False(t, l.blocks[0].Closed)

	assert.Equal(t, 0, l.currentID())
	assert.Equal(t, 0, l.currentLevel())
}

func TestOpenCloseBlockStack(t *testing.T) {
	l := newLedger(pA)

	blk := l.openBlock()
	assert.Equal(t, 1, blk.ID)
	assert.Equal(t, 1, blk.Level)
	assert.Equal(t, 1, l.currentID())
	assert.Equal(t, 1, l.currentLevel())

	inner := l.openBlock()
	assert.Equal(t, 2, inner.ID)
	assert.Equal(t, 2, inner.Level)
	assert.Equal(t, 2, l.currentLevel())

	require.NoError(t, l.closeBlock())
	assert.Equal(t, 1, l.currentID())
	assert.True(t, l.blocks[2].Closed)

	require.NoError(t, l.closeBlock())
	assert.Equal(t, 0, l.currentID())

	// Both closed blocks stay in the list for later citation.
	assert.Len(t, l.blocks, 3)
}

func TestCloseBlockRejectsRoot(t *testing.T) {
	l := newLedger(pA)

	err := l.closeBlock()
	var rootErr *CannotCloseRootBlock
	require.ErrorAs(t, err, &rootErr)
}

func TestAccessibleFollowsAncestorChain(t *testing.T) {
	l := newLedger(pC)
	root := l.append(pA, RulePremise, nil, nil, "")

	l.openBlock()
	first := l.append(pB, RuleAssumption, nil, nil, "")
	require.NoError(t, l.closeBlock())

	l.openBlock()
	second := l.append(pA, RuleAssumption, nil, nil, "")

	// Root lines and the current block are reachable; the closed sibling
	// is not.
	assert.True(t, l.accessible(root))
	assert.True(t, l.accessible(second))
	assert.False(t, l.accessible(first))
}

func TestGetLineRejectsGoalRowAndOutOfRange(t *testing.T) {
	l := newLedger(pA)
	l.append(pB, RulePremise, nil, nil, "")

	for _, index := range []int{0, -1, 2, 99} {
		_, err := l.getLine(index)
		var missing *NoSuchLine
		require.ErrorAs(t, err, &missing, "index %d", index)
		assert.Equal(t, index, missing.Line)
	}

	line, err := l.getLine(1)
	require.NoError(t, err)
	assert.True(t, prop.Equal(pB, line.Statement))
}

func TestBlockSpanRequiresClosedBlock(t *testing.T) {
	l := newLedger(pA)
	l.openBlock()
	l.append(pB, RuleAssumption, nil, nil, "")

	_, _, err := l.blockSpan(1)
	var open *BlockNotClosed
	require.ErrorAs(t, err, &open)
	assert.Equal(t, 1, open.Block)

	_, _, err = l.blockSpan(7)
	var missing *BlockNotFound
	require.ErrorAs(t, err, &missing)

	l.append(pC, RuleReiteration, nil, nil, "")
	require.NoError(t, l.closeBlock())

	start, end, err := l.blockSpan(1)
	require.NoError(t, err)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)
}

func TestAppendStampsCurrentScope(t *testing.T) {
	l := newLedger(pA)
	l.openBlock()
	index := l.append(pB, RuleAssumption, nil, nil, "case")

	line := l.lines[index]
	assert.Equal(t, 1, line.Level)
	assert.Equal(t, 1, line.BlockID)
	assert.Equal(t, "case", line.Comment)
}
