package truthtab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/prop"
)

var (
	tA = prop.Atom{Name: "A"}
	tB = prop.Atom{Name: "B"}
)

func TestBuildRowOrder(t *testing.T) {
	table, err := Build(prop.And{Left: tA, Right: tB})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, table.Atoms)
	require.Len(t, table.Rows, 4)

	// All-true first, first atom toggling slowest.
	assert.Equal(t, []bool{true, true}, table.Rows[0].Inputs)
	assert.Equal(t, []bool{true, false}, table.Rows[1].Inputs)
	assert.Equal(t, []bool{false, true}, table.Rows[2].Inputs)
	assert.Equal(t, []bool{false, false}, table.Rows[3].Inputs)

	assert.True(t, table.Rows[0].Value)
	assert.False(t, table.Rows[1].Value)
	assert.False(t, table.Rows[2].Value)
	assert.False(t, table.Rows[3].Value)
}

func TestBuildConstantHasSingleRow(t *testing.T) {
	table, err := Build(prop.True{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Empty(t, table.Rows[0].Inputs)
	assert.True(t, table.Valid())
}

func TestExcludedMiddleIsValid(t *testing.T) {
	table, err := Build(prop.Or{Left: tA, Right: prop.Not{P: tA}})
	require.NoError(t, err)
	assert.True(t, table.Valid())

	bare, err := Build(tA)
	require.NoError(t, err)
	assert.False(t, bare.Valid())
}

func TestForArgumentModusPonens(t *testing.T) {
	premises := []prop.Prop{prop.Implies{Antecedent: tA, Consequent: tB}, tA}
	table, err := ForArgument(premises, tB)
	require.NoError(t, err)
	assert.True(t, table.Valid())
	assert.Len(t, table.Rows, 4)
}

func TestForArgumentAffirmingTheConsequent(t *testing.T) {
	premises := []prop.Prop{prop.Implies{Antecedent: tA, Consequent: tB}, tB}
	table, err := ForArgument(premises, tA)
	require.NoError(t, err)
	assert.False(t, table.Valid())
}

func TestForArgumentWithoutPremises(t *testing.T) {
	table, err := ForArgument(nil, prop.Implies{Antecedent: tA, Consequent: tA})
	require.NoError(t, err)
	assert.True(t, table.Valid())
}

func TestBuildRejectsTooManyAtoms(t *testing.T) {
	var wide prop.Prop = prop.Atom{Name: "x0"}
	for i := 1; i <= MaxAtoms; i++ {
		wide = prop.And{Left: wide, Right: prop.Atom{Name: fmt.Sprintf("x%d", i)}}
	}

	_, err := Build(wide)
	assert.ErrorIs(t, err, ErrTooManyAtoms)
}
