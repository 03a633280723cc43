// Package truthtab builds semantic truth tables for formulas and
// arguments. Proof construction never consults it; it backs the table
// command and validity spot checks in tests.
package truthtab

import (
	"errors"

	"github.com/fitchkit/fitch/internal/prop"
)

// MaxAtoms bounds the enumeration: 2^16 rows is the largest table the
// renderers will accept.
const MaxAtoms = 16

// ErrTooManyAtoms is returned when a formula mentions more than MaxAtoms
// distinct atoms.
var ErrTooManyAtoms = errors.New("truthtab: formula exceeds the atom limit")

// Row is one assignment and the formula's value under it. Inputs follow
// the table's atom order.
type Row struct {
	Inputs []bool
	Value  bool
}

// Table is a fully enumerated truth table. Rows start from the all-true
// assignment, with the first atom toggling slowest.
type Table struct {
	Formula prop.Prop
	Atoms   []string
	Rows    []Row
}

// Build enumerates the formula over its atoms in sorted order.
func Build(p prop.Prop) (*Table, error) {
	atoms := prop.Atoms(p)
	if len(atoms) > MaxAtoms {
		return nil, ErrTooManyAtoms
	}

	table := &Table{
		Formula: p,
		Atoms:   atoms,
		Rows:    make([]Row, 0, 1<<len(atoms)),
	}
	assignment := make(map[string]bool, len(atoms))
	for r := 0; r < 1<<len(atoms); r++ {
		inputs := make([]bool, len(atoms))
		for i, atom := range atoms {
			inputs[i] = r>>(len(atoms)-1-i)&1 == 0
			assignment[atom] = inputs[i]
		}
		table.Rows = append(table.Rows, Row{
			Inputs: inputs,
			Value:  prop.Eval(p, assignment),
		})
	}
	return table, nil
}

// ForArgument tables the conditional whose antecedent conjoins the
// premises and whose consequent is the goal. With no premises, the goal is
// tabled alone.
func ForArgument(premises []prop.Prop, goal prop.Prop) (*Table, error) {
	if len(premises) == 0 {
		return Build(goal)
	}
	conj := premises[0]
	for _, premise := range premises[1:] {
		conj = prop.And{Left: conj, Right: premise}
	}
	return Build(prop.Implies{Antecedent: conj, Consequent: goal})
}

// Valid reports whether the formula holds under every assignment.
func (t *Table) Valid() bool {
	for _, row := range t.Rows {
		if !row.Value {
			return false
		}
	}
	return true
}
