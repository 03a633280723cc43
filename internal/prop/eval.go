package prop

import "sort"

// Eval computes the truth value of p under the given assignment. Atoms
// missing from the assignment evaluate to false. The proof engine never
// evaluates formulas; this exists for truth-table enumeration.
func Eval(p Prop, assignment map[string]bool) bool {
	switch x := p.(type) {
	case Atom:
		return assignment[x.Name]
	case Not:
		return !Eval(x.P, assignment)
	case And:
		return Eval(x.Left, assignment) && Eval(x.Right, assignment)
	case Or:
		return Eval(x.Left, assignment) || Eval(x.Right, assignment)
	case Implies:
		return !Eval(x.Antecedent, assignment) || Eval(x.Consequent, assignment)
	case Iff:
		return Eval(x.Left, assignment) == Eval(x.Right, assignment)
	case Xor:
		return Eval(x.Left, assignment) != Eval(x.Right, assignment)
	case Nand:
		return !(Eval(x.Left, assignment) && Eval(x.Right, assignment))
	case Nor:
		return !(Eval(x.Left, assignment) || Eval(x.Right, assignment))
	case Xnor:
		return Eval(x.Left, assignment) == Eval(x.Right, assignment)
	case True:
		return true
	default:
		return false
	}
}

// Atoms returns the distinct atom names occurring in p, sorted.
func Atoms(p Prop) []string {
	seen := make(map[string]struct{})
	collectAtoms(p, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectAtoms(p Prop, seen map[string]struct{}) {
	switch x := p.(type) {
	case Atom:
		seen[x.Name] = struct{}{}
	case Not:
		collectAtoms(x.P, seen)
	case And:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Or:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Implies:
		collectAtoms(x.Antecedent, seen)
		collectAtoms(x.Consequent, seen)
	case Iff:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Xor:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Nand:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Nor:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	case Xnor:
		collectAtoms(x.Left, seen)
		collectAtoms(x.Right, seen)
	}
}
