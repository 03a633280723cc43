package prop

// Connective precedence, tighter binds higher. Atoms and constants never
// need parentheses; implication is right-associative, every other binary
// connective is left-associative.
const (
	precIff = iota
	precImplies
	precOr
	precAnd
	precNot
	precAtom
)

func precedence(p Prop) int {
	switch p.Kind() {
	case KindAtom, KindTrue, KindFalse:
		return precAtom
	case KindNot:
		return precNot
	case KindAnd, KindNand:
		return precAnd
	case KindOr, KindNor, KindXor, KindXnor:
		return precOr
	case KindImplies:
		return precImplies
	default:
		return precIff
	}
}

func connective(k Kind) string {
	switch k {
	case KindAnd:
		return "∧"
	case KindOr:
		return "∨"
	case KindImplies:
		return "→"
	case KindIff:
		return "↔"
	case KindXor:
		return "⊕"
	case KindNand:
		return "↑"
	case KindNor:
		return "↓"
	case KindXnor:
		return "⊙"
	default:
		return "?"
	}
}

func (p Atom) String() string { return p.Name }
func (True) String() string   { return "⊤" }
func (False) String() string  { return "⊥" }

func (p Not) String() string {
	if precedence(p.P) < precNot {
		return "¬(" + p.P.String() + ")"
	}
	return "¬" + p.P.String()
}

func (p And) String() string     { return binaryString(p.Left, p.Right, KindAnd) }
func (p Or) String() string      { return binaryString(p.Left, p.Right, KindOr) }
func (p Implies) String() string { return binaryString(p.Antecedent, p.Consequent, KindImplies) }
func (p Iff) String() string     { return binaryString(p.Left, p.Right, KindIff) }
func (p Xor) String() string     { return binaryString(p.Left, p.Right, KindXor) }
func (p Nand) String() string    { return binaryString(p.Left, p.Right, KindNand) }
func (p Nor) String() string     { return binaryString(p.Left, p.Right, KindNor) }
func (p Xnor) String() string    { return binaryString(p.Left, p.Right, KindXnor) }

func binaryString(left, right Prop, k Kind) string {
	var parentPrec int
	switch k {
	case KindAnd, KindNand:
		parentPrec = precAnd
	case KindOr, KindNor, KindXor, KindXnor:
		parentPrec = precOr
	case KindImplies:
		parentPrec = precImplies
	default:
		parentPrec = precIff
	}
	return operand(left, k, parentPrec, false) + " " + connective(k) + " " + operand(right, k, parentPrec, true)
}

// operand renders a child of a binary connective, parenthesizing whenever
// re-parsing the result could regroup it. A same-connective child on the
// associative side stays bare, so And(And(a,b),c) prints "a ∧ b ∧ c".
func operand(child Prop, parent Kind, parentPrec int, rightSide bool) string {
	childPrec := precedence(child)
	if childPrec > parentPrec {
		return child.String()
	}
	if childPrec == parentPrec && child.Kind() == parent {
		if parent == KindImplies {
			if rightSide {
				return child.String()
			}
		} else if !rightSide {
			return child.String()
		}
	}
	return "(" + child.String() + ")"
}
