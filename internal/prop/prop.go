// Package prop defines the propositional formula model: an immutable
// expression tree over a closed set of connectives, with structural
// equality, truth-functional evaluation, and a JSON encoding.
//
// Formulas are plain value types. Once built they are never mutated, so a
// Prop embedded in a proof line can be shared freely. Equality is
// structural: shape and operand order must match exactly, no commutative
// or associative normalization is applied.
package prop

// Kind identifies the variant of a Prop.
type Kind int

const (
	KindAtom Kind = iota
	KindNot
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindXor
	KindNand
	KindNor
	KindXnor
	KindTrue
	KindFalse
)

// String returns the lowercase name of the kind, matching the JSON encoding.
func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindNot:
		return "not"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindImplies:
		return "implies"
	case KindIff:
		return "iff"
	case KindXor:
		return "xor"
	case KindNand:
		return "nand"
	case KindNor:
		return "nor"
	case KindXnor:
		return "xnor"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	default:
		return "unknown"
	}
}

// Prop is a propositional formula. The variant set is closed: only the
// types in this package implement it, so a type switch over all variants
// is exhaustive.
type Prop interface {
	Kind() Kind
	String() string
	sealed()
}

// Atom represents an atomic proposition identified by name.
type Atom struct {
	Name string
}

// Not represents the negation of a formula.
type Not struct {
	P Prop
}

// And represents a conjunction.
type And struct {
	Left, Right Prop
}

// Or represents a disjunction.
type Or struct {
	Left, Right Prop
}

// Implies represents a material implication.
type Implies struct {
	Antecedent, Consequent Prop
}

// Iff represents a biconditional.
type Iff struct {
	Left, Right Prop
}

// Xor represents an exclusive disjunction.
type Xor struct {
	Left, Right Prop
}

// Nand represents a negated conjunction.
type Nand struct {
	Left, Right Prop
}

// Nor represents a negated disjunction.
type Nor struct {
	Left, Right Prop
}

// Xnor represents a negated exclusive disjunction.
type Xnor struct {
	Left, Right Prop
}

// True represents the constant true.
type True struct{}

// False represents the constant false, the contradiction symbol.
type False struct{}

func (Atom) Kind() Kind    { return KindAtom }
func (Not) Kind() Kind     { return KindNot }
func (And) Kind() Kind     { return KindAnd }
func (Or) Kind() Kind      { return KindOr }
func (Implies) Kind() Kind { return KindImplies }
func (Iff) Kind() Kind     { return KindIff }
func (Xor) Kind() Kind     { return KindXor }
func (Nand) Kind() Kind    { return KindNand }
func (Nor) Kind() Kind     { return KindNor }
func (Xnor) Kind() Kind    { return KindXnor }
func (True) Kind() Kind    { return KindTrue }
func (False) Kind() Kind   { return KindFalse }

func (Atom) sealed()    {}
func (Not) sealed()     {}
func (And) sealed()     {}
func (Or) sealed()      {}
func (Implies) sealed() {}
func (Iff) sealed()     {}
func (Xor) sealed()     {}
func (Nand) sealed()    {}
func (Nor) sealed()     {}
func (Xnor) sealed()    {}
func (True) sealed()    {}
func (False) sealed()   {}

// Equal reports whether a and b have exactly the same shape and operand
// order. And(A,B) and And(B,A) are not equal.
func Equal(a, b Prop) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Atom:
		return x.Name == b.(Atom).Name
	case Not:
		return Equal(x.P, b.(Not).P)
	case And:
		y := b.(And)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Or:
		y := b.(Or)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Implies:
		y := b.(Implies)
		return Equal(x.Antecedent, y.Antecedent) && Equal(x.Consequent, y.Consequent)
	case Iff:
		y := b.(Iff)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Xor:
		y := b.(Xor)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Nand:
		y := b.(Nand)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Nor:
		y := b.(Nor)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Xnor:
		y := b.(Xnor)
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case True, False:
		return true
	default:
		return false
	}
}
