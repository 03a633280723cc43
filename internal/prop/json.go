package prop

import (
	"encoding/json"
	"fmt"
)

// node is the wire form of a formula: a tagged object per variant, e.g.
// {"kind":"and","left":{"kind":"atom","name":"P"},"right":{"kind":"false"}}.
type node struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	P     *node  `json:"p,omitempty"`
	Left  *node  `json:"left,omitempty"`
	Right *node  `json:"right,omitempty"`
}

// MarshalJSON encodes a formula into its tagged-object wire form.
func MarshalJSON(p Prop) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("prop: cannot marshal nil formula")
	}
	return json.Marshal(toNode(p))
}

// UnmarshalJSON decodes the tagged-object wire form. Unknown kinds and
// missing operands are rejected.
func UnmarshalJSON(data []byte) (Prop, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("prop: decode formula: %w", err)
	}
	return fromNode(&n)
}

func toNode(p Prop) *node {
	switch x := p.(type) {
	case Atom:
		return &node{Kind: "atom", Name: x.Name}
	case Not:
		return &node{Kind: "not", P: toNode(x.P)}
	case And:
		return &node{Kind: "and", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Or:
		return &node{Kind: "or", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Implies:
		return &node{Kind: "implies", Left: toNode(x.Antecedent), Right: toNode(x.Consequent)}
	case Iff:
		return &node{Kind: "iff", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Xor:
		return &node{Kind: "xor", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Nand:
		return &node{Kind: "nand", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Nor:
		return &node{Kind: "nor", Left: toNode(x.Left), Right: toNode(x.Right)}
	case Xnor:
		return &node{Kind: "xnor", Left: toNode(x.Left), Right: toNode(x.Right)}
	case True:
		return &node{Kind: "true"}
	default:
		return &node{Kind: "false"}
	}
}

func fromNode(n *node) (Prop, error) {
	if n == nil {
		return nil, fmt.Errorf("prop: missing operand")
	}
	switch n.Kind {
	case "atom":
		if n.Name == "" {
			return nil, fmt.Errorf("prop: atom without name")
		}
		return Atom{Name: n.Name}, nil
	case "not":
		p, err := fromNode(n.P)
		if err != nil {
			return nil, err
		}
		return Not{P: p}, nil
	case "true":
		return True{}, nil
	case "false":
		return False{}, nil
	case "and", "or", "implies", "iff", "xor", "nand", "nor", "xnor":
		left, err := fromNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromNode(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case "and":
			return And{Left: left, Right: right}, nil
		case "or":
			return Or{Left: left, Right: right}, nil
		case "implies":
			return Implies{Antecedent: left, Consequent: right}, nil
		case "iff":
			return Iff{Left: left, Right: right}, nil
		case "xor":
			return Xor{Left: left, Right: right}, nil
		case "nand":
			return Nand{Left: left, Right: right}, nil
		case "nor":
			return Nor{Left: left, Right: right}, nil
		default:
			return Xnor{Left: left, Right: right}, nil
		}
	default:
		return nil, fmt.Errorf("prop: unknown formula kind %q", n.Kind)
	}
}
