package parser

import (
	"fmt"

	"github.com/fitchkit/fitch/internal/prop"
)

// Parse reads a single formula. The whole input must be consumed; trailing
// tokens are an error.
func Parse(input string) (prop.Prop, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	formula, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.peek().typ != tokenEOF {
		return nil, &ParseError{Col: p.peek().col, Msg: fmt.Sprintf("unexpected %q after formula", p.peek().lit)}
	}
	return formula, nil
}

// MustParse is Parse for inputs known to be well-formed, such as fixtures.
func MustParse(input string) prop.Prop {
	formula, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return formula
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) match(typ tokenType) bool {
	if p.toks[p.i].typ == typ {
		p.i++
		return true
	}
	return false
}

func (p *parser) parseIff() (prop.Prop, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.match(tokenIff) {
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = prop.Iff{Left: left, Right: right}
	}
	return left, nil
}

// parseImplies recurses on its own tier, so A → B → C groups as A → (B → C).
func (p *parser) parseImplies() (prop.Prop, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.match(tokenImplies) {
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return prop.Implies{Antecedent: left, Consequent: right}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (prop.Prop, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		var typ tokenType
		switch p.peek().typ {
		case tokenOr, tokenNor, tokenXor, tokenXnor:
			typ = p.peek().typ
			p.i++
		default:
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		switch typ {
		case tokenOr:
			left = prop.Or{Left: left, Right: right}
		case tokenNor:
			left = prop.Nor{Left: left, Right: right}
		case tokenXor:
			left = prop.Xor{Left: left, Right: right}
		default:
			left = prop.Xnor{Left: left, Right: right}
		}
	}
}

func (p *parser) parseAnd() (prop.Prop, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var typ tokenType
		switch p.peek().typ {
		case tokenAnd, tokenNand:
			typ = p.peek().typ
			p.i++
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if typ == tokenAnd {
			left = prop.And{Left: left, Right: right}
		} else {
			left = prop.Nand{Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() (prop.Prop, error) {
	if p.match(tokenNot) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return prop.Not{P: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (prop.Prop, error) {
	tok := p.peek()
	switch tok.typ {
	case tokenLParen:
		p.i++
		formula, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if !p.match(tokenRParen) {
			return nil, &ParseError{Col: p.peek().col, Msg: "expected ')'"}
		}
		return formula, nil
	case tokenAtom:
		p.i++
		return prop.Atom{Name: tok.lit}, nil
	case tokenTrue:
		p.i++
		return prop.True{}, nil
	case tokenFalse:
		p.i++
		return prop.False{}, nil
	case tokenEOF:
		return nil, &ParseError{Col: tok.col, Msg: "unexpected end of formula"}
	default:
		return nil, &ParseError{Col: tok.col, Msg: fmt.Sprintf("unexpected %q", tok.lit)}
	}
}
