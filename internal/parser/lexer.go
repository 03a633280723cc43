// Package parser turns formula text into prop trees. The syntax accepts
// both ASCII and Unicode connectives:
//
//	negation     ~ ! ¬        conjunction  & ∧ and
//	disjunction  | ∨ or       implication  -> > → implies
//	biconditional <-> ↔ iff   exclusive or ⊕ xor
//	nand ↑ nand               nor ↓ nor    xnor ⊙ xnor
//	constants    true ⊤ false ⊥
//
// Binding, tightest first: ¬, ∧-tier (∧ ↑), ∨-tier (∨ ↓ ⊕ ⊙), →, ↔.
// Implication is right-associative; the other binary connectives are
// left-associative. Atoms are identifiers starting with a letter. Word
// operators are case-insensitive keywords and cannot be used as atoms.
package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenType identifies a lexical token.
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenAtom
	tokenTrue
	tokenFalse
	tokenNot
	tokenAnd
	tokenOr
	tokenImplies
	tokenIff
	tokenXor
	tokenNand
	tokenNor
	tokenXnor
	tokenLParen
	tokenRParen
)

type token struct {
	typ tokenType
	lit string
	col int // 1-based rune column
}

// ParseError reports where in the input parsing failed.
type ParseError struct {
	Col int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at column %d: %s", e.Col, e.Msg)
}

var keywords = map[string]tokenType{
	"and":     tokenAnd,
	"or":      tokenOr,
	"not":     tokenNot,
	"implies": tokenImplies,
	"iff":     tokenIff,
	"xor":     tokenXor,
	"nand":    tokenNand,
	"nor":     tokenNor,
	"xnor":    tokenXnor,
	"true":    tokenTrue,
	"false":   tokenFalse,
}

func lex(input string) ([]token, error) {
	runes := []rune(input)
	var toks []token
	i := 0
	emit := func(typ tokenType, lit string, col int) {
		toks = append(toks, token{typ: typ, lit: lit, col: col})
	}
	for i < len(runes) {
		r := runes[i]
		col := i + 1
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			emit(tokenLParen, "(", col)
			i++
		case r == ')':
			emit(tokenRParen, ")", col)
			i++
		case r == '~' || r == '!' || r == '¬':
			emit(tokenNot, string(r), col)
			i++
		case r == '&' || r == '∧':
			emit(tokenAnd, string(r), col)
			i++
		case r == '|' || r == '∨':
			emit(tokenOr, string(r), col)
			i++
		case r == '>' || r == '→':
			emit(tokenImplies, string(r), col)
			i++
		case r == '↔':
			emit(tokenIff, string(r), col)
			i++
		case r == '⊕':
			emit(tokenXor, string(r), col)
			i++
		case r == '↑':
			emit(tokenNand, string(r), col)
			i++
		case r == '↓':
			emit(tokenNor, string(r), col)
			i++
		case r == '⊙':
			emit(tokenXnor, string(r), col)
			i++
		case r == '⊤':
			emit(tokenTrue, string(r), col)
			i++
		case r == '⊥':
			emit(tokenFalse, string(r), col)
			i++
		case r == '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				emit(tokenImplies, "->", col)
				i += 2
			} else {
				return nil, &ParseError{Col: col, Msg: "expected '>' after '-'"}
			}
		case r == '<':
			if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] == '>' {
				emit(tokenIff, "<->", col)
				i += 3
			} else {
				return nil, &ParseError{Col: col, Msg: "expected '<->'"}
			}
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			if typ, ok := keywords[strings.ToLower(word)]; ok {
				emit(typ, word, col)
			} else {
				emit(tokenAtom, word, col)
			}
		default:
			return nil, &ParseError{Col: col, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{typ: tokenEOF, col: len(runes) + 1})
	return toks, nil
}
