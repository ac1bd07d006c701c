package calc

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Expr = num | name | Call | Assign | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname Primary
// Assign = name '=' Expr
// Neg = '-' Primary
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr
//
// Primary is any of num, name, Call, Assign, Neg, or a bracketed Expr.

// Expr is a parsed expression that can be evaluated in an environment.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

type parser struct {
	toks []Token
	pos  int
}

// Parse builds an expression from tokens produced by Tokenize. Every token
// must be consumed. Leftover input is a *TrailingError, unless the next token
// can never follow a term, in which case it is a *TokenError.
func Parse(toks []Token) (*Expr, error) {
	p := parser{toks: toks}
	n, err := p.parseterm(0)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		if tok.Kind == TokenNone || tok.Kind.IsPunct() {
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
		}
		return nil, &TrailingError{Col: tok.Pos, Text: tok.Text}
	}
	m := make(map[string]bool)
	n.names(m)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(m)),
	}
	for k := range m {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a short string slice in place.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// ParseString is a shortcut to tokenize and parse an expression.
func ParseString(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

// next consumes the next token. At the end of input, the error is an
// *EOFError.
func (p *parser) next() (Token, error) {
	tok, ok := p.peek()
	if !ok {
		return Token{}, p.eof()
	}
	p.pos++
	return tok, nil
}

// eof creates an error for running out of tokens.
func (p *parser) eof() error {
	if len(p.toks) == 0 {
		return &EOFError{Col: 1}
	}
	last := p.toks[len(p.toks)-1]
	return &EOFError{Col: last.Pos + utf8.RuneCountInString(last.Text)}
}

// parseterm parses a primary followed by any binary operators that bind at
// least as tightly as until.
func (p *parser) parseterm(until int8) (*node, error) {
	n, err := p.parseprimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return n, nil
		}
		op := binop(tok.Kind)
		if op.prec == 0 || op.prec < until {
			return n, nil
		}
		p.pos++
		next := op.prec + 1
		if op.right {
			// 2^3^2 -> 2^(3^2)
			next = op.prec
		}
		rhs, err := p.parseterm(next)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeBinary, op: tok.Kind, left: n, right: rhs}
	}
}

// parseprimary parses exactly one primary expression.
func (p *parser) parseprimary() (*node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// Overflow saturates to ±Inf. Anything else is not a number.
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
		}
		return &node{kind: nodeNum, num: v}, nil
	case TokenLeftParen, TokenLeftBracket, TokenLeftBrace:
		n, err := p.parseterm(0)
		if err != nil {
			return nil, err
		}
		end, ok := p.peek()
		if !ok || end.Kind != closer(tok.Kind) {
			br := &BracketError{Col: tok.Pos, Left: tok.Text}
			if ok {
				br.Right = end.Text
			}
			return nil, br
		}
		p.pos++
		return n, nil
	case TokenNeg:
		// Negation binds tighter than anything: -2^2 -> (-2)^2
		rhs, err := p.parseprimary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeUnary, op: TokenNeg, left: rhs}, nil
	case TokenKeyword:
		// sin x+1 -> sin(x) + 1
		rhs, err := p.parseprimary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, fn: tok.Func, left: rhs}, nil
	case TokenIdent:
		if eq, ok := p.peek(); ok && eq.Kind == TokenEquals {
			p.pos++
			rhs, err := p.parseterm(0)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeAssign, name: tok.Text, left: rhs}, nil
		}
		return &node{kind: nodeName, name: tok.Text}, nil
	default:
		return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
	}
}

// closer gets the closing bracket kind for an opening bracket kind.
func closer(open TokenKind) TokenKind {
	cl := []rune(CloseBrackets)
	for k, r := range []rune(OpenBrackets) {
		if symkinds[r] == open {
			return symkinds[cl[k]]
		}
	}
	panic("calc: not an open bracket: " + open.String())
}

// Vars returns the variable names used or assigned by the expression, in
// sorted order.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the binding precedence. Higher is more binding. Tokens which
	// are not binary operators have prec 0.
	prec int8
	// right indicates right-associativity.
	right bool
}

// Precedences of operators.
const (
	precAdd  = 1
	precMul  = 2
	precPow  = 3
	precNeg  = 4
	precCall = precNeg
)

// binop gets the binary operator for a token kind. If there is no such binary
// operator, then the result has a prec of 0.
func binop(kind TokenKind) operator {
	switch kind {
	case TokenAdd, TokenSub:
		return operator{precAdd, false}
	case TokenMul, TokenDiv:
		return operator{precMul, false}
	case TokenPow:
		return operator{precPow, true}
	default:
		return operator{}
	}
}

// Precedence returns how tightly the operator of a token kind binds. Higher
// binds tighter. The result is 0 for tokens which are not operators.
func Precedence(kind TokenKind) int {
	switch kind {
	case TokenNeg:
		return precNeg
	case TokenKeyword:
		return precCall
	default:
		return int(binop(kind).prec)
	}
}
