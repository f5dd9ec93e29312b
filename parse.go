package calculator

import (
	"sort"
	"unicode/utf8"
)

// expression := 'let' IDENT '=' expression | term
// term       := factor { ('+' | '-') factor }
// factor     := unary { ('*' | '/' | '%') unary }
// unary      := '-' unary | primary
// primary    := '(' expression ')' | call | NUMBER | IDENT
// call       := (sqrt | floor | ceil | cos | sin | tan) '(' expression ')'
//             | (pow | log) '(' expression ',' expression ')'
//             | (max | min) '(' expression ',' expression { ',' expression } ')'

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// parser holds the state of a single parse.
type parser struct {
	toks []Token
	// cur is the index of the next unconsumed token.
	cur int
	// end is the column just past the last token, reported for errors at the
	// end of the input.
	end int
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// Parse parses a token sequence into an expression. The entire sequence must
// form a single expression.
func Parse(toks []Token) (*Expr, error) {
	if len(toks) == 0 {
		return nil, &EmptyExpressionError{Col: 1}
	}
	last := toks[len(toks)-1]
	p := parser{
		toks:  toks,
		end:   last.Col + utf8.RuneCountInString(last.String()),
		names: make(map[string]bool),
	}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.cur < len(p.toks) {
		rest := p.toks[p.cur:]
		return nil, &DisjointInputError{Col: rest[0].Col, Rest: joinTokens(rest)}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sort.Strings(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to scan and parse source text.
func ParseString(src string, opts ...ScanOption) (*Expr, error) {
	toks, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// peek returns the next token without consuming it. ok is false at the end
// of the input.
func (p *parser) peek() (tok Token, ok bool) {
	if p.cur >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.cur], true
}

// check reports whether the next token has kind k.
func (p *parser) check(k TokenKind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == k
}

// match consumes the next token if it is any of kinds.
func (p *parser) match(kinds ...TokenKind) (Token, bool) {
	tok, ok := p.peek()
	if !ok {
		return tok, false
	}
	for _, k := range kinds {
		if tok.Kind == k {
			p.cur++
			return tok, true
		}
	}
	return tok, false
}

// col returns the column of the next token, or the end column if there are
// no more tokens.
func (p *parser) col() int {
	if tok, ok := p.peek(); ok {
		return tok.Col
	}
	return p.end
}

// unexpected creates an error for the next token, which matches no rule.
func (p *parser) unexpected(want string) error {
	tok, ok := p.peek()
	if !ok {
		return &UnexpectedTokenError{Col: p.end, Want: want}
	}
	return &UnexpectedTokenError{Col: tok.Col, Found: tok.String(), Want: want}
}

func (p *parser) expression() (*node, error) {
	if _, ok := p.match(TokenLet); !ok {
		return p.term()
	}
	id, ok := p.match(TokenIdent)
	if !ok {
		return nil, p.unexpected("variable name after let")
	}
	if _, ok := p.match(TokenEqual); !ok {
		return nil, p.unexpected("= after let " + id.Text)
	}
	rhs, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeAssign, name: id.Text, left: rhs}, nil
}

func (p *parser) term() (*node, error) {
	n, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(TokenPlus, TokenMinus)
		if !ok {
			return n, nil
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeBinary, op: op.Kind, left: n, right: rhs}
	}
}

func (p *parser) factor() (*node, error) {
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(TokenStar, TokenSlash, TokenPercent)
		if !ok {
			return n, nil
		}
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeBinary, op: op.Kind, left: n, right: rhs}
	}
}

func (p *parser) unary() (*node, error) {
	if _, ok := p.match(TokenMinus); !ok {
		return p.primary()
	}
	rhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeNeg, op: TokenMinus, left: rhs}, nil
}

func (p *parser) primary() (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.unexpected("expression")
	}
	switch tok.Kind {
	case TokenOpenParen:
		p.cur++
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, ok := p.match(TokenCloseParen); !ok {
			return nil, &MissingParenError{Col: p.col()}
		}
		return &node{kind: nodeGroup, left: n}, nil
	case TokenNumber:
		p.cur++
		return &node{kind: nodeNum, num: tok.Num}, nil
	case TokenIdent:
		p.cur++
		p.names[tok.Text] = true
		return &node{kind: nodeName, name: tok.Text}, nil
	}
	if tok.Kind.Arity() != 0 {
		p.cur++
		return p.call(tok)
	}
	return nil, p.unexpected("expression")
}

// call parses the parenthesized arguments to a function.
func (p *parser) call(fn Token) (*node, error) {
	name := fn.Kind.String()
	if _, ok := p.match(TokenOpenParen); !ok {
		return nil, &MissingParenError{Col: p.col(), Func: name, Open: true}
	}
	if p.check(TokenCloseParen) {
		return nil, &ArityError{Col: p.col(), Func: name, Len: 0}
	}
	switch fn.Kind.Arity() {
	case 1:
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.close(name, 1); err != nil {
			return nil, err
		}
		return &node{kind: nodeCall1, op: fn.Kind, left: arg}, nil
	case 2:
		lhs, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, ok := p.match(TokenComma); !ok {
			return nil, &ArityError{Col: p.col(), Func: name, Len: 1}
		}
		rhs, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.close(name, 2); err != nil {
			return nil, err
		}
		return &node{kind: nodeCall2, op: fn.Kind, left: lhs, right: rhs}, nil
	case -1:
		var args []*node
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if comma, ok := p.match(TokenComma); ok {
				if p.check(TokenCloseParen) {
					return nil, &TrailingCommaError{Col: comma.Col, Func: name}
				}
				continue
			}
			if _, ok := p.match(TokenCloseParen); ok {
				break
			}
			return nil, &MissingParenError{Col: p.col(), Func: name}
		}
		if len(args) < 2 {
			return nil, &ArityError{Col: fn.Col, Func: name, Len: len(args)}
		}
		return &node{kind: nodeCallN, op: fn.Kind, args: args}, nil
	default:
		panic("calculator: call on non-function token " + fn.String())
	}
}

// close consumes the close paren ending a fixed-arity call with n arguments.
func (p *parser) close(name string, n int) error {
	if _, ok := p.match(TokenCloseParen); ok {
		return nil
	}
	if p.check(TokenComma) {
		return &ArityError{Col: p.col(), Func: name, Len: n + 1}
	}
	return &MissingParenError{Col: p.col(), Func: name}
}

// Vars returns the variable names read when evaluating the expression.
// Names that are only assigned are not included.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Assigns reports whether the expression is an assignment and, if so, the
// name of the variable it sets.
func (e *Expr) Assigns() (name string, ok bool) {
	if e.n.kind != nodeAssign {
		return "", false
	}
	return e.n.name, true
}

// String returns source text for the parsed expression. Parsing the result
// produces an identical expression.
func (e *Expr) String() string {
	return e.n.String()
}
