package calculator

import (
	"strconv"
	"strings"
)

// Token is a lexical unit of an expression. Tokens are comparable values;
// two tokens are equal when all their fields are equal.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Num is the value of a TokenNumber.
	Num float32
	// Text is the name of a TokenIdent.
	Text string
	// Col is the 1-based rune column where the token starts.
	Col int
}

// String returns the canonical text of the token. Scanning the result gives
// back a token of the same kind and value.
func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return fmtnum(t.Num)
	case TokenIdent:
		return t.Text
	default:
		return t.Kind.String()
	}
}

// TokenKind identifies the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent

	TokenOpenParen
	TokenCloseParen
	TokenComma

	// Functions of one argument.
	TokenSqrt
	TokenFloor
	TokenCeil
	TokenCos
	TokenSin
	TokenTan

	// Functions of two arguments.
	TokenPow
	TokenLog

	// Functions of two or more arguments.
	TokenMax
	TokenMin

	// TokenNumber is a numeric literal. Its value is in Num.
	TokenNumber
	// TokenIdent is a variable name. The name is in Text.
	TokenIdent

	TokenLet
	TokenEqual
)

var kindtext = [...]string{
	TokenNone:       "<none>",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenPercent:    "%",
	TokenOpenParen:  "(",
	TokenCloseParen: ")",
	TokenComma:      ",",
	TokenSqrt:       "sqrt",
	TokenFloor:      "floor",
	TokenCeil:       "ceil",
	TokenCos:        "cos",
	TokenSin:        "sin",
	TokenTan:        "tan",
	TokenPow:        "pow",
	TokenLog:        "log",
	TokenMax:        "max",
	TokenMin:        "min",
	TokenNumber:     "<number>",
	TokenIdent:      "<identifier>",
	TokenLet:        "let",
	TokenEqual:      "=",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindtext) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindtext[k]
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]TokenKind{
	"max":   TokenMax,
	"min":   TokenMin,
	"sqrt":  TokenSqrt,
	"pow":   TokenPow,
	"cos":   TokenCos,
	"sin":   TokenSin,
	"tan":   TokenTan,
	"log":   TokenLog,
	"floor": TokenFloor,
	"ceil":  TokenCeil,
	"let":   TokenLet,
}

// Arity returns the number of arguments a function token takes: 1 or 2 for
// fixed-arity functions, -1 for variadic functions, and 0 for tokens that are
// not functions.
func (k TokenKind) Arity() int {
	switch k {
	case TokenSqrt, TokenFloor, TokenCeil, TokenCos, TokenSin, TokenTan:
		return 1
	case TokenPow, TokenLog:
		return 2
	case TokenMax, TokenMin:
		return -1
	default:
		return 0
	}
}

// fmtnum formats a number as the shortest decimal text that scans back to the
// same float32. Literals are never negative or exponential, so neither is
// the output for any value the scanner can produce.
func fmtnum(x float32) string {
	return strconv.FormatFloat(float64(x), 'f', -1, 32)
}

// joinTokens renders a token sequence back to source text.
func joinTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
