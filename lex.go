package calculator

import (
	"strconv"
	"strings"
)

type lexer struct {
	src []rune
	// off is the index of the next rune to scan.
	off int
	buf strings.Builder
	cfg scanconf
}

// Tokenize scans src into a sequence of tokens. Scanning stops at the first
// invalid input; the result is then nil with an error describing it.
func Tokenize(src string, opts ...ScanOption) ([]Token, error) {
	l := lexer{src: []rune(src)}
	for _, opt := range opts {
		l.cfg = opt.scanOption(l.cfg)
	}
	var toks []Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// punct maps single-rune tokens to their kinds.
var punct = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'(': TokenOpenParen,
	')': TokenCloseParen,
	',': TokenComma,
	'=': TokenEqual,
}

// peek returns the rune k places past the next one, or -1 past the end.
func (l *lexer) peek(k int) rune {
	if l.off+k >= len(l.src) {
		return -1
	}
	return l.src[l.off+k]
}

// next scans the next token from the input. At the end of the input the
// result is ok == false with no error.
func (l *lexer) next() (tok Token, ok bool, err error) {
	defer l.buf.Reset()
	for l.off < len(l.src) {
		r := l.src[l.off]
		tok.Col = l.off + 1
		switch {
		case r == ' ', r == '\n':
			l.off++
			continue
		case isdigit(r):
			return l.scanNum(tok)
		case isletter(r):
			return l.scanWord(tok)
		}
		k, found := punct[r]
		if !found {
			return tok, false, &InvalidCharacterError{Char: r, Col: tok.Col}
		}
		l.off++
		tok.Kind = k
		return tok, true, nil
	}
	return tok, false, nil
}

// scanNum scans a run of digits with an optional fractional part. A dot is
// only part of the number if a digit follows it.
func (l *lexer) scanNum(tok Token) (Token, bool, error) {
	l.digits()
	if l.peek(0) == '.' && isdigit(l.peek(1)) {
		l.buf.WriteRune('.')
		l.off++
		l.digits()
	}
	text := l.buf.String()
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return tok, false, &NumberFormatError{Text: text, Col: tok.Col, Err: err}
	}
	tok.Kind = TokenNumber
	tok.Num = float32(f)
	return tok, true, nil
}

func (l *lexer) digits() {
	for isdigit(l.peek(0)) {
		l.buf.WriteRune(l.src[l.off])
		l.off++
	}
}

// scanWord scans a keyword or an identifier.
func (l *lexer) scanWord(tok Token) (Token, bool, error) {
	for r := l.peek(0); isletter(r) || isdigit(r) || r == '_'; r = l.peek(0) {
		l.buf.WriteRune(r)
		l.off++
	}
	word := l.buf.String()
	if k, ok := keywords[word]; ok {
		tok.Kind = k
		return tok, true, nil
	}
	if l.cfg.kwonly {
		return tok, false, &UnrecognizedWordError{Word: word, Col: tok.Col}
	}
	tok.Kind = TokenIdent
	tok.Text = word
	return tok, true, nil
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isletter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// InvalidCharacterError indicates a character that cannot begin any token.
// It implements InputError.
type InvalidCharacterError struct {
	// Char is the offending character.
	Char rune
	// Col is its 1-based column.
	Col int
}

func (err *InvalidCharacterError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *InvalidCharacterError) Pos() int {
	return err.Col
}

// NumberFormatError indicates a numeric literal that does not fit a float32.
// It implements InputError.
type NumberFormatError struct {
	// Text is the literal as written.
	Text string
	// Col is the column where the literal starts.
	Col int
	// Err is the error from strconv.
	Err error
}

func (err *NumberFormatError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberFormatError) Unwrap() error {
	return err.Err
}

func (err *NumberFormatError) Pos() int {
	return err.Col
}

// UnrecognizedWordError indicates a word that is not a keyword when scanning
// with KeywordsOnly. It implements InputError.
type UnrecognizedWordError struct {
	Word string
	Col  int
}

func (err *UnrecognizedWordError) Error() string {
	return errpos(err.Col, "unrecognized word "+strconv.Quote(err.Word))
}

func (err *UnrecognizedWordError) Pos() int {
	return err.Col
}
