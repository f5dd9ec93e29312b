package calculator

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces
		{"", nil},
		{" \n \n ", nil},
		// numbers
		{"0", []Token{{Kind: TokenNumber, Num: 0, Col: 1}}},
		{"9876", []Token{{Kind: TokenNumber, Num: 9876, Col: 1}}},
		{"1 0", []Token{{Kind: TokenNumber, Num: 1, Col: 1}, {Kind: TokenNumber, Num: 0, Col: 3}}},
		{"1.5", []Token{{Kind: TokenNumber, Num: 1.5, Col: 1}}},
		{"3.14", []Token{{Kind: TokenNumber, Num: 3.14, Col: 1}}},
		{"-1", []Token{{Kind: TokenMinus, Col: 1}, {Kind: TokenNumber, Num: 1, Col: 2}}},
		{"1+0", []Token{{Kind: TokenNumber, Num: 1, Col: 1}, {Kind: TokenPlus, Col: 2}, {Kind: TokenNumber, Num: 0, Col: 3}}},
		{"1%2", []Token{{Kind: TokenNumber, Num: 1, Col: 1}, {Kind: TokenPercent, Col: 2}, {Kind: TokenNumber, Num: 2, Col: 3}}},
		{"(1)", []Token{{Kind: TokenOpenParen, Col: 1}, {Kind: TokenNumber, Num: 1, Col: 2}, {Kind: TokenCloseParen, Col: 3}}},
		{"2a", []Token{{Kind: TokenNumber, Num: 2, Col: 1}, {Kind: TokenIdent, Text: "a", Col: 2}}},
		// operators
		{"+-*/%", []Token{{Kind: TokenPlus, Col: 1}, {Kind: TokenMinus, Col: 2}, {Kind: TokenStar, Col: 3}, {Kind: TokenSlash, Col: 4}, {Kind: TokenPercent, Col: 5}}},
		{"(),=", []Token{{Kind: TokenOpenParen, Col: 1}, {Kind: TokenCloseParen, Col: 2}, {Kind: TokenComma, Col: 3}, {Kind: TokenEqual, Col: 4}}},
		// words
		{"x", []Token{{Kind: TokenIdent, Text: "x", Col: 1}}},
		{"x1_y", []Token{{Kind: TokenIdent, Text: "x1_y", Col: 1}}},
		{"maxx", []Token{{Kind: TokenIdent, Text: "maxx", Col: 1}}},
		{"Max", []Token{{Kind: TokenIdent, Text: "Max", Col: 1}}},
		{"x-1", []Token{{Kind: TokenIdent, Text: "x", Col: 1}, {Kind: TokenMinus, Col: 2}, {Kind: TokenNumber, Num: 1, Col: 3}}},
		{"let x = 5", []Token{{Kind: TokenLet, Col: 1}, {Kind: TokenIdent, Text: "x", Col: 5}, {Kind: TokenEqual, Col: 7}, {Kind: TokenNumber, Num: 5, Col: 9}}},
		{"max-", []Token{{Kind: TokenMax, Col: 1}, {Kind: TokenMinus, Col: 4}}},
		{"1 + 1", []Token{{Kind: TokenNumber, Num: 1, Col: 1}, {Kind: TokenPlus, Col: 3}, {Kind: TokenNumber, Num: 1, Col: 5}}},
		{
			"sin(cos(tan(log(2.0, 10))))",
			[]Token{
				{Kind: TokenSin, Col: 1},
				{Kind: TokenOpenParen, Col: 4},
				{Kind: TokenCos, Col: 5},
				{Kind: TokenOpenParen, Col: 8},
				{Kind: TokenTan, Col: 9},
				{Kind: TokenOpenParen, Col: 12},
				{Kind: TokenLog, Col: 13},
				{Kind: TokenOpenParen, Col: 16},
				{Kind: TokenNumber, Num: 2, Col: 17},
				{Kind: TokenComma, Col: 20},
				{Kind: TokenNumber, Num: 10, Col: 22},
				{Kind: TokenCloseParen, Col: 24},
				{Kind: TokenCloseParen, Col: 25},
				{Kind: TokenCloseParen, Col: 26},
				{Kind: TokenCloseParen, Col: 27},
			},
		},
		{
			"max(1.0,min(4.0,5.0))",
			[]Token{
				{Kind: TokenMax, Col: 1},
				{Kind: TokenOpenParen, Col: 4},
				{Kind: TokenNumber, Num: 1, Col: 5},
				{Kind: TokenComma, Col: 8},
				{Kind: TokenMin, Col: 9},
				{Kind: TokenOpenParen, Col: 12},
				{Kind: TokenNumber, Num: 4, Col: 13},
				{Kind: TokenComma, Col: 16},
				{Kind: TokenNumber, Num: 5, Col: 17},
				{Kind: TokenCloseParen, Col: 20},
				{Kind: TokenCloseParen, Col: 21},
			},
		},
	}
	for _, c := range cases {
		got, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		if !reflect.DeepEqual(got, c.tokens) {
			t.Errorf("scanning %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, got)
		}
	}
}

func TestLexKeywords(t *testing.T) {
	for word, kind := range keywords {
		got, err := Tokenize(word, KeywordsOnly())
		if err != nil {
			t.Errorf("scanning keyword %q: %v", word, err)
			continue
		}
		want := []Token{{Kind: kind, Col: 1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("scanning keyword %q: want %v, got %v", word, want, got)
		}
		if s := got[0].String(); s != word {
			t.Errorf("keyword %q renders as %q", word, s)
		}
	}
}

func TestLexInvalidCharacters(t *testing.T) {
	allowed := regexp.MustCompile(`^[0-9a-zA-Z_+\-*/%(),.= \n]$`)
	for r := rune(0); r < 128; r++ {
		if allowed.MatchString(string(r)) {
			continue
		}
		src := "1 + " + string(r)
		toks, err := Tokenize(src)
		if toks != nil {
			t.Errorf("scanning %q gave tokens %v", src, toks)
		}
		var ic *InvalidCharacterError
		if !errors.As(err, &ic) {
			t.Errorf("scanning %q: want *InvalidCharacterError, got %#v", src, err)
			continue
		}
		if ic.Char != r || ic.Col != 5 || ic.Pos() != 5 {
			t.Errorf("scanning %q: wrong error details %+v", src, ic)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		col  int
		res  []string
	}{
		{"at", "@", new(InvalidCharacterError), 1, []string{`'@'`, `(?i)\binvalid\b`}},
		{"bang", "1!", new(InvalidCharacterError), 2, []string{`'!'`}},
		{"lt", "a < b", new(InvalidCharacterError), 3, []string{`'<'`}},
		{"tab", "1\t2", new(InvalidCharacterError), 2, []string{`'\\t'`}},
		{"unicode", "1 × 2", new(InvalidCharacterError), 3, []string{`'×'`}},
		{"lonedot", ".5", new(InvalidCharacterError), 1, []string{`'\.'`}},
		{"trailingdot", "1.", new(InvalidCharacterError), 2, []string{`'\.'`}},
		{"twodots", "1.2.3", new(InvalidCharacterError), 4, []string{`'\.'`}},
		{"dotword", "1.x", new(InvalidCharacterError), 2, []string{`'\.'`}},
		{"overflow", "1" + repeat('0', 40), new(NumberFormatError), 1, []string{`(?i)\bnumber\b`}},
		{"overflow-later", "2 * 9" + repeat('9', 39), new(NumberFormatError), 5, []string{`(?i)\bnumber\b`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if toks != nil {
				t.Errorf("%q scanned to %v", c.src, toks)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if p := err.(InputError).Pos(); p != c.col {
				t.Errorf("error from %q at column %d, want %d", c.src, p, c.col)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestLexNumberFormatUnwraps(t *testing.T) {
	_, err := Tokenize("1" + repeat('0', 40))
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("%v does not unwrap to strconv.ErrRange", err)
	}
}

func TestLexKeywordsOnly(t *testing.T) {
	cases := []struct {
		name string
		src  string
		word string
		col  int
	}{
		{"bare", "x", "x", 1},
		{"after", "max(1, 2) + y2", "y2", 13},
		{"prefix", "maxx(1, 2)", "maxx", 1},
		{"case", "SQRT(4)", "SQRT", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Tokenize(c.src, KeywordsOnly())
			var uw *UnrecognizedWordError
			if !errors.As(err, &uw) {
				t.Fatalf("want *UnrecognizedWordError from %q, got %#v", c.src, err)
			}
			if uw.Word != c.word || uw.Col != c.col {
				t.Errorf("wrong error details from %q: want %q@%d, got %q@%d", c.src, c.word, c.col, uw.Word, uw.Col)
			}
			if !regexp.MustCompile(`(?i)\bunrecognized word\b.*"` + c.word + `"`).MatchString(err.Error()) {
				t.Errorf("error message %q does not name %q", err.Error(), c.word)
			}
		})
	}
	// Presets keep the option.
	if _, err := Tokenize("x", ScanningPreset(KeywordsOnly())); err == nil {
		t.Error("preset did not keep KeywordsOnly")
	}
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenPlus}, "+"},
		{Token{Kind: TokenPercent}, "%"},
		{Token{Kind: TokenComma}, ","},
		{Token{Kind: TokenLet}, "let"},
		{Token{Kind: TokenEqual}, "="},
		{Token{Kind: TokenFloor}, "floor"},
		{Token{Kind: TokenNumber, Num: 4}, "4"},
		{Token{Kind: TokenNumber, Num: 3.14}, "3.14"},
		{Token{Kind: TokenNumber, Num: 1e20}, "100000000000000000000"},
		{Token{Kind: TokenNumber, Num: 0.1}, "0.1"},
		{Token{Kind: TokenIdent, Text: "abc"}, "abc"},
		{Token{Kind: TokenKind(100)}, "TokenKind(100)"},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.want {
			t.Errorf("%#v renders as %q, want %q", c.tok, got, c.want)
		}
	}
}

func TestNumberRenderRescans(t *testing.T) {
	for _, x := range []float32{0, 1, 0.1, 3.14, 1.0 / 3, 123456.79, 1e-7, 1e30, math.MaxFloat32, math.SmallestNonzeroFloat32} {
		s := fmtnum(x)
		toks, err := Tokenize(s)
		if err != nil {
			t.Errorf("%g renders as %q which does not scan: %v", x, s, err)
			continue
		}
		if len(toks) != 1 || toks[0].Kind != TokenNumber || toks[0].Num != x {
			t.Errorf("%g renders as %q which scans as %v", x, s, toks)
		}
	}
}

func repeat(r rune, n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = r
	}
	return string(b)
}
