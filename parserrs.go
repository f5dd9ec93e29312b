package calculator

import "strconv"

// MissingParenError is an error indicating a parenthesis that the input
// lacks. It implements InputError.
type MissingParenError struct {
	// Col is the position where the parenthesis was expected.
	Col int
	// Func is the function whose call needed the parenthesis, or the empty
	// string for a parenthesized group.
	Func string
	// Open is whether the missing parenthesis is an open parenthesis.
	Open bool
}

func (err *MissingParenError) Error() string {
	if err.Open {
		return errpos(err.Col, "missing ( after "+err.Func)
	}
	if err.Func == "" {
		return errpos(err.Col, "missing matching parenthesis )")
	}
	return errpos(err.Col, "missing ) closing call to "+err.Func)
}

func (err *MissingParenError) Pos() int {
	return err.Col
}

// ArityError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type ArityError struct {
	// Col is the position where the parser detected the problem.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments parsed before the problem was detected.
	Len int
}

func (err *ArityError) Error() string {
	var msg string
	switch k := keywords[err.Func]; {
	case k.Arity() == 1:
		msg = err.Func + " requires exactly one operand"
	case k.Arity() == 2 && err.Len < 2:
		msg = err.Func + " requires at least two operands"
	case k.Arity() == 2:
		msg = err.Func + " accepts at most two operands"
	case err.Len == 0:
		msg = "empty call to " + err.Func
	default:
		msg = err.Func + " requires at least two operands, got " + strconv.Itoa(err.Len)
	}
	return errpos(err.Col, msg)
}

func (err *ArityError) Pos() int {
	return err.Col
}

// TrailingCommaError is an error indicating a comma immediately before the
// closing parenthesis of a variadic call. It implements InputError.
type TrailingCommaError struct {
	// Col is the position of the comma.
	Col int
	// Func is the function name that was called.
	Func string
}

func (err *TrailingCommaError) Error() string {
	return errpos(err.Col, "trailing comma in arguments to "+err.Func)
}

func (err *TrailingCommaError) Pos() int {
	return err.Col
}

// UnexpectedTokenError is an error indicating a token, or the end of input,
// where no grammar rule allows it. It implements InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Found is the text of the token, or the empty string at end of input.
	Found string
	// Want describes what the parser expected.
	Want string
}

func (err *UnexpectedTokenError) Error() string {
	found := "end of input"
	if err.Found != "" {
		found = strconv.Quote(err.Found)
	}
	return errpos(err.Col, "unexpected "+found+", expected "+err.Want)
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// DisjointInputError is an error indicating tokens following a complete
// expression, as in "3 4". It implements InputError.
type DisjointInputError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Rest is the unconsumed input rendered as text.
	Rest string
}

func (err *DisjointInputError) Error() string {
	return errpos(err.Col, "disjoint input "+strconv.Quote(err.Rest))
}

func (err *DisjointInputError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating input with no tokens.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the rune where the error was
	// detected.
	Pos() int
}

var (
	_ InputError = (*InvalidCharacterError)(nil)
	_ InputError = (*NumberFormatError)(nil)
	_ InputError = (*UnrecognizedWordError)(nil)
	_ InputError = (*MissingParenError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*TrailingCommaError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*DisjointInputError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
