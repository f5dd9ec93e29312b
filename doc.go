// Package calculator implements a single-precision arithmetic calculator.
//
// Source text goes through three stages. Tokenize scans it into tokens, Parse
// builds an expression tree by recursive descent, and Context.Eval walks the
// tree to a float32. Each stage stops at the first error.
//
// Expressions use + - * / % with the usual precedence, parentheses, unary
// minus, and the functions sqrt, floor, ceil, cos, sin, tan (one argument),
// pow and log (two arguments), and max and min (two or more). "let x = 2"
// binds a variable in the Context, where later expressions can use it.
//
// Arithmetic follows IEEE 754: dividing by zero gives an infinity, and
// sqrt(-1) gives NaN. Reading a variable that was never assigned is the only
// evaluation error.
package calculator
