package calculator

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// monadic holds the functions of one argument.
var monadic = map[TokenKind]func(float64) float64{
	TokenSqrt:  math.Sqrt,
	TokenFloor: math.Floor,
	TokenCeil:  math.Ceil,
	TokenCos:   math.Cos,
	TokenSin:   math.Sin,
	TokenTan:   math.Tan,
}

// call1 applies a function of one argument. Results are computed in float64
// and rounded once.
func call1(op TokenKind, x float32) float32 {
	f := monadic[op]
	if f == nil {
		panic("calculator: invalid single-arity function " + op.String())
	}
	return float32(f(float64(x)))
}

// call2 applies pow or log. pow(x, y) is x to the power y; log(x, b) is the
// logarithm of x in base b.
func (ctx *Context) call2(op TokenKind, x, y float32) float32 {
	switch op {
	case TokenPow:
		return ctx.pow(x, y)
	case TokenLog:
		return ctx.log(x, y)
	default:
		panic("calculator: invalid double-arity function " + op.String())
	}
}

// powlimit bounds |y log2 x| for computing x^y at high precision. Past it,
// the result is outside float32 range and float64 gives the same rounding.
const powlimit = 512

func (ctx *Context) pow(x, y float32) float32 {
	fx, fy := float64(x), float64(y)
	if !finpos(fx) || math.IsNaN(fy) || math.IsInf(fy, 0) || math.Abs(fy*math.Log2(fx)) > powlimit {
		// Negative, zero, and non-finite operands follow IEEE 754 as
		// implemented by package math.
		return float32(math.Pow(fx, fy))
	}
	r := ctx.bigf(fx)
	bigfloat.Pow(r, r, ctx.bigf(fy))
	f, _ := r.Float32()
	return f
}

func (ctx *Context) log(x, b float32) float32 {
	fx, fb := float64(x), float64(b)
	if !finpos(fx) || !finpos(fb) || fb == 1 {
		return float32(math.Log(fx) / math.Log(fb))
	}
	n := ctx.bigf(fx)
	bigfloat.Log(n, n)
	d := ctx.bigf(fb)
	bigfloat.Log(d, d)
	f, _ := n.Quo(n, d).Float32()
	return f
}

// bigf creates a float at the context's precision.
func (ctx *Context) bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(ctx.prec).SetFloat64(x)
}

// finpos reports whether x is finite and strictly positive.
func finpos(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// callN applies max or min. A NaN argument makes the result NaN, and positive
// zero is greater than negative zero.
func callN(op TokenKind, invoc []float32) float32 {
	var f func(float64, float64) float64
	switch op {
	case TokenMax:
		f = math.Max
	case TokenMin:
		f = math.Min
	default:
		panic("calculator: invalid variadic function " + op.String())
	}
	r := float64(invoc[0])
	for _, v := range invoc[1:] {
		r = f(r, float64(v))
	}
	return float32(r)
}
