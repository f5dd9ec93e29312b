package calculator

import (
	"math"
	"sort"
	"strconv"
)

// Context is the variable environment for evaluating expressions. Assignments
// made while evaluating one expression are visible to every later expression
// evaluated with the same context. It is not safe to use a Context
// concurrently; use Clone to give each goroutine its own.
type Context struct {
	names map[string]float32
	prec  uint
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float32
	}
	varsopt map[string]float32
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float32) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float32) ContextOption {
	return varsopt(vars)
}

// Prec sets the binary precision of intermediate results for pow and log.
// Precisions below 24 bits, the precision of a float32, are raised to 24.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// DefaultPrec is the precision of contexts created without a Prec option.
const DefaultPrec = 64

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Variables set
// in the copy are not visible in the original, nor the reverse.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]float32, len(ctx.names)),
		prec:  ctx.prec,
	}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case precopt:
			n.prec = uint(opt)
		default:
			panic("calculator: unknown option type")
		}
	}
	if n.prec < 24 {
		n.prec = 24
	}
	return &n
}

// Eval evaluates an expression. Assignments in the expression update the
// context. The only error is a *NameError for a variable that has never been
// assigned; arithmetic outside a function's domain gives NaN or an infinity
// as IEEE 754 prescribes.
func (ctx *Context) Eval(e *Expr) (float32, error) {
	return e.n.eval(ctx)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value float32) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is set.
func (ctx *Context) Lookup(name string) (float32, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Names returns the names of all variables set in the context, sorted.
func (ctx *Context) Names() []string {
	r := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Prec returns the precision to which pow and log are computed.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// eval computes the node's value. Operands are evaluated left to right.
func (n *node) eval(ctx *Context) (float32, error) {
	switch n.kind {
	case nodeGroup:
		return n.left.eval(ctx)
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := ctx.names[n.name]
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeBinary:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return binary(n.op, l, r), nil
	case nodeCall1:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return call1(n.op, v), nil
	case nodeCall2:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return ctx.call2(n.op, l, r), nil
	case nodeCallN:
		invoc := make([]float32, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(ctx)
			if err != nil {
				return 0, err
			}
			invoc[i] = v
		}
		return callN(n.op, invoc), nil
	case nodeAssign:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		ctx.names[n.name] = v
		return 0, nil
	default:
		panic("calculator: invalid AST node " + n.kind.String())
	}
}

// binary applies an arithmetic operator.
func binary(op TokenKind, l, r float32) float32 {
	switch op {
	case TokenPlus:
		return l + r
	case TokenMinus:
		return l - r
	case TokenStar:
		return l * r
	case TokenSlash:
		return l / r
	case TokenPercent:
		return float32(math.Mod(float64(l), float64(r)))
	default:
		panic("calculator: invalid binary operator " + op.String())
	}
}

// EvalString is a shortcut to parse and evaluate a string expression in a
// new context.
func EvalString(src string, opts ...ContextOption) (float32, error) {
	a, err := ParseString(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(a)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
