package exprtree

import (
	"math/big"
	"strconv"
)

// operands is a LIFO stack of intermediate results.
type operands[T any] struct {
	s []T
}

// reset empties the stack, keeping its storage.
func (o *operands[T]) reset() {
	clear(o.s)
	o.s = o.s[:0]
}

func (o *operands[T]) push(v T) {
	o.s = append(o.s, v)
}

// pop removes the top of the stack. The second result is false if the stack
// was empty.
func (o *operands[T]) pop() (T, bool) {
	var v T
	if len(o.s) == 0 {
		return v, false
	}
	v = o.s[len(o.s)-1]
	o.s = o.s[:len(o.s)-1]
	return v, true
}

func (o *operands[T]) len() int {
	return len(o.s)
}

// arith is arithmetic over some number type.
type arith[T any] interface {
	// num converts a numeric leaf.
	num(n *Node) (T, error)
	// op applies the operator in n to a and b, in that order.
	op(n *Node, a, b T) (T, error)
}

// evaluate walks t in post-order. Numbers are pushed onto st; each operator
// pops its right operand, then its left, and pushes its result. The stack is
// emptied first, so nothing from a previous evaluation can leak in.
func evaluate[T any](t *Tree, st *operands[T], ar arith[T]) (T, error) {
	var zero T
	st.reset()
	if t == nil || t.Root == nil {
		return zero, &EvaluationError{Reason: "empty expression"}
	}
	for n := range t.Walk(PostOrder) {
		switch {
		case n.Data == "":
			return zero, &EvaluationError{Col: n.col, Reason: "empty operand"}
		case isNumByte(n.Data[0]):
			if n.Left != nil || n.Right != nil {
				return zero, &EvaluationError{Col: n.col, Data: n.Data, Reason: "number with operands"}
			}
			v, err := ar.num(n)
			if err != nil {
				return zero, err
			}
			st.push(v)
		case isOperatorText(n.Data):
			if n.Left == nil || n.Right == nil {
				return zero, &EvaluationError{Col: n.col, Data: n.Data, Reason: "missing an operand"}
			}
			b, ok := st.pop()
			if !ok {
				return zero, &EvaluationError{Col: n.col, Data: n.Data, Reason: "missing both operands"}
			}
			a, ok := st.pop()
			if !ok {
				return zero, &EvaluationError{Col: n.col, Data: n.Data, Reason: "missing an operand"}
			}
			r, err := ar.op(n, a, b)
			if err != nil {
				return zero, err
			}
			st.push(r)
		default:
			return zero, &EvaluationError{Col: n.col, Data: n.Data, Reason: "neither a number nor an operator"}
		}
	}
	if k := st.len(); k != 1 {
		return zero, &EvaluationError{Col: t.Root.col, Reason: strconv.Itoa(k) + " values where one was expected"}
	}
	r, _ := st.pop()
	return r, nil
}

// Eval evaluates a tree with float64 arithmetic. Division by zero and
// literals which are not valid numbers, such as "1.2.3", produce infinities
// and NaNs rather than errors. The error, if any, is an EvaluationError
// describing a tree that is not a well-formed expression.
func Eval(t *Tree) (float64, error) {
	var st operands[float64]
	return evaluate(t, &st, floats{})
}

// EvalString is a shortcut to parse and evaluate an expression.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	t, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return Eval(t)
}

// Context evaluates expressions with arbitrary precision. It is not safe to use
// a Context concurrently.
type Context struct {
	stack operands[*big.Float]
	prec  uint
	res   *big.Float
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			ctx.prec = uint(opt)
		default:
			panic("exprtree: unknown option type")
		}
	}
	return &ctx
}

// Eval evaluates a tree and returns the result. If an error occurs, the result
// is nil and ctx.Err returns the error. Besides the errors Eval returns,
// operations with no representable result, such as 0/0, give a DomainError.
func (ctx *Context) Eval(t *Tree) *big.Float {
	ctx.res, ctx.err = evaluate(t, &ctx.stack, bigs{prec: ctx.prec})
	if ctx.err != nil {
		ctx.res = nil
	}
	return ctx.res
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.res == nil && ctx.err == nil {
		panic("exprtree: Context.Result called before evaluating any expression")
	}
	return ctx.res
}

// Err returns the error from the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}
