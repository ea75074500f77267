package exprtree

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// floats is float64 arithmetic.
type floats struct{}

func (floats) num(n *Node) (float64, error) {
	return parseFloat(n.Data), nil
}

func (floats) op(n *Node, a, b float64) (float64, error) {
	switch n.Data {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	case "^":
		return math.Pow(a, b), nil
	default:
		panic("exprtree: invalid operator " + strconv.Quote(n.Data))
	}
}

// parseFloat converts a numeric literal. Literals with more than one decimal
// point or no digits are NaN, and literals too large for float64 are +Inf.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// bigs is arbitrary-precision arithmetic.
type bigs struct {
	prec uint
}

func (b bigs) num(n *Node) (*big.Float, error) {
	r, _, err := new(big.Float).SetPrec(b.prec).Parse(n.Data, 10)
	if err != nil {
		return nil, &EvaluationError{Col: n.col, Data: n.Data, Reason: "invalid number"}
	}
	return r, nil
}

func (b bigs) op(n *Node, x, y *big.Float) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		// Only NaN results are expected. Anything else is a real bug.
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		r, err = nil, &DomainError{X: x, Y: y, Op: n.Data}
	}()
	r = new(big.Float).SetPrec(b.prec)
	switch n.Data {
	case "+":
		r.Add(x, y)
	case "-":
		r.Sub(x, y)
	case "*":
		r.Mul(x, y)
	case "/":
		r.Quo(x, y)
	case "^":
		pow(r, x, y)
	default:
		panic("exprtree: invalid operator " + strconv.Quote(n.Data))
	}
	return r, nil
}

// pow sets z to x^y. It panics with big.ErrNaN if the result is not real.
func pow(z, x, y *big.Float) *big.Float {
	switch {
	case y.Sign() == 0:
		return z.SetInt64(1)
	case x.IsInf() || y.IsInf():
		// bigfloat handles finite values only; the limits are the same as
		// for float64.
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		return z.SetFloat64(math.Pow(xf, yf))
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return z.SetInf(false)
		}
		return z.SetInt64(0)
	case x.Sign() < 0:
		if !y.IsInt() {
			panic(big.ErrNaN{})
		}
		ax := new(big.Float).SetPrec(z.Prec()).Abs(x)
		bigfloat.Pow(z, ax, y)
		if k, _ := y.Int(nil); k.Bit(0) == 1 {
			z.Neg(z)
		}
		return z
	default:
		return bigfloat.Pow(z, x, y)
	}
}
