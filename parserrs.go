package exprtree

import (
	"math/big"
	"strconv"
)

// Malformation is the kind of problem a MalformedExpressionError describes.
type Malformation int8

const (
	// BadChar is a character that is not part of the grammar.
	BadChar Malformation = iota + 1
	// Unbalanced is a close parenthesis with no open one or an open
	// parenthesis that is never closed.
	Unbalanced
	// MissingParens is an operator, number, or parenthesized term in a
	// position where only parentheses could make it unambiguous.
	MissingParens
	// Trailing is input following a complete expression.
	Trailing
	// EmptyOperand is an operand slot with nothing in it.
	EmptyOperand
	// TooDeep is nesting beyond the parser's depth limit.
	TooDeep
)

func (m Malformation) String() string {
	switch m {
	case BadChar:
		return "BadChar"
	case Unbalanced:
		return "Unbalanced"
	case MissingParens:
		return "MissingParens"
	case Trailing:
		return "Trailing"
	case EmptyOperand:
		return "EmptyOperand"
	case TooDeep:
		return "TooDeep"
	default:
		return "Malformation(" + strconv.Itoa(int(m)) + ")"
	}
}

// MalformedExpressionError is an error indicating input that does not form a
// fully parenthesized expression. It implements InputError.
type MalformedExpressionError struct {
	// Col is the position of the offending token.
	Col int
	// Kind is the kind of malformation.
	Kind Malformation
	// Text is the offending token, if there is one.
	Text string
}

func (err *MalformedExpressionError) Error() string {
	q := strconv.Quote(err.Text)
	switch err.Kind {
	case BadChar:
		return errpos(err.Col, "invalid character "+q)
	case Unbalanced:
		if err.Text == ")" {
			return errpos(err.Col, "close paren with no open paren")
		}
		return errpos(err.Col, "open paren with no close paren")
	case MissingParens:
		return errpos(err.Col, "missing parentheses before "+q)
	case Trailing:
		return errpos(err.Col, "unexpected "+q+" after end of expression")
	case EmptyOperand:
		if err.Text == "" {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "missing operand for "+q)
	case TooDeep:
		return errpos(err.Col, "expression nested too deeply")
	default:
		return errpos(err.Col, "malformed expression")
	}
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// EvaluationError is an error indicating a tree that does not have the shape
// of an expression. Trees from strict parsing never cause it, except that
// an arbitrary-precision Context reports unparseable literals with it. It
// implements InputError.
type EvaluationError struct {
	// Col is the position of the node that could not be evaluated, or 0 if
	// there is no such node.
	Col int
	// Data is the data of that node.
	Data string
	// Reason describes the problem.
	Reason string
}

func (err *EvaluationError) Error() string {
	if err.Data == "" {
		return errpos(err.Col, "cannot evaluate: "+err.Reason)
	}
	return errpos(err.Col, "cannot evaluate "+strconv.Quote(err.Data)+": "+err.Reason)
}

func (err *EvaluationError) Pos() int {
	return err.Col
}

// DomainError is returned by a Context when an operation has no real result at
// the context's precision, such as 0/0 or a negative number raised to a
// fractional power. It unwraps to big.ErrNaN.
type DomainError struct {
	// X and Y are the operands.
	X, Y *big.Float
	// Op is the operator.
	Op string
}

func (err *DomainError) Error() string {
	return err.X.String() + " " + err.Op + " " + err.Y.String() + " outside domain"
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*EvaluationError)(nil)
)
