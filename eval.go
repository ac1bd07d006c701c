package calc

import (
	"errors"
	"math"
	"strconv"
)

// Result is the outcome of evaluating an expression.
type Result struct {
	// Name is the variable an assignment bound. It is empty if the
	// expression produced a plain value.
	Name string
	// Value is the value of the expression or of the assignment.
	Value float64
}

// IsAssignment returns whether the result is from an assignment.
func (r Result) IsAssignment() bool {
	return r.Name != ""
}

func (r Result) String() string {
	v := strconv.FormatFloat(r.Value, 'g', -1, 64)
	if r.IsAssignment() {
		return r.Name + " = " + v
	}
	return v
}

var (
	// ErrDivisionByZero is the error from dividing by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidOperation is the error from an operator applied with the
	// wrong number of operands.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNotAFunction is the error from calling something that is not a
	// function.
	ErrNotAFunction = errors.New("not a function")
)

// Evaluate evaluates an expression in an environment. Assignments in the
// expression modify env. If any subexpression is an assignment, then its
// result is the result of the entire expression. Evaluation stops at the
// first error. If env is nil, the expression is evaluated in a fresh
// environment.
func Evaluate(e *Expr, env *Env) (Result, error) {
	if env == nil {
		env = NewEnv()
	}
	return e.n.eval(env)
}

// EvalString is a shortcut to tokenize, parse, and evaluate an expression.
func EvalString(src string, env *Env) (Result, error) {
	a, err := ParseString(src)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(a, env)
}

// eval computes the node's result. A result from an assignment is returned
// immediately in place of the enclosing operation.
func (n *node) eval(env *Env) (Result, error) {
	switch n.kind {
	case nodeNum:
		return Result{Value: n.num}, nil
	case nodeName:
		v, ok := env.Get(n.name)
		if !ok {
			return Result{}, &NameError{Name: n.name}
		}
		return Result{Value: v}, nil
	case nodeCall:
		x, err := n.left.eval(env)
		if err != nil || x.IsAssignment() {
			return x, err
		}
		v, err := n.fn.call(x.Value)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: v}, nil
	case nodeAssign:
		x, err := n.left.eval(env)
		if err != nil || x.IsAssignment() {
			return x, err
		}
		if err := env.Set(n.name, x.Value); err != nil {
			return Result{}, err
		}
		return Result{Name: n.name, Value: x.Value}, nil
	case nodeUnary:
		x, err := n.left.eval(env)
		if err != nil || x.IsAssignment() {
			return x, err
		}
		if n.op != TokenNeg {
			return Result{}, ErrInvalidOperation
		}
		return Result{Value: -x.Value}, nil
	case nodeBinary:
		l, err := n.left.eval(env)
		if err != nil || l.IsAssignment() {
			return l, err
		}
		r, err := n.right.eval(env)
		if err != nil || r.IsAssignment() {
			return r, err
		}
		v, err := binary(n.op, l.Value, r.Value)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: v}, nil
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// binary applies a binary operator.
func binary(op TokenKind, l, r float64) (float64, error) {
	switch op {
	case TokenAdd:
		return l + r, nil
	case TokenSub:
		return l - r, nil
	case TokenMul:
		return l * r, nil
	case TokenDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case TokenPow:
		// Negative bases with fractional exponents give NaN.
		return math.Pow(l, r), nil
	default:
		return 0, ErrInvalidOperation
	}
}

// NameError is an error from a lookup for a variable that is not defined in
// the environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
