package calc

import (
	"math"
	"strconv"
)

// Function is a built-in function of one real argument.
type Function int8

const (
	FuncNone Function = iota
	FuncSin
	FuncCos
	FuncTan
)

var funcnames = [...]string{
	FuncNone: "",
	FuncSin:  "sin",
	FuncCos:  "cos",
	FuncTan:  "tan",
}

func (f Function) String() string {
	if f <= FuncNone || int(f) >= len(funcnames) {
		return "Function(" + strconv.Itoa(int(f)) + ")"
	}
	return funcnames[f]
}

// lookupFunc returns the function with the given lowercase name, or FuncNone.
func lookupFunc(name string) Function {
	for f := FuncSin; int(f) < len(funcnames); f++ {
		if funcnames[f] == name {
			return f
		}
	}
	return FuncNone
}

// poleTolerance is how close the argument of tan must be to an odd multiple
// of π/2 to count as a pole. It is absolute, so it detects poles less
// reliably as the magnitude of the argument grows.
const poleTolerance = 1e-10

// call applies the function to x.
func (f Function) call(x float64) (float64, error) {
	switch f {
	case FuncSin:
		return math.Sin(x), nil
	case FuncCos:
		return math.Cos(x), nil
	case FuncTan:
		if isPole(x) {
			return 0, &DomainError{X: x, Func: f.String()}
		}
		return math.Tan(x), nil
	default:
		return 0, ErrNotAFunction
	}
}

// isPole returns whether x is within poleTolerance of kπ/2 for odd k.
func isPole(x float64) bool {
	k := math.Round(x / (math.Pi / 2))
	if math.Mod(k, 2) == 0 {
		return false
	}
	return math.Abs(x-k*(math.Pi/2)) < poleTolerance
}

// DomainError is an error returned when a function is called on an argument
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
