package calc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Env is an environment of variables for evaluating expressions. Every Env
// also sees the named constants pi, e, phi, tau, sqrt2, and sqrt3, which
// cannot be assigned. It is not safe to use an Env concurrently.
type Env struct {
	vars map[string]float64
}

// constprec is the precision in bits used to compute constants before they
// are rounded to float64.
const constprec = 256

// constants is the table of named constants. It is never modified after
// initialization.
var constants = computeConstants(constprec)

func computeConstants(prec uint) map[string]float64 {
	f := func() *big.Float { return new(big.Float).SetPrec(prec) }
	one := f().SetInt64(1)
	two := f().SetInt64(2)

	pi := bigfloat.Pi(f())
	tau := f().Mul(pi, two)
	e := bigfloat.Exp(f(), one)
	sqrt2 := f().Sqrt(two)
	sqrt3 := f().Sqrt(f().SetInt64(3))
	phi := f().Sqrt(f().SetInt64(5))
	phi.Add(phi, one).Quo(phi, two)

	m := make(map[string]float64, 6)
	for name, v := range map[string]*big.Float{
		"pi":    pi,
		"e":     e,
		"phi":   phi,
		"tau":   tau,
		"sqrt2": sqrt2,
		"sqrt3": sqrt3,
	} {
		// Float64 rounds to nearest even.
		m[name], _ = v.Float64()
	}
	return m
}

// IsConstant returns whether name is one of the named constants. Names are
// case-sensitive here; the tokenizer folds constant names to lowercase.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// Constants returns the names of all named constants in sorted order.
func Constants() []string {
	names := make([]string, 0, len(constants))
	for k := range constants {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// NewEnv creates an environment with no variables.
func NewEnv() *Env {
	return &Env{vars: make(map[string]float64)}
}

// Get returns the value of a constant or variable and whether it is defined.
func (env *Env) Get(name string) (float64, bool) {
	if v, ok := constants[name]; ok {
		return v, true
	}
	v, ok := env.vars[name]
	return v, ok
}

// Set assigns a variable, creating it if it does not exist. Assigning to a
// constant fails with a *ConstantError and leaves the environment unchanged.
func (env *Env) Set(name string, value float64) error {
	if IsConstant(name) {
		return &ConstantError{Name: name}
	}
	if env.vars == nil {
		env.vars = make(map[string]float64)
	}
	env.vars[name] = value
	return nil
}

// Vars returns the names of the variables that have been assigned, in sorted
// order. Constants are not included.
func (env *Env) Vars() []string {
	names := make([]string, 0, len(env.vars))
	for k := range env.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Clone creates a copy of an environment. Assignments in either environment
// are not seen by the other.
func (env *Env) Clone() *Env {
	n := Env{vars: make(map[string]float64, len(env.vars))}
	for k, v := range env.vars {
		n.vars[k] = v
	}
	return &n
}

// ConstantError is an error from an assignment to a named constant.
type ConstantError struct {
	// Name is the constant.
	Name string
}

func (err *ConstantError) Error() string {
	return "cannot assign a constant: " + err.Name
}
