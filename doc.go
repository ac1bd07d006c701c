// Package calc implements a float64 calculator for one-line expressions.
//
// Evaluation happens in three stages. Tokenize splits a line into tokens,
// inserting the multiplications implied by terms like "2x" or "3(4+5)" and
// deciding whether each minus sign is a negation or a subtraction. Parse
// builds a syntax tree with the usual precedence: negation and function
// application bind tightest, so "-2^2" is "(-2)^2" and "sin x+1" is
// "sin(x) + 1"; then "^", which is right-associative; then "*" and "/"; then
// "+" and "-". Evaluate walks the tree in an Env holding variables.
//
// "x = 2pi" assigns to x and evaluates to an assignment Result. The constants
// pi, e, phi, tau, sqrt2, and sqrt3 are always defined and cannot be
// assigned. The functions are sin, cos, and tan. The symbols × and ÷ may be
// used for multiplication and division.
package calc
