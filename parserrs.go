package calc

import "strconv"

// EOFError is an error indicating that the input ended where a term was
// expected. It implements InputError.
type EOFError struct {
	// Col is the column just past the last token.
	Col int
}

func (err *EOFError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "unexpected end of input")
}

func (err *EOFError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an open bracket that is not closed by
// its matching bracket. It implements InputError.
type BracketError struct {
	// Col is the position of the open bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the token found instead of the closing bracket, or the empty
	// string if the input ended.
	Right string
}

func (err *BracketError) Error() string {
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "missing close bracket for "+err.Left+" before "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that cannot appear where it was
// found. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token's text.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating tokens left over after a complete
// expression. It implements InputError.
type TrailingError struct {
	// Col is the position of the first leftover token.
	Col int
	// Text is the first leftover token's text.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected tokens at end of input starting with "+strconv.Quote(err.Text))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// tokenizing or parsing invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the column of the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*EOFError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*LexError)(nil)
)
