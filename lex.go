package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the category of the token.
	Kind TokenKind
	// Func is the function a keyword token names. It is FuncNone for every
	// other kind of token.
	Func Function
	// Text is the source text of the token. Function keywords and constant
	// names are folded to lowercase.
	Text string
	// Pos is the 1-based rune column where the token starts. An implicit
	// multiplication has the position of the token following it.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the category of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a decimal literal.
	TokenNumber
	// TokenIdent is a variable or constant name.
	TokenIdent
	// TokenKeyword is a function name. The token's Func holds the function.
	TokenKeyword
	// TokenEquals is the assignment symbol.
	TokenEquals

	// Operators.
	TokenNeg
	TokenPow
	TokenMul
	TokenDiv
	TokenAdd
	TokenSub

	// Brackets.
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenLeftBrace
	TokenRightBrace

	// Punctuation. It is lexed but never valid in an expression.
	TokenBang
	TokenComma
	TokenQuestion
	TokenColon
	TokenSemicolon
)

var kindnames = [...]string{
	TokenNone:         "None",
	TokenNumber:       "Number",
	TokenIdent:        "Identifier",
	TokenKeyword:      "Keyword",
	TokenEquals:       "Equals",
	TokenNeg:          "Negation",
	TokenPow:          "Exponentiation",
	TokenMul:          "Multiplication",
	TokenDiv:          "Division",
	TokenAdd:          "Addition",
	TokenSub:          "Subtraction",
	TokenLeftParen:    "LeftParenthesis",
	TokenRightParen:   "RightParenthesis",
	TokenLeftBracket:  "LeftBracket",
	TokenRightBracket: "RightBracket",
	TokenLeftBrace:    "LeftBrace",
	TokenRightBrace:   "RightBrace",
	TokenBang:         "Exclamation",
	TokenComma:        "Comma",
	TokenQuestion:     "Question",
	TokenColon:        "Colon",
	TokenSemicolon:    "Semicolon",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// IsOpen returns whether the kind is an opening bracket.
func (k TokenKind) IsOpen() bool {
	return k == TokenLeftParen || k == TokenLeftBracket || k == TokenLeftBrace
}

// IsClose returns whether the kind is a closing bracket.
func (k TokenKind) IsClose() bool {
	return k == TokenRightParen || k == TokenRightBracket || k == TokenRightBrace
}

// IsPunct returns whether the kind is punctuation.
func (k TokenKind) IsPunct() bool {
	return TokenBang <= k && k <= TokenSemicolon
}

// Operators contains the runes which are considered to be operators. The
// minus sign is negation or subtraction depending on what precedes it.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The bracket at rune position k in OpenBrackets is closed by the bracket at
// rune position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// Punctuation contains the runes which are lexed as punctuation.
const Punctuation = "!,?:;"

var symkinds = map[rune]TokenKind{
	'+': TokenAdd,
	'-': TokenSub,
	'*': TokenMul,
	'×': TokenMul,
	'/': TokenDiv,
	'÷': TokenDiv,
	'^': TokenPow,
	'=': TokenEquals,
	'(': TokenLeftParen,
	')': TokenRightParen,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'!': TokenBang,
	',': TokenComma,
	'?': TokenQuestion,
	':': TokenColon,
	';': TokenSemicolon,
}

type lexer struct {
	src  string
	off  int
	buf  strings.Builder
	toks []Token
	// rune is the column of the last rune read.
	rune int
	// word is the column where the pending word started.
	word int
}

// Tokenize splits text into tokens. Multiplications implied by juxtaposition,
// like 2x or 3(4+5), are inserted as explicit tokens, and each minus sign is
// decided to be either a negation or a subtraction. The first word that is
// not a number, keyword, or identifier stops tokenization with a *LexError.
func Tokenize(text string) ([]Token, error) {
	l := lexer{src: text}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.toks, nil
}

func (l *lexer) run() error {
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		// Words keep the source bytes, including invalid UTF-8.
		raw := l.src[l.off : l.off+size]
		l.off += size
		l.rune++
		switch kind, sym := symkinds[r]; {
		case unicode.IsSpace(r):
			if err := l.flush(); err != nil {
				return err
			}
		case sym:
			if err := l.flush(); err != nil {
				return err
			}
			l.symbol(kind, r)
		default:
			if l.buf.Len() == 0 {
				l.word = l.rune
			}
			l.buf.WriteString(raw)
		}
	}
	return l.flush()
}

// symbol emits a single-rune token.
func (l *lexer) symbol(kind TokenKind, r rune) {
	switch {
	case kind == TokenSub && !l.operand():
		// -x, 2*-x, (-x)
		kind = TokenNeg
	case kind.IsOpen() && l.operand():
		// 3(x), x(y), (x)(y)
		l.implicit(l.rune)
	}
	l.toks = append(l.toks, Token{Kind: kind, Text: string(r), Pos: l.rune})
}

// flush classifies the pending word, if there is one.
func (l *lexer) flush() error {
	if l.buf.Len() == 0 {
		return nil
	}
	w := l.buf.String()
	l.buf.Reset()
	return l.scanWord(w, l.word)
}

// scanWord emits the tokens for a word beginning at column pos. A word with a
// numeric prefix is split into the number, a multiplication, and whatever
// follows it.
func (l *lexer) scanWord(w string, pos int) error {
	n := numprefix(w)
	if n == 0 || n == len(w) {
		tok, err := classify(w, pos)
		if err != nil {
			return err
		}
		if l.closed() {
			// (x)y -> (x) * y
			l.implicit(pos)
		}
		l.toks = append(l.toks, tok)
		return nil
	}
	if err := l.scanWord(w[:n], pos); err != nil {
		return err
	}
	pos += utf8.RuneCountInString(w[:n])
	l.implicit(pos)
	return l.scanWord(w[n:], pos)
}

// implicit emits a multiplication that does not appear in the source.
func (l *lexer) implicit(pos int) {
	l.toks = append(l.toks, Token{Kind: TokenMul, Text: "*", Pos: pos})
}

// last returns the kind of the most recent token.
func (l *lexer) last() TokenKind {
	if len(l.toks) == 0 {
		return TokenNone
	}
	return l.toks[len(l.toks)-1].Kind
}

// operand returns whether the most recent token ends an operand, so that a
// following minus is a subtraction and a following bracket is multiplied.
func (l *lexer) operand() bool {
	k := l.last()
	return k == TokenNumber || k == TokenIdent || k.IsClose()
}

// closed returns whether the most recent token is a closing bracket.
func (l *lexer) closed() bool {
	return l.last().IsClose()
}

// numprefix returns the byte length of the longest prefix of w made of ASCII
// digits and at most one decimal point. The prefix must contain a digit;
// otherwise the result is 0.
func numprefix(w string) int {
	dig, dot := false, false
	for i := 0; i < len(w); i++ {
		switch c := w[i]; {
		case '0' <= c && c <= '9':
			dig = true
		case c == '.' && !dot:
			dot = true
		default:
			if !dig {
				return 0
			}
			return i
		}
	}
	if !dig {
		return 0
	}
	return len(w)
}

// classify decides the kind of a word that is not split any further.
func classify(w string, pos int) (Token, error) {
	if c := w[0]; '0' <= c && c <= '9' || c == '.' {
		_, err := strconv.ParseFloat(w, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Token{}, &LexError{Text: w, Kind: "number", Col: pos}
		}
		return Token{Kind: TokenNumber, Text: w, Pos: pos}, nil
	}
	low := strings.ToLower(w)
	if fn := lookupFunc(low); fn != FuncNone {
		return Token{Kind: TokenKeyword, Func: fn, Text: low, Pos: pos}, nil
	}
	if !isIdent(w) {
		return Token{}, &LexError{Text: w, Kind: "identifier", Col: pos}
	}
	if IsConstant(low) {
		w = low
	}
	return Token{Kind: TokenIdent, Text: w, Pos: pos}, nil
}

func isIdent(w string) bool {
	if w == "" {
		return false
	}
	for i, r := range w {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.IsMark(r)):
		default:
			return false
		}
	}
	return true
}

// LexError indicates a word that is not a number, keyword, or identifier. It
// implements InputError.
type LexError struct {
	// Text is the offending word.
	Text string
	// Kind is the type of token the word looked like. This may be "number"
	// or "identifier".
	Kind string
	// Col is the column at which the word starts.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}
