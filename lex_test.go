package calc

import (
	"errors"
	"testing"
)

func tk(kind TokenKind, text string, pos int) Token {
	return Token{Kind: kind, Text: text, Pos: pos}
}

func kw(fn Function, pos int) Token {
	return Token{Kind: TokenKeyword, Func: fn, Text: fn.String(), Pos: pos}
}

func sametoks(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		{"separate", "a\tb\nc", []Token{tk(TokenIdent, "a", 1), tk(TokenIdent, "b", 3), tk(TokenIdent, "c", 5)}},
		// numbers
		{"num", "42", []Token{tk(TokenNumber, "42", 1)}},
		{"decimal", "3.14 + 2.71", []Token{tk(TokenNumber, "3.14", 1), tk(TokenAdd, "+", 6), tk(TokenNumber, "2.71", 8)}},
		{"leading-dot", ".5 + 2", []Token{tk(TokenNumber, ".5", 1), tk(TokenAdd, "+", 4), tk(TokenNumber, "2", 6)}},
		{"trailing-dot", "3. + 2", []Token{tk(TokenNumber, "3.", 1), tk(TokenAdd, "+", 4), tk(TokenNumber, "2", 6)}},
		{"two-dots", "1.2.3", []Token{tk(TokenNumber, "1.2", 1), tk(TokenMul, "*", 4), tk(TokenNumber, ".3", 4)}},
		{"basic", "3 + 5 * (2 - 8)", []Token{
			tk(TokenNumber, "3", 1), tk(TokenAdd, "+", 3), tk(TokenNumber, "5", 5), tk(TokenMul, "*", 7),
			tk(TokenLeftParen, "(", 9), tk(TokenNumber, "2", 10), tk(TokenSub, "-", 12), tk(TokenNumber, "8", 14),
			tk(TokenRightParen, ")", 15),
		}},
		{"exponent", "3.14*10^2", []Token{
			tk(TokenNumber, "3.14", 1), tk(TokenMul, "*", 5), tk(TokenNumber, "10", 6), tk(TokenPow, "^", 8), tk(TokenNumber, "2", 9),
		}},
		{"alt-ops", "1×2÷3", []Token{
			tk(TokenNumber, "1", 1), tk(TokenMul, "×", 2), tk(TokenNumber, "2", 3), tk(TokenDiv, "÷", 4), tk(TokenNumber, "3", 5),
		}},
		// identifiers
		{"unicode", "π + 5", []Token{tk(TokenIdent, "π", 1), tk(TokenAdd, "+", 3), tk(TokenNumber, "5", 5)}},
		{"underscore", "_x + _y", []Token{tk(TokenIdent, "_x", 1), tk(TokenAdd, "+", 4), tk(TokenIdent, "_y", 6)}},
		{"digits", "x2y", []Token{tk(TokenIdent, "x2y", 1)}},
		{"inf", "inf", []Token{tk(TokenIdent, "inf", 1)}},
		{"constant-case", "Pi", []Token{tk(TokenIdent, "pi", 1)}},
		{"variable-case", "Xy", []Token{tk(TokenIdent, "Xy", 1)}},
		{"assign", "x = 5", []Token{tk(TokenIdent, "x", 1), tk(TokenEquals, "=", 3), tk(TokenNumber, "5", 5)}},
		// keywords
		{"sin", "sin(2)", []Token{kw(FuncSin, 1), tk(TokenLeftParen, "(", 4), tk(TokenNumber, "2", 5), tk(TokenRightParen, ")", 6)}},
		{"keyword-case", "SIN(x) + Tan x", []Token{
			kw(FuncSin, 1), tk(TokenLeftParen, "(", 4), tk(TokenIdent, "x", 5), tk(TokenRightParen, ")", 6),
			tk(TokenAdd, "+", 8), kw(FuncTan, 10), tk(TokenIdent, "x", 14),
		}},
		{"nested", "sin(cos(3))", []Token{
			kw(FuncSin, 1), tk(TokenLeftParen, "(", 4), kw(FuncCos, 5), tk(TokenLeftParen, "(", 8),
			tk(TokenNumber, "3", 9), tk(TokenRightParen, ")", 10), tk(TokenRightParen, ")", 11),
		}},
		// implicit multiplication
		{"implicit-paren", "3(4 + 5)", []Token{
			tk(TokenNumber, "3", 1), tk(TokenMul, "*", 2), tk(TokenLeftParen, "(", 2), tk(TokenNumber, "4", 3),
			tk(TokenAdd, "+", 5), tk(TokenNumber, "5", 7), tk(TokenRightParen, ")", 8),
		}},
		{"implicit-ident", "2x", []Token{tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), tk(TokenIdent, "x", 2)}},
		{"implicit-suffix", "3.14foo", []Token{tk(TokenNumber, "3.14", 1), tk(TokenMul, "*", 5), tk(TokenIdent, "foo", 5)}},
		{"implicit-exponent", "2e5", []Token{tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), tk(TokenIdent, "e5", 2)}},
		{"implicit-constant", "2PI", []Token{tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), tk(TokenIdent, "pi", 2)}},
		{"implicit-func", "2cos(0)", []Token{
			tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), kw(FuncCos, 2), tk(TokenLeftParen, "(", 5),
			tk(TokenNumber, "0", 6), tk(TokenRightParen, ")", 7),
		}},
		{"implicit-underscores", "2_x + 3_y", []Token{
			tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), tk(TokenIdent, "_x", 2), tk(TokenAdd, "+", 5),
			tk(TokenNumber, "3", 7), tk(TokenMul, "*", 8), tk(TokenIdent, "_y", 8),
		}},
		{"implicit-underscore-paren", "2_(3 + 5)", []Token{
			tk(TokenNumber, "2", 1), tk(TokenMul, "*", 2), tk(TokenIdent, "_", 2), tk(TokenMul, "*", 3),
			tk(TokenLeftParen, "(", 3), tk(TokenNumber, "3", 4), tk(TokenAdd, "+", 6), tk(TokenNumber, "5", 8),
			tk(TokenRightParen, ")", 9),
		}},
		{"implicit-brackets", ")(", []Token{tk(TokenRightParen, ")", 1), tk(TokenMul, "*", 2), tk(TokenLeftParen, "(", 2)}},
		{"implicit-square", "x[y]", []Token{
			tk(TokenIdent, "x", 1), tk(TokenMul, "*", 2), tk(TokenLeftBracket, "[", 2), tk(TokenIdent, "y", 3), tk(TokenRightBracket, "]", 4),
		}},
		{"implicit-after-close", "(2)x", []Token{
			tk(TokenLeftParen, "(", 1), tk(TokenNumber, "2", 2), tk(TokenRightParen, ")", 3), tk(TokenMul, "*", 4), tk(TokenIdent, "x", 4),
		}},
		{"no-implicit-keyword", "sin{x}", []Token{
			kw(FuncSin, 1), tk(TokenLeftBrace, "{", 4), tk(TokenIdent, "x", 5), tk(TokenRightBrace, "}", 6),
		}},
		// minus
		{"neg", "-3 + 5", []Token{tk(TokenNeg, "-", 1), tk(TokenNumber, "3", 2), tk(TokenAdd, "+", 4), tk(TokenNumber, "5", 6)}},
		{"sub-neg", "2 - -3", []Token{tk(TokenNumber, "2", 1), tk(TokenSub, "-", 3), tk(TokenNeg, "-", 5), tk(TokenNumber, "3", 6)}},
		{"pow-neg", "2^-x", []Token{tk(TokenNumber, "2", 1), tk(TokenPow, "^", 2), tk(TokenNeg, "-", 3), tk(TokenIdent, "x", 4)}},
		{"paren-neg", "(-x)-1", []Token{
			tk(TokenLeftParen, "(", 1), tk(TokenNeg, "-", 2), tk(TokenIdent, "x", 3), tk(TokenRightParen, ")", 4),
			tk(TokenSub, "-", 5), tk(TokenNumber, "1", 6),
		}},
		{"neg-func", "-2sin(3)", []Token{
			tk(TokenNeg, "-", 1), tk(TokenNumber, "2", 2), tk(TokenMul, "*", 3), kw(FuncSin, 3),
			tk(TokenLeftParen, "(", 6), tk(TokenNumber, "3", 7), tk(TokenRightParen, ")", 8),
		}},
		{"keyword-neg", "cos -x", []Token{kw(FuncCos, 1), tk(TokenNeg, "-", 5), tk(TokenIdent, "x", 6)}},
		// punctuation
		{"punct", "x!,?:;", []Token{
			tk(TokenIdent, "x", 1), tk(TokenBang, "!", 2), tk(TokenComma, ",", 3), tk(TokenQuestion, "?", 4),
			tk(TokenColon, ":", 5), tk(TokenSemicolon, ";", 6),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("tokenizing %q: unexpected error %v", c.src, err)
			}
			if !sametoks(got, c.tokens) {
				t.Errorf("tokenizing %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  LexError
	}{
		{"symbol", "3 + 5 @ 2", LexError{Text: "@", Kind: "identifier", Col: 7}},
		{"dot", ".", LexError{Text: ".", Kind: "number", Col: 1}},
		{"dot-ident", ".x", LexError{Text: ".x", Kind: "number", Col: 1}},
		{"suffix", "2$", LexError{Text: "$", Kind: "identifier", Col: 2}},
		{"dotted", "x.y+1", LexError{Text: "x.y", Kind: "identifier", Col: 1}},
		{"first", "$ + @", LexError{Text: "$", Kind: "identifier", Col: 1}},
		{"after-paren", "(1)#", LexError{Text: "#", Kind: "identifier", Col: 4}},
		{"invalid-utf8", "\xff", LexError{Text: "\xff", Kind: "identifier", Col: 1}},
		{"invalid-utf8-suffix", "1 + 2\xfe\xff", LexError{Text: "\xfe\xff", Kind: "identifier", Col: 6}},
		{"invalid-utf8-word", "a\x80b", LexError{Text: "a\x80b", Kind: "identifier", Col: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err == nil {
				t.Fatalf("tokenizing %q gave no error, tokens %v", c.src, toks)
			}
			if toks != nil {
				t.Errorf("tokenizing %q gave tokens %v with error", c.src, toks)
			}
			var lerr *LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("%#v is not *LexError", err)
			}
			if *lerr != c.err {
				t.Errorf("tokenizing %q: want %+v, got %+v", c.src, c.err, *lerr)
			}
			if lerr.Pos() != c.err.Col {
				t.Errorf("tokenizing %q: Pos() is %d, want %d", c.src, lerr.Pos(), c.err.Col)
			}
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	srcs := []string{
		"3 + 5 * (2 - 8)",
		"-2(sin(3) + 5)",
		"x = 2pi",
		"2_(3 + 5)",
	}
	for _, src := range srcs {
		a, err := Tokenize(src)
		if err != nil {
			t.Fatalf("tokenizing %q: %v", src, err)
		}
		b, err := Tokenize(src)
		if err != nil {
			t.Fatalf("tokenizing %q again: %v", src, err)
		}
		if !sametoks(a, b) {
			t.Errorf("tokenizing %q twice gave different tokens:\n\t%v\n\t%v", src, a, b)
		}
	}
}

func TestNumPrefix(t *testing.T) {
	cases := []struct {
		w string
		n int
	}{
		{"", 0},
		{"x", 0},
		{".", 0},
		{".x", 0},
		{"1", 1},
		{"12x", 2},
		{"1.5", 3},
		{"1.5.5", 3},
		{".5y", 2},
		{"3.", 2},
		{"_1", 0},
	}
	for _, c := range cases {
		if n := numprefix(c.w); n != c.n {
			t.Errorf("numprefix(%q): want %d, got %d", c.w, c.n, n)
		}
	}
}

func TestKindNames(t *testing.T) {
	for k := TokenNone; k <= TokenSemicolon; k++ {
		if kindnames[k] == "" {
			t.Errorf("no name for token kind %d", k)
		}
	}
	for _, r := range Operators + OpenBrackets + CloseBrackets + Punctuation + "=" {
		if _, ok := symkinds[r]; !ok {
			t.Errorf("no token kind for %c", r)
		}
	}
}
