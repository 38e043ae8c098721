package lexer

import (
	"testing"

	"lute/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5
ten = 10.5
five += 1
five -= 1
five *= 2
five /= 2

fn add(x, y) {
	return x + y
}

result = add(five, ten)
5 < 10 > 5
10 == 10
10 != 9
# comment
// alt comment
[1, 2, ...rest]
[a, *b] = parts
'c'
'\n'
true false
if elif else while for in
import "lib"
_
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.IDENT, "ten"},
		{token.ASSIGN, "="},
		{token.FLOAT, "10.5"},
		{token.IDENT, "five"},
		{token.PLUS_ASSIGN, "+="},
		{token.INT, "1"},
		{token.IDENT, "five"},
		{token.MINUS_ASSIGN, "-="},
		{token.INT, "1"},
		{token.IDENT, "five"},
		{token.ASTERISK_ASSIGN, "*="},
		{token.INT, "2"},
		{token.IDENT, "five"},
		{token.SLASH_ASSIGN, "/="},
		{token.INT, "2"},
		{token.FUNCTION, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.RBRACE, "}"},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.IDENT, "ten"},
		{token.RPAREN, ")"},
		{token.INT, "5"},
		{token.LT, "<"},
		{token.INT, "10"},
		{token.GT, ">"},
		{token.INT, "5"},
		{token.INT, "10"},
		{token.EQ, "=="},
		{token.INT, "10"},
		{token.INT, "10"},
		{token.NOT_EQ, "!="},
		{token.INT, "9"},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.COMMA, ","},
		{token.ELLIPSIS, "..."},
		{token.IDENT, "rest"},
		{token.RBRACKET, "]"},
		{token.LBRACKET, "["},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.ASTERISK, "*"},
		{token.IDENT, "b"},
		{token.RBRACKET, "]"},
		{token.ASSIGN, "="},
		{token.IDENT, "parts"},
		{token.CHAR, "c"},
		{token.CHAR, "\n"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.IF, "if"},
		{token.ELIF, "elif"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.FOR, "for"},
		{token.IN, "in"},
		{token.IMPORT, "import"},
		{token.STRING, "lib"},
		{token.IDENT, "_"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q %q, got=%q: %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\tb\nc\"d"`)

	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.STRING, tok.Type)
	}
	if tok.Literal != "a\tb\nc\"d" {
		t.Fatalf("literal wrong. expected=%q, got=%q", "a\tb\nc\"d", tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closed`)

	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.ILLEGAL, tok.Type)
	}
}

func TestLoneBangIsIllegal(t *testing.T) {
	l := New(`!x`)

	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.ILLEGAL, tok.Type)
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	l := New(`π_approx = 3`)

	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "π_approx" {
		t.Fatalf("got=%q %q", tok.Type, tok.Literal)
	}
}

func TestTokenPositions(t *testing.T) {
	l := New("x = 42")

	expected := []int{0, 2, 4}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Position != want {
			t.Fatalf("tests[%d] - position wrong. expected=%d, got=%d",
				i, want, tok.Position)
		}
	}
}
