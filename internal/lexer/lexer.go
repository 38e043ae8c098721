package lexer

import (
	"lute/internal/token"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		tok = l.handleCompoundToken(token.ASSIGN, '=', token.EQ)
	case '+':
		tok = l.handleCompoundToken(token.PLUS, '=', token.PLUS_ASSIGN)
	case '-':
		tok = l.handleCompoundToken(token.MINUS, '=', token.MINUS_ASSIGN)
	case '*':
		tok = l.handleCompoundToken(token.ASTERISK, '=', token.ASTERISK_ASSIGN)
	case '/':
		tok = l.handleCompoundToken(token.SLASH, '=', token.SLASH_ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			start := l.position
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Literal: "!=", Position: start}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.position)
		}
	case '<':
		tok = newToken(token.LT, l.ch, l.position)
	case '>':
		tok = newToken(token.GT, l.ch, l.position)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.position)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.position)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.position)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.position)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.position)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.position)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.position)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.position)
	case '.':
		tok = l.readEllipsis()
	case '"':
		return l.readString()
	case '\'':
		return l.readCharLiteral()
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Position = l.position
	default:
		if isLetter(l.ch) {
			start := l.position
			literal := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Position: start}
		} else if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.position)
	}

	l.readChar()
	return tok
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	startPosition := l.position
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		return token.Token{Type: t1, Literal: literal, Position: startPosition}
	}
	return newToken(t, l.ch, startPosition)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '#':
			l.skipToLineEnd()
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() token.Token {
	start := l.position
	tokType := token.TokenType(token.INT)
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		tokType = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: tokType, Literal: l.input[start:l.position], Position: start}
}

func (l *Lexer) readEllipsis() token.Token {
	start := l.position
	if l.peekChar() == '.' {
		l.readChar()
		if l.peekChar() == '.' {
			l.readChar()
			return token.Token{Type: token.ELLIPSIS, Literal: "...", Position: start}
		}
	}
	return token.Token{Type: token.ILLEGAL, Literal: ".", Position: start}
}

func (l *Lexer) readString() token.Token {
	start := l.position
	var out []rune
	for {
		l.readChar()
		if l.ch == '\\' {
			l.readChar()
			out = append(out, unescape(l.ch))
			continue
		}
		if l.ch == '"' || l.ch == 0 {
			break
		}
		out = append(out, l.ch)
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Literal: string(out), Position: start}
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Literal: string(out), Position: start}
}

func (l *Lexer) readCharLiteral() token.Token {
	start := l.position
	l.readChar()
	ch := l.ch
	if ch == '\\' {
		l.readChar()
		ch = unescape(l.ch)
	}
	if ch == 0 || l.peekChar() != '\'' {
		tok := token.Token{Type: token.ILLEGAL, Literal: string(ch), Position: start}
		l.readChar()
		return tok
	}
	l.readChar() // closing quote
	l.readChar()
	return token.Token{Type: token.CHAR, Literal: string(ch), Position: start}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}
