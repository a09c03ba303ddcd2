// Package scanner tokenizes Lox source for the compiler. It is adapted from
// original_source's scanner.c (a clox derivative), cast into the
// Init/advance/peek shape used by the teacher's scanner package
// (github.com/mna/nenuphar/lang/scanner/scanner.go), but byte-oriented (not
// rune-oriented) and reporting a simple (type, lexeme, line) Token per
// spec.md §3/§4.1 instead of file-set positions.
package scanner

import "github.com/mna/nenuphar-lox/lang/token"

// Scanner tokenizes a single source buffer. The zero value is not usable;
// call Init first. A Scanner may be reused across multiple sources via
// Reset, which a REPL does to avoid reallocating state on every line.
type Scanner struct {
	src     []byte
	start   int // start of the current token
	current int // next unread byte
	line    int
}

// Init prepares the scanner to tokenize src. Each Token.Lexeme is copied out
// of src, so tokens do not keep src alive.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.start = 0
	s.current = 0
	s.line = 1
}

// Reset reinitializes the scanner for a new source buffer, allowing a single
// Scanner value to be reused across REPL lines.
func (s *Scanner) Reset(src []byte) { s.Init(src) }

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) makeToken(typ token.Type) token.Token {
	return token.Token{Type: typ, Lexeme: string(s.src[s.start:s.current]), Line: s.line}
}

func (s *Scanner) errorToken(message string) token.Token {
	return token.Token{Type: token.ERROR, Lexeme: message, Line: s.line}
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() != '/' {
				return
			}
			// a comment runs to the end of the line or to EOF
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		default:
			return
		}
	}
}

// ScanToken returns the next token in the source. Once the real tokens are
// exhausted it returns a synthetic EOF token indefinitely (it never advances
// past the end of the buffer again, so repeated calls are safe).
func (s *Scanner) ScanToken() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return s.makeToken(token.EOF)
	}

	c := s.advance()
	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.makeToken(token.LEFT_PAREN)
	case ')':
		return s.makeToken(token.RIGHT_PAREN)
	case '{':
		return s.makeToken(token.LEFT_BRACE)
	case '}':
		return s.makeToken(token.RIGHT_BRACE)
	case ';':
		return s.makeToken(token.SEMICOLON)
	case ',':
		return s.makeToken(token.COMMA)
	case '.':
		return s.makeToken(token.DOT)
	case '-':
		return s.makeToken(token.MINUS)
	case '+':
		return s.makeToken(token.PLUS)
	case '/':
		return s.makeToken(token.SLASH)
	case '*':
		return s.makeToken(token.STAR)
	case '!':
		if s.match('=') {
			return s.makeToken(token.BANG_EQUAL)
		}
		return s.makeToken(token.BANG)
	case '=':
		if s.match('=') {
			return s.makeToken(token.EQUAL_EQUAL)
		}
		return s.makeToken(token.EQUAL)
	case '<':
		if s.match('=') {
			return s.makeToken(token.LESS_EQUAL)
		}
		return s.makeToken(token.LESS)
	case '>':
		if s.match('=') {
			return s.makeToken(token.GREATER_EQUAL)
		}
		return s.makeToken(token.GREATER)
	case '"':
		return s.string()
	}

	return s.errorToken("Unexpected character.")
}

func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		return s.errorToken("Unterminated string.")
	}
	s.advance() // the closing quote
	return s.makeToken(token.STRING)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.makeToken(token.NUMBER)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	lexeme := s.src[s.start:s.current]
	return s.makeToken(sharedKeywords.lookup(string(lexeme)))
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
