package scanner_test

import (
	"testing"

	"github.com/mna/nenuphar-lox/lang/scanner"
	"github.com/mna/nenuphar-lox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s scanner.Scanner
	s.Init([]byte(src))
	var toks []token.Token
	for {
		tok := s.ScanToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestScanTokenBasics(t *testing.T) {
	toks := scanAll(t, `var a = 1 + 2.5; // comment
print a;`)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.VAR, toks[0].Type)
	assert.Equal(t, token.IDENTIFIER, toks[1].Type)
	assert.Equal(t, "a", toks[1].Lexeme)
	assert.Equal(t, token.EQUAL, toks[2].Type)
	assert.Equal(t, token.NUMBER, toks[3].Type)
	assert.Equal(t, "1", toks[3].Lexeme)
	assert.Equal(t, token.PLUS, toks[4].Type)
	assert.Equal(t, token.NUMBER, toks[5].Type)
	assert.Equal(t, "2.5", toks[5].Lexeme)
	assert.Equal(t, token.SEMICOLON, toks[6].Type)

	last := toks[len(toks)-1]
	assert.Equal(t, token.EOF, last.Type)
}

func TestScanTokenEOFIsSticky(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte(""))
	first := s.ScanToken()
	second := s.ScanToken()
	assert.Equal(t, token.EOF, first.Type)
	assert.Equal(t, token.EOF, second.Type)
}

func TestScanTokenKeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll(t, "and Andrew _and and2")
	assert.Equal(t, token.AND, toks[0].Type)
	assert.Equal(t, token.IDENTIFIER, toks[1].Type)
	assert.Equal(t, token.IDENTIFIER, toks[2].Type)
	assert.Equal(t, token.IDENTIFIER, toks[3].Type)
}

func TestScanTokenString(t *testing.T) {
	toks := scanAll(t, `"hello
world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "\"hello\nworld\"", toks[0].Lexeme)
}

func TestScanTokenUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"hello`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Type)
	assert.Equal(t, "Unterminated string.", toks[0].Lexeme)
}

func TestScanTokenUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Type)
	assert.Equal(t, "Unexpected character.", toks[0].Lexeme)
}

func TestScanTokenTwoCharPunctuation(t *testing.T) {
	toks := scanAll(t, "!= == <= >= ! = < >")
	want := []token.Type{
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.BANG, token.EQUAL, token.LESS, token.GREATER, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "index %d", i)
	}
}

func TestScanTokenLineCounting(t *testing.T) {
	toks := scanAll(t, "var a = 1;\nvar b = 2;\nprint a;")
	assert.Equal(t, 1, toks[0].Line)
	// locate the second "var"
	var secondVarLine int
	count := 0
	for _, tk := range toks {
		if tk.Type == token.VAR {
			count++
			if count == 2 {
				secondVarLine = tk.Line
			}
		}
	}
	assert.Equal(t, 2, secondVarLine)
}

func TestScanTokenReset(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte("var a;"))
	s.ScanToken()
	s.Reset([]byte("print b;"))
	tok := s.ScanToken()
	assert.Equal(t, token.PRINT, tok.Type)
}
