package token_test

import (
	"testing"

	"github.com/mna/nenuphar-lox/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "and", token.AND.String())
	assert.Equal(t, "end of file", token.EOF.String())
	assert.Equal(t, "+", token.PLUS.String())
}

func TestTokenFields(t *testing.T) {
	tok := token.Token{Type: token.IDENTIFIER, Lexeme: "x", Line: 3}
	assert.Equal(t, token.IDENTIFIER, tok.Type)
	assert.Equal(t, "x", tok.Lexeme)
	assert.Equal(t, 3, tok.Line)
}
