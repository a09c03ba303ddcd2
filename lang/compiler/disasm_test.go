package compiler_test

import (
	"testing"

	"github.com/mna/nenuphar-lox/lang/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleContainsOpcodeNames(t *testing.T) {
	proto, err := compiler.Compile([]byte(`var a = 1 + 2; print a;`))
	require.NoError(t, err)

	text := proto.Chunk.Disassemble("<script>")
	assert.Contains(t, text, "== <script> ==")
	assert.Contains(t, text, "OP_ADD")
	assert.Contains(t, text, "OP_PRINT")
	assert.Contains(t, text, "OP_RETURN")
}
