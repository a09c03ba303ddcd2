package compiler_test

import (
	"testing"

	"github.com/mna/nenuphar-lox/lang/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileArithmeticPrecedence(t *testing.T) {
	proto, err := compiler.Compile([]byte(`print 1 + 2 * 3;`))
	require.NoError(t, err)
	require.NotNil(t, proto)
	assert.Contains(t, proto.Chunk.Code, byte(compiler.OP_MULTIPLY))
	assert.Contains(t, proto.Chunk.Code, byte(compiler.OP_ADD))
}

func TestCompileConstantPoolDedupesNumbersAndStrings(t *testing.T) {
	proto, err := compiler.Compile([]byte(`print 1; print 1; print "x"; print "x";`))
	require.NoError(t, err)
	var numbers, strings int
	for _, c := range proto.Chunk.Constants {
		switch c.Kind {
		case compiler.ConstNumber:
			numbers++
		case compiler.ConstString:
			strings++
		}
	}
	assert.Equal(t, 1, numbers)
	assert.Equal(t, 1, strings)
}

func TestCompileFunctionsAreNeverDeduped(t *testing.T) {
	proto, err := compiler.Compile([]byte(`
fun a() { return 1; }
fun b() { return 1; }
`))
	require.NoError(t, err)
	var fns int
	for _, c := range proto.Chunk.Constants {
		if c.Kind == compiler.ConstFunction {
			fns++
		}
	}
	assert.Equal(t, 2, fns)
}

func TestCompileLocalRedeclarationInSameScopeIsError(t *testing.T) {
	_, err := compiler.Compile([]byte(`{ var a = 1; var a = 2; }`))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assertContainsMessage(t, ce, "Already a variable with this name in this scope.")
}

func TestCompileSelfReferentialInitializerIsError(t *testing.T) {
	_, err := compiler.Compile([]byte(`{ var a = a; }`))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assertContainsMessage(t, ce, "Can't read local variable in its own initializer.")
}

func TestCompileReturnAtTopLevelIsError(t *testing.T) {
	_, err := compiler.Compile([]byte(`return 1;`))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assertContainsMessage(t, ce, "Can't return from top-level code.")
}

func TestCompileReturnInsideFunctionIsFine(t *testing.T) {
	_, err := compiler.Compile([]byte(`fun f() { return 1; }`))
	require.NoError(t, err)
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, err := compiler.Compile([]byte(`1 + 2 = 3;`))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assertContainsMessage(t, ce, "Invalid assignment target.")
}

func TestCompileErrorRecoveryReportsMultipleDiagnostics(t *testing.T) {
	_, err := compiler.Compile([]byte(`
var a = ;
var b = ;
`))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assert.GreaterOrEqual(t, len(ce.Diagnostics), 2)
}

func TestCompileJumpPatchingIfElse(t *testing.T) {
	proto, err := compiler.Compile([]byte(`
if (true) { print 1; } else { print 2; }
`))
	require.NoError(t, err)
	assert.Contains(t, proto.Chunk.Code, byte(compiler.OP_JUMP_IF_FALSE))
	assert.Contains(t, proto.Chunk.Code, byte(compiler.OP_JUMP))
}

func TestCompileWhileLoopEmitsLoop(t *testing.T) {
	proto, err := compiler.Compile([]byte(`
var i = 0;
while (i < 3) { i = i + 1; }
`))
	require.NoError(t, err)
	assert.Contains(t, proto.Chunk.Code, byte(compiler.OP_LOOP))
}

func TestCompileClosureCapturesUpvalue(t *testing.T) {
	proto, err := compiler.Compile([]byte(`
fun makeCounter() {
  var i = 0;
  fun counter() {
    i = i + 1;
    return i;
  }
  return counter;
}
`))
	require.NoError(t, err)

	var outer *compiler.Constant
	for i := range proto.Chunk.Constants {
		if proto.Chunk.Constants[i].Kind == compiler.ConstFunction && proto.Chunk.Constants[i].Function.Name == "makeCounter" {
			outer = &proto.Chunk.Constants[i]
		}
	}
	require.NotNil(t, outer)
	assert.Contains(t, outer.Function.Chunk.Code, byte(compiler.OP_CLOSURE))

	var inner *compiler.FunctionProto
	for _, c := range outer.Function.Chunk.Constants {
		if c.Kind == compiler.ConstFunction && c.Function.Name == "counter" {
			inner = c.Function
		}
	}
	require.NotNil(t, inner)
	assert.Equal(t, 1, inner.UpvalueCount)
}

func TestCompileTooManyParametersIsError(t *testing.T) {
	var params string
	for i := 0; i < 256; i++ {
		if i > 0 {
			params += ", "
		}
		params += "p" + itoa(i)
	}
	src := "fun f(" + params + ") { return 0; }"
	_, err := compiler.Compile([]byte(src))
	require.Error(t, err)
	var ce *compiler.CompileError
	require.ErrorAs(t, err, &ce)
	assertContainsMessage(t, ce, "Can't have more than 255 parameters.")
}

func assertContainsMessage(t *testing.T, ce *compiler.CompileError, message string) {
	t.Helper()
	for _, d := range ce.Diagnostics {
		if d.Message == message {
			return
		}
	}
	t.Fatalf("expected a diagnostic with message %q, got %+v", message, ce.Diagnostics)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
