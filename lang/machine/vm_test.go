package machine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mna/nenuphar-lox/lang/compiler"
	"github.com/mna/nenuphar-lox/lang/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (stdout string, err error) {
	t.Helper()
	proto, cerr := compiler.Compile([]byte(src))
	require.NoError(t, cerr)

	var out strings.Builder
	vm := machine.New(machine.Config{Stdout: &out})
	_, err = vm.Interpret(context.Background(), proto)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, `
var i = 0;
var sum = 0;
while (i < 5) {
  sum = sum + i;
  i = i + 1;
}
print sum;
`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestForLoop(t *testing.T) {
	out, err := run(t, `
var sum = 0;
for (var i = 0; i < 5; i = i + 1) {
  sum = sum + i;
}
print sum;
`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestClosuresShareUpvalues(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var i = 0;
  fun counter() {
    i = i + 1;
    return i;
  }
  return counter;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undefinedVariable;`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Message, "Undefined variable 'undefinedVariable'.")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Message, "Expected 2 arguments but got 1.")
}

func TestLogicalAndShortCircuits(t *testing.T) {
	out, err := run(t, `
fun sideEffect() { print "called"; return true; }
print false and sideEffect();
`)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestLogicalOrShortCircuits(t *testing.T) {
	out, err := run(t, `
fun sideEffect() { print "called"; return true; }
print true or sideEffect();
`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestFalseyLaw(t *testing.T) {
	out, err := run(t, `
print !nil;
print !false;
print !0;
print !"";
`)
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\nfalse\nfalse\n", out)
}

func TestStringsInternedAcrossDeclarations(t *testing.T) {
	out, err := run(t, `
var a = "shared";
var b = "shared";
print a == b;
`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestRecursiveFunctionCall(t *testing.T) {
	out, err := run(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestNativeClockReturnsNumber(t *testing.T) {
	out, err := run(t, `print clock() > 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
