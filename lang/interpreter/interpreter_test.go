package interpreter_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/interpreter"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/stretchr/testify/require"
)

// run parses, resolves and interprets src, returning everything printed to
// stdout. It fails the test immediately on a compile error, since that is
// never what these behavioral tests are checking.
func run(t *testing.T, src string) (stdout string, sink *diag.Sink) {
	t.Helper()
	sink = &diag.Sink{}
	stmts := parser.Parse([]byte(src), sink)
	require.False(t, sink.HadCompileError(), "unexpected compile error")

	table := resolver.Resolve(stmts, sink)
	require.False(t, sink.HadCompileError(), "unexpected resolve error")

	var buf bytes.Buffer
	interp := interpreter.New(sink, &buf)
	interp.Interpret(stmts, table)
	return buf.String(), sink
}

func TestArithmeticAndPrint(t *testing.T) {
	out, sink := run(t, `print 1 + 2 * 3;`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, sink := run(t, `print "foo" + "bar";`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "foobar\n", out)
}

func TestNumberStringificationStripsTrailingZero(t *testing.T) {
	out, sink := run(t, `print 6 / 2; print 1 / 2;`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "3\n0.5\n", out)
}

func TestDivisionByZeroIsNotARuntimeError(t *testing.T) {
	out, sink := run(t, `print 1 / 0; print -1 / 0; print 0 / 0;`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "inf\n-inf\nNaN\n", out)
}

func TestTruthiness(t *testing.T) {
	out, sink := run(t, `
if (0) print "zero is truthy"; else print "zero is falsy";
if ("") print "empty string is truthy"; else print "empty string is falsy";
if (nil) print "nil is truthy"; else print "nil is falsy";
if (false) print "false is truthy"; else print "false is falsy";
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsy\nfalse is falsy\n", out)
}

func TestLogicalOperatorsReturnOperandNotBoolean(t *testing.T) {
	out, sink := run(t, `
print nil or "yes";
print "first" and "second";
print false and "unreached";
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "yes\nsecond\nfalse\n", out)
}

func TestLogicalOrShortCircuits(t *testing.T) {
	out, sink := run(t, `
fun boom() { print "should not run"; return true; }
print true or boom();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "true\n", out)
}

func TestVariablesAndScoping(t *testing.T) {
	out, sink := run(t, `
var a = "global";
{
  var a = "local";
  print a;
}
print a;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "local\nglobal\n", out)
}

func TestClosureCapturesVariableNotValue(t *testing.T) {
	out, sink := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
counter();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "1\n2\n3\n", out)
}

func TestClosureCaptureThenShadow(t *testing.T) {
	// a closure captures the binding present at its declaration, so a later
	// shadowing declaration in an enclosing block must not affect it.
	out, sink := run(t, `
var a = "outer";
fun showA() { print a; }
{
  showA();
  var a = "block";
  showA();
}
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "outer\nouter\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, sink := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForLoop(t *testing.T) {
	out, sink := run(t, `
var total = 0;
for (var i = 1; i <= 5; i = i + 1) {
  total = total + i;
}
print total;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "15\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, sink := run(t, `
fun add(a, b) { return a + b; }
print add(2, 3);
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "5\n", out)
}

func TestFunctionFallsOffEndReturnsNil(t *testing.T) {
	out, sink := run(t, `
fun noop() { }
print noop();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "nil\n", out)
}

func TestRecursion(t *testing.T) {
	out, sink := run(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "55\n", out)
}

func TestClassInstantiationAndFieldAccess(t *testing.T) {
	out, sink := run(t, `
class Point {}
var p = Point();
p.x = 1;
p.y = 2;
print p.x + p.y;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "3\n", out)
}

func TestMethodCallBindsThis(t *testing.T) {
	out, sink := run(t, `
class Greeter {
  init(name) {
    this.name = name;
  }
  greet() {
    print "hello " + this.name;
  }
}
Greeter("world").greet();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "hello world\n", out)
}

func TestInitAlwaysReturnsBoundThis(t *testing.T) {
	out, sink := run(t, `
class C {
  init() {
    return;
  }
}
var c = C();
print c;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "<C instance>\n", out)
}

func TestClassPrintsItsOwnStringForm(t *testing.T) {
	out, sink := run(t, `
class C {}
print C;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "<Class C>\n", out)
}

func TestSingleInheritanceAndSuper(t *testing.T) {
	out, sink := run(t, `
class Pastry {
  cook() {
    print "baking";
  }
}
class Cake < Pastry {
  cook() {
    super.cook();
    print "frosting";
  }
}
Cake().cook();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "baking\nfrosting\n", out)
}

func TestBoundMethodRetainedAsValue(t *testing.T) {
	out, sink := run(t, `
class Counter {
  init() { this.n = 0; }
  tick() {
    this.n = this.n + 1;
    print this.n;
  }
}
var c = Counter();
var m = c.tick;
m();
m();
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "1\n2\n", out)
}

func TestUndefinedVariableIsARuntimeError(t *testing.T) {
	out, sink := run(t, `print undefined;`)
	require.True(t, sink.HadRuntimeError())
	require.Empty(t, out)

	var buf bytes.Buffer
	sink.Fprint(&buf)
	require.Equal(t, "[1] RunTimeError: Undefined variable 'undefined'.\n", buf.String())
}

func TestCallingNonCallableIsARuntimeError(t *testing.T) {
	_, sink := run(t, `var x = 1; x();`)
	require.True(t, sink.HadRuntimeError())
}

func TestArityMismatchIsARuntimeError(t *testing.T) {
	_, sink := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.True(t, sink.HadRuntimeError())
}

func TestAddingNumberAndStringIsARuntimeError(t *testing.T) {
	_, sink := run(t, `print 1 + "2";`)
	require.True(t, sink.HadRuntimeError())
}

func TestEqualityAcrossKindsIsNeverEqual(t *testing.T) {
	out, sink := run(t, `
print 1 == "1";
print nil == false;
print 0 == false;
`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "false\nfalse\nfalse\n", out)
}

func TestClockBuiltinIsCallable(t *testing.T) {
	out, sink := run(t, `print clock() >= 0;`)
	require.False(t, sink.HadRuntimeError())
	require.Equal(t, "true\n", out)
}
