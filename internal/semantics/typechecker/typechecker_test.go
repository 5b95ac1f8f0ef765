package typechecker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/lexer"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/parser"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/collector"
)

// check runs the pipeline through the type checker over in-memory source.
func check(t *testing.T, src string) *context.CompilerContext {
	t.Helper()
	ctx := context.New("test.brn")
	ctx.Diagnostics.AddSourceContent("test.brn", src)
	toks := lexer.New("test.brn", src, ctx.Diagnostics).Tokenize()
	ctx.Program = parser.Parse(toks, "test.brn", ctx.Diagnostics)
	require.False(t, ctx.Diagnostics.HasErrors(), "source must lex and parse cleanly")
	if collector.Collect(ctx) {
		Check(ctx)
	}
	return ctx
}

func codes(ctx *context.CompilerContext) []string {
	var out []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func messages(ctx *context.CompilerContext) string {
	var b strings.Builder
	for _, d := range ctx.Diagnostics.Diagnostics() {
		b.WriteString(d.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func assertClean(t *testing.T, src string) {
	t.Helper()
	ctx := check(t, src)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected no diagnostics, got:\n%s", messages(ctx))
	}
}

func assertCode(t *testing.T, src, code string) *context.CompilerContext {
	t.Helper()
	ctx := check(t, src)
	if !assert.Contains(t, codes(ctx), code) {
		t.Logf("diagnostics:\n%s", messages(ctx))
	}
	return ctx
}

func TestArithmetic(t *testing.T) {
	assertClean(t, `fn main() { let x = 1 + 2 * 3 % 4; let y = -x; }`)
	assertCode(t, `fn main() { let x = 1 + true; }`, diagnostics.ErrInvalidOperation)
	assertCode(t, `fn main() { let x = "a" + "b"; }`, diagnostics.ErrInvalidOperation)
}

func TestComparisonAndLogic(t *testing.T) {
	assertClean(t, `fn main() { let b = 1 < 2 && "a" == "a" || !false; }`)
	assertCode(t, `fn main() { let b = 1 == "a"; }`, diagnostics.ErrInvalidOperation)
	assertCode(t, `fn main() { let b = 1 && true; }`, diagnostics.ErrInvalidOperation)
}

func TestConditionMustBeBool(t *testing.T) {
	assertCode(t, `fn main() { if 1 { } }`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { while "x" { } }`, diagnostics.ErrTypeMismatch)
	assertClean(t, `fn main() { if true { } else if false { } else { } }`)
}

func TestUndefinedSymbol(t *testing.T) {
	assertCode(t, `fn main() { let x = missing; }`, diagnostics.ErrUndefinedSymbol)
	assertCode(t, `fn main() { missing(); }`, diagnostics.ErrUndefinedSymbol)
}

func TestLetAnnotationMismatch(t *testing.T) {
	assertClean(t, `fn main() { let x: int = 1; }`)
	assertCode(t, `fn main() { let x: int = "one"; }`, diagnostics.ErrTypeMismatch)
}

func TestCallRules(t *testing.T) {
	assertClean(t, `
fn add(a: int, b: int) -> int { return a + b; }
fn main() { let x = add(1, 2); }
`)
	assertCode(t, `
fn add(a: int, b: int) -> int { return a + b; }
fn main() { let x = add(1); }
`, diagnostics.ErrArityMismatch)
	assertCode(t, `
fn add(a: int, b: int) -> int { return a + b; }
fn main() { let x = add(1, "two"); }
`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { let x = 1; x(); }`, diagnostics.ErrNotCallable)
}

func TestBuiltinSignatures(t *testing.T) {
	assertClean(t, `
fn main() {
	print("hi");
	let n = len("abc");
	let c = char_at("abc", 0);
	let s = to_string(42);
	let data = read_file("in.txt");
	write_file("out.txt", s);
	print(data);
	print(to_string(n));
	if c == 'a' { }
}
`)
	assertCode(t, `fn main() { let n = len(42); }`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { print("a", "b"); }`, diagnostics.ErrArityMismatch)
}

func TestReturnTypeChecked(t *testing.T) {
	assertCode(t, `
fn f() -> int { return "no"; }
fn main() {}
`, diagnostics.ErrTypeMismatch)
	assertCode(t, `
fn f() { return 1; }
fn main() {}
`, diagnostics.ErrTypeMismatch)
	assertClean(t, `
fn f() -> int { return 1; }
fn main() { let x = f(); }
`)
}

func TestStructLiteralRules(t *testing.T) {
	header := `struct Point { x: int, y: int }` + "\n"
	assertClean(t, header+`fn main() { let p = Point { x: 1, y: 2 }; let n = p.x; }`)
	ctx := assertCode(t, header+`fn main() { let p = Point { x: 1 }; }`, diagnostics.ErrMissingField)
	assert.Contains(t, messages(ctx), "y")
	assertCode(t, header+`fn main() { let p = Point { x: 1, y: 2, z: 3 }; }`, diagnostics.ErrInvalidFieldAccess)
	assertCode(t, header+`fn main() { let p = Point { x: 1, x: 2, y: 3 }; }`, diagnostics.ErrDuplicateField)
	assertCode(t, header+`fn main() { let p = Point { x: "a", y: 2 }; }`, diagnostics.ErrTypeMismatch)
	assertCode(t, header+`fn main() { let p = Point { x: 1, y: 2 }; let q = p.z; }`, diagnostics.ErrInvalidFieldAccess)
}

func TestEnumRules(t *testing.T) {
	header := `enum Shape { Dot, Circle(int) }` + "\n"
	assertClean(t, header+`fn main() { let a = Shape::Dot; let b = Shape::Circle(3); }`)
	assertCode(t, header+`fn main() { let a = Shape::Square; }`, diagnostics.ErrUnknownVariant)
	assertCode(t, header+`fn main() { let a = Shape::Dot(1); }`, diagnostics.ErrArityMismatch)
	assertCode(t, header+`fn main() { let a = Shape::Circle; }`, diagnostics.ErrArityMismatch)
	assertCode(t, header+`fn main() { let a = Shape::Circle("big"); }`, diagnostics.ErrTypeMismatch)
}

func TestMatchExhaustiveness(t *testing.T) {
	header := `enum Direction { North, South }` + "\n"

	ctx := assertCode(t, header+`
fn main() {
	let d = Direction::North;
	match d {
		Direction::North => { },
	}
}
`, diagnostics.ErrNonExhaustiveMatch)
	// Missing variants are named in the diagnostic.
	assert.Contains(t, messages(ctx), "South")

	assertClean(t, header+`
fn main() {
	let d = Direction::North;
	match d {
		Direction::North => { },
		Direction::South => { },
	}
}
`)
	assertClean(t, header+`
fn main() {
	let d = Direction::North;
	match d {
		Direction::North => { },
		_ => { },
	}
}
`)
}

func TestMatchBinderTyped(t *testing.T) {
	header := `enum Shape { Dot, Circle(int) }` + "\n"
	assertClean(t, header+`
fn main() {
	let s = Shape::Circle(3);
	match s {
		Shape::Circle(r) => { let area = r * r; },
		_ => { },
	}
}
`)
	assertCode(t, header+`
fn main() {
	let s = Shape::Circle(3);
	match s {
		Shape::Circle(r) => { let bad = r == "x"; },
		_ => { },
	}
}
`, diagnostics.ErrInvalidOperation)
	assertCode(t, header+`
fn main() {
	let s = Shape::Dot;
	match s {
		Shape::Dot(x) => { },
		_ => { },
	}
}
`, diagnostics.ErrTypeMismatch)
}

func TestMatchRequiresEnum(t *testing.T) {
	assertCode(t, `fn main() { match 1 { _ => { } } }`, diagnostics.ErrInvalidOperation)
}

func TestArrayRules(t *testing.T) {
	assertClean(t, `fn main() { let a = [1, 2, 3]; let x = a[0]; }`)
	assertClean(t, `fn main() { let a: [int; 3] = [1, 2, 3]; }`)
	assertClean(t, `fn main() { let a: [int] = [1, 2]; }`)
	assertCode(t, `fn main() { let a = [1, "two"]; }`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { let a: [int; 3] = [1, 2]; }`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { let a = [1, 2]; let x = a[5]; }`, diagnostics.ErrIndexOutOfBounds)
	assertCode(t, `fn main() { let a = [1, 2]; let x = a[1 + 1]; }`, diagnostics.ErrIndexOutOfBounds)
	assertClean(t, `fn main() { let a = [1, 2]; let x = a[3 - 2]; }`)
	assertCode(t, `fn main() { let a = [1, 2]; let x = a["zero"]; }`, diagnostics.ErrTypeMismatch)
	assertCode(t, `fn main() { let x = 1; let y = x[0]; }`, diagnostics.ErrInvalidOperation)
}

func TestMutexAccessRules(t *testing.T) {
	assertCode(t, `
fn f(c: Mutex<int>) { let x = c.value; }
fn main() {}
`, diagnostics.ErrInvalidFieldAccess)
	assertClean(t, `
fn f(c: Mutex<int>) {
	lock c as v {
		v = v + 1;
	}
}
fn main() {}
`)
	assertCode(t, `fn main() { let x = 1; lock x as v { } }`, diagnostics.ErrInvalidOperation)
}

func TestLockAccessorScope(t *testing.T) {
	// The accessor name is not visible outside the lock block.
	assertCode(t, `
fn f(c: Mutex<int>) {
	lock c as v { }
	let x = v;
}
fn main() {}
`, diagnostics.ErrUndefinedSymbol)
}

func TestImmutableAssignment(t *testing.T) {
	assertCode(t, `fn main() { let x = 1; x = 2; }`, diagnostics.ErrInvalidAssignment)
	assertClean(t, `fn main() { let mut x = 1; x = 2; }`)
	// Deferred initialization of an immutable binding is allowed once.
	assertClean(t, `fn main() { let x: int; x = 1; print(to_string(x)); }`)
	assertCode(t, `
struct P { x: int }
fn main() { let p = P { x: 1 }; p.x = 2; }
`, diagnostics.ErrInvalidAssignment)
	assertClean(t, `
struct P { x: int }
fn main() { let mut p = P { x: 1 }; p.x = 2; }
`)
}

func TestAssignTypeChecked(t *testing.T) {
	assertCode(t, `fn main() { let mut x = 1; x = "one"; }`, diagnostics.ErrTypeMismatch)
}

func TestBorrowsAreTypeTransparent(t *testing.T) {
	assertClean(t, `
fn main() {
	let s = "hi";
	let a = &s;
	print(a);
}
`)
	assertCode(t, `fn main() { let a = &(1 + 2); }`, diagnostics.ErrInvalidOperation)
}

func TestWriteThroughSharedBorrowRejected(t *testing.T) {
	assertCode(t, `
fn main() {
	let mut x = 1;
	let a = &x;
	a = 2;
}
`, diagnostics.ErrInvalidAssignment)
	assertClean(t, `
fn main() {
	let mut x = 1;
	let a = &mut x;
	a = 2;
}
`)
}

func TestShadowingInNestedScope(t *testing.T) {
	assertClean(t, `
fn main() {
	let x = 1;
	{
		let x = "inner";
		print(x);
	}
	let y = x + 1;
}
`)
}
