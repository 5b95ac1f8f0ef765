package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/lexer"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/parser"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

func collect(t *testing.T, src string) (*context.CompilerContext, bool) {
	t.Helper()
	ctx := context.New("test.brn")
	ctx.Diagnostics.AddSourceContent("test.brn", src)
	toks := lexer.New("test.brn", src, ctx.Diagnostics).Tokenize()
	ctx.Program = parser.Parse(toks, "test.brn", ctx.Diagnostics)
	return ctx, Collect(ctx)
}

func codes(ctx *context.CompilerContext) []string {
	var out []string
	for _, d := range ctx.Diagnostics.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func TestCollectSignatures(t *testing.T) {
	ctx, ok := collect(t, `
struct Point { x: int, y: int }
enum Shape { Dot, Circle(int) }
fn area(s: Shape) -> int { return 0; }
fn main() {}
`)
	require.True(t, ok)
	assert.False(t, ctx.Diagnostics.HasErrors())

	point, found := ctx.Globals.GetSymbol("Point")
	require.True(t, found)
	assert.Equal(t, symbols.SymbolType, point.Kind)
	st := point.Type.(*types.StructType)
	require.Len(t, st.Fields, 2)
	assert.True(t, st.Fields[0].Type.Equals(types.TypeInt))

	shape, found := ctx.Globals.GetSymbol("Shape")
	require.True(t, found)
	en := shape.Type.(*types.EnumType)
	require.Len(t, en.Variants, 2)
	assert.Nil(t, en.Variants[0].Payload)
	assert.True(t, en.Variants[1].Payload.Equals(types.TypeInt))

	area, found := ctx.Globals.GetSymbol("area")
	require.True(t, found)
	sig := area.Type.(*types.FunctionType)
	require.Len(t, sig.Params, 1)
	assert.True(t, sig.Params[0].Equals(en))
	assert.True(t, sig.Return.Equals(types.TypeInt))
}

// Declaration order must not matter: a struct may reference an enum that
// is declared after it.
func TestForwardReferences(t *testing.T) {
	ctx, ok := collect(t, `
struct Game { state: State }
enum State { Won, Lost }
fn main() {}
`)
	require.True(t, ok)
	assert.False(t, ctx.Diagnostics.HasErrors())

	game, _ := ctx.Globals.GetSymbol("Game")
	field := game.Type.(*types.StructType).Fields[0]
	assert.IsType(t, &types.EnumType{}, field.Type)
}

func TestDuplicateTopLevelIsFatal(t *testing.T) {
	ctx, ok := collect(t, `
fn work() {}
struct work { x: int }
fn main() {}
`)
	assert.False(t, ok)
	assert.True(t, ctx.Diagnostics.Fatal())
	assert.Contains(t, codes(ctx), diagnostics.ErrDuplicateTopLevel)
}

func TestShadowingBuiltinIsFatal(t *testing.T) {
	ctx, ok := collect(t, `
fn print(x: int) {}
fn main() {}
`)
	assert.False(t, ok)
	assert.Contains(t, codes(ctx), diagnostics.ErrDuplicateTopLevel)
}

func TestMissingMainIsFatal(t *testing.T) {
	ctx, ok := collect(t, `fn helper() {}`)
	assert.False(t, ok)
	assert.Contains(t, codes(ctx), diagnostics.ErrNoMainFunction)
}

func TestMainSignatureChecked(t *testing.T) {
	ctx, ok := collect(t, `fn main(argc: int) {}`)
	assert.False(t, ok)
	assert.Contains(t, codes(ctx), diagnostics.ErrNoMainFunction)

	ctx, ok = collect(t, `fn main() -> int { return 0; }`)
	assert.False(t, ok)
	assert.Contains(t, codes(ctx), diagnostics.ErrNoMainFunction)
}

func TestDuplicateStructField(t *testing.T) {
	ctx, ok := collect(t, `
struct P { x: int, x: int }
fn main() {}
`)
	assert.True(t, ok) // not structural, analysis continues
	assert.Contains(t, codes(ctx), diagnostics.ErrDuplicateField)
}

func TestUndefinedFieldType(t *testing.T) {
	ctx, _ := collect(t, `
struct P { x: Missing }
fn main() {}
`)
	assert.Contains(t, codes(ctx), diagnostics.ErrUndefinedSymbol)
}
