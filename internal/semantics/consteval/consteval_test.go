package consteval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/lexer"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/parser"
)

// parseExpr parses src as the initializer of a let statement.
func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	diag := diagnostics.NewDiagnosticBag()
	code := "fn main() {\n\tlet x = " + src + ";\n}\n"
	toks := lexer.New("eval.brn", code, diag).Tokenize()
	program := parser.Parse(toks, "eval.brn", diag)
	require.False(t, diag.HasErrors())

	fn := program.Nodes[0].(*ast.FuncDecl)
	let := fn.Body.Nodes[0].(*ast.LetStmt)
	return let.Value
}

func TestEvalInt(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"7", 7},
		{"-7", -7},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 3", 3},
		{"10 % 3", 1},
		{"-(2 + 2)", -4},
	}
	for _, tc := range cases {
		got, ok := EvalInt(parseExpr(t, tc.src))
		assert.True(t, ok, tc.src)
		assert.Equal(t, tc.want, got, tc.src)
	}
}

func TestEvalIntNotConstant(t *testing.T) {
	for _, src := range []string{
		"n",
		"1 + n",
		"len(\"abc\")",
		"1 / 0",
		"5 % 0",
		"true",
		"!true",
	} {
		_, ok := EvalInt(parseExpr(t, src))
		assert.False(t, ok, src)
	}
}

func TestEvalNil(t *testing.T) {
	_, ok := EvalInt(nil)
	assert.False(t, ok)
}
