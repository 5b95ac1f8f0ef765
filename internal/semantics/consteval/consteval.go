// Package consteval folds constant integer expressions at compile time.
// The type checker uses it to check array indices against fixed lengths;
// an expression it cannot fold is simply not checked statically.
package consteval

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// EvalInt evaluates an expression to a compile-time integer. The second
// result is false when the expression is not a constant.
func EvalInt(e ast.Expression) (int64, bool) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return v.Value, true

	case *ast.ParenExpr:
		return EvalInt(v.X)

	case *ast.UnaryExpr:
		if v.Op.Kind != tokens.MINUS_TOKEN {
			return 0, false
		}
		x, ok := EvalInt(v.X)
		if !ok {
			return 0, false
		}
		return -x, true

	case *ast.BinaryExpr:
		x, ok := EvalInt(v.X)
		if !ok {
			return 0, false
		}
		y, ok := EvalInt(v.Y)
		if !ok {
			return 0, false
		}
		switch v.Op.Kind {
		case tokens.PLUS_TOKEN:
			return x + y, true
		case tokens.MINUS_TOKEN:
			return x - y, true
		case tokens.MUL_TOKEN:
			return x * y, true
		case tokens.DIV_TOKEN:
			// Division by zero is a runtime fault, not a constant.
			if y == 0 {
				return 0, false
			}
			return x / y, true
		case tokens.MOD_TOKEN:
			if y == 0 {
				return 0, false
			}
			return x % y, true
		}
		return 0, false

	default:
		return 0, false
	}
}
