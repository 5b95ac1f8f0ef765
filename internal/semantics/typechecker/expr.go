package typechecker

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/consteval"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// checkExpr returns the type of an expression, recording it in the
// context's annotation map. Errors yield TypeUnknown so the walk keeps
// going without cascading.
func (c *checker) checkExpr(expr ast.Expression) types.SemType {
	if expr == nil {
		return types.TypeUnknown
	}

	var t types.SemType
	switch e := expr.(type) {
	case *ast.IntLiteral:
		t = types.TypeInt
	case *ast.BoolLiteral:
		t = types.TypeBool
	case *ast.CharLiteral:
		t = types.TypeChar
	case *ast.StringLiteral:
		t = types.TypeString
	case *ast.IdentifierExpr:
		t = c.checkIdent(e)
	case *ast.ArrayLiteral:
		t = c.checkArrayLiteral(e)
	case *ast.BorrowExpr:
		t = c.checkBorrow(e)
	case *ast.UnaryExpr:
		t = c.checkUnary(e)
	case *ast.BinaryExpr:
		t = c.checkBinary(e)
	case *ast.CallExpr:
		t = c.checkCall(e)
	case *ast.FieldAccessExpr:
		t = c.checkFieldAccess(e)
	case *ast.IndexExpr:
		t = c.checkIndex(e)
	case *ast.StructLiteral:
		t = c.checkStructLiteral(e)
	case *ast.EnumLiteral:
		t = c.checkEnumLiteral(e)
	case *ast.ParenExpr:
		t = c.checkExpr(e.X)
	default:
		t = types.TypeUnknown
	}

	c.ctx.SetExprType(expr, t)
	return t
}

func (c *checker) checkIdent(e *ast.IdentifierExpr) types.SemType {
	sym, ok := c.scope.Lookup(e.Name)
	if !ok {
		c.errorAt(e.Loc(), diagnostics.ErrUndefinedSymbol,
			"undefined symbol '%s'", e.Name)
		return types.TypeUnknown
	}
	c.ctx.Bind(e, sym)

	switch sym.Kind {
	case symbols.SymbolType:
		c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
			"'%s' is a type, not a value", e.Name)
		return types.TypeUnknown
	case symbols.SymbolFunction, symbols.SymbolBuiltin:
		c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
			"function '%s' can only be called", e.Name)
		return types.TypeUnknown
	}
	return sym.Type
}

func (c *checker) checkArrayLiteral(e *ast.ArrayLiteral) types.SemType {
	if len(e.Elements) == 0 {
		c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
			"cannot infer the element type of an empty array literal")
		return types.TypeUnknown
	}

	elemType := c.checkExpr(e.Elements[0])
	for _, elem := range e.Elements[1:] {
		t := c.checkExpr(elem)
		if types.IsUnknown(elemType) {
			elemType = t
			continue
		}
		if !types.IsUnknown(t) && !elemType.Equals(t) {
			c.errorAt(elem.Loc(), diagnostics.ErrTypeMismatch,
				"array elements must all be '%s', found '%s'", elemType, t)
		}
	}
	return types.NewFixedArray(elemType, len(e.Elements))
}

func (c *checker) checkBorrow(e *ast.BorrowExpr) types.SemType {
	t := c.checkExpr(e.X)
	if !ast.IsPlace(e.X) {
		c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
			"can only borrow a named place")
		return types.TypeUnknown
	}
	// References share the referent's type; ref-ness lives in the
	// ownership layer, not the type layer.
	return t
}

func (c *checker) checkUnary(e *ast.UnaryExpr) types.SemType {
	t := c.checkExpr(e.X)
	if types.IsUnknown(t) {
		return t
	}
	switch e.Op.Kind {
	case tokens.MINUS_TOKEN:
		if !t.Equals(types.TypeInt) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"operator '-' requires 'int', found '%s'", t)
			return types.TypeUnknown
		}
		return types.TypeInt
	case tokens.NOT_TOKEN:
		if !t.Equals(types.TypeBool) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"operator '!' requires 'bool', found '%s'", t)
			return types.TypeUnknown
		}
		return types.TypeBool
	}
	return types.TypeUnknown
}

func (c *checker) checkBinary(e *ast.BinaryExpr) types.SemType {
	left := c.checkExpr(e.X)
	right := c.checkExpr(e.Y)
	if types.IsUnknown(left) || types.IsUnknown(right) {
		switch e.Op.Kind {
		case tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN,
			tokens.LESS_TOKEN, tokens.LESS_EQUAL_TOKEN,
			tokens.GREATER_TOKEN, tokens.GREATER_EQUAL_TOKEN,
			tokens.AND_TOKEN, tokens.OR_TOKEN:
			return types.TypeBool
		default:
			return types.TypeUnknown
		}
	}

	switch e.Op.Kind {
	case tokens.PLUS_TOKEN, tokens.MINUS_TOKEN, tokens.MUL_TOKEN,
		tokens.DIV_TOKEN, tokens.MOD_TOKEN:
		if !left.Equals(types.TypeInt) || !right.Equals(types.TypeInt) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"operator '%s' requires 'int' operands, found '%s' and '%s'",
				e.Op.Kind, left, right)
			return types.TypeUnknown
		}
		return types.TypeInt

	case tokens.DOUBLE_EQUAL_TOKEN, tokens.NOT_EQUAL_TOKEN,
		tokens.LESS_TOKEN, tokens.LESS_EQUAL_TOKEN,
		tokens.GREATER_TOKEN, tokens.GREATER_EQUAL_TOKEN:
		if !left.Equals(right) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"cannot compare '%s' with '%s'", left, right)
		}
		return types.TypeBool

	case tokens.AND_TOKEN, tokens.OR_TOKEN:
		if !left.Equals(types.TypeBool) || !right.Equals(types.TypeBool) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"operator '%s' requires 'bool' operands, found '%s' and '%s'",
				e.Op.Kind, left, right)
		}
		return types.TypeBool
	}
	return types.TypeUnknown
}

func (c *checker) checkCall(e *ast.CallExpr) types.SemType {
	argTypes := make([]types.SemType, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.checkExpr(arg)
	}

	sym, ok := c.scope.Lookup(e.Fun.Name)
	if !ok {
		c.errorAt(e.Fun.Loc(), diagnostics.ErrUndefinedSymbol,
			"undefined function '%s'", e.Fun.Name)
		return types.TypeUnknown
	}
	c.ctx.Bind(e.Fun, sym)

	sig, ok := sym.Type.(*types.FunctionType)
	if !ok {
		c.errorAt(e.Fun.Loc(), diagnostics.ErrNotCallable,
			"'%s' is not callable", e.Fun.Name)
		return types.TypeUnknown
	}

	if len(e.Args) != len(sig.Params) {
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("'%s' expects %d argument(s), got %d",
				e.Fun.Name, len(sig.Params), len(e.Args))).
				WithCode(diagnostics.ErrArityMismatch).
				WithLocation(e.Loc()).
				WithHint(fmt.Sprintf("'%s' has signature %s", e.Fun.Name, sig)),
		)
		return sig.Return
	}

	for i, argType := range argTypes {
		if !compatible(sig.Params[i], argType) {
			c.errorAt(e.Args[i].Loc(), diagnostics.ErrTypeMismatch,
				"argument %d to '%s' must be '%s', found '%s'",
				i+1, e.Fun.Name, sig.Params[i], argType)
		}
	}
	return sig.Return
}

func (c *checker) checkFieldAccess(e *ast.FieldAccessExpr) types.SemType {
	xType := c.checkExpr(e.X)
	switch t := xType.(type) {
	case *types.StructType:
		field, ok := t.Field(e.Field.Name)
		if !ok {
			c.errorAt(e.Field.Loc(), diagnostics.ErrInvalidFieldAccess,
				"struct '%s' has no field '%s'", t.Name, e.Field.Name)
			return types.TypeUnknown
		}
		return field.Type
	case *types.MutexType:
		c.mutexAccessError(e.Loc(), t)
		return types.TypeUnknown
	default:
		if !types.IsUnknown(xType) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidFieldAccess,
				"type '%s' has no fields", xType)
		}
		return types.TypeUnknown
	}
}

func (c *checker) checkIndex(e *ast.IndexExpr) types.SemType {
	xType := c.checkExpr(e.X)
	idxType := c.checkExpr(e.Index)

	if !types.IsUnknown(idxType) && !idxType.Equals(types.TypeInt) {
		c.errorAt(e.Index.Loc(), diagnostics.ErrTypeMismatch,
			"array index must be 'int', found '%s'", idxType)
	}

	switch t := xType.(type) {
	case *types.ArrayType:
		if t.IsFixed() {
			if idx, ok := consteval.EvalInt(e.Index); ok {
				if idx < 0 || idx >= int64(t.Length) {
					c.errorAt(e.Index.Loc(), diagnostics.ErrIndexOutOfBounds,
						"index %d is out of bounds for '%s'", idx, t)
				}
			}
		}
		return t.Element
	case *types.MutexType:
		c.mutexAccessError(e.Loc(), t)
		return types.TypeUnknown
	default:
		if !types.IsUnknown(xType) {
			c.errorAt(e.Loc(), diagnostics.ErrInvalidOperation,
				"type '%s' cannot be indexed", xType)
		}
		return types.TypeUnknown
	}
}

func (c *checker) checkStructLiteral(e *ast.StructLiteral) types.SemType {
	sym, ok := c.scope.Lookup(e.Name.Name)
	if !ok {
		c.errorAt(e.Name.Loc(), diagnostics.ErrUndefinedSymbol,
			"undefined type '%s'", e.Name.Name)
		return types.TypeUnknown
	}
	c.ctx.Bind(e.Name, sym)

	structType, ok := sym.Type.(*types.StructType)
	if !ok || sym.Kind != symbols.SymbolType {
		c.errorAt(e.Name.Loc(), diagnostics.ErrInvalidOperation,
			"'%s' is not a struct", e.Name.Name)
		return types.TypeUnknown
	}

	seen := make(map[string]bool)
	for _, init := range e.Fields {
		valType := c.checkExpr(init.Value)

		if seen[init.Name.Name] {
			c.errorAt(init.Name.Loc(), diagnostics.ErrDuplicateField,
				"field '%s' given more than once in '%s' literal",
				init.Name.Name, structType.Name)
			continue
		}
		seen[init.Name.Name] = true

		field, ok := structType.Field(init.Name.Name)
		if !ok {
			c.errorAt(init.Name.Loc(), diagnostics.ErrInvalidFieldAccess,
				"struct '%s' has no field '%s'", structType.Name, init.Name.Name)
			continue
		}
		if !compatible(field.Type, valType) {
			c.errorAt(init.Value.Loc(), diagnostics.ErrTypeMismatch,
				"field '%s' of '%s' is '%s', found '%s'",
				field.Name, structType.Name, field.Type, valType)
		}
	}

	var missing []string
	for _, field := range structType.Fields {
		if !seen[field.Name] {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		c.errorAt(e.Loc(), diagnostics.ErrMissingField,
			"missing field(s) in '%s' literal: %s",
			structType.Name, joinNames(missing))
	}
	return structType
}

func (c *checker) checkEnumLiteral(e *ast.EnumLiteral) types.SemType {
	var payloadType types.SemType
	if e.Payload != nil {
		payloadType = c.checkExpr(e.Payload)
	}

	sym, ok := c.scope.Lookup(e.EnumName.Name)
	if !ok {
		c.errorAt(e.EnumName.Loc(), diagnostics.ErrUndefinedSymbol,
			"undefined type '%s'", e.EnumName.Name)
		return types.TypeUnknown
	}
	c.ctx.Bind(e.EnumName, sym)

	enumType, ok := sym.Type.(*types.EnumType)
	if !ok || sym.Kind != symbols.SymbolType {
		c.errorAt(e.EnumName.Loc(), diagnostics.ErrInvalidOperation,
			"'%s' is not an enum", e.EnumName.Name)
		return types.TypeUnknown
	}

	variant, ok := enumType.Variant(e.Variant.Name)
	if !ok {
		c.errorAt(e.Variant.Loc(), diagnostics.ErrUnknownVariant,
			"enum '%s' has no variant '%s'", enumType.Name, e.Variant.Name)
		return enumType
	}

	switch {
	case variant.Payload == nil && e.Payload != nil:
		c.errorAt(e.Payload.Loc(), diagnostics.ErrArityMismatch,
			"variant '%s::%s' takes no payload", enumType.Name, variant.Name)
	case variant.Payload != nil && e.Payload == nil:
		c.errorAt(e.Loc(), diagnostics.ErrArityMismatch,
			"variant '%s::%s' requires a payload of type '%s'",
			enumType.Name, variant.Name, variant.Payload)
	case variant.Payload != nil:
		if !compatible(variant.Payload, payloadType) {
			c.errorAt(e.Payload.Loc(), diagnostics.ErrTypeMismatch,
				"payload of '%s::%s' must be '%s', found '%s'",
				enumType.Name, variant.Name, variant.Payload, payloadType)
		}
	}
	return enumType
}

func (c *checker) mutexAccessError(loc *source.Location, t *types.MutexType) {
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("cannot access the value inside '%s' without lock", t)).
			WithCode(diagnostics.ErrInvalidFieldAccess).
			WithLocation(loc).
			WithHint("use 'lock <cell> as <name> { ... }' to access the wrapped value"),
	)
}

func (c *checker) errorAt(loc *source.Location, code string, format string, args ...any) {
	c.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf(format, args...)).
			WithCode(code).
			WithLocation(loc),
	)
}

// compatible reports whether a value of type got may flow into a slot
// declared as want. Equality is structural with one asymmetric rule: a
// dynamic sequence slot accepts any array of a compatible element type.
// Unknown is a wildcard so recovery placeholders never cascade.
func compatible(want, got types.SemType) bool {
	if want == nil || got == nil {
		return true
	}
	if types.IsUnknown(want) || types.IsUnknown(got) {
		return true
	}
	switch w := want.(type) {
	case *types.ArrayType:
		g, ok := got.(*types.ArrayType)
		if !ok {
			return false
		}
		if w.IsFixed() && w.Length != g.Length {
			return false
		}
		return compatible(w.Element, g.Element)
	case *types.MutexType:
		g, ok := got.(*types.MutexType)
		if !ok {
			return false
		}
		return compatible(w.Inner, g.Inner)
	}
	return want.Equals(got)
}

func unparen(e ast.Expression) ast.Expression {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
