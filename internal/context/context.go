// Package context provides the central compilation state shared by the
// semantic phases: the merged program tree, the scope hierarchy rooted at
// the universe scope, the diagnostic bag, and the type annotations
// produced by the type checker.
//
// There is no ambient global symbol table; scopes are threaded through
// the traversal explicitly, starting from Universe -> Globals.
package context

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/builtins"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/table"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// CompilerContext is the central compilation state manager.
type CompilerContext struct {
	// Entry point file path
	EntryFile string

	// Module-merged program tree (imports already spliced in)
	Program *ast.Program

	// Universe scope: built-in function signatures
	Universe *table.SymbolTable

	// Globals: top-level functions, structs, and enums; child of Universe
	Globals *table.SymbolTable

	// Diagnostics: centralized error collection
	Diagnostics *diagnostics.DiagnosticBag

	// ExprTypes annotates every checked expression with its type; this is
	// the "type-annotated tree" handed to code generation on success.
	ExprTypes map[ast.Expression]types.SemType

	// Resolutions maps every identifier (uses and declaration sites) to
	// the symbol it denotes, so later passes reuse the type checker's
	// scope resolution instead of redoing it.
	Resolutions map[*ast.IdentifierExpr]*symbols.Symbol

	// Debug enables phase progress output in the driver.
	Debug bool
}

// New creates a compiler context with the universe scope populated.
func New(entryFile string) *CompilerContext {
	universe := table.NewSymbolTable(nil)
	builtins.Register(universe)

	return &CompilerContext{
		EntryFile:   entryFile,
		Universe:    universe,
		Globals:     table.NewSymbolTable(universe),
		Diagnostics: diagnostics.NewDiagnosticBag(),
		ExprTypes:   make(map[ast.Expression]types.SemType),
		Resolutions: make(map[*ast.IdentifierExpr]*symbols.Symbol),
	}
}

// SetExprType records the checked type of an expression.
func (ctx *CompilerContext) SetExprType(expr ast.Expression, t types.SemType) {
	if expr != nil && t != nil {
		ctx.ExprTypes[expr] = t
	}
}

// TypeOf returns the checked type of an expression, or TypeUnknown if it
// was never checked (which only happens after earlier errors).
func (ctx *CompilerContext) TypeOf(expr ast.Expression) types.SemType {
	if t, ok := ctx.ExprTypes[expr]; ok {
		return t
	}
	return types.TypeUnknown
}

// Bind records which symbol an identifier denotes.
func (ctx *CompilerContext) Bind(ident *ast.IdentifierExpr, sym *symbols.Symbol) {
	if ident != nil && sym != nil {
		ctx.Resolutions[ident] = sym
	}
}

// SymbolOf returns the symbol an identifier was resolved to.
func (ctx *CompilerContext) SymbolOf(ident *ast.IdentifierExpr) (*symbols.Symbol, bool) {
	sym, ok := ctx.Resolutions[ident]
	return sym, ok
}

// ResolveType converts a syntactic type annotation into a semantic type.
// Unknown type names produce a diagnostic and TypeUnknown.
func (ctx *CompilerContext) ResolveType(node ast.TypeNode) types.SemType {
	switch t := node.(type) {
	case *ast.NamedTypeNode:
		switch t.Name {
		case "int":
			return types.TypeInt
		case "bool":
			return types.TypeBool
		case "char":
			return types.TypeChar
		case "string":
			return types.TypeString
		}
		if sym, ok := ctx.Globals.Lookup(t.Name); ok && sym.Kind == symbols.SymbolType {
			return sym.Type
		}
		ctx.Diagnostics.Add(
			diagnostics.NewError("undefined type '" + t.Name + "'").
				WithCode(diagnostics.ErrUndefinedSymbol).
				WithLocation(t.Loc()),
		)
		return types.TypeUnknown
	case *ast.ArrayTypeNode:
		elem := ctx.ResolveType(t.Element)
		if t.Length < 0 {
			return types.NewSequence(elem)
		}
		return types.NewFixedArray(elem, t.Length)
	case *ast.MutexTypeNode:
		return types.NewMutex(ctx.ResolveType(t.Inner))
	default:
		return types.TypeUnknown
	}
}
