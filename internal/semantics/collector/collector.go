// Package collector performs the first semantic pass: it declares every
// top-level name (functions, structs, enums) in the global scope and
// verifies the structural invariants that make further analysis
// meaningful. Structural errors here are fatal: a duplicate top-level
// declaration or a missing entry function aborts the walk immediately.
package collector

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/builtins"
	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// Collect declares all top-level symbols and resolves their signatures.
// Returns false if a structural error stopped analysis.
func Collect(ctx *context.CompilerContext) bool {
	if ctx.Program == nil {
		return false
	}

	// Pass 1: declare type names so struct fields and enum payloads can
	// reference each other regardless of declaration order.
	for _, node := range ctx.Program.Nodes {
		switch decl := node.(type) {
		case *ast.StructDecl:
			declareTopLevel(ctx, decl.Name, symbols.SymbolType,
				types.NewStruct(decl.Name.Name, nil))
		case *ast.EnumDecl:
			declareTopLevel(ctx, decl.Name, symbols.SymbolType,
				types.NewEnum(decl.Name.Name, nil))
		}
	}
	if ctx.Diagnostics.Fatal() {
		return false
	}

	// Pass 2: resolve field, variant, and signature types.
	for _, node := range ctx.Program.Nodes {
		switch decl := node.(type) {
		case *ast.StructDecl:
			resolveStructDecl(ctx, decl)
		case *ast.EnumDecl:
			resolveEnumDecl(ctx, decl)
		case *ast.FuncDecl:
			declareFunc(ctx, decl)
		}
	}
	if ctx.Diagnostics.Fatal() {
		return false
	}

	return checkEntryPoint(ctx)
}

func declareTopLevel(ctx *context.CompilerContext, name *ast.IdentifierExpr, kind symbols.SymbolKind, t types.SemType) *symbols.Symbol {
	if existing, ok := ctx.Globals.GetSymbol(name.Name); ok {
		ctx.Diagnostics.AddFatal(
			diagnostics.NewError(fmt.Sprintf("duplicate top-level declaration '%s'", name.Name)).
				WithCode(diagnostics.ErrDuplicateTopLevel).
				WithLocation(name.Loc()).
				WithHint(fmt.Sprintf("'%s' was first declared at %s", name.Name, existing.Decl)),
		)
		return nil
	}
	if builtins.IsBuiltin(name.Name) {
		ctx.Diagnostics.AddFatal(
			diagnostics.NewError(fmt.Sprintf("'%s' shadows a built-in function", name.Name)).
				WithCode(diagnostics.ErrDuplicateTopLevel).
				WithLocation(name.Loc()),
		)
		return nil
	}

	sym := &symbols.Symbol{
		Name:        name.Name,
		Kind:        kind,
		Type:        t,
		Decl:        name.Loc(),
		Initialized: true,
	}
	ctx.Globals.Declare(name.Name, sym)
	ctx.Bind(name, sym)
	return sym
}

func resolveStructDecl(ctx *context.CompilerContext, decl *ast.StructDecl) {
	sym, ok := ctx.Globals.GetSymbol(decl.Name.Name)
	if !ok {
		return
	}
	structType, ok := sym.Type.(*types.StructType)
	if !ok {
		return
	}

	seen := make(map[string]bool)
	for _, field := range decl.Fields {
		if seen[field.Name.Name] {
			ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("duplicate field '%s' in struct '%s'", field.Name.Name, decl.Name.Name)).
					WithCode(diagnostics.ErrDuplicateField).
					WithLocation(field.Name.Loc()),
			)
			continue
		}
		seen[field.Name.Name] = true
		structType.Fields = append(structType.Fields, types.StructField{
			Name: field.Name.Name,
			Type: ctx.ResolveType(field.Type),
		})
	}
}

func resolveEnumDecl(ctx *context.CompilerContext, decl *ast.EnumDecl) {
	sym, ok := ctx.Globals.GetSymbol(decl.Name.Name)
	if !ok {
		return
	}
	enumType, ok := sym.Type.(*types.EnumType)
	if !ok {
		return
	}

	seen := make(map[string]bool)
	for _, variant := range decl.Variants {
		if seen[variant.Name.Name] {
			ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("duplicate variant '%s' in enum '%s'", variant.Name.Name, decl.Name.Name)).
					WithCode(diagnostics.ErrDuplicateField).
					WithLocation(variant.Name.Loc()),
			)
			continue
		}
		seen[variant.Name.Name] = true

		var payload types.SemType
		if variant.Payload != nil {
			payload = ctx.ResolveType(variant.Payload)
		}
		enumType.Variants = append(enumType.Variants, types.EnumVariant{
			Name:    variant.Name.Name,
			Payload: payload,
		})
	}
}

func declareFunc(ctx *context.CompilerContext, decl *ast.FuncDecl) {
	params := make([]types.SemType, len(decl.Params))
	for i, param := range decl.Params {
		params[i] = ctx.ResolveType(param.Type)
	}

	ret := types.TypeUnit
	if decl.Return != nil {
		ret = ctx.ResolveType(decl.Return)
	}

	declareTopLevel(ctx, decl.Name, symbols.SymbolFunction, types.NewFunction(params, ret))
}

// checkEntryPoint verifies the program declares fn main() with no
// parameters and unit return.
func checkEntryPoint(ctx *context.CompilerContext) bool {
	sym, ok := ctx.Globals.GetSymbol("main")
	if !ok || sym.Kind != symbols.SymbolFunction {
		ctx.Diagnostics.AddFatal(
			diagnostics.NewError("no 'main' function found").
				WithCode(diagnostics.ErrNoMainFunction).
				WithLocation(ctx.Program.Loc()).
				WithHint("Brain programs must define a 'fn main()' entry point"),
		)
		return false
	}

	sig := sym.Type.(*types.FunctionType)
	if len(sig.Params) != 0 || !types.IsUnit(sig.Return) {
		ctx.Diagnostics.AddFatal(
			diagnostics.NewError("'main' must take no parameters and return nothing").
				WithCode(diagnostics.ErrNoMainFunction).
				WithLocation(sym.Decl),
		)
		return false
	}
	return true
}
