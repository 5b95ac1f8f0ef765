// Package typechecker implements the type checking pass. It walks every
// function body, resolves identifiers against the scope stack, verifies
// the typing rules (structural equality, no coercion), and annotates the
// tree: expression types land in the context's ExprTypes map and
// identifier resolutions in Resolutions, so the ownership tracker can
// reuse them without redoing scope resolution.
//
// The checker never mutates ownership state; it only seeds each symbol's
// declaration-time facts (mutability, ref-ness, initialized-at-decl).
package typechecker

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/table"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

type checker struct {
	ctx   *context.CompilerContext
	scope *table.SymbolTable
	ret   types.SemType // enclosing function's return type
}

// Check type-checks every function body in the program. The collector
// must have run first so top-level signatures are resolved.
func Check(ctx *context.CompilerContext) {
	for _, node := range ctx.Program.Nodes {
		if fn, ok := node.(*ast.FuncDecl); ok {
			checkFunction(ctx, fn)
		}
	}
}

func checkFunction(ctx *context.CompilerContext, fn *ast.FuncDecl) {
	sym, ok := ctx.Globals.GetSymbol(fn.Name.Name)
	if !ok {
		return // collector already reported
	}
	sig, ok := sym.Type.(*types.FunctionType)
	if !ok {
		return
	}

	scope := table.NewSymbolTable(ctx.Globals)
	for i, param := range fn.Params {
		pSym := &symbols.Symbol{
			Name:        param.Name.Name,
			Kind:        symbols.SymbolParameter,
			Type:        sig.Params[i],
			Decl:        param.Name.Loc(),
			Initialized: true,
		}
		scope.Declare(param.Name.Name, pSym)
		ctx.Bind(param.Name, pSym)
	}

	c := &checker{ctx: ctx, scope: scope, ret: sig.Return}
	for _, node := range fn.Body.Nodes {
		c.checkNode(node)
	}
}

// enter pushes a child scope and returns the matching pop.
func (c *checker) enter() func() {
	parent := c.scope
	c.scope = table.NewSymbolTable(parent)
	return func() { c.scope = parent }
}

func (c *checker) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	defer c.enter()()
	for _, node := range b.Nodes {
		c.checkNode(node)
	}
}

func (c *checker) checkNode(node ast.Node) {
	switch s := node.(type) {
	case *ast.LetStmt:
		c.checkLet(s)
	case *ast.AssignStmt:
		c.checkAssign(s)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.IfStmt:
		c.checkIf(s)
	case *ast.WhileStmt:
		c.checkWhile(s)
	case *ast.MatchStmt:
		c.checkMatch(s)
	case *ast.LockStmt:
		c.checkLock(s)
	case *ast.UnsafeStmt:
		c.checkBlock(s.Body)
	case *ast.SpawnStmt:
		c.checkBlock(s.Body)
	case *ast.ExprStmt:
		c.checkExpr(s.X)
	case *ast.Block:
		c.checkBlock(s)
	}
}

func (c *checker) checkLet(s *ast.LetStmt) {
	var declared types.SemType
	if s.Type != nil {
		declared = c.ctx.ResolveType(s.Type)
	}

	var valType types.SemType
	if s.Value != nil {
		valType = c.checkExpr(s.Value)
	}

	bindType := declared
	if bindType == nil {
		bindType = valType
	}
	if bindType == nil {
		bindType = types.TypeUnknown
	}
	if declared != nil && valType != nil && !compatible(declared, valType) {
		c.errorAt(s.Value.Loc(), diagnostics.ErrTypeMismatch,
			"cannot initialize '%s: %s' with a value of type '%s'",
			s.Name.Name, declared, valType)
	}

	sym := &symbols.Symbol{
		Name:        s.Name.Name,
		Kind:        symbols.SymbolVariable,
		Type:        bindType,
		Mutable:     s.Mutable,
		Decl:        s.Name.Loc(),
		Initialized: s.Value != nil,
	}

	// A binding initialized from a borrow (or from another ref binding)
	// aliases its source: it is never moved from, and writes through it
	// require the borrow to be mutable.
	switch v := unparen(s.Value).(type) {
	case *ast.BorrowExpr:
		sym.IsRef = true
		sym.Mutable = v.Mutable
	case *ast.IdentifierExpr:
		if src, ok := c.ctx.SymbolOf(v); ok && src.IsRef {
			sym.IsRef = true
			sym.Mutable = src.Mutable
		}
	}

	c.scope.Declare(s.Name.Name, sym)
	c.ctx.Bind(s.Name, sym)
}

func (c *checker) checkAssign(s *ast.AssignStmt) {
	targetType := c.checkExpr(s.Target)
	valType := c.checkExpr(s.Value)

	root := ast.RootIdentifier(s.Target)
	if root == nil {
		c.errorAt(s.Target.Loc(), diagnostics.ErrInvalidAssignment,
			"assignment target must be a named place")
		return
	}
	sym, ok := c.ctx.SymbolOf(root)
	if !ok {
		return // undefined symbol already reported by checkExpr
	}

	switch sym.Kind {
	case symbols.SymbolFunction, symbols.SymbolBuiltin, symbols.SymbolType:
		c.errorAt(root.Loc(), diagnostics.ErrInvalidAssignment,
			"cannot assign to '%s'", root.Name)
		return
	}

	if !sym.Mutable {
		// A binding declared without an initializer takes its first
		// value by assignment; the ownership tracker flags any second
		// write to an immutable binding.
		_, isBareIdent := unparen(s.Target).(*ast.IdentifierExpr)
		if !isBareIdent || sym.Initialized {
			diag := diagnostics.NewError(
				fmt.Sprintf("cannot assign to immutable binding '%s'", root.Name)).
				WithCode(diagnostics.ErrInvalidAssignment).
				WithLocation(s.Target.Loc())
			if sym.IsRef {
				diag.WithHint(fmt.Sprintf("'%s' is a shared borrow; take '&mut' to mutate through it", root.Name))
			} else {
				diag.WithHint(fmt.Sprintf("declare it with 'let mut %s' to allow mutation", root.Name))
			}
			c.ctx.Diagnostics.Add(diag)
			return
		}
	}

	if !compatible(targetType, valType) {
		c.errorAt(s.Value.Loc(), diagnostics.ErrTypeMismatch,
			"cannot assign value of type '%s' to a place of type '%s'",
			valType, targetType)
	}
}

func (c *checker) checkReturn(s *ast.ReturnStmt) {
	resType := types.TypeUnit
	if s.Result != nil {
		resType = c.checkExpr(s.Result)
	}
	if !compatible(c.ret, resType) {
		c.errorAt(s.Loc(), diagnostics.ErrTypeMismatch,
			"cannot return '%s' from a function returning '%s'", resType, c.ret)
	}
}

func (c *checker) checkCond(cond ast.Expression) {
	t := c.checkExpr(cond)
	if !types.IsUnknown(t) && !t.Equals(types.TypeBool) {
		c.errorAt(cond.Loc(), diagnostics.ErrTypeMismatch,
			"condition must be 'bool', found '%s'", t)
	}
}

func (c *checker) checkIf(s *ast.IfStmt) {
	c.checkCond(s.Cond)
	c.checkBlock(s.Body)
	switch e := s.Else.(type) {
	case *ast.Block:
		c.checkBlock(e)
	case *ast.IfStmt:
		c.checkIf(e)
	}
}

func (c *checker) checkWhile(s *ast.WhileStmt) {
	c.checkCond(s.Cond)
	c.checkBlock(s.Body)
}

func (c *checker) checkLock(s *ast.LockStmt) {
	cellType := c.checkExpr(s.Cell)

	inner := types.TypeUnknown
	if mt, ok := cellType.(*types.MutexType); ok {
		inner = mt.Inner
	} else if !types.IsUnknown(cellType) {
		c.errorAt(s.Cell.Loc(), diagnostics.ErrInvalidOperation,
			"lock requires a 'Mutex' value, found '%s'", cellType)
	}

	defer c.enter()()
	// The accessor is an exclusive, scope-bounded alias of the wrapped
	// value: mutable, and released on every exit path of the block.
	acc := &symbols.Symbol{
		Name:        s.Name.Name,
		Kind:        symbols.SymbolVariable,
		Type:        inner,
		Mutable:     true,
		IsRef:       true,
		Decl:        s.Name.Loc(),
		Initialized: true,
	}
	c.scope.Declare(s.Name.Name, acc)
	c.ctx.Bind(s.Name, acc)

	for _, node := range s.Body.Nodes {
		c.checkNode(node)
	}
}

func (c *checker) checkMatch(s *ast.MatchStmt) {
	scrType := c.checkExpr(s.Scrutinee)

	var enumType *types.EnumType
	if et, ok := scrType.(*types.EnumType); ok {
		enumType = et
	} else if !types.IsUnknown(scrType) {
		c.errorAt(s.Scrutinee.Loc(), diagnostics.ErrInvalidOperation,
			"match requires an enum value, found '%s'", scrType)
	}

	covered := make(map[string]bool)
	sawWildcard := false

	for _, arm := range s.Arms {
		pop := c.enter()
		c.checkPattern(arm.Pattern, enumType, covered, &sawWildcard)
		if arm.Body != nil {
			for _, node := range arm.Body.Nodes {
				c.checkNode(node)
			}
		}
		pop()
	}

	if enumType == nil || sawWildcard {
		return
	}
	var missing []string
	for _, v := range enumType.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("match on '%s' is missing variants: %s",
			enumType.Name, joinNames(missing))
		c.ctx.Diagnostics.Add(
			diagnostics.NewError(msg).
				WithCode(diagnostics.ErrNonExhaustiveMatch).
				WithLocation(s.Loc()).
				WithHint("add arms for the missing variants or a wildcard '_' arm"),
		)
	}
}

func (c *checker) checkPattern(p *ast.MatchPattern, enumType *types.EnumType, covered map[string]bool, sawWildcard *bool) {
	if p == nil {
		return
	}
	if p.Wildcard {
		*sawWildcard = true
		return
	}
	if enumType == nil {
		// Scrutinee failed to check; still declare the binder so arm
		// bodies do not cascade undefined-symbol errors.
		c.declareBinder(p.Binder, types.TypeUnknown)
		return
	}

	if p.EnumName.Name != enumType.Name {
		c.errorAt(p.EnumName.Loc(), diagnostics.ErrTypeMismatch,
			"pattern mentions '%s' but the matched value is '%s'",
			p.EnumName.Name, enumType.Name)
		c.declareBinder(p.Binder, types.TypeUnknown)
		return
	}

	variant, ok := enumType.Variant(p.Variant.Name)
	if !ok {
		c.errorAt(p.Variant.Loc(), diagnostics.ErrUnknownVariant,
			"enum '%s' has no variant '%s'", enumType.Name, p.Variant.Name)
		c.declareBinder(p.Binder, types.TypeUnknown)
		return
	}
	covered[variant.Name] = true

	if p.Binder != nil {
		if variant.Payload == nil {
			c.errorAt(p.Binder.Loc(), diagnostics.ErrTypeMismatch,
				"variant '%s::%s' carries no payload to bind",
				enumType.Name, variant.Name)
			c.declareBinder(p.Binder, types.TypeUnknown)
			return
		}
		c.declareBinder(p.Binder, variant.Payload)
	}
}

func (c *checker) declareBinder(binder *ast.IdentifierExpr, t types.SemType) {
	if binder == nil {
		return
	}
	sym := &symbols.Symbol{
		Name:        binder.Name,
		Kind:        symbols.SymbolVariable,
		Type:        t,
		Decl:        binder.Loc(),
		Initialized: true,
	}
	c.scope.Declare(binder.Name, sym)
	c.ctx.Bind(binder, sym)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
