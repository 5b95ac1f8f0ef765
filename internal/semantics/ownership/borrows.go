package ownership

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// borrow is one live borrow of a place. The target is the root binding;
// path narrows the borrow to a field or element of it ("[*]" stands for
// any index, since index values are not tracked statically).
type borrow struct {
	target       *symbols.Symbol
	path         []string
	mutable      bool
	lockAccessor bool
	loc          *source.Location
	released     bool
}

func (b *borrow) acquire() {
	if b.mutable {
		b.target.MutCount++
	} else {
		b.target.SharedCount++
	}
}

func (b *borrow) release() {
	if b.released {
		return
	}
	b.released = true
	if b.mutable {
		b.target.MutCount--
	} else {
		b.target.SharedCount--
	}
}

func (b *borrow) clone(loc *source.Location) *borrow {
	return &borrow{
		target:       b.target,
		path:         b.path,
		mutable:      b.mutable,
		lockAccessor: b.lockAccessor,
		loc:          loc,
	}
}

func (b *borrow) kind() string {
	if b.mutable {
		return "mutable"
	}
	return "shared"
}

// placePath flattens a place expression into its field segments relative
// to the root binding.
func placePath(e ast.Expression) []string {
	switch p := e.(type) {
	case *ast.FieldAccessExpr:
		return append(placePath(p.X), p.Field.Name)
	case *ast.IndexExpr:
		return append(placePath(p.X), "[*]")
	case *ast.ParenExpr:
		return placePath(p.X)
	}
	return nil
}

// pathsOverlap reports whether two place paths can refer to overlapping
// storage: one must be a prefix of the other.
func pathsOverlap(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// liveBorrowOn returns a live borrow of sym whose path overlaps the given
// one (nil path means the whole value), excluding self.
func (t *tracker) liveBorrowOn(sym *symbols.Symbol, path []string, self *borrow) *borrow {
	check := func(list []*borrow) *borrow {
		for _, b := range list {
			if b == self || b.released || b.target != sym {
				continue
			}
			if pathsOverlap(b.path, path) {
				return b
			}
		}
		return nil
	}
	if b := check(t.temp); b != nil {
		return b
	}
	for _, f := range t.frames {
		if b := check(f.borrows); b != nil {
			return b
		}
	}
	return nil
}

// mutableBorrowOn is like liveBorrowOn but only considers exclusive
// borrows; shared reads are legal while shared borrows are live.
func (t *tracker) mutableBorrowOn(sym *symbols.Symbol, path []string) *borrow {
	check := func(list []*borrow) *borrow {
		for _, b := range list {
			if b.released || !b.mutable || b.target != sym {
				continue
			}
			if pathsOverlap(b.path, path) {
				return b
			}
		}
		return nil
	}
	if b := check(t.temp); b != nil {
		return b
	}
	for _, f := range t.frames {
		if b := check(f.borrows); b != nil {
			return b
		}
	}
	return nil
}

func (t *tracker) reportConflict(loc *source.Location, msg string, existing *borrow) {
	if t.unsafeDepth > 0 {
		return
	}
	diag := diagnostics.NewError(msg).
		WithCode(diagnostics.ErrBorrowConflict).
		WithLocation(loc)
	if existing != nil && existing.loc != nil {
		diag.WithHint(fmt.Sprintf("the %s borrow was taken at %s", existing.kind(), existing.loc))
	}
	t.ctx.Diagnostics.Add(diag)
}

// checkUsable verifies a binding currently holds a value: neither moved
// out nor still uninitialized.
func (t *tracker) checkUsable(sym *symbols.Symbol, loc *source.Location) bool {
	if sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter {
		return true
	}
	if !sym.Initialized {
		if t.unsafeDepth == 0 {
			t.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("use of uninitialized binding '%s'", sym.Name)).
					WithCode(diagnostics.ErrUseOfUninitialized).
					WithLocation(loc).
					WithHint(fmt.Sprintf("assign a value to '%s' before using it", sym.Name)),
			)
		}
		return false
	}
	if sym.Moved {
		if t.unsafeDepth == 0 {
			diag := diagnostics.NewError(fmt.Sprintf("use of moved value '%s'", sym.Name)).
				WithCode(diagnostics.ErrUseAfterMove).
				WithLocation(loc)
			if sym.MovedAt != nil {
				diag.WithHint(fmt.Sprintf("'%s' was moved at %s", sym.Name, sym.MovedAt))
			}
			t.ctx.Diagnostics.Add(diag)
		}
		return false
	}
	return true
}

// createBorrow records a borrow expression. Named borrows (stored into a
// binding) live until their frame pops; temporary borrows until the
// enclosing statement ends.
func (t *tracker) createBorrow(e *ast.BorrowExpr, named bool) *borrow {
	root := ast.RootIdentifier(e.X)
	if root == nil {
		return nil
	}
	sym, ok := t.ctx.SymbolOf(root)
	if !ok {
		return nil
	}
	t.spawnCheck(sym, root.Loc())
	if !t.checkUsable(sym, e.Loc()) {
		return nil
	}
	t.readIndexOperands(e.X)

	b := &borrow{
		target:  sym,
		path:    placePath(e.X),
		mutable: e.Mutable,
		loc:     e.Loc(),
	}
	if conflict := t.liveBorrowOn(sym, b.path, nil); conflict != nil {
		if conflict.mutable || b.mutable {
			t.reportConflict(e.Loc(),
				fmt.Sprintf("cannot borrow '%s' as %s because it is already borrowed as %s",
					sym.Name, b.kind(), conflict.kind()),
				conflict)
		}
	}
	b.acquire()

	if named {
		t.currentFrame().borrows = append(t.currentFrame().borrows, b)
	} else {
		t.temp = append(t.temp, b)
	}
	return b
}

// useValue evaluates an expression in a consuming position (call
// argument, initializer, assignment source, return value, payload).
// Non-copy bindings used this way move out.
func (t *tracker) useValue(e ast.Expression) {
	switch v := e.(type) {
	case nil:
	case *ast.IdentifierExpr:
		t.useIdent(v)
	case *ast.BorrowExpr:
		t.createBorrow(v, false)
	case *ast.UnaryExpr:
		t.readValue(v.X)
	case *ast.BinaryExpr:
		// Operator operands are read, never consumed: comparing two
		// strings must not invalidate them.
		t.readValue(v.X)
		t.readValue(v.Y)
	case *ast.CallExpr:
		for _, arg := range v.Args {
			t.useValue(arg)
		}
	case *ast.FieldAccessExpr, *ast.IndexExpr:
		t.readPlace(v)
	case *ast.ArrayLiteral:
		for _, elem := range v.Elements {
			t.useValue(elem)
		}
	case *ast.StructLiteral:
		for _, init := range v.Fields {
			t.useValue(init.Value)
		}
	case *ast.EnumLiteral:
		t.useValue(v.Payload)
	case *ast.ParenExpr:
		t.useValue(v.X)
	}
}

// useIdent is a by-value use of a binding: a move for non-copy types.
func (t *tracker) useIdent(e *ast.IdentifierExpr) {
	sym, ok := t.ctx.SymbolOf(e)
	if !ok {
		return
	}
	if sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter {
		return
	}
	t.spawnCheck(sym, e.Loc())
	if !t.checkUsable(sym, e.Loc()) {
		return
	}
	if sym.IsRef || types.IsCopy(sym.Type) {
		// Copies and aliases leave the source untouched; reads are still
		// illegal while an exclusive borrow is live.
		if !sym.IsRef {
			if conflict := t.mutableBorrowOn(sym, nil); conflict != nil {
				t.reportConflict(e.Loc(),
					fmt.Sprintf("cannot use '%s' while it is mutably borrowed", sym.Name), conflict)
			}
		}
		return
	}
	if conflict := t.liveBorrowOn(sym, nil, nil); conflict != nil {
		t.reportConflict(e.Loc(),
			fmt.Sprintf("cannot move '%s' while it is borrowed", sym.Name), conflict)
	}
	sym.Moved = true
	sym.MovedAt = e.Loc()
}

// readValue evaluates an expression in a non-consuming position
// (conditions, operator operands, match scrutinees): bindings are read
// but never moved.
func (t *tracker) readValue(e ast.Expression) {
	switch v := e.(type) {
	case nil:
	case *ast.IdentifierExpr:
		sym, ok := t.ctx.SymbolOf(v)
		if !ok || (sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter) {
			return
		}
		t.spawnCheck(sym, v.Loc())
		if !t.checkUsable(sym, v.Loc()) {
			return
		}
		if !sym.IsRef {
			if conflict := t.mutableBorrowOn(sym, nil); conflict != nil {
				t.reportConflict(v.Loc(),
					fmt.Sprintf("cannot use '%s' while it is mutably borrowed", sym.Name), conflict)
			}
		}
	case *ast.BorrowExpr:
		t.createBorrow(v, false)
	case *ast.UnaryExpr:
		t.readValue(v.X)
	case *ast.BinaryExpr:
		t.readValue(v.X)
		t.readValue(v.Y)
	case *ast.CallExpr:
		for _, arg := range v.Args {
			t.useValue(arg)
		}
	case *ast.FieldAccessExpr, *ast.IndexExpr:
		t.readPlace(v)
	case *ast.ArrayLiteral:
		for _, elem := range v.Elements {
			t.readValue(elem)
		}
	case *ast.StructLiteral:
		for _, init := range v.Fields {
			t.useValue(init.Value)
		}
	case *ast.EnumLiteral:
		t.useValue(v.Payload)
	case *ast.ParenExpr:
		t.readValue(v.X)
	}
}

// readPlace checks a field or index read: the root binding must hold its
// value and the accessed path must not be exclusively borrowed elsewhere.
func (t *tracker) readPlace(e ast.Expression) {
	root := ast.RootIdentifier(e)
	if root == nil {
		return
	}
	sym, ok := t.ctx.SymbolOf(root)
	if !ok || (sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter) {
		return
	}
	t.spawnCheck(sym, root.Loc())
	if !t.checkUsable(sym, e.Loc()) {
		return
	}
	if !sym.IsRef {
		if conflict := t.mutableBorrowOn(sym, placePath(e)); conflict != nil {
			t.reportConflict(e.Loc(),
				fmt.Sprintf("cannot use '%s' while it is mutably borrowed", sym.Name), conflict)
		}
	}
	t.readIndexOperands(e)
}

// readIndexOperands walks a place expression and reads every index
// operand it contains.
func (t *tracker) readIndexOperands(e ast.Expression) {
	switch p := e.(type) {
	case *ast.FieldAccessExpr:
		t.readIndexOperands(p.X)
	case *ast.IndexExpr:
		t.readIndexOperands(p.X)
		t.readValue(p.Index)
	case *ast.ParenExpr:
		t.readIndexOperands(p.X)
	}
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
