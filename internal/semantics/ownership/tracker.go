// Package ownership implements the ownership and borrow tracking pass.
// It walks each function body in source order, classifies every use of a
// binding (read, move, shared borrow, mutable borrow) and checks it
// against the binding's current state before updating it.
//
// The pass runs after type checking and reuses its annotations: identifier
// resolutions come from the context's Resolutions map and expression types
// from ExprTypes, so no scope logic is duplicated here.
//
// Borrow extents are lexical: a temporary borrow lives for its enclosing
// statement; a borrow stored in a binding lives until that binding's scope
// exits. Inside unsafe blocks states keep evolving but conflicts are not
// reported.
package ownership

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/context"
	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

type tracker struct {
	ctx    *context.CompilerContext
	frames []*frame

	// temp holds borrows created by expressions that are not stored in a
	// binding; they are released when the enclosing statement ends.
	temp []*borrow

	// bindings maps a ref binding (borrow stored in a let, or a lock
	// accessor) to the borrow it holds.
	bindings map[*symbols.Symbol]*borrow

	// declDepth records the frame index a binding was declared in, for
	// the parallel-boundary capture check.
	declDepth map[*symbols.Symbol]int

	// spawnBounds holds the frame depth at each open spawn block.
	spawnBounds []int

	unsafeDepth int
}

// frame is one lexical scope's worth of tracker state. Named borrows
// registered in a frame are released when the frame pops.
type frame struct {
	borrows []*borrow
}

// Track runs the ownership pass over every function in the program.
func Track(ctx *context.CompilerContext) {
	for _, node := range ctx.Program.Nodes {
		if fn, ok := node.(*ast.FuncDecl); ok {
			trackFunction(ctx, fn)
		}
	}
}

func trackFunction(ctx *context.CompilerContext, fn *ast.FuncDecl) {
	t := &tracker{
		ctx:       ctx,
		bindings:  make(map[*symbols.Symbol]*borrow),
		declDepth: make(map[*symbols.Symbol]int),
	}
	t.pushFrame()
	for _, param := range fn.Params {
		if sym, ok := ctx.SymbolOf(param.Name); ok {
			t.declDepth[sym] = 0
		}
	}
	t.walkStmts(fn.Body.Nodes)
	t.popFrame()
}

func (t *tracker) pushFrame() {
	t.frames = append(t.frames, &frame{})
}

func (t *tracker) popFrame() {
	top := t.frames[len(t.frames)-1]
	for _, b := range top.borrows {
		b.release()
	}
	t.frames = t.frames[:len(t.frames)-1]
}

func (t *tracker) currentFrame() *frame { return t.frames[len(t.frames)-1] }

// releaseTemp drops statement-scoped borrows.
func (t *tracker) releaseTemp() {
	for _, b := range t.temp {
		b.release()
	}
	t.temp = t.temp[:0]
}

// walkStmts runs statements in source order, releasing temporary borrows
// between statements.
func (t *tracker) walkStmts(nodes []ast.Node) {
	for _, node := range nodes {
		t.walkStmt(node)
		t.releaseTemp()
	}
}

func (t *tracker) walkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	t.pushFrame()
	t.walkStmts(b.Nodes)
	t.popFrame()
}

func (t *tracker) walkStmt(node ast.Node) {
	switch s := node.(type) {
	case *ast.LetStmt:
		t.walkLet(s)
	case *ast.AssignStmt:
		t.walkAssign(s)
	case *ast.ReturnStmt:
		t.walkReturn(s)
	case *ast.IfStmt:
		t.walkIf(s)
	case *ast.WhileStmt:
		t.readValue(s.Cond)
		t.walkBlock(s.Body)
	case *ast.MatchStmt:
		t.walkMatch(s)
	case *ast.LockStmt:
		t.walkLock(s)
	case *ast.UnsafeStmt:
		t.unsafeDepth++
		t.walkBlock(s.Body)
		t.unsafeDepth--
	case *ast.SpawnStmt:
		t.walkSpawn(s)
	case *ast.ExprStmt:
		t.useValue(s.X)
	case *ast.Block:
		t.walkBlock(s)
	}
}

func (t *tracker) walkLet(s *ast.LetStmt) {
	sym, ok := t.ctx.SymbolOf(s.Name)
	if !ok {
		return
	}
	t.declDepth[sym] = len(t.frames) - 1

	switch v := unparen(s.Value).(type) {
	case nil:
		// Declared without a value; usable after its first assignment.
	case *ast.BorrowExpr:
		if b := t.createBorrow(v, true); b != nil {
			t.bindings[sym] = b
		}
	case *ast.IdentifierExpr:
		if src, ok := t.ctx.SymbolOf(v); ok && src.IsRef {
			// Aliasing an existing ref binding extends the borrow to
			// this binding's scope.
			if held, ok := t.bindings[src]; ok {
				t.spawnCheck(held.target, v.Loc())
				b := held.clone(v.Loc())
				b.acquire()
				t.currentFrame().borrows = append(t.currentFrame().borrows, b)
				t.bindings[sym] = b
			}
			return
		}
		t.useValue(s.Value)
	default:
		t.useValue(s.Value)
	}
}

func (t *tracker) walkAssign(s *ast.AssignStmt) {
	t.useValue(s.Value)

	root := ast.RootIdentifier(s.Target)
	if root == nil {
		return
	}
	sym, ok := t.ctx.SymbolOf(root)
	if !ok || (sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter) {
		return
	}
	t.spawnCheck(sym, root.Loc())

	if sym.IsRef {
		// Writing through a mutable borrow or lock accessor: the
		// exclusivity was established when the borrow was created.
		return
	}

	if _, bare := unparen(s.Target).(*ast.IdentifierExpr); bare {
		if !sym.Mutable && sym.Initialized {
			t.ctx.Diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("cannot assign twice to immutable binding '%s'", sym.Name)).
					WithCode(diagnostics.ErrInvalidAssignment).
					WithLocation(s.Target.Loc()).
					WithHint(fmt.Sprintf("declare it with 'let mut %s' to allow mutation", sym.Name)),
			)
		}
		if conflict := t.liveBorrowOn(sym, nil, nil); conflict != nil {
			t.reportConflict(s.Target.Loc(),
				fmt.Sprintf("cannot assign to '%s' while it is borrowed", sym.Name), conflict)
		}
		// Reassignment restores ownership.
		sym.Moved = false
		sym.MovedAt = nil
		sym.Initialized = true
		return
	}

	// Field or index target: the root must still own its value, and the
	// written path must not overlap a live borrow.
	path := placePath(s.Target)
	t.checkUsable(sym, s.Target.Loc())
	if conflict := t.liveBorrowOn(sym, path, nil); conflict != nil {
		t.reportConflict(s.Target.Loc(),
			fmt.Sprintf("cannot mutate '%s' while it is borrowed", sym.Name), conflict)
	}
	t.readIndexOperands(s.Target)
}

func (t *tracker) walkReturn(s *ast.ReturnStmt) {
	if s.Result == nil {
		return
	}
	switch v := unparen(s.Result).(type) {
	case *ast.BorrowExpr:
		t.escapeError(s.Result.Loc())
		return
	case *ast.IdentifierExpr:
		if sym, ok := t.ctx.SymbolOf(v); ok && sym.IsRef {
			t.escapeError(s.Result.Loc())
			return
		}
	}
	t.useValue(s.Result)
}

func (t *tracker) escapeError(loc *source.Location) {
	t.ctx.Diagnostics.Add(
		diagnostics.NewError("cannot return a borrow of a function-local value").
			WithCode(diagnostics.ErrEscapingBorrow).
			WithLocation(loc).
			WithHint("return the value itself, or restructure so the caller owns it"),
	)
}

// bindingState is one binding's move and initialization flags at a
// program point.
type bindingState struct {
	moved       bool
	movedAt     *source.Location
	initialized bool
}

// moveState snapshots the flags of every binding the tracker has seen,
// so exclusive branches can each be walked from the same starting point.
type moveState map[*symbols.Symbol]bindingState

func (t *tracker) snapshotMoves() moveState {
	snap := make(moveState, len(t.declDepth))
	for sym := range t.declDepth {
		snap[sym] = bindingState{sym.Moved, sym.MovedAt, sym.Initialized}
	}
	return snap
}

func (m moveState) restore() {
	for sym, st := range m {
		sym.Moved = st.moved
		sym.MovedAt = st.movedAt
		sym.Initialized = st.initialized
	}
}

// mergeBranch folds a branch's end state into the current one: a binding
// is moved (or initialized) after the join if any branch did it.
func (t *tracker) mergeBranch(branch moveState) {
	for sym, st := range branch {
		if st.moved && !sym.Moved {
			sym.Moved = true
			sym.MovedAt = st.movedAt
		}
		if st.initialized {
			sym.Initialized = true
		}
	}
}

func (t *tracker) walkIf(s *ast.IfStmt) {
	t.readValue(s.Cond)

	// The branches are exclusive paths: each starts from the state at
	// the condition, so a move in one never shadows the other.
	before := t.snapshotMoves()
	t.walkBlock(s.Body)
	taken := t.snapshotMoves()

	before.restore()
	switch e := s.Else.(type) {
	case *ast.Block:
		t.walkBlock(e)
	case *ast.IfStmt:
		t.walkIf(e)
	}
	t.mergeBranch(taken)
}

func (t *tracker) walkMatch(s *ast.MatchStmt) {
	// Matching inspects the scrutinee without consuming it; variant
	// payloads are bound as fresh values in the arm scope.
	t.readValue(s.Scrutinee)

	// Arms are exclusive paths, walked from the same starting state.
	before := t.snapshotMoves()
	var armEnds []moveState
	for _, arm := range s.Arms {
		before.restore()
		t.pushFrame()
		if arm.Pattern != nil && arm.Pattern.Binder != nil {
			if sym, ok := t.ctx.SymbolOf(arm.Pattern.Binder); ok {
				t.declDepth[sym] = len(t.frames) - 1
			}
		}
		if arm.Body != nil {
			t.walkStmts(arm.Body.Nodes)
		}
		t.popFrame()
		armEnds = append(armEnds, t.snapshotMoves())
	}
	if len(armEnds) > 0 {
		before.restore()
		for _, end := range armEnds {
			t.mergeBranch(end)
		}
	}
}

// walkLock models the accessor as an exclusive borrow of the cell for the
// block's scope. It is exempt from the one-mutable-borrow rule against
// other lock accessors (synchronization is deferred to the runtime), but
// it still pins the cell: the cell cannot be moved while an accessor is
// live, and the accessor is released on every exit path of the block.
func (t *tracker) walkLock(s *ast.LockStmt) {
	root := ast.RootIdentifier(s.Cell)
	if root == nil {
		return
	}
	sym, ok := t.ctx.SymbolOf(root)
	if !ok {
		return
	}
	t.spawnCheck(sym, root.Loc())
	t.checkUsable(sym, s.Cell.Loc())
	t.readIndexOperands(s.Cell)

	b := &borrow{
		target:       sym,
		path:         placePath(s.Cell),
		mutable:      true,
		lockAccessor: true,
		loc:          s.Cell.Loc(),
	}
	if conflict := t.liveBorrowOn(sym, b.path, b); conflict != nil && !conflict.lockAccessor {
		t.reportConflict(s.Cell.Loc(),
			fmt.Sprintf("cannot lock '%s' while it is borrowed", sym.Name), conflict)
	}
	b.acquire()

	t.pushFrame()
	t.currentFrame().borrows = append(t.currentFrame().borrows, b)
	if accSym, ok := t.ctx.SymbolOf(s.Name); ok {
		t.declDepth[accSym] = len(t.frames) - 1
		t.bindings[accSym] = b
	}
	t.walkStmts(s.Body.Nodes)
	t.popFrame()
}

// walkSpawn opens a parallel boundary: inside the body, bindings declared
// outside the boundary are reachable only if they are guarded cells.
func (t *tracker) walkSpawn(s *ast.SpawnStmt) {
	t.pushFrame()
	t.spawnBounds = append(t.spawnBounds, len(t.frames)-1)
	t.walkStmts(s.Body.Nodes)
	t.spawnBounds = t.spawnBounds[:len(t.spawnBounds)-1]
	t.popFrame()
}

// spawnCheck rejects access to a binding declared outside the innermost
// open parallel boundary unless its type is a guarded cell.
func (t *tracker) spawnCheck(sym *symbols.Symbol, loc *source.Location) {
	if len(t.spawnBounds) == 0 {
		return
	}
	if sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParameter {
		return
	}
	depth, ok := t.declDepth[sym]
	if !ok {
		return
	}
	bound := t.spawnBounds[len(t.spawnBounds)-1]
	if depth >= bound || types.IsMutex(sym.Type) {
		return
	}
	if t.unsafeDepth > 0 {
		return
	}
	t.ctx.Diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("cannot access '%s' across a parallel boundary without a Mutex", sym.Name)).
			WithCode(diagnostics.ErrParallelAccess).
			WithLocation(loc).
			WithHint(fmt.Sprintf("wrap '%s' in 'Mutex<%s>' and lock it inside the spawn block", sym.Name, sym.Type)),
	)
}
