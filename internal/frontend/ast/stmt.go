package ast

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// LetStmt represents let [mut] name [: type] [= value];
// Value may be nil when an explicit type annotation is present; the
// binding is then uninitialized until its first assignment.
type LetStmt struct {
	Mutable bool
	Name    *IdentifierExpr
	Type    TypeNode   // nil when inferred
	Value   Expression // nil for uninitialized declarations
	source.Location
}

func (s *LetStmt) INode()                {}
func (s *LetStmt) Stmt()                 {}
func (s *LetStmt) Loc() *source.Location { return &s.Location }

// AssignStmt represents target = value; where target is an identifier,
// field access, or index expression.
type AssignStmt struct {
	Target Expression
	Value  Expression
	source.Location
}

func (s *AssignStmt) INode()                {}
func (s *AssignStmt) Stmt()                 {}
func (s *AssignStmt) Loc() *source.Location { return &s.Location }

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	Result Expression // nil for bare return
	source.Location
}

func (s *ReturnStmt) INode()                {}
func (s *ReturnStmt) Stmt()                 {}
func (s *ReturnStmt) Loc() *source.Location { return &s.Location }

// IfStmt represents if cond { } [else { } | else if ...]
type IfStmt struct {
	Cond Expression
	Body *Block
	Else Node // *Block, *IfStmt, or nil
	source.Location
}

func (s *IfStmt) INode()                {}
func (s *IfStmt) Stmt()                 {}
func (s *IfStmt) Loc() *source.Location { return &s.Location }

// WhileStmt represents while cond { }
type WhileStmt struct {
	Cond Expression
	Body *Block
	source.Location
}

func (s *WhileStmt) INode()                {}
func (s *WhileStmt) Stmt()                 {}
func (s *WhileStmt) Loc() *source.Location { return &s.Location }

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	X Expression
	source.Location
}

func (s *ExprStmt) INode()                {}
func (s *ExprStmt) Stmt()                 {}
func (s *ExprStmt) Loc() *source.Location { return &s.Location }

// UnsafeStmt represents unsafe { ... }. Ownership conflict enforcement
// is suspended inside the block; type rules still apply.
type UnsafeStmt struct {
	Body *Block
	source.Location
}

func (s *UnsafeStmt) INode()                {}
func (s *UnsafeStmt) Stmt()                 {}
func (s *UnsafeStmt) Loc() *source.Location { return &s.Location }

// LockStmt represents lock cell as name { ... }. The binding grants
// exclusive access to the cell's wrapped value for the block's scope and
// is released on every exit path.
type LockStmt struct {
	Cell Expression
	Name *IdentifierExpr
	Body *Block
	source.Location
}

func (s *LockStmt) INode()                {}
func (s *LockStmt) Stmt()                 {}
func (s *LockStmt) Loc() *source.Location { return &s.Location }

// SpawnStmt represents spawn { ... }, a declared parallel boundary.
type SpawnStmt struct {
	Body *Block
	source.Location
}

func (s *SpawnStmt) INode()                {}
func (s *SpawnStmt) Stmt()                 {}
func (s *SpawnStmt) Loc() *source.Location { return &s.Location }

// MatchPattern is one arm pattern: Enum::Variant, Enum::Variant(binder),
// or the wildcard _.
type MatchPattern struct {
	Wildcard bool
	EnumName *IdentifierExpr // nil for wildcard
	Variant  *IdentifierExpr // nil for wildcard
	Binder   *IdentifierExpr // nil unless the variant payload is bound
	source.Location
}

func (p *MatchPattern) INode()                {}
func (p *MatchPattern) Loc() *source.Location { return &p.Location }

// MatchArm is one pattern => block pair
type MatchArm struct {
	Pattern *MatchPattern
	Body    *Block
}

// MatchStmt represents match scrutinee { arms }
type MatchStmt struct {
	Scrutinee Expression
	Arms      []MatchArm
	source.Location
}

func (s *MatchStmt) INode()                {}
func (s *MatchStmt) Stmt()                 {}
func (s *MatchStmt) Loc() *source.Location { return &s.Location }
