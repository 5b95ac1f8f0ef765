package ast

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// IdentifierExpr represents an identifier
type IdentifierExpr struct {
	Name string
	source.Location
}

func (i *IdentifierExpr) INode()                {}
func (i *IdentifierExpr) Expr()                 {}
func (i *IdentifierExpr) Loc() *source.Location { return &i.Location }

// IntLiteral represents an integer literal
type IntLiteral struct {
	Value int64
	source.Location
}

func (l *IntLiteral) INode()                {}
func (l *IntLiteral) Expr()                 {}
func (l *IntLiteral) Loc() *source.Location { return &l.Location }

// StringLiteral represents a string literal
type StringLiteral struct {
	Value string
	source.Location
}

func (l *StringLiteral) INode()                {}
func (l *StringLiteral) Expr()                 {}
func (l *StringLiteral) Loc() *source.Location { return &l.Location }

// CharLiteral represents a character literal
type CharLiteral struct {
	Value rune
	source.Location
}

func (l *CharLiteral) INode()                {}
func (l *CharLiteral) Expr()                 {}
func (l *CharLiteral) Loc() *source.Location { return &l.Location }

// BoolLiteral represents true or false
type BoolLiteral struct {
	Value bool
	source.Location
}

func (l *BoolLiteral) INode()                {}
func (l *BoolLiteral) Expr()                 {}
func (l *BoolLiteral) Loc() *source.Location { return &l.Location }

// ArrayLiteral represents [a, b, c]
type ArrayLiteral struct {
	Elements []Expression
	source.Location
}

func (l *ArrayLiteral) INode()                {}
func (l *ArrayLiteral) Expr()                 {}
func (l *ArrayLiteral) Loc() *source.Location { return &l.Location }

// BorrowExpr represents &x or &mut x
type BorrowExpr struct {
	Mutable bool
	X       Expression
	source.Location
}

func (b *BorrowExpr) INode()                {}
func (b *BorrowExpr) Expr()                 {}
func (b *BorrowExpr) Loc() *source.Location { return &b.Location }

// UnaryExpr represents -x or !x
type UnaryExpr struct {
	Op tokens.Token
	X  Expression
	source.Location
}

func (u *UnaryExpr) INode()                {}
func (u *UnaryExpr) Expr()                 {}
func (u *UnaryExpr) Loc() *source.Location { return &u.Location }

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	X  Expression
	Op tokens.Token
	Y  Expression
	source.Location
}

func (b *BinaryExpr) INode()                {}
func (b *BinaryExpr) Expr()                 {}
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// CallExpr represents a function call. Functions are top-level names,
// so the callee is always an identifier.
type CallExpr struct {
	Fun  *IdentifierExpr
	Args []Expression
	source.Location
}

func (c *CallExpr) INode()                {}
func (c *CallExpr) Expr()                 {}
func (c *CallExpr) Loc() *source.Location { return &c.Location }

// FieldAccessExpr represents s.field
type FieldAccessExpr struct {
	X     Expression
	Field *IdentifierExpr
	source.Location
}

func (f *FieldAccessExpr) INode()                {}
func (f *FieldAccessExpr) Expr()                 {}
func (f *FieldAccessExpr) Loc() *source.Location { return &f.Location }

// IndexExpr represents a[i]
type IndexExpr struct {
	X     Expression
	Index Expression
	source.Location
}

func (e *IndexExpr) INode()                {}
func (e *IndexExpr) Expr()                 {}
func (e *IndexExpr) Loc() *source.Location { return &e.Location }

// FieldInit is one field: value pair in a struct literal
type FieldInit struct {
	Name  *IdentifierExpr
	Value Expression
}

// StructLiteral represents Name { field: value, ... }
type StructLiteral struct {
	Name   *IdentifierExpr
	Fields []FieldInit
	source.Location
}

func (s *StructLiteral) INode()                {}
func (s *StructLiteral) Expr()                 {}
func (s *StructLiteral) Loc() *source.Location { return &s.Location }

// EnumLiteral represents Name::Variant or Name::Variant(payload)
type EnumLiteral struct {
	EnumName *IdentifierExpr
	Variant  *IdentifierExpr
	Payload  Expression // nil for unit variants
	source.Location
}

func (e *EnumLiteral) INode()                {}
func (e *EnumLiteral) Expr()                 {}
func (e *EnumLiteral) Loc() *source.Location { return &e.Location }

// ParenExpr represents (x)
type ParenExpr struct {
	X Expression
	source.Location
}

func (p *ParenExpr) INode()                {}
func (p *ParenExpr) Expr()                 {}
func (p *ParenExpr) Loc() *source.Location { return &p.Location }
