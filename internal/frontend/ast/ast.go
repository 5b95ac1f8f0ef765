package ast

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// Node is the base interface for all AST nodes
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// Decl represents a top-level declaration (function, struct, enum, import)
type Decl interface {
	Node
	Decl()
}

// TypeNode represents a type annotation in the AST, separate from
// expressions to keep values and types apart
type TypeNode interface {
	Node
	TypeExpr()
}

// Program is the module-merged syntax tree handed to semantic analysis.
// After import resolution every referenced declaration lives in Nodes.
type Program struct {
	FilePath string // entry file path
	Nodes    []Node // top-level declarations in source order

	source.Location
}

func (p *Program) INode()                {}
func (p *Program) Loc() *source.Location { return &p.Location }

// Block represents a braced statement list with its own lexical scope
type Block struct {
	Nodes []Node
	source.Location
}

func (b *Block) INode()                {}
func (b *Block) Stmt()                 {}
func (b *Block) Loc() *source.Location { return &b.Location }
