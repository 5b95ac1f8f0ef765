package ast

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// NamedTypeNode is a type spelled by name: int, bool, char, string, or a
// declared struct/enum name.
type NamedTypeNode struct {
	Name string
	source.Location
}

func (t *NamedTypeNode) INode()                {}
func (t *NamedTypeNode) TypeExpr()             {}
func (t *NamedTypeNode) Loc() *source.Location { return &t.Location }

// ArrayTypeNode is [T; N] when Length >= 0, or the dynamic sequence [T]
// when Length is -1.
type ArrayTypeNode struct {
	Element TypeNode
	Length  int
	source.Location
}

func (t *ArrayTypeNode) INode()                {}
func (t *ArrayTypeNode) TypeExpr()             {}
func (t *ArrayTypeNode) Loc() *source.Location { return &t.Location }

// MutexTypeNode is the guarded cell Mutex<T>.
type MutexTypeNode struct {
	Inner TypeNode
	source.Location
}

func (t *MutexTypeNode) INode()                {}
func (t *MutexTypeNode) TypeExpr()             {}
func (t *MutexTypeNode) Loc() *source.Location { return &t.Location }
