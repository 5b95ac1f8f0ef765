package ast

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

// ImportDecl represents import "path";
type ImportDecl struct {
	Path string
	source.Location
}

func (d *ImportDecl) INode()                {}
func (d *ImportDecl) Decl()                 {}
func (d *ImportDecl) Loc() *source.Location { return &d.Location }

// Param is one function parameter
type Param struct {
	Name *IdentifierExpr
	Type TypeNode
}

// FuncDecl represents fn name(params) [-> type] { body }
type FuncDecl struct {
	Name   *IdentifierExpr
	Params []Param
	Return TypeNode // nil means unit
	Body   *Block
	source.Location
}

func (d *FuncDecl) INode()                {}
func (d *FuncDecl) Decl()                 {}
func (d *FuncDecl) Loc() *source.Location { return &d.Location }

// FieldDef is one declared struct field
type FieldDef struct {
	Name *IdentifierExpr
	Type TypeNode
}

// StructDecl represents struct Name { field: type, ... }
type StructDecl struct {
	Name   *IdentifierExpr
	Fields []FieldDef
	source.Location
}

func (d *StructDecl) INode()                {}
func (d *StructDecl) Decl()                 {}
func (d *StructDecl) Loc() *source.Location { return &d.Location }

// VariantDef is one declared enum variant; Payload is nil for unit
// variants.
type VariantDef struct {
	Name    *IdentifierExpr
	Payload TypeNode
}

// EnumDecl represents enum Name { Variant, Variant(type), ... }
type EnumDecl struct {
	Name     *IdentifierExpr
	Variants []VariantDef
	source.Location
}

func (d *EnumDecl) INode()                {}
func (d *EnumDecl) Decl()                 {}
func (d *EnumDecl) Loc() *source.Location { return &d.Location }
