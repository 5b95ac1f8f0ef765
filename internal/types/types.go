package types

import (
	"fmt"
	"strings"
)

type TYPE_NAME string

const (
	TYPE_INT     TYPE_NAME = "int"
	TYPE_BOOL    TYPE_NAME = "bool"
	TYPE_CHAR    TYPE_NAME = "char"
	TYPE_STRING  TYPE_NAME = "string"
	TYPE_UNIT    TYPE_NAME = "unit"
	TYPE_UNKNOWN TYPE_NAME = "unknown"
)

// SemType is the semantic representation of Brain types.
//
// The set of variants is closed: Int, Bool, Char, String, FixedArray,
// DynamicSequence, Struct, Enum, Function, Mutex (guarded cell), Unit.
// Equality is structural and there is no implicit coercion anywhere in
// the language.
type SemType interface {
	// String returns a human-readable representation of the type
	String() string

	// Equals checks structural equality with another type
	Equals(other SemType) bool

	// isType is a marker method to prevent external implementation
	isType()
}

// PrimitiveType represents the built-in scalar types (int, bool, char,
// string, unit).
type PrimitiveType struct {
	name TYPE_NAME
}

func NewPrimitive(name TYPE_NAME) *PrimitiveType {
	return &PrimitiveType{name: name}
}

func (p *PrimitiveType) String() string { return string(p.name) }
func (p *PrimitiveType) isType()        {}
func (p *PrimitiveType) Equals(other SemType) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.name == o.name
	}
	return false
}

// GetName returns the primitive type name.
func (p *PrimitiveType) GetName() TYPE_NAME { return p.name }

// ArrayType represents array types: [T; N] fixed or [T] dynamic.
// Length is -1 for dynamic sequences.
type ArrayType struct {
	Element SemType
	Length  int
}

func NewFixedArray(element SemType, length int) *ArrayType {
	return &ArrayType{Element: element, Length: length}
}

func NewSequence(element SemType) *ArrayType {
	return &ArrayType{Element: element, Length: -1}
}

// IsFixed reports whether the array has a statically known length.
func (a *ArrayType) IsFixed() bool { return a.Length >= 0 }

func (a *ArrayType) String() string {
	if a.Length < 0 {
		return fmt.Sprintf("[%s]", a.Element.String())
	}
	return fmt.Sprintf("[%s; %d]", a.Element.String(), a.Length)
}

func (a *ArrayType) isType() {}

func (a *ArrayType) Equals(other SemType) bool {
	if o, ok := other.(*ArrayType); ok {
		return a.Length == o.Length && a.Element.Equals(o.Element)
	}
	return false
}

// StructField represents a field in a struct.
type StructField struct {
	Name string
	Type SemType
}

// StructType represents a named struct type.
type StructType struct {
	Name   string
	Fields []StructField
}

func NewStruct(name string, fields []StructField) *StructType {
	return &StructType{Name: name, Fields: fields}
}

func (s *StructType) String() string { return s.Name }
func (s *StructType) isType()        {}

func (s *StructType) Equals(other SemType) bool {
	if o, ok := other.(*StructType); ok {
		return s.Name == o.Name
	}
	return false
}

// Field returns the declared field with the given name.
func (s *StructType) Field(name string) (StructField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// EnumVariant represents a variant in an enum. Payload is nil for unit
// variants.
type EnumVariant struct {
	Name    string
	Payload SemType
}

// EnumType represents a named enum type (closed tagged union).
type EnumType struct {
	Name     string
	Variants []EnumVariant
}

func NewEnum(name string, variants []EnumVariant) *EnumType {
	return &EnumType{Name: name, Variants: variants}
}

func (e *EnumType) String() string { return e.Name }
func (e *EnumType) isType()        {}

func (e *EnumType) Equals(other SemType) bool {
	if o, ok := other.(*EnumType); ok {
		return e.Name == o.Name
	}
	return false
}

// Variant returns the declared variant with the given name.
func (e *EnumType) Variant(name string) (EnumVariant, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// FunctionType represents function signatures: fn(T1, T2) -> R.
type FunctionType struct {
	Params []SemType
	Return SemType
}

func NewFunction(params []SemType, ret SemType) *FunctionType {
	return &FunctionType{Params: params, Return: ret}
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), f.Return.String())
}

func (f *FunctionType) isType() {}

func (f *FunctionType) Equals(other SemType) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if !f.Return.Equals(o.Return) || len(f.Params) != len(o.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

// MutexType is the guarded-cell wrapper Mutex<T>. It exposes no direct
// access to the wrapped value; the only sanctioned operation is a lock
// acquiring a scope-bounded exclusive accessor of type T.
type MutexType struct {
	Inner SemType
}

func NewMutex(inner SemType) *MutexType {
	return &MutexType{Inner: inner}
}

func (m *MutexType) String() string { return fmt.Sprintf("Mutex<%s>", m.Inner.String()) }
func (m *MutexType) isType()        {}

func (m *MutexType) Equals(other SemType) bool {
	if o, ok := other.(*MutexType); ok {
		return m.Inner.Equals(o.Inner)
	}
	return false
}

// Commonly used types (initialized in init())
var (
	TypeInt     SemType
	TypeBool    SemType
	TypeChar    SemType
	TypeString  SemType
	TypeUnit    SemType
	TypeUnknown SemType
)

func init() {
	TypeInt = NewPrimitive(TYPE_INT)
	TypeBool = NewPrimitive(TYPE_BOOL)
	TypeChar = NewPrimitive(TYPE_CHAR)
	TypeString = NewPrimitive(TYPE_STRING)
	TypeUnit = NewPrimitive(TYPE_UNIT)
	TypeUnknown = NewPrimitive(TYPE_UNKNOWN)
}
