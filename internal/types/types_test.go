package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringForms(t *testing.T) {
	assert.Equal(t, "int", TypeInt.String())
	assert.Equal(t, "[int; 3]", NewFixedArray(TypeInt, 3).String())
	assert.Equal(t, "[string]", NewSequence(TypeString).String())
	assert.Equal(t, "Mutex<int>", NewMutex(TypeInt).String())
	assert.Equal(t, "fn(int, string) -> unit",
		NewFunction([]SemType{TypeInt, TypeString}, TypeUnit).String())
	assert.Equal(t, "fn() -> bool", NewFunction(nil, TypeBool).String())
}

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, TypeInt.Equals(NewPrimitive(TYPE_INT)))
	assert.False(t, TypeInt.Equals(TypeBool))
	assert.False(t, TypeInt.Equals(NewSequence(TypeInt)))
}

func TestArrayEquality(t *testing.T) {
	assert.True(t, NewFixedArray(TypeInt, 3).Equals(NewFixedArray(TypeInt, 3)))
	assert.False(t, NewFixedArray(TypeInt, 3).Equals(NewFixedArray(TypeInt, 4)))
	assert.False(t, NewFixedArray(TypeInt, 3).Equals(NewSequence(TypeInt)))
	assert.True(t, NewSequence(TypeInt).Equals(NewSequence(TypeInt)))

	assert.True(t, NewFixedArray(TypeInt, 3).IsFixed())
	assert.False(t, NewSequence(TypeInt).IsFixed())
}

func TestNamedTypeEquality(t *testing.T) {
	// Structs and enums are nominal: the name decides, not the members.
	a := NewStruct("Point", []StructField{{Name: "x", Type: TypeInt}})
	b := NewStruct("Point", nil)
	c := NewStruct("Vec", nil)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))

	e := NewEnum("Direction", []EnumVariant{{Name: "North"}})
	assert.True(t, e.Equals(NewEnum("Direction", nil)))
	assert.False(t, e.Equals(NewEnum("Heading", nil)))
	assert.False(t, e.Equals(a))
}

func TestFunctionEquality(t *testing.T) {
	f := NewFunction([]SemType{TypeInt}, TypeBool)
	assert.True(t, f.Equals(NewFunction([]SemType{TypeInt}, TypeBool)))
	assert.False(t, f.Equals(NewFunction([]SemType{TypeInt, TypeInt}, TypeBool)))
	assert.False(t, f.Equals(NewFunction([]SemType{TypeString}, TypeBool)))
	assert.False(t, f.Equals(NewFunction([]SemType{TypeInt}, TypeUnit)))
}

func TestMutexEquality(t *testing.T) {
	assert.True(t, NewMutex(TypeInt).Equals(NewMutex(TypeInt)))
	assert.False(t, NewMutex(TypeInt).Equals(NewMutex(TypeString)))
	assert.False(t, NewMutex(TypeInt).Equals(TypeInt))
}

func TestFieldAndVariantLookup(t *testing.T) {
	s := NewStruct("Point", []StructField{
		{Name: "x", Type: TypeInt},
		{Name: "y", Type: TypeInt},
	})
	f, ok := s.Field("y")
	assert.True(t, ok)
	assert.Equal(t, "y", f.Name)
	_, ok = s.Field("z")
	assert.False(t, ok)

	e := NewEnum("Option", []EnumVariant{
		{Name: "Some", Payload: TypeInt},
		{Name: "None"},
	})
	v, ok := e.Variant("Some")
	assert.True(t, ok)
	assert.Equal(t, TypeInt, v.Payload)
	_, ok = e.Variant("Any")
	assert.False(t, ok)
}

func TestIsCopy(t *testing.T) {
	assert.True(t, IsCopy(TypeInt))
	assert.True(t, IsCopy(TypeBool))
	assert.True(t, IsCopy(TypeChar))
	assert.True(t, IsCopy(TypeUnit))
	assert.True(t, IsCopy(NewFunction(nil, TypeUnit)))

	assert.False(t, IsCopy(TypeString))
	assert.False(t, IsCopy(NewFixedArray(TypeInt, 2)))
	assert.False(t, IsCopy(NewStruct("Point", nil)))
	assert.False(t, IsCopy(NewEnum("Direction", nil)))
	assert.False(t, IsCopy(NewMutex(TypeInt)))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsUnknown(TypeUnknown))
	assert.False(t, IsUnknown(TypeInt))
	assert.True(t, IsUnit(TypeUnit))
	assert.False(t, IsUnit(TypeUnknown))
	assert.True(t, IsMutex(NewMutex(TypeBool)))
	assert.False(t, IsMutex(TypeBool))
}
