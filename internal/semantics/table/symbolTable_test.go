package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

func variable(name string, t types.SemType) *symbols.Symbol {
	return &symbols.Symbol{Name: name, Kind: symbols.SymbolVariable, Type: t, Initialized: true}
}

func TestDeclareAndLookup(t *testing.T) {
	scope := NewSymbolTable(nil)
	x := variable("x", types.TypeInt)
	scope.Declare("x", x)

	got, ok := scope.Lookup("x")
	require.True(t, ok)
	assert.Same(t, x, got)

	_, ok = scope.Lookup("y")
	assert.False(t, ok)
}

func TestLookupWalksParents(t *testing.T) {
	global := NewSymbolTable(nil)
	global.Declare("x", variable("x", types.TypeInt))

	inner := NewSymbolTable(NewSymbolTable(global))
	got, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)

	// GetSymbol never consults parents.
	_, ok = inner.GetSymbol("x")
	assert.False(t, ok)
}

func TestShadowing(t *testing.T) {
	outer := NewSymbolTable(nil)
	outer.Declare("x", variable("x", types.TypeInt))

	inner := NewSymbolTable(outer)
	shadow := variable("x", types.TypeString)
	inner.Declare("x", shadow)

	got, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Same(t, shadow, got)

	// The outer binding is untouched.
	got, ok = outer.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TypeInt, got.Type)
}

func TestSymbolsKeepDeclarationOrder(t *testing.T) {
	scope := NewSymbolTable(nil)
	scope.Declare("a", variable("a", types.TypeInt))
	scope.Declare("b", variable("b", types.TypeBool))
	scope.Declare("c", variable("c", types.TypeChar))

	var names []string
	for _, sym := range scope.Symbols() {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestParent(t *testing.T) {
	global := NewSymbolTable(nil)
	child := NewSymbolTable(global)
	assert.Same(t, global, child.Parent())
	assert.Nil(t, global.Parent())
}
