package table

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
)

// SymbolTable holds the bindings of one lexical scope. Child scopes see
// parent bindings and shadow them on redeclaration; a scope's symbols are
// conceptually released when its block exits.
type SymbolTable struct {
	parent  *SymbolTable
	symbols map[string]*symbols.Symbol
	order   []*symbols.Symbol
}

// NewSymbolTable creates a new symbol table with an optional parent scope.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[string]*symbols.Symbol),
	}
}

// Parent returns the enclosing scope, or nil for the outermost scope.
func (st *SymbolTable) Parent() *SymbolTable { return st.parent }

// Declare adds a symbol to this scope. Redeclaring a name shadows the
// previous binding, in this scope or any parent.
func (st *SymbolTable) Declare(name string, symbol *symbols.Symbol) {
	st.symbols[name] = symbol
	st.order = append(st.order, symbol)
}

// Lookup finds a symbol in this scope or any parent scope.
func (st *SymbolTable) Lookup(name string) (*symbols.Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil, false
}

// GetSymbol finds a symbol in this scope only.
func (st *SymbolTable) GetSymbol(name string) (*symbols.Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Symbols returns the scope's symbols in declaration order.
func (st *SymbolTable) Symbols() []*symbols.Symbol {
	return st.order
}
