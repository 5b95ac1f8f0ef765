// Package builtins declares the fixed built-in function signatures the
// semantic analyzer consumes as pre-declared symbols. Each builtin has
// exactly one signature, known in advance; the analyzer never re-derives
// them.
package builtins

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/symbols"
	"github.com/ASTRALLIBERTAD/Brain/internal/semantics/table"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// signatures lists every builtin with its fixed signature.
var signatures = map[string]*types.FunctionType{
	"print":      types.NewFunction([]types.SemType{types.TypeString}, types.TypeUnit),
	"len":        types.NewFunction([]types.SemType{types.TypeString}, types.TypeInt),
	"char_at":    types.NewFunction([]types.SemType{types.TypeString, types.TypeInt}, types.TypeChar),
	"to_string":  types.NewFunction([]types.SemType{types.TypeInt}, types.TypeString),
	"read_file":  types.NewFunction([]types.SemType{types.TypeString}, types.TypeString),
	"write_file": types.NewFunction([]types.SemType{types.TypeString, types.TypeString}, types.TypeUnit),
}

// Register declares every builtin in the given universe scope.
func Register(universe *table.SymbolTable) {
	for name, sig := range signatures {
		universe.Declare(name, &symbols.Symbol{
			Name:        name,
			Kind:        symbols.SymbolBuiltin,
			Type:        sig,
			Initialized: true,
		})
	}
}

// IsBuiltin reports whether name is a built-in function.
func IsBuiltin(name string) bool {
	_, ok := signatures[name]
	return ok
}
