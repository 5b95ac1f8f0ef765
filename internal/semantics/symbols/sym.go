package symbols

import (
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/types"
)

// SymbolKind categorizes symbols
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
	SymbolType
	SymbolBuiltin
)

// OwnershipState is the flow-sensitive access state of a binding. It
// evolves through statement order within a function body.
type OwnershipState int

const (
	// Owned: the binding holds its value and may be read, written
	// (if mutable), moved, or borrowed.
	Owned OwnershipState = iota
	// MovedOut: the value was transferred away; the binding is unusable
	// until a new assignment restores it to Owned.
	MovedOut
	// SharedBorrowed: n >= 1 live shared borrows; the source may be read
	// but not mutated, mutably borrowed, or moved.
	SharedBorrowed
	// MutablyBorrowed: exactly one live exclusive borrow; no other access
	// of any kind is permitted through the source.
	MutablyBorrowed
	// Uninitialized: declared without a value; unusable until assigned.
	Uninitialized
)

func (s OwnershipState) String() string {
	switch s {
	case Owned:
		return "owned"
	case MovedOut:
		return "moved out"
	case SharedBorrowed:
		return "shared borrowed"
	case MutablyBorrowed:
		return "mutably borrowed"
	case Uninitialized:
		return "uninitialized"
	default:
		return "unknown"
	}
}

// Symbol represents a declared entity (binding, parameter, function,
// type). A symbol lives inside exactly one scope.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    types.SemType
	Mutable bool
	Decl    *source.Location

	// IsRef marks borrow bindings and lock accessors: bindings that
	// alias another value and are therefore never moved from.
	IsRef bool

	// Flow-sensitive ownership bookkeeping, maintained by the ownership
	// tracker in statement order.
	Moved       bool
	MovedAt     *source.Location
	Initialized bool
	SharedCount int
	MutCount    int
}

// State derives the binding's ownership state from the bookkeeping
// counters.
func (s *Symbol) State() OwnershipState {
	switch {
	case !s.Initialized:
		return Uninitialized
	case s.Moved:
		return MovedOut
	case s.MutCount > 0:
		return MutablyBorrowed
	case s.SharedCount > 0:
		return SharedBorrowed
	default:
		return Owned
	}
}
