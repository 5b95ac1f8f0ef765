package types

// IsUnknown reports whether the type is the error-recovery placeholder.
// Checks against unknown are skipped so one bad expression does not
// cascade into a wall of follow-on diagnostics.
func IsUnknown(t SemType) bool {
	if p, ok := t.(*PrimitiveType); ok {
		return p.name == TYPE_UNKNOWN
	}
	return false
}

// IsUnit reports whether the type is unit.
func IsUnit(t SemType) bool {
	if p, ok := t.(*PrimitiveType); ok {
		return p.name == TYPE_UNIT
	}
	return false
}

// IsCopy reports whether values of the type are copied rather than moved.
// Int, bool, char, and unit are copy; everything that owns heap data
// (string, arrays, sequences, structs, enums, mutex cells) moves.
func IsCopy(t SemType) bool {
	if p, ok := t.(*PrimitiveType); ok {
		switch p.name {
		case TYPE_INT, TYPE_BOOL, TYPE_CHAR, TYPE_UNIT, TYPE_UNKNOWN:
			return true
		}
	}
	if _, ok := t.(*FunctionType); ok {
		return true
	}
	return false
}

// IsMutex reports whether the type is a guarded cell.
func IsMutex(t SemType) bool {
	_, ok := t.(*MutexType)
	return ok
}
