package ast

// RootIdentifier returns the base identifier of a place expression
// (x, x.field, x[i], and parenthesized forms), or nil when the
// expression is not rooted in a named binding.
func RootIdentifier(e Expression) *IdentifierExpr {
	switch t := e.(type) {
	case *IdentifierExpr:
		return t
	case *FieldAccessExpr:
		return RootIdentifier(t.X)
	case *IndexExpr:
		return RootIdentifier(t.X)
	case *ParenExpr:
		return RootIdentifier(t.X)
	}
	return nil
}

// IsPlace reports whether the expression names a storage location that
// can be assigned to or borrowed from.
func IsPlace(e Expression) bool {
	return RootIdentifier(e) != nil
}
