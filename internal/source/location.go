package source

import "fmt"

// Location is a span of source code with start and end positions.
type Location struct {
	File  string
	Start Position
	End   Position
}

// NewLocation creates a Location covering [start, end) in the given file.
func NewLocation(file string, start, end Position) *Location {
	return &Location{File: file, Start: start, End: end}
}

// Span joins two locations into one covering both.
func Span(a, b *Location) *Location {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Location{File: a.File, Start: a.Start, End: b.End}
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Start.Line, l.Start.Column)
}

// Before reports whether l starts before other in source order.
// Locations in different files order by file name.
func (l *Location) Before(other *Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Start.Line != other.Start.Line {
		return l.Start.Line < other.Start.Line
	}
	return l.Start.Column < other.Start.Column
}
