package source

// Position is a point in a source file with line, column, and byte index.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Index  int // byte offset into the source
}

// Advance moves the position past the given text, updating line and column
// for every newline encountered.
func (p *Position) Advance(text string) *Position {
	for _, ch := range text {
		if ch == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Index += len(string(ch))
	}
	return p
}
