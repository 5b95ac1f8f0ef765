package parser

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// parseType parses a type annotation: a named type, [T; N], [T], or
// Mutex<T>.
func (p *Parser) parseType() ast.TypeNode {
	tok := p.peek()

	switch tok.Kind {
	case tokens.OPEN_BRACKET:
		start := p.advance()
		elem := p.parseType()
		length := -1
		if p.match(tokens.SEMICOLON_TOKEN) {
			length = p.parseArrayLength()
		}
		end := p.expect(tokens.CLOSE_BRACKET)
		return &ast.ArrayTypeNode{
			Element:  elem,
			Length:   length,
			Location: *source.Span(&start.Location, &end.Location),
		}
	case tokens.IDENTIFIER_TOKEN:
		if tok.Value == "Mutex" {
			start := p.advance()
			p.expect(tokens.LESS_TOKEN)
			inner := p.parseType()
			end := p.expect(tokens.GREATER_TOKEN)
			return &ast.MutexTypeNode{
				Inner:    inner,
				Location: *source.Span(&start.Location, &end.Location),
			}
		}
		name := p.advance()
		return &ast.NamedTypeNode{Name: name.Value, Location: name.Location}
	default:
		p.errorAt(&tok.Location, diagnostics.ErrInvalidType,
			fmt.Sprintf("expected a type, found '%s'", tok.Kind))
		p.advance()
		return &ast.NamedTypeNode{Name: "unknown", Location: tok.Location}
	}
}
