package parser

import (
	"fmt"
	"strconv"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// parseTopLevel parses one top-level declaration.
func (p *Parser) parseTopLevel() ast.Node {
	tok := p.peek()

	switch tok.Kind {
	case tokens.IMPORT_TOKEN:
		return p.parseImport()
	case tokens.FN_TOKEN:
		return p.parseFuncDecl()
	case tokens.STRUCT_TOKEN:
		return p.parseStructDecl()
	case tokens.ENUM_TOKEN:
		return p.parseEnumDecl()
	default:
		p.errorAt(&tok.Location, diagnostics.ErrUnexpectedToken,
			fmt.Sprintf("expected a top-level declaration, found '%s'", tok.Kind))
		p.advance()
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.expect(tokens.IMPORT_TOKEN)
	path := p.expect(tokens.STRING_TOKEN)
	end := p.expect(tokens.SEMICOLON_TOKEN)
	return &ast.ImportDecl{
		Path:     path.Value,
		Location: *source.Span(&start.Location, &end.Location),
	}
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	start := p.expect(tokens.FN_TOKEN)
	name := p.parseIdentifier()

	p.expect(tokens.OPEN_PAREN)
	var params []ast.Param
	for !p.check(tokens.CLOSE_PAREN) && !p.isAtEnd() {
		pname := p.parseIdentifier()
		p.expect(tokens.COLON_TOKEN)
		ptype := p.parseType()
		params = append(params, ast.Param{Name: pname, Type: ptype})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	p.expect(tokens.CLOSE_PAREN)

	var ret ast.TypeNode
	if p.match(tokens.ARROW_TOKEN) {
		ret = p.parseType()
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		Name:     name,
		Params:   params,
		Return:   ret,
		Body:     body,
		Location: *source.Span(&start.Location, body.Loc()),
	}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.expect(tokens.STRUCT_TOKEN)
	name := p.parseIdentifier()
	p.expect(tokens.OPEN_CURLY)

	var fields []ast.FieldDef
	for !p.check(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		fname := p.parseIdentifier()
		p.expect(tokens.COLON_TOKEN)
		ftype := p.parseType()
		fields = append(fields, ast.FieldDef{Name: fname, Type: ftype})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	end := p.expect(tokens.CLOSE_CURLY)

	return &ast.StructDecl{
		Name:     name,
		Fields:   fields,
		Location: *source.Span(&start.Location, &end.Location),
	}
}

func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	start := p.expect(tokens.ENUM_TOKEN)
	name := p.parseIdentifier()
	p.expect(tokens.OPEN_CURLY)

	var variants []ast.VariantDef
	for !p.check(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		vname := p.parseIdentifier()
		var payload ast.TypeNode
		if p.match(tokens.OPEN_PAREN) {
			payload = p.parseType()
			p.expect(tokens.CLOSE_PAREN)
		}
		variants = append(variants, ast.VariantDef{Name: vname, Payload: payload})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	end := p.expect(tokens.CLOSE_CURLY)

	return &ast.EnumDecl{
		Name:     name,
		Variants: variants,
		Location: *source.Span(&start.Location, &end.Location),
	}
}

// parseArrayLength reads the N in [T; N].
func (p *Parser) parseArrayLength() int {
	tok := p.expect(tokens.INT_TOKEN)
	n, err := strconv.Atoi(tok.Value)
	if err != nil || n < 0 {
		p.errorAt(&tok.Location, diagnostics.ErrInvalidType,
			fmt.Sprintf("invalid array length '%s'", tok.Value))
		return 0
	}
	return n
}
