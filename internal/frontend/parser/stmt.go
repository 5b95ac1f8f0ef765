package parser

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(tokens.OPEN_CURLY)
	block := &ast.Block{}

	for !p.check(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		stmt := p.parseStmt()
		if stmt != nil {
			block.Nodes = append(block.Nodes, stmt)
		}
	}

	end := p.expect(tokens.CLOSE_CURLY)
	block.Location = *source.Span(&start.Location, &end.Location)
	return block
}

func (p *Parser) parseStmt() ast.Node {
	switch p.peek().Kind {
	case tokens.LET_TOKEN:
		return p.parseLetStmt()
	case tokens.RETURN_TOKEN:
		return p.parseReturnStmt()
	case tokens.IF_TOKEN:
		return p.parseIfStmt()
	case tokens.WHILE_TOKEN:
		return p.parseWhileStmt()
	case tokens.MATCH_TOKEN:
		return p.parseMatchStmt()
	case tokens.UNSAFE_TOKEN:
		start := p.advance()
		body := p.parseBlock()
		return &ast.UnsafeStmt{Body: body, Location: *source.Span(&start.Location, body.Loc())}
	case tokens.SPAWN_TOKEN:
		start := p.advance()
		body := p.parseBlock()
		return &ast.SpawnStmt{Body: body, Location: *source.Span(&start.Location, body.Loc())}
	case tokens.LOCK_TOKEN:
		return p.parseLockStmt()
	case tokens.OPEN_CURLY:
		return p.parseBlock()
	default:
		return p.parseExprOrAssign()
	}
}

func (p *Parser) parseLetStmt() ast.Node {
	start := p.expect(tokens.LET_TOKEN)
	mutable := p.match(tokens.MUT_TOKEN)
	name := p.parseIdentifier()

	var typeNode ast.TypeNode
	if p.match(tokens.COLON_TOKEN) {
		typeNode = p.parseType()
	}

	var value ast.Expression
	if p.match(tokens.EQUALS_TOKEN) {
		value = p.parseExpr()
	} else if typeNode == nil {
		p.errorAt(name.Loc(), diagnostics.ErrExpectedToken,
			fmt.Sprintf("binding '%s' needs a type annotation or an initializer", name.Name))
	}

	end := p.expect(tokens.SEMICOLON_TOKEN)
	return &ast.LetStmt{
		Mutable:  mutable,
		Name:     name,
		Type:     typeNode,
		Value:    value,
		Location: *source.Span(&start.Location, &end.Location),
	}
}

func (p *Parser) parseReturnStmt() ast.Node {
	start := p.expect(tokens.RETURN_TOKEN)
	var result ast.Expression
	if !p.check(tokens.SEMICOLON_TOKEN) {
		result = p.parseExpr()
	}
	end := p.expect(tokens.SEMICOLON_TOKEN)
	return &ast.ReturnStmt{Result: result, Location: *source.Span(&start.Location, &end.Location)}
}

func (p *Parser) parseIfStmt() ast.Node {
	start := p.expect(tokens.IF_TOKEN)
	cond := p.parseCondition()
	body := p.parseBlock()

	stmt := &ast.IfStmt{Cond: cond, Body: body}
	end := body.Loc()

	if p.match(tokens.ELSE_TOKEN) {
		if p.check(tokens.IF_TOKEN) {
			elseIf := p.parseIfStmt()
			stmt.Else = elseIf
			end = elseIf.Loc()
		} else {
			elseBlock := p.parseBlock()
			stmt.Else = elseBlock
			end = elseBlock.Loc()
		}
	}

	stmt.Location = *source.Span(&start.Location, end)
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Node {
	start := p.expect(tokens.WHILE_TOKEN)
	cond := p.parseCondition()
	body := p.parseBlock()
	return &ast.WhileStmt{
		Cond:     cond,
		Body:     body,
		Location: *source.Span(&start.Location, body.Loc()),
	}
}

// parseCondition parses an expression with struct literals disabled so
// the condition's closing brace is not swallowed.
func (p *Parser) parseCondition() ast.Expression {
	saved := p.noStructLit
	p.noStructLit = true
	expr := p.parseExpr()
	p.noStructLit = saved
	return expr
}

func (p *Parser) parseLockStmt() ast.Node {
	start := p.expect(tokens.LOCK_TOKEN)
	cell := p.parseCondition()
	p.expect(tokens.AS_TOKEN)
	name := p.parseIdentifier()
	body := p.parseBlock()
	return &ast.LockStmt{
		Cell:     cell,
		Name:     name,
		Body:     body,
		Location: *source.Span(&start.Location, body.Loc()),
	}
}

func (p *Parser) parseMatchStmt() ast.Node {
	start := p.expect(tokens.MATCH_TOKEN)
	scrutinee := p.parseCondition()
	p.expect(tokens.OPEN_CURLY)

	var arms []ast.MatchArm
	for !p.check(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		pattern := p.parsePattern()
		p.expect(tokens.FAT_ARROW_TOKEN)
		body := p.parseBlock()
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})
		p.match(tokens.COMMA_TOKEN)
	}
	end := p.expect(tokens.CLOSE_CURLY)

	return &ast.MatchStmt{
		Scrutinee: scrutinee,
		Arms:      arms,
		Location:  *source.Span(&start.Location, &end.Location),
	}
}

// parsePattern parses Enum::Variant, Enum::Variant(binder), or _.
func (p *Parser) parsePattern() *ast.MatchPattern {
	if p.check(tokens.UNDERSCORE) {
		tok := p.advance()
		return &ast.MatchPattern{Wildcard: true, Location: tok.Location}
	}

	enumName := p.parseIdentifier()
	p.expect(tokens.SCOPE_TOKEN)
	variant := p.parseIdentifier()

	pattern := &ast.MatchPattern{
		EnumName: enumName,
		Variant:  variant,
		Location: *source.Span(enumName.Loc(), variant.Loc()),
	}

	if p.match(tokens.OPEN_PAREN) {
		pattern.Binder = p.parseIdentifier()
		end := p.expect(tokens.CLOSE_PAREN)
		pattern.Location = *source.Span(enumName.Loc(), &end.Location)
	}
	return pattern
}

// parseExprOrAssign parses an expression statement or an assignment.
func (p *Parser) parseExprOrAssign() ast.Node {
	expr := p.parseExpr()
	if expr == nil {
		p.synchronize()
		return nil
	}

	if p.match(tokens.EQUALS_TOKEN) {
		value := p.parseExpr()
		end := p.expect(tokens.SEMICOLON_TOKEN)

		switch expr.(type) {
		case *ast.IdentifierExpr, *ast.FieldAccessExpr, *ast.IndexExpr:
		default:
			p.errorAt(expr.Loc(), diagnostics.ErrUnexpectedToken,
				"invalid assignment target")
		}
		return &ast.AssignStmt{
			Target:   expr,
			Value:    value,
			Location: *source.Span(expr.Loc(), &end.Location),
		}
	}

	end := p.expect(tokens.SEMICOLON_TOKEN)
	return &ast.ExprStmt{X: expr, Location: *source.Span(expr.Loc(), &end.Location)}
}
