package parser

import (
	"fmt"
	"strconv"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// Precedence climbing, loosest first:
// || -> && -> == != -> < <= > >= -> + - -> * / % -> unary -> postfix

// binary combines two operands, tolerating nil operands produced by
// error recovery so the parser never dereferences a failed parse.
func binary(left ast.Expression, op tokens.Token, right ast.Expression) ast.Expression {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return &ast.BinaryExpr{X: left, Op: op, Y: right, Location: *source.Span(left.Loc(), right.Loc())}
}

func (p *Parser) parseExpr() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	expr := p.parseAnd()
	for p.check(tokens.OR_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseAnd())
	}
	return expr
}

func (p *Parser) parseAnd() ast.Expression {
	expr := p.parseEquality()
	for p.check(tokens.AND_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseEquality())
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	expr := p.parseComparison()
	for p.check(tokens.DOUBLE_EQUAL_TOKEN) || p.check(tokens.NOT_EQUAL_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseComparison())
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expression {
	expr := p.parseAdditive()
	for p.check(tokens.LESS_TOKEN) || p.check(tokens.LESS_EQUAL_TOKEN) ||
		p.check(tokens.GREATER_TOKEN) || p.check(tokens.GREATER_EQUAL_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseAdditive())
	}
	return expr
}

func (p *Parser) parseAdditive() ast.Expression {
	expr := p.parseMultiplicative()
	for p.check(tokens.PLUS_TOKEN) || p.check(tokens.MINUS_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseMultiplicative())
	}
	return expr
}

func (p *Parser) parseMultiplicative() ast.Expression {
	expr := p.parseUnary()
	for p.check(tokens.MUL_TOKEN) || p.check(tokens.DIV_TOKEN) || p.check(tokens.MOD_TOKEN) {
		op := p.advance()
		expr = binary(expr, op, p.parseUnary())
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.peek().Kind {
	case tokens.AMPERSAND_TOKEN:
		start := p.advance()
		mutable := p.match(tokens.MUT_TOKEN)
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.BorrowExpr{
			Mutable:  mutable,
			X:        operand,
			Location: *source.Span(&start.Location, operand.Loc()),
		}
	case tokens.MINUS_TOKEN, tokens.NOT_TOKEN:
		op := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			Op:       op,
			X:        operand,
			Location: *source.Span(&op.Location, operand.Loc()),
		}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.check(tokens.DOT_TOKEN):
			p.advance()
			field := p.parseIdentifier()
			expr = &ast.FieldAccessExpr{
				X:        expr,
				Field:    field,
				Location: *source.Span(expr.Loc(), field.Loc()),
			}
		case p.check(tokens.OPEN_BRACKET):
			p.advance()
			index := p.parseExpr()
			end := p.expect(tokens.CLOSE_BRACKET)
			expr = &ast.IndexExpr{
				X:        expr,
				Index:    index,
				Location: *source.Span(expr.Loc(), &end.Location),
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case tokens.INT_TOKEN:
		p.advance()
		value, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			p.errorAt(&tok.Location, diagnostics.ErrUnexpectedToken,
				fmt.Sprintf("integer literal '%s' out of range", tok.Value))
		}
		return &ast.IntLiteral{Value: value, Location: tok.Location}
	case tokens.STRING_TOKEN:
		p.advance()
		return &ast.StringLiteral{Value: tok.Value, Location: tok.Location}
	case tokens.CHAR_TOKEN:
		p.advance()
		return &ast.CharLiteral{Value: []rune(tok.Value)[0], Location: tok.Location}
	case tokens.TRUE_TOKEN, tokens.FALSE_TOKEN:
		p.advance()
		return &ast.BoolLiteral{Value: tok.Kind == tokens.TRUE_TOKEN, Location: tok.Location}
	case tokens.OPEN_BRACKET:
		return p.parseArrayLiteral()
	case tokens.OPEN_PAREN:
		start := p.advance()
		// Struct literals are legal inside parentheses even in
		// condition position.
		saved := p.noStructLit
		p.noStructLit = false
		inner := p.parseExpr()
		p.noStructLit = saved
		end := p.expect(tokens.CLOSE_PAREN)
		return &ast.ParenExpr{X: inner, Location: *source.Span(&start.Location, &end.Location)}
	case tokens.IDENTIFIER_TOKEN:
		return p.parseIdentifierExpr()
	default:
		p.errorAt(&tok.Location, diagnostics.ErrUnexpectedToken,
			fmt.Sprintf("expected an expression, found '%s'", tok.Kind))
		p.advance()
		return nil
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.expect(tokens.OPEN_BRACKET)
	var elements []ast.Expression
	for !p.check(tokens.CLOSE_BRACKET) && !p.isAtEnd() {
		elements = append(elements, p.parseExpr())
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	end := p.expect(tokens.CLOSE_BRACKET)
	return &ast.ArrayLiteral{
		Elements: elements,
		Location: *source.Span(&start.Location, &end.Location),
	}
}

// parseIdentifierExpr disambiguates a plain identifier from a call,
// an enum construction Name::Variant, and a struct literal Name { ... }.
func (p *Parser) parseIdentifierExpr() ast.Expression {
	name := p.parseIdentifier()

	switch {
	case p.check(tokens.SCOPE_TOKEN):
		p.advance()
		variant := p.parseIdentifier()
		lit := &ast.EnumLiteral{
			EnumName: name,
			Variant:  variant,
			Location: *source.Span(name.Loc(), variant.Loc()),
		}
		if p.match(tokens.OPEN_PAREN) {
			lit.Payload = p.parseExpr()
			end := p.expect(tokens.CLOSE_PAREN)
			lit.Location = *source.Span(name.Loc(), &end.Location)
		}
		return lit
	case p.check(tokens.OPEN_PAREN):
		p.advance()
		var args []ast.Expression
		for !p.check(tokens.CLOSE_PAREN) && !p.isAtEnd() {
			args = append(args, p.parseExpr())
			if !p.match(tokens.COMMA_TOKEN) {
				break
			}
		}
		end := p.expect(tokens.CLOSE_PAREN)
		return &ast.CallExpr{
			Fun:      name,
			Args:     args,
			Location: *source.Span(name.Loc(), &end.Location),
		}
	case p.check(tokens.OPEN_CURLY) && !p.noStructLit:
		return p.parseStructLiteral(name)
	default:
		return name
	}
}

func (p *Parser) parseStructLiteral(name *ast.IdentifierExpr) ast.Expression {
	p.expect(tokens.OPEN_CURLY)
	var fields []ast.FieldInit
	for !p.check(tokens.CLOSE_CURLY) && !p.isAtEnd() {
		fname := p.parseIdentifier()
		p.expect(tokens.COLON_TOKEN)
		value := p.parseExpr()
		fields = append(fields, ast.FieldInit{Name: fname, Value: value})
		if !p.match(tokens.COMMA_TOKEN) {
			break
		}
	}
	end := p.expect(tokens.CLOSE_CURLY)
	return &ast.StructLiteral{
		Name:     name,
		Fields:   fields,
		Location: *source.Span(name.Loc(), &end.Location),
	}
}
