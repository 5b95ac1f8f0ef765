package parser

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/frontend/ast"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

// Parser holds temporary state during parsing of a single file.
type Parser struct {
	tokens      []tokens.Token
	current     int
	diagnostics *diagnostics.DiagnosticBag
	filepath    string

	// noStructLit disables struct-literal parsing while reading a
	// condition or scrutinee, so `if x {` is not read as `x { ... }`.
	noStructLit bool
}

// Parse builds a Program from a token stream.
func Parse(toks []tokens.Token, filepath string, diag *diagnostics.DiagnosticBag) *ast.Program {
	p := &Parser{
		tokens:      toks,
		diagnostics: diag,
		filepath:    filepath,
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{
		FilePath: p.filepath,
		Nodes:    []ast.Node{},
	}

	for !p.isAtEnd() {
		node := p.parseTopLevel()
		if node != nil {
			program.Nodes = append(program.Nodes, node)
		}
	}

	if len(program.Nodes) > 0 {
		program.Location = *source.Span(program.Nodes[0].Loc(), program.Nodes[len(program.Nodes)-1].Loc())
	} else {
		program.Location = source.Location{File: p.filepath}
	}
	return program
}

// --- token stream helpers ---

func (p *Parser) peek() tokens.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() tokens.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == tokens.EOF_TOKEN
}

func (p *Parser) advance() tokens.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind tokens.TOKEN) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...tokens.TOKEN) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or reports an error and
// returns the current token unconsumed.
func (p *Parser) expect(kind tokens.TOKEN) tokens.Token {
	if p.check(kind) {
		return p.advance()
	}
	tok := p.peek()
	p.diagnostics.Add(
		diagnostics.NewError(fmt.Sprintf("expected '%s', found '%s'", kind, tok.Kind)).
			WithCode(diagnostics.ErrExpectedToken).
			WithLocation(&tok.Location),
	)
	return tok
}

// synchronize skips tokens until a statement boundary so one syntax
// error does not cascade.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Kind == tokens.SEMICOLON_TOKEN {
			return
		}
		switch p.peek().Kind {
		case tokens.LET_TOKEN, tokens.FN_TOKEN, tokens.STRUCT_TOKEN, tokens.ENUM_TOKEN,
			tokens.IF_TOKEN, tokens.WHILE_TOKEN, tokens.RETURN_TOKEN, tokens.MATCH_TOKEN,
			tokens.CLOSE_CURLY:
			return
		}
		p.advance()
	}
}

func (p *Parser) errorAt(loc *source.Location, code, msg string) {
	p.diagnostics.Add(
		diagnostics.NewError(msg).WithCode(code).WithLocation(loc),
	)
}

func (p *Parser) parseIdentifier() *ast.IdentifierExpr {
	tok := p.expect(tokens.IDENTIFIER_TOKEN)
	return &ast.IdentifierExpr{Name: tok.Value, Location: tok.Location}
}
