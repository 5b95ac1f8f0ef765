package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/source"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

type regexHandler func(lex *Lexer, regex *regexp.Regexp)

type regexPattern struct {
	regex   *regexp.Regexp
	handler regexHandler
}

// Lexer turns Brain source text into a token stream.
type Lexer struct {
	diagnostics *diagnostics.DiagnosticBag
	Tokens      []tokens.Token
	Position    source.Position
	sourceCode  string
	patterns    []regexPattern
	FilePath    string
}

func New(filepath, content string, diag *diagnostics.DiagnosticBag) *Lexer {
	lex := &Lexer{
		sourceCode:  content,
		Tokens:      make([]tokens.Token, 0),
		Position:    source.Position{Line: 1, Column: 1, Index: 0},
		diagnostics: diag,
		FilePath:    filepath,

		patterns: []regexPattern{
			{regexp.MustCompile(`^\s+`), skipHandler},
			{regexp.MustCompile(`^//[^\n]*`), skipHandler},
			{regexp.MustCompile(`^"[^"\n]*"`), stringHandler},
			{regexp.MustCompile(`^"[^"\n]*`), unterminatedStringHandler},
			{regexp.MustCompile(`^'(\\.|[^'\\])'`), charHandler},
			{regexp.MustCompile(`^[0-9]+`), numberHandler},
			{regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), identifierHandler},
			{regexp.MustCompile(`^->`), defaultHandler(tokens.ARROW_TOKEN)},
			{regexp.MustCompile(`^=>`), defaultHandler(tokens.FAT_ARROW_TOKEN)},
			{regexp.MustCompile(`^::`), defaultHandler(tokens.SCOPE_TOKEN)},
			{regexp.MustCompile(`^&&`), defaultHandler(tokens.AND_TOKEN)},
			{regexp.MustCompile(`^\|\|`), defaultHandler(tokens.OR_TOKEN)},
			{regexp.MustCompile(`^&`), defaultHandler(tokens.AMPERSAND_TOKEN)},
			{regexp.MustCompile(`^!=`), defaultHandler(tokens.NOT_EQUAL_TOKEN)},
			{regexp.MustCompile(`^==`), defaultHandler(tokens.DOUBLE_EQUAL_TOKEN)},
			{regexp.MustCompile(`^=`), defaultHandler(tokens.EQUALS_TOKEN)},
			{regexp.MustCompile(`^<=`), defaultHandler(tokens.LESS_EQUAL_TOKEN)},
			{regexp.MustCompile(`^<`), defaultHandler(tokens.LESS_TOKEN)},
			{regexp.MustCompile(`^>=`), defaultHandler(tokens.GREATER_EQUAL_TOKEN)},
			{regexp.MustCompile(`^>`), defaultHandler(tokens.GREATER_TOKEN)},
			{regexp.MustCompile(`^!`), defaultHandler(tokens.NOT_TOKEN)},
			{regexp.MustCompile(`^\+`), defaultHandler(tokens.PLUS_TOKEN)},
			{regexp.MustCompile(`^-`), defaultHandler(tokens.MINUS_TOKEN)},
			{regexp.MustCompile(`^\*`), defaultHandler(tokens.MUL_TOKEN)},
			{regexp.MustCompile(`^/`), defaultHandler(tokens.DIV_TOKEN)},
			{regexp.MustCompile(`^%`), defaultHandler(tokens.MOD_TOKEN)},
			{regexp.MustCompile(`^\(`), defaultHandler(tokens.OPEN_PAREN)},
			{regexp.MustCompile(`^\)`), defaultHandler(tokens.CLOSE_PAREN)},
			{regexp.MustCompile(`^\[`), defaultHandler(tokens.OPEN_BRACKET)},
			{regexp.MustCompile(`^\]`), defaultHandler(tokens.CLOSE_BRACKET)},
			{regexp.MustCompile(`^\{`), defaultHandler(tokens.OPEN_CURLY)},
			{regexp.MustCompile(`^\}`), defaultHandler(tokens.CLOSE_CURLY)},
			{regexp.MustCompile(`^,`), defaultHandler(tokens.COMMA_TOKEN)},
			{regexp.MustCompile(`^:`), defaultHandler(tokens.COLON_TOKEN)},
			{regexp.MustCompile(`^;`), defaultHandler(tokens.SEMICOLON_TOKEN)},
			{regexp.MustCompile(`^\.`), defaultHandler(tokens.DOT_TOKEN)},
		},
	}
	return lex
}

func (lex *Lexer) advance(match string) {
	lex.Position.Advance(match)
}

func (lex *Lexer) push(token tokens.Token) {
	lex.Tokens = append(lex.Tokens, token)
}

func (lex *Lexer) remainder() string {
	return lex.sourceCode[lex.Position.Index:]
}

func (lex *Lexer) atEOF() bool {
	return lex.Position.Index >= len(lex.sourceCode)
}

func (lex *Lexer) span(start source.Position) source.Location {
	return source.Location{File: lex.FilePath, Start: start, End: lex.Position}
}

// Tokenize scans the whole source and returns the token stream,
// terminated by an EOF token. Unexpected characters are reported and
// skipped so the parser always receives a complete stream.
func (lex *Lexer) Tokenize() []tokens.Token {
	for !lex.atEOF() {
		matched := false
		for _, pattern := range lex.patterns {
			if loc := pattern.regex.FindStringIndex(lex.remainder()); loc != nil && loc[0] == 0 {
				pattern.handler(lex, pattern.regex)
				matched = true
				break
			}
		}
		if !matched {
			start := lex.Position
			bad := lex.remainder()[:1]
			lex.advance(bad)
			lex.diagnostics.Add(
				diagnostics.NewError(fmt.Sprintf("unexpected character %q", bad)).
					WithCode(diagnostics.ErrUnexpectedCharacter).
					WithLocation(lex.span1(start)),
			)
		}
	}

	lex.push(tokens.New(tokens.EOF_TOKEN, "", lex.span(lex.Position)))
	return lex.Tokens
}

func (lex *Lexer) span1(start source.Position) *source.Location {
	loc := lex.span(start)
	return &loc
}

func defaultHandler(kind tokens.TOKEN) regexHandler {
	return func(lex *Lexer, regex *regexp.Regexp) {
		start := lex.Position
		match := regex.FindString(lex.remainder())
		lex.advance(match)
		lex.push(tokens.New(kind, match, lex.span(start)))
	}
}

func skipHandler(lex *Lexer, regex *regexp.Regexp) {
	match := regex.FindString(lex.remainder())
	lex.advance(match)
}

func stringHandler(lex *Lexer, regex *regexp.Regexp) {
	start := lex.Position
	match := regex.FindString(lex.remainder())
	lex.advance(match)
	value := match[1 : len(match)-1]
	lex.push(tokens.New(tokens.STRING_TOKEN, value, lex.span(start)))
}

// unterminatedStringHandler matches a string opener with no closing quote
// on the same line. It consumes the rest of the line so the parser does
// not see its contents as garbage tokens.
func unterminatedStringHandler(lex *Lexer, regex *regexp.Regexp) {
	start := lex.Position
	match := regex.FindString(lex.remainder())
	lex.advance(match)
	lex.diagnostics.Add(
		diagnostics.NewError("unterminated string literal").
			WithCode(diagnostics.ErrUnterminatedString).
			WithLocation(lex.span1(start)).
			WithHint("add a closing '\"' before the end of the line"),
	)
}

func charHandler(lex *Lexer, regex *regexp.Regexp) {
	start := lex.Position
	match := regex.FindString(lex.remainder())
	lex.advance(match)

	body := match[1 : len(match)-1]
	value := unescapeChar(body)
	if value < 0 {
		lex.diagnostics.Add(
			diagnostics.NewError(fmt.Sprintf("invalid character literal %s", match)).
				WithCode(diagnostics.ErrInvalidCharLiteral).
				WithLocation(lex.span1(start)),
		)
		return
	}
	lex.push(tokens.New(tokens.CHAR_TOKEN, string(value), lex.span(start)))
}

func unescapeChar(body string) rune {
	if !strings.HasPrefix(body, `\`) {
		return []rune(body)[0]
	}
	switch body {
	case `\n`:
		return '\n'
	case `\t`:
		return '\t'
	case `\\`:
		return '\\'
	case `\'`:
		return '\''
	case `\0`:
		return 0
	default:
		return -1
	}
}

func numberHandler(lex *Lexer, regex *regexp.Regexp) {
	start := lex.Position
	match := regex.FindString(lex.remainder())
	lex.advance(match)
	lex.push(tokens.New(tokens.INT_TOKEN, match, lex.span(start)))
}

func identifierHandler(lex *Lexer, regex *regexp.Regexp) {
	start := lex.Position
	match := regex.FindString(lex.remainder())
	lex.advance(match)
	lex.push(tokens.New(tokens.LookupKeyword(match), match, lex.span(start)))
}
