package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ASTRALLIBERTAD/Brain/internal/diagnostics"
	"github.com/ASTRALLIBERTAD/Brain/internal/tokens"
)

func tokenize(t *testing.T, src string) ([]tokens.Token, *diagnostics.DiagnosticBag) {
	t.Helper()
	diag := diagnostics.NewDiagnosticBag()
	toks := New("test.brn", src, diag).Tokenize()
	return toks, diag
}

func kinds(toks []tokens.Token) []tokens.TOKEN {
	out := make([]tokens.TOKEN, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeStatement(t *testing.T) {
	toks, diag := tokenize(t, `let mut x: int = 42;`)
	assert.False(t, diag.HasErrors())
	assert.Equal(t, []tokens.TOKEN{
		tokens.LET_TOKEN, tokens.MUT_TOKEN, tokens.IDENTIFIER_TOKEN,
		tokens.COLON_TOKEN, tokens.IDENTIFIER_TOKEN, tokens.EQUALS_TOKEN,
		tokens.INT_TOKEN, tokens.SEMICOLON_TOKEN, tokens.EOF_TOKEN,
	}, kinds(toks))
	assert.Equal(t, "42", toks[6].Value)
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		src  string
		want tokens.TOKEN
	}{
		{"->", tokens.ARROW_TOKEN},
		{"=>", tokens.FAT_ARROW_TOKEN},
		{"::", tokens.SCOPE_TOKEN},
		{"&&", tokens.AND_TOKEN},
		{"||", tokens.OR_TOKEN},
		{"&", tokens.AMPERSAND_TOKEN},
		{"!=", tokens.NOT_EQUAL_TOKEN},
		{"==", tokens.DOUBLE_EQUAL_TOKEN},
		{"<=", tokens.LESS_EQUAL_TOKEN},
		{">=", tokens.GREATER_EQUAL_TOKEN},
		{"%", tokens.MOD_TOKEN},
	}
	for _, tc := range tests {
		toks, diag := tokenize(t, tc.src)
		if diag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics", tc.src)
		}
		if toks[0].Kind != tc.want {
			t.Errorf("%q: got %s, want %s", tc.src, toks[0].Kind, tc.want)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks, _ := tokenize(t, "lock locker unsafe spawned _ spawn")
	want := []tokens.TOKEN{
		tokens.LOCK_TOKEN, tokens.IDENTIFIER_TOKEN, tokens.UNSAFE_TOKEN,
		tokens.IDENTIFIER_TOKEN, tokens.UNDERSCORE, tokens.SPAWN_TOKEN,
		tokens.EOF_TOKEN,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestStringLiteral(t *testing.T) {
	toks, diag := tokenize(t, `print("hello world");`)
	assert.False(t, diag.HasErrors())
	assert.Equal(t, tokens.STRING_TOKEN, toks[2].Kind)
	assert.Equal(t, "hello world", toks[2].Value)
}

func TestCharEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'a'`, "a"},
		{`'\n'`, "\n"},
		{`'\t'`, "\t"},
		{`'\\'`, `\`},
		{`'\''`, "'"},
		{`'\0'`, "\x00"},
	}
	for _, tc := range tests {
		toks, diag := tokenize(t, tc.src)
		if diag.HasErrors() {
			t.Fatalf("%s: unexpected diagnostics", tc.src)
		}
		if toks[0].Kind != tokens.CHAR_TOKEN || toks[0].Value != tc.want {
			t.Errorf("%s: got %q, want %q", tc.src, toks[0].Value, tc.want)
		}
	}
}

func TestInvalidCharLiteral(t *testing.T) {
	_, diag := tokenize(t, `'\q'`)
	assert.True(t, diag.HasErrors())
	assert.Equal(t, diagnostics.ErrInvalidCharLiteral, diag.Diagnostics()[0].Code)
}

func TestUnterminatedString(t *testing.T) {
	_, diag := tokenize(t, "let s = \"oops;\nlet x = 1;")
	assert.True(t, diag.HasErrors())
	assert.Equal(t, diagnostics.ErrUnterminatedString, diag.Diagnostics()[0].Code)
}

func TestUnexpectedCharacter(t *testing.T) {
	toks, diag := tokenize(t, "let x = 1 @ 2;")
	assert.Equal(t, diagnostics.ErrUnexpectedCharacter, diag.Diagnostics()[0].Code)
	// The bad character is skipped; the rest still tokenizes.
	assert.Equal(t, tokens.EOF_TOKEN, toks[len(toks)-1].Kind)
}

func TestCommentsAndPositions(t *testing.T) {
	toks, diag := tokenize(t, "// comment\nlet x = 1;")
	assert.False(t, diag.HasErrors())
	assert.Equal(t, tokens.LET_TOKEN, toks[0].Kind)
	assert.Equal(t, 2, toks[0].Location.Start.Line)
	assert.Equal(t, 1, toks[0].Location.Start.Column)
	assert.Equal(t, 5, toks[1].Location.Start.Column)
}
