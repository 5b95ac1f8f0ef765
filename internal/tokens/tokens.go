package tokens

import (
	"fmt"

	"github.com/ASTRALLIBERTAD/Brain/internal/source"
)

type TOKEN string

const (
	// keywords
	LET_TOKEN    TOKEN = "let"
	MUT_TOKEN    TOKEN = "mut"
	FN_TOKEN     TOKEN = "fn"
	STRUCT_TOKEN TOKEN = "struct"
	ENUM_TOKEN   TOKEN = "enum"
	MATCH_TOKEN  TOKEN = "match"
	IF_TOKEN     TOKEN = "if"
	ELSE_TOKEN   TOKEN = "else"
	WHILE_TOKEN  TOKEN = "while"
	RETURN_TOKEN TOKEN = "return"
	UNSAFE_TOKEN TOKEN = "unsafe"
	LOCK_TOKEN   TOKEN = "lock"
	AS_TOKEN     TOKEN = "as"
	SPAWN_TOKEN  TOKEN = "spawn"
	IMPORT_TOKEN TOKEN = "import"
	TRUE_TOKEN   TOKEN = "true"
	FALSE_TOKEN  TOKEN = "false"

	// literals and identifiers
	IDENTIFIER_TOKEN TOKEN = "identifier"
	INT_TOKEN        TOKEN = "integer literal"
	STRING_TOKEN     TOKEN = "string literal"
	CHAR_TOKEN       TOKEN = "character literal"

	// operators
	ARROW_TOKEN         TOKEN = "->"
	FAT_ARROW_TOKEN     TOKEN = "=>"
	SCOPE_TOKEN         TOKEN = "::"
	AND_TOKEN           TOKEN = "&&"
	OR_TOKEN            TOKEN = "||"
	AMPERSAND_TOKEN     TOKEN = "&"
	NOT_TOKEN           TOKEN = "!"
	NOT_EQUAL_TOKEN     TOKEN = "!="
	DOUBLE_EQUAL_TOKEN  TOKEN = "=="
	EQUALS_TOKEN        TOKEN = "="
	LESS_EQUAL_TOKEN    TOKEN = "<="
	LESS_TOKEN          TOKEN = "<"
	GREATER_EQUAL_TOKEN TOKEN = ">="
	GREATER_TOKEN       TOKEN = ">"
	PLUS_TOKEN          TOKEN = "+"
	MINUS_TOKEN         TOKEN = "-"
	MUL_TOKEN           TOKEN = "*"
	DIV_TOKEN           TOKEN = "/"
	MOD_TOKEN           TOKEN = "%"

	// punctuation
	OPEN_PAREN      TOKEN = "("
	CLOSE_PAREN     TOKEN = ")"
	OPEN_BRACKET    TOKEN = "["
	CLOSE_BRACKET   TOKEN = "]"
	OPEN_CURLY      TOKEN = "{"
	CLOSE_CURLY     TOKEN = "}"
	COMMA_TOKEN     TOKEN = ","
	COLON_TOKEN     TOKEN = ":"
	SEMICOLON_TOKEN TOKEN = ";"
	DOT_TOKEN       TOKEN = "."
	UNDERSCORE      TOKEN = "_"

	EOF_TOKEN TOKEN = "eof"
)

// keywords maps identifier spellings to their keyword token kinds.
var keywords = map[string]TOKEN{
	"let":    LET_TOKEN,
	"mut":    MUT_TOKEN,
	"fn":     FN_TOKEN,
	"struct": STRUCT_TOKEN,
	"enum":   ENUM_TOKEN,
	"match":  MATCH_TOKEN,
	"if":     IF_TOKEN,
	"else":   ELSE_TOKEN,
	"while":  WHILE_TOKEN,
	"return": RETURN_TOKEN,
	"unsafe": UNSAFE_TOKEN,
	"lock":   LOCK_TOKEN,
	"as":     AS_TOKEN,
	"spawn":  SPAWN_TOKEN,
	"import": IMPORT_TOKEN,
	"true":   TRUE_TOKEN,
	"false":  FALSE_TOKEN,
}

// LookupKeyword returns the keyword kind for an identifier spelling, or
// IDENTIFIER_TOKEN if it is not a keyword.
func LookupKeyword(name string) TOKEN {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	if name == "_" {
		return UNDERSCORE
	}
	return IDENTIFIER_TOKEN
}

// Token is a single lexical token with its source span.
type Token struct {
	Kind     TOKEN
	Value    string
	Location source.Location
}

func New(kind TOKEN, value string, loc source.Location) Token {
	return Token{Kind: kind, Value: value, Location: loc}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
}
