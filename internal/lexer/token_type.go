package lexer

// TokenType classifies a Token. Types are grouped the way the grammar in
// spec.md §4.2 groups them: special tokens, literals, keywords, type names,
// operators, and punctuation.
type TokenType int

// Token type constants, organized by category. The keywordBegin/End and
// typeBegin/End markers let Token.IsKeyword/IsType test membership with a
// single range comparison instead of a lookup table; literalBegin/End
// bracket the literal kinds the same way.
const (
	ILLEGAL TokenType = iota // an unrecognized character
	EOF                      // sentinel terminating every token sequence

	literalBegin
	IDENT  // identifiers: x, counter, myFunc
	INT    // integer literals: 42
	FLOAT  // floating-point literals: 3.14
	STRING // double-quoted string literals: "hi\n"
	literalEnd

	keywordBegin
	FUNC
	RETURN
	IF
	ELSE
	WHILE
	LET
	ALLOC
	FREE
	SIZEOF
	PTR
	REF
	DEREF
	LEN
	CONCAT
	SUBSTR
	keywordEnd

	typeBegin
	I32
	I64
	F32
	F64
	STRINGTYPE
	typeEnd

	// Operators, single- and multi-character.
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	ASSIGN       // =
	EQ           // ==
	LT           // <
	GT           // >
	LE           // <=
	GE           // >=
	LPAREN       // (
	RPAREN       // )
	LBRACE       // {
	RBRACE       // }
	COLON        // :
	SEMICOLON    // ;
	COMMA        // ,
	ARROW        // ->
	PLUSASSIGN   // +=
	MINUSASSIGN  // -=
	STARASSIGN   // *=
	SLASHASSIGN  // /=
	AMP          // &
	AT           // @
	DOT          // .
)

// tokenNames gives a human-readable name for each TokenType, used by the CLI
// lex command and by error messages.
var tokenNames = map[TokenType]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	INT:         "INT",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	FUNC:        "func",
	RETURN:      "return",
	IF:          "if",
	ELSE:        "else",
	WHILE:       "while",
	LET:         "let",
	ALLOC:       "alloc",
	FREE:        "free",
	SIZEOF:      "sizeof",
	PTR:         "ptr",
	REF:         "ref",
	DEREF:       "deref",
	LEN:         "len",
	CONCAT:      "concat",
	SUBSTR:      "substr",
	I32:         "i32",
	I64:         "i64",
	F32:         "f32",
	F64:         "f64",
	STRINGTYPE:  "string",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	ASSIGN:      "=",
	EQ:          "==",
	LT:          "<",
	GT:          ">",
	LE:          "<=",
	GE:          ">=",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	COLON:       ":",
	SEMICOLON:   ";",
	COMMA:       ",",
	ARROW:       "->",
	PLUSASSIGN:  "+=",
	MINUSASSIGN: "-=",
	STARASSIGN:  "*=",
	SLASHASSIGN: "/=",
	AMP:         "&",
	AT:          "@",
	DOT:         ".",
}

// String returns the human-readable name of t, or "UNKNOWN" if t is not a
// recognized TokenType.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps reserved words (and type names) to their TokenType. identifier
// scans consult this table to decide whether a scanned name is a keyword, a
// type name, or a plain identifier.
var keywords = map[string]TokenType{
	"func":   FUNC,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"let":    LET,
	"alloc":  ALLOC,
	"free":   FREE,
	"sizeof": SIZEOF,
	"ptr":    PTR,
	"ref":    REF,
	"deref":  DEREF,
	"len":    LEN,
	"concat": CONCAT,
	"substr": SUBSTR,
	"i32":    I32,
	"i64":    I64,
	"f32":    F32,
	"f64":    F64,
	"string": STRINGTYPE,
}

// LookupIdent classifies name as a keyword/type TokenType if it matches a
// reserved word, otherwise returns IDENT.
func LookupIdent(name string) TokenType {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return IDENT
}
