package token

type TokenType string

const (
	EOF = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // echo, ls, -la
	NUMBER = "NUMBER" // 1343456

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT    = "<"
	LT_EQ = "<="
	GT    = ">"
	GT_EQ = ">="

	LOGICAL_AND = "&&"
	LOGICAL_OR  = "||"

	EQ     = "=="
	NOT_EQ = "!="

	// Delimiters
	SEMICOLON = ";"
	COLON     = ":"
	LPAREN    = "("
	RPAREN    = ")"

	// Keywords
	TRUE  = "TRUE"
	FALSE = "FALSE"
	NIL   = "NIL"
	IF    = "IF"
	THEN  = "THEN"
	ELSE  = "ELSE"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int  // byte offset of the token within its segment
	Spaced   bool // whitespace (or the segment start) precedes the token
}

var keywords = map[string]TokenType{
	// constants
	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,

	// flow control
	"if":   IF,
	"then": THEN,
	"else": ELSE,

	// spelled-out connectives share the symbolic kinds
	"and": LOGICAL_AND,
	"or":  LOGICAL_OR,
}

var operators = map[string]TokenType{
	"+":  PLUS,
	"-":  MINUS,
	"!":  BANG,
	"*":  ASTERISK,
	"/":  SLASH,
	"%":  PERCENT,
	"<":  LT,
	"<=": LT_EQ,
	">":  GT,
	">=": GT_EQ,
	"&&": LOGICAL_AND,
	"||": LOGICAL_OR,
	"==": EQ,
	"!=": NOT_EQ,
	":":  COLON,
	"(":  LPAREN,
	")":  RPAREN,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// LookupOperator reports the kind of an operator or punctuation spelling.
func LookupOperator(op string) (TokenType, bool) {
	tok, ok := operators[op]
	return tok, ok
}
