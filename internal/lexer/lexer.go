package lexer

import (
	"regexp"
	"rush/internal/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// operatorPattern lists every spelling that is split away from adjacent text.
// Two-character operators come first so the leftmost-first match prefers them.
var operatorPattern = regexp.MustCompile(`<=|>=|==|!=|&&|\|\||[-+*/%<>!():]|\b(?:if|then|else|and|or)\b`)

var numberPattern = regexp.MustCompile(`^-?[0-9]+$`)

type Lexer struct {
	input        string
	tokens       []token.Token
	readPosition int // index of the next token to hand out
}

func New(input string) *Lexer {
	return &Lexer{input: input, tokens: Tokenize(input)}
}

// NextToken returns the next token of the segment, or EOF once all tokens were read.
func (l *Lexer) NextToken() token.Token {
	if l.readPosition >= len(l.tokens) {
		return token.Token{Type: token.EOF, Position: len(l.input), Spaced: true}
	}
	tok := l.tokens[l.readPosition]
	l.readPosition++
	return tok
}

// Segments splits one line of input into its `;`-delimited top-level segments.
func Segments(line string) []string {
	return strings.Split(strings.TrimSpace(line), string(token.SEMICOLON))
}

// Tokenize separates every operator occurrence from its neighbours and splits the
// remaining text on whitespace. Empty fragments are dropped.
func Tokenize(segment string) []token.Token {
	var tokens []token.Token
	last := 0
	for _, m := range operatorPattern.FindAllStringIndex(segment, -1) {
		tokens = appendWords(tokens, segment, last, m[0])
		literal := segment[m[0]:m[1]]
		tokens = append(tokens, token.Token{
			Type:     classifyOperator(literal),
			Literal:  literal,
			Position: m[0],
			Spaced:   spacedAt(segment, m[0]),
		})
		last = m[1]
	}
	return appendWords(tokens, segment, last, len(segment))
}

func appendWords(tokens []token.Token, src string, from, to int) []token.Token {
	start := -1
	for i := from; i < to; {
		r, size := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, newWord(src, start, i))
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		tokens = append(tokens, newWord(src, start, to))
	}
	return tokens
}

func newWord(src string, start, end int) token.Token {
	literal := src[start:end]
	tokType := token.LookupIdent(literal)
	if numberPattern.MatchString(literal) {
		tokType = token.NUMBER
	}
	return token.Token{Type: tokType, Literal: literal, Position: start, Spaced: spacedAt(src, start)}
}

func classifyOperator(literal string) token.TokenType {
	if tokType, ok := token.LookupOperator(literal); ok {
		return tokType
	}
	return token.LookupIdent(literal)
}

// spacedAt reports whether the byte at pos starts the segment or follows whitespace.
func spacedAt(src string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(src[:pos])
	return unicode.IsSpace(r)
}
