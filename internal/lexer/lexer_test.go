package lexer

import (
	"rush/internal/token"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `if(1+2)>=3 then -4*5 else !6 %7 /8`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.NUMBER, "1"},
		{token.PLUS, "+"},
		{token.NUMBER, "2"},
		{token.RPAREN, ")"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "3"},
		{token.THEN, "then"},
		{token.MINUS, "-"},
		{token.NUMBER, "4"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "5"},
		{token.ELSE, "else"},
		{token.BANG, "!"},
		{token.NUMBER, "6"},
		{token.PERCENT, "%"},
		{token.NUMBER, "7"},
		{token.SLASH, "/"},
		{token.NUMBER, "8"},
		{token.EOF, ""},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q '%q', got=%q: '%q'",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestComparisonAndLogicalOperators(t *testing.T) {
	input := "1<2 <=3>4 >= 5==6!=7&&true||false and nil or :x"

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.NUMBER, "1"},
		{token.LT, "<"},
		{token.NUMBER, "2"},
		{token.LT_EQ, "<="},
		{token.NUMBER, "3"},
		{token.GT, ">"},
		{token.NUMBER, "4"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "5"},
		{token.EQ, "=="},
		{token.NUMBER, "6"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "7"},
		{token.LOGICAL_AND, "&&"},
		{token.TRUE, "true"},
		{token.LOGICAL_OR, "||"},
		{token.FALSE, "false"},
		{token.LOGICAL_AND, "and"},
		{token.NIL, "nil"},
		{token.LOGICAL_OR, "or"},
		{token.COLON, ":"},
		{token.IDENT, "x"},
	}

	tokens := Tokenize(input)
	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		if tokens[i].Type != tt.expectedType || tokens[i].Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected %q %q, got %q %q",
				i, tt.expectedType, tt.expectedLiteral, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestBarewordsAndPositions(t *testing.T) {
	tokens := Tokenize("ls  -la /tmp\tiffy")

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		position        int
		spaced          bool
	}{
		{token.IDENT, "ls", 0, true},
		{token.MINUS, "-", 4, true},
		{token.IDENT, "la", 5, false},
		{token.SLASH, "/", 8, true},
		{token.IDENT, "tmp", 9, false},
		{token.IDENT, "iffy", 13, true},
	}

	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected %q %q, got %q %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
		if tok.Position != tt.position {
			t.Errorf("tests[%d] - position wrong. expected=%d, got=%d", i, tt.position, tok.Position)
		}
		if tok.Spaced != tt.spaced {
			t.Errorf("tests[%d] - spaced wrong. expected=%t, got=%t", i, tt.spaced, tok.Spaced)
		}
	}
}

func TestTokenizeBlank(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if tokens := Tokenize(input); len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %v, want no tokens", input, tokens)
		}
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"1 + 2", []string{"1 + 2"}},
		{"1 + ; 2 + 3", []string{"1 + ", " 2 + 3"}},
		{"  echo hi;  ", []string{"echo hi", ""}},
		{"", []string{""}},
		{";;", []string{"", "", ""}},
	}

	for _, tt := range tests {
		got := Segments(tt.input)
		if len(got) != len(tt.want) {
			t.Fatalf("Segments(%q) = %q, want %q", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Segments(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}
