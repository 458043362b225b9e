package parser

import (
	"fmt"
	"log/slog"
	"rush/internal/ast"
	"rush/internal/lexer"
	"rush/internal/object"
	"rush/internal/token"
	"strconv"
	"strings"
)

var (
	equalityOps = map[token.TokenType]ast.BinaryOp{
		token.EQ:     ast.Eq,
		token.NOT_EQ: ast.Neq,
	}
	comparisonOps = map[token.TokenType]ast.BinaryOp{
		token.GT:    ast.Gt,
		token.LT:    ast.Lt,
		token.GT_EQ: ast.Gte,
		token.LT_EQ: ast.Lte,
	}
	boolOps = map[token.TokenType]ast.BinaryOp{
		token.LOGICAL_AND: ast.And,
		token.LOGICAL_OR:  ast.Or,
	}
	termOps = map[token.TokenType]ast.BinaryOp{
		token.MINUS: ast.Sub,
		token.PLUS:  ast.Add,
	}
	factorOps = map[token.TokenType]ast.BinaryOp{
		token.SLASH:    ast.Div,
		token.ASTERISK: ast.Mult,
		token.PERCENT:  ast.Mod,
	}
)

// SyntaxError reports the token a segment could not be parsed at.
type SyntaxError struct {
	Message string
	Token   token.Token
	Source  string // the segment being parsed
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// Column returns the 1-based column of the offending token within its segment.
func (e *SyntaxError) Column() int {
	return e.Token.Position + 1
}

// Result is the outcome of parsing one `;`-delimited segment.
type Result struct {
	Source     string
	Expression ast.Expression
	Err        error
}

// Parse splits a line into segments and parses each one independently. A
// failed segment yields a Result carrying its error and does not affect the rest.
func Parse(line string) []Result {
	segments := lexer.Segments(line)
	results := make([]Result, 0, len(segments))
	for _, src := range segments {
		p := New(lexer.New(src), src)
		exp, err := p.ParseSegment()
		if err != nil {
			slog.Debug("failed to parse segment",
				slog.String("segment", src),
				slog.Any("error", err),
			)
		}
		results = append(results, Result{Source: src, Expression: exp, Err: err})
	}
	return results
}

type Parser struct {
	l   *lexer.Lexer
	src string // source code here

	curToken  token.Token // the lookahead token, not yet consumed
	peekToken token.Token
}

func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{
		l:   l,
		src: source,
	}
	// read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) errorAt(tok token.Token, message string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(message, args...), Token: tok, Source: p.src}
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return tok.Literal
}

// ParseSegment parses exactly one top-level expression and requires the whole
// segment to be consumed.
func (p *Parser) ParseSegment() (ast.Expression, error) {
	var exp ast.Expression
	var err error

	switch p.curToken.Type {
	case token.EOF:
		return &ast.Empty{}, nil
	case token.IDENT:
		exp, err = p.parseCommand()
	case token.COLON:
		p.nextToken()
		exp, err = p.parseExpression()
	default:
		exp, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(token.EOF) {
		return nil, p.errorAt(p.curToken, "unknown token '%s'", p.curToken.Literal)
	}
	return exp, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if p.curTokenIs(token.IF) {
		return p.parseIfExpression()
	}
	return p.parseEquality()
}

func (p *Parser) parseIfExpression() (ast.Expression, error) {
	expression := &ast.If{Token: p.curToken}
	p.nextToken()

	var err error
	if expression.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if err = p.expect(token.THEN, "then"); err != nil {
		return nil, err
	}
	if expression.ThenBranch, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if err = p.expect(token.ELSE, "else"); err != nil {
		return nil, err
	}
	if expression.ElseBranch, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return expression, nil
}

func (p *Parser) expect(t token.TokenType, spelling string) error {
	if !p.curTokenIs(t) {
		return p.errorAt(p.curToken, "expected '%s', got %s", spelling, describe(p.curToken))
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary(p.parseBoolOp, comparisonOps)
}

func (p *Parser) parseBoolOp() (ast.Expression, error) {
	return p.parseBinary(p.parseTerm, boolOps)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.parseBinary(p.parseFactor, termOps)
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	return p.parseBinary(p.parseUnary, factorOps)
}

// parseBinary parses `next (op next)*` for one precedence level, folding to the left.
func (p *Parser) parseBinary(
	next func() (ast.Expression, error),
	ops map[token.TokenType]ast.BinaryOp,
) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.curToken.Type]
		if !ok {
			return left, nil
		}
		opToken := p.curToken
		p.nextToken()

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: opToken, Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	var op ast.UnaryOp
	switch p.curToken.Type {
	case token.EOF:
		return nil, p.errorAt(p.curToken, "expected unary operator or primary token")
	case token.BANG:
		op = ast.Inverse
	case token.MINUS:
		if p.peekToken.Type == token.NUMBER && !p.peekToken.Spaced {
			return p.parseNegativeNumber()
		}
		op = ast.Negate
	default:
		return p.parsePrimary()
	}

	expression := &ast.Unary{Token: p.curToken, Operator: op}
	p.nextToken()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	expression.Operand = operand
	return expression, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.curToken

	switch tok.Type {
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: object.NativeBoolToBool(tok.Type == token.TRUE)}, nil
	case token.NIL:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: object.NIL}, nil
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.NUMBER:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok, "number out of range: %s", tok.Literal)
		}
		p.nextToken()
		return &ast.Literal{Token: tok, Value: object.Num{Value: value}}, nil
	default:
		return nil, p.errorAt(tok, "expected primary token, got %s", describe(tok))
	}
}

// parseNegativeNumber reads a `-` glued to a number as one literal, so the
// full int64 range can be written.
func (p *Parser) parseNegativeNumber() (ast.Expression, error) {
	tok := p.curToken
	tok.Type = token.NUMBER
	tok.Literal += p.peekToken.Literal

	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok, "number out of range: %s", tok.Literal)
	}
	p.nextToken()
	p.nextToken()
	return &ast.Literal{Token: tok, Value: object.Num{Value: value}}, nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	p.nextToken()

	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(token.RPAREN) {
		return nil, p.errorAt(p.curToken, "missing closing parenthesis")
	}
	p.nextToken()

	return exp, nil
}

// parseCommand treats the leading word as a program name. Each following word
// becomes a Sym argument; a `(` preceded by whitespace opens a sub-expression,
// which must be followed by whitespace or the end of the segment.
func (p *Parser) parseCommand() (ast.Expression, error) {
	nameToken := p.curToken
	name := p.parseWord()
	cmd := &ast.Command{Token: nameToken, Name: name.Value.Inspect()}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.LPAREN) && p.curToken.Spaced {
			arg, err := p.parseGroupedExpression()
			if err != nil {
				return nil, err
			}
			if !p.curTokenIs(token.EOF) && !p.curToken.Spaced {
				return nil, p.errorAt(p.curToken, "expected whitespace after ')', got %s", p.curToken.Literal)
			}
			cmd.Args = append(cmd.Args, arg)
			continue
		}
		cmd.Args = append(cmd.Args, p.parseWord())
	}

	return cmd, nil
}

// parseWord joins the current token with every token glued to it, so text the
// lexer split apart (`-la`, `a/b`) is passed on verbatim.
func (p *Parser) parseWord() *ast.Literal {
	first := p.curToken
	var word strings.Builder
	word.WriteString(first.Literal)
	p.nextToken()

	for !p.curTokenIs(token.EOF) && !p.curToken.Spaced {
		word.WriteString(p.curToken.Literal)
		p.nextToken()
	}

	return &ast.Literal{Token: first, Value: object.Sym{Value: word.String()}}
}
