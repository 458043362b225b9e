package ast

import (
	"bytes"
	"rush/internal/object"
	"rush/internal/token"
	"strings"
)

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

type Expression interface {
	Node
	expressionNode()
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mult
	Div
	Mod
	Lt
	Gt
	Lte
	Gte
	Eq
	Neq
	And
	Or
)

var binaryOpSymbols = [...]string{"+", "-", "*", "/", "%", "<", ">", "<=", ">=", "==", "!=", "&&", "||"}
var binaryOpNames = [...]string{"Add", "Sub", "Mult", "Div", "Mod", "Lt", "Gt", "Lte", "Gte", "Eq", "Neq", "And", "Or"}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Name returns the operator's symbolic name, e.g. "Mult".
func (op BinaryOp) Name() string { return binaryOpNames[op] }

type UnaryOp int

const (
	Negate UnaryOp = iota
	Inverse
)

var unaryOpSymbols = [...]string{"-", "!"}
var unaryOpNames = [...]string{"Negate", "Inverse"}

func (op UnaryOp) String() string { return unaryOpSymbols[op] }
func (op UnaryOp) Name() string   { return unaryOpNames[op] }

type Literal struct {
	Token token.Token
	Value object.Value
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string       { return l.Value.Inspect() }

type Binary struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator BinaryOp
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator.String() + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")

	return out.String()
}

type Unary struct {
	Token    token.Token // the prefix token, '-' or '!'
	Operator UnaryOp
	Operand  Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) String() string {
	return "(" + u.Operator.String() + u.Operand.String() + ")"
}

// If always carries both branches; a missing one is rejected by the parser.
type If struct {
	Token      token.Token // the 'if' token
	Condition  Expression
	ThenBranch Expression
	ElseBranch Expression
}

func (ie *If) expressionNode()      {}
func (ie *If) TokenLiteral() string { return ie.Token.Literal }
func (ie *If) String() string {
	var out bytes.Buffer

	out.WriteString("(if ")
	out.WriteString(ie.Condition.String())
	out.WriteString(" then ")
	out.WriteString(ie.ThenBranch.String())
	out.WriteString(" else ")
	out.WriteString(ie.ElseBranch.String())
	out.WriteString(")")

	return out.String()
}

// Command invokes an external program with positional arguments.
type Command struct {
	Token token.Token // the command name token
	Name  string
	Args  []Expression
}

func (c *Command) expressionNode()      {}
func (c *Command) TokenLiteral() string { return c.Token.Literal }
func (c *Command) String() string {
	parts := []string{c.Name}
	for _, a := range c.Args {
		if lit, ok := a.(*Literal); ok && lit.Value.Type() == object.SYM_OBJ {
			parts = append(parts, a.String())
		} else {
			parts = append(parts, "("+a.String()+")")
		}
	}
	return strings.Join(parts, " ")
}

// Empty is the expression of a blank segment.
type Empty struct{}

func (e *Empty) expressionNode()      {}
func (e *Empty) TokenLiteral() string { return "" }
func (e *Empty) String() string       { return "" }
