package object

import (
	"fmt"
	"strconv"
)

// Kind names a runtime value variant as it is shown to the user.
type Kind string

const (
	NUM_OBJ  Kind = "Num"
	BOOL_OBJ Kind = "Bool"
	SYM_OBJ  Kind = "Sym"
	NIL_OBJ  Kind = "Nil"
)

var (
	NIL   = Nil{}
	TRUE  = Bool{Value: true}
	FALSE = Bool{Value: false}
)

// Value is the result of evaluating an expression. All variants are plain
// values, so every copy handed to a caller is independently owned.
type Value interface {
	Type() Kind
	Inspect() string
}

type Num struct {
	Value int64
}

func (n Num) Type() Kind      { return NUM_OBJ }
func (n Num) Inspect() string { return strconv.FormatInt(n.Value, 10) }

type Bool struct {
	Value bool
}

func (b Bool) Type() Kind      { return BOOL_OBJ }
func (b Bool) Inspect() string { return strconv.FormatBool(b.Value) }

// Sym is an uninterpreted word: command output or a bareword argument.
type Sym struct {
	Value string
}

func (s Sym) Type() Kind      { return SYM_OBJ }
func (s Sym) Inspect() string { return s.Value }

type Nil struct{}

func (n Nil) Type() Kind      { return NIL_OBJ }
func (n Nil) Inspect() string { return "nil" }

func NativeBoolToBool(input bool) Bool {
	if input {
		return TRUE
	}
	return FALSE
}

// Format renders a value the way the REPL prints it, e.g. "7 : Num".
func Format(v Value) string {
	return fmt.Sprintf("%s : %s", v.Inspect(), v.Type())
}

// Stringify converts a value into a command-line argument. Nil becomes the
// empty string.
func Stringify(v Value) string {
	if v.Type() == NIL_OBJ {
		return ""
	}
	return v.Inspect()
}

// Equal reports whether two values are of the same kind and hold the same data.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case Num:
		return a.Value == b.(Num).Value
	case Bool:
		return a.Value == b.(Bool).Value
	case Sym:
		return a.Value == b.(Sym).Value
	case Nil:
		return true
	default:
		return false
	}
}
