package object

import "testing"

func TestInspectAndFormat(t *testing.T) {
	tests := []struct {
		value   Value
		inspect string
		format  string
	}{
		{Num{Value: 7}, "7", "7 : Num"},
		{Num{Value: -42}, "-42", "-42 : Num"},
		{TRUE, "true", "true : Bool"},
		{FALSE, "false", "false : Bool"},
		{Sym{Value: "hello"}, "hello", "hello : Sym"},
		{NIL, "nil", "nil : Nil"},
	}

	for _, tt := range tests {
		if got := tt.value.Inspect(); got != tt.inspect {
			t.Errorf("Inspect() = %q, want %q", got, tt.inspect)
		}
		if got := Format(tt.value); got != tt.format {
			t.Errorf("Format() = %q, want %q", got, tt.format)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Num{Value: 12}, "12"},
		{TRUE, "true"},
		{FALSE, "false"},
		{Sym{Value: "-la"}, "-la"},
		{NIL, ""},
	}

	for _, tt := range tests {
		if got := Stringify(tt.value); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Num{Value: 1}, Num{Value: 1}) {
		t.Errorf("equal numbers compare unequal")
	}
	if Equal(Num{Value: 1}, Num{Value: 2}) {
		t.Errorf("different numbers compare equal")
	}
	if !Equal(TRUE, NativeBoolToBool(true)) {
		t.Errorf("true does not equal true")
	}
	if Equal(Num{Value: 1}, TRUE) {
		t.Errorf("values of different kinds compare equal")
	}
	if !Equal(Sym{Value: "a"}, Sym{Value: "a"}) {
		t.Errorf("syms with same content compare unequal")
	}
	if !Equal(NIL, Nil{}) {
		t.Errorf("nil does not equal nil")
	}
}

func TestValuesAreCopies(t *testing.T) {
	original := Num{Value: 5}
	var v Value = original
	original.Value = 6

	if v.(Num).Value != 5 {
		t.Errorf("value shares state with its source, got %d", v.(Num).Value)
	}
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()

	if _, ok := env.Get("x"); ok {
		t.Fatalf("new environment has a binding for x")
	}

	env.Set("x", Num{Value: 1})
	env.Set("a", TRUE)
	env.Set("x", Num{Value: 2})

	val, ok := env.Get("x")
	if !ok || !Equal(val, Num{Value: 2}) {
		t.Errorf("Get(x) = %v, %t; want 2, true", val, ok)
	}

	names := env.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "x" {
		t.Errorf("Names() = %v, want [a x]", names)
	}

	if !env.Delete("a") || env.Delete("a") {
		t.Errorf("Delete did not report removal correctly")
	}
	if env.Len() != 1 {
		t.Errorf("Len() = %d, want 1", env.Len())
	}
}
