package object

import (
	"log/slog"
	"sort"
)

// Environment maps identifier names to values. It lives for the whole REPL
// session and is owned by the single evaluating goroutine, so it is not locked.
type Environment struct {
	Bindings map[string]Value
}

func NewEnvironment() *Environment {
	slog.Debug("------ new env ------")
	return &Environment{
		Bindings: make(map[string]Value),
	}
}

func (e *Environment) Get(name string) (Value, bool) {
	val, ok := e.Bindings[name]
	return val, ok
}

// Set binds name to val, replacing any previous binding, and returns val.
func (e *Environment) Set(name string, val Value) Value {
	slog.Debug("binding", slog.String("name", name), slog.String("kind", string(val.Type())))
	e.Bindings[name] = val
	return val
}

func (e *Environment) Delete(name string) bool {
	if _, ok := e.Bindings[name]; !ok {
		return false
	}
	delete(e.Bindings, name)
	return true
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.Bindings))
	for name := range e.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Len() int {
	return len(e.Bindings)
}
