package evaluator

import (
	"sort"

	"github.com/funvibe/corecalc/internal/ast"
	"github.com/funvibe/corecalc/internal/typesystem"
)

// Env maps names to values. Like typesystem.Context it is a persistent
// chain of bindings: Extend never mutates, and the nil *Env is empty.
type Env struct {
	name  ast.Name
	value typesystem.Value
	outer *Env
}

// NewEnvironment builds an environment from bindings, binding names in
// sorted order.
func NewEnvironment(bindings map[ast.Name]typesystem.Value) *Env {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var env *Env
	for _, name := range names {
		env = env.Extend(name, bindings[name])
	}
	return env
}

// Extend returns an environment with name bound to val.
func (e *Env) Extend(name ast.Name, val typesystem.Value) *Env {
	return &Env{name: name, value: val, outer: e}
}

func (e *Env) Get(name ast.Name) (typesystem.Value, bool) {
	for s := e; s != nil; s = s.outer {
		if s.name == name {
			return s.value, true
		}
	}
	return nil, false
}

// GetStore flattens the visible bindings into a map.
func (e *Env) GetStore() map[ast.Name]typesystem.Value {
	store := make(map[ast.Name]typesystem.Value)
	for s := e; s != nil; s = s.outer {
		if _, shadowed := store[s.name]; !shadowed {
			store[s.name] = s.value
		}
	}
	return store
}
