package typesystem

import (
	"sort"

	"github.com/funvibe/corecalc/internal/ast"
)

// Context maps names to their types. It is persistent: Extend returns a new
// scope and never touches the receiver, so a Context can be shared freely
// between concurrent checks. The nil *Context is the empty context.
type Context struct {
	name  ast.Name
	typ   Type
	outer *Context
}

// NewContext builds a context from bindings. Names are bound in sorted
// order so the result does not depend on map iteration.
func NewContext(bindings map[ast.Name]Type) *Context {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var ctx *Context
	for _, name := range names {
		ctx = ctx.Extend(name, bindings[name])
	}
	return ctx
}

// Extend returns a context in which name has type t, shadowing any outer
// binding of the same name.
func (c *Context) Extend(name ast.Name, t Type) *Context {
	return &Context{name: name, typ: t, outer: c}
}

// Lookup finds the innermost binding of name.
func (c *Context) Lookup(name ast.Name) (Type, bool) {
	for s := c; s != nil; s = s.outer {
		if s.name == name {
			return s.typ, true
		}
	}
	return nil, false
}

// Names lists the visible names, innermost first, without duplicates.
func (c *Context) Names() []ast.Name {
	seen := make(map[ast.Name]bool)
	var names []ast.Name
	for s := c; s != nil; s = s.outer {
		if !seen[s.name] {
			seen[s.name] = true
			names = append(names, s.name)
		}
	}
	return names
}
