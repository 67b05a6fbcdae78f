package lang

import (
	"iter"
	"maps"
	"slices"
)

type binding struct {
	value    Value
	constant bool
}

// Environment maps names to values. A name declared constant can never be
// rebound.
//
// An Environment is not safe for concurrent use. Statements that should see
// each other's bindings (a multi-file run, a REPL session) share one.
type Environment struct {
	vars map[string]binding
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]binding)}
}

// Lookup returns the value bound to name.
func (e *Environment) Lookup(name string) (Value, bool) {
	b, ok := e.vars[name]

	return b.value, ok
}

// Declare binds name to value, replacing any existing binding. If constant
// is set the name can never be rebound. Rebinding a constant fails with
// [ErrConstantModified] and leaves the environment unchanged.
func (e *Environment) Declare(name string, value Value, constant bool) error {
	if e.IsConst(name) {
		return ErrConstantModified.Detail("'%s'", name)
	}

	if e.vars == nil {
		e.vars = make(map[string]binding)
	}

	e.vars[name] = binding{value: value, constant: constant}

	return nil
}

// IsConst reports whether name is bound as a constant.
func (e *Environment) IsConst(name string) bool {
	return e.vars[name].constant
}

// Len returns the number of bound names.
func (e *Environment) Len() int { return len(e.vars) }

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// All iterates over the bindings in name order.
func (e *Environment) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range e.Names() {
			if !yield(name, e.vars[name].value) {
				return
			}
		}
	}
}
