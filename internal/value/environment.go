package value

import "log/slog"

// Environment is a single flat frame. There is no outer chain: callers hand
// functions a Duplicate of the frame, so mutation never leaks upward.
type Environment struct {
	store map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name string, val Value) {
	slog.Debug("binding name", "name", name, "type", val.Type())
	e.store[name] = val
}

// Duplicate deep-copies the frame; list values are copied so the two frames
// share nothing mutable.
func (e *Environment) Duplicate() *Environment {
	dup := &Environment{store: make(map[string]Value, len(e.store))}
	for name, val := range e.store {
		dup.store[name] = Copy(val)
	}
	return dup
}

func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	return names
}
