package ir

import (
	"errors"
	"fmt"
)

// ErrUnknownOperand is returned by Resolve when a name was never declared.
var ErrUnknownOperand = errors.New("unknown operand")

// Registry maps operand names to identifiers and back.
//
// A name maps to at most one live identifier. Declaring a name again binds
// it to a fresh identifier, which models shadowing: earlier identifiers keep
// their name and type but are no longer reachable through Resolve.
//
// Identifiers are never freed, so memory grows with the number of
// declarations, not with the number of distinct names.
type Registry struct {
	seq      sequence
	byName   map[string]ID
	names    map[ID]string
	types    map[ID]string
	declared int
}

// NewRegistry creates an empty registry. The first allocated ID is 1.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]ID),
		names:  make(map[ID]string),
		types:  make(map[ID]string),
	}
}

// Allocate returns a fresh identifier without binding a name.
// Call nodes and literal values are allocated this way.
func (r *Registry) Allocate() ID {
	return r.seq.next()
}

// Declare allocates a fresh identifier for name and binds it, overwriting
// any earlier binding of the same name. An empty typ records no type.
func (r *Registry) Declare(name, typ string) ID {
	id := r.seq.next()
	r.byName[name] = id
	r.names[id] = name
	if typ != "" {
		r.types[id] = typ
	}
	r.declared++
	return id
}

// Resolve returns the identifier currently bound to name.
// Returns an error wrapping ErrUnknownOperand if name was never declared.
func (r *Registry) Resolve(name string) (ID, error) {
	id, ok := r.byName[name]
	if !ok {
		return NoID, fmt.Errorf("%w: %q", ErrUnknownOperand, name)
	}
	return id, nil
}

// TypeOf returns the type text recorded for id, if any.
func (r *Registry) TypeOf(id ID) (string, bool) {
	typ, ok := r.types[id]
	return typ, ok
}

// NameOf returns the name id was declared with, if any.
func (r *Registry) NameOf(id ID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// Name returns the declared name of id, or "" if it has none.
func (r *Registry) Name(id ID) string {
	name, _ := r.NameOf(id)
	return name
}

// Type returns the recorded type of id, or "" if it has none.
func (r *Registry) Type(id ID) string {
	typ, _ := r.TypeOf(id)
	return typ
}

// Declarations returns how many times Declare was called.
func (r *Registry) Declarations() int {
	return r.declared
}

// Last returns the most recently allocated identifier, or NoID.
func (r *Registry) Last() ID {
	return r.seq.current()
}
