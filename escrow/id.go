// Package escrow implements EscrowID, the typed handle to a live escrow,
// and the structural traversal used for linear-resource transfer and
// locator resolution (spec.md §3, §4.2, §4.3).
package escrow

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/ids"
)

// Kind discriminates the four EscrowID variants.
type Kind int

const (
	// KindDirect identifies an already-resolved entry.
	KindDirect Kind = iota
	// KindTXIn identifies a deferred call, with its argument already
	// captured in the caller's context.
	KindTXIn
	// KindTXOut identifies the result of a deferred call that has
	// completed.
	KindTXOut
	// KindLocator identifies a symbolic path, not yet resolved.
	KindLocator
)

// ID is EscrowID<A, V>: a typed handle to an escrow that accepts
// arguments of type A and returns values of type V. Go has no dependent
// pair of types to attach to one struct the way spec.md's host language
// does, so A and V are carried as ordinary type parameters -- see
// DESIGN.md's Open Question decisions.
type ID[A any, V any] struct {
	variant Kind
	entry   ids.EntryID
	arg     A
	val     V
	path    []string
}

// Direct builds a resolved reference to entry.
func Direct[A any, V any](entry ids.EntryID) ID[A, V] {
	return ID[A, V]{variant: KindDirect, entry: entry}
}

// TXIn builds a deferred call to entry with arg already captured.
func TXIn[A any, V any](entry ids.EntryID, arg A) ID[A, V] {
	return ID[A, V]{variant: KindTXIn, entry: entry, arg: arg}
}

// TXOut builds the completed result of a deferred call to entry.
func TXOut[A any, V any](entry ids.EntryID, val V) ID[A, V] {
	return ID[A, V]{variant: KindTXOut, entry: entry, val: val}
}

// NewLocator builds an unresolved symbolic reference.
func NewLocator[A any, V any](path []string) ID[A, V] {
	return ID[A, V]{variant: KindLocator, path: path}
}

// Kind reports which of the four variants id is.
func (id ID[A, V]) Kind() Kind { return id.variant }

// ErrNotEscrowOut is returned by Val when id is not the completed result
// of a deferred call (spec.md §7's escrow error taxonomy).
type ErrNotEscrowOut struct {
	Repr string
}

func (e *ErrNotEscrowOut) Error() string {
	return "not a completed escrow output: " + e.Repr
}

// Entry returns the backing entry ID, or ErrUnresolvedLocator if id is a
// Locator.
func (id ID[A, V]) Entry() (ids.EntryID, error) {
	if id.variant == KindLocator {
		return ids.EntryID{}, &ErrUnresolvedLocator{Path: id.path}
	}
	return id.entry, nil
}

// Arg returns the captured argument of a TXIn id.
func (id ID[A, V]) Arg() (A, bool) {
	if id.variant != KindTXIn {
		var zero A
		return zero, false
	}
	return id.arg, true
}

// Val returns the completed value of a TXOut id, or ErrNotEscrowOut if id
// is not the result of a completed deferred call.
func (id ID[A, V]) Val() (V, error) {
	if id.variant != KindTXOut {
		var zero V
		return zero, &ErrNotEscrowOut{Repr: id.String()}
	}
	return id.val, nil
}

// Locator returns the path of a Locator id.
func (id ID[A, V]) Locator() (Locator, bool) {
	if id.variant != KindLocator {
		return Locator{}, false
	}
	return Locator{Path: id.path}, true
}

// String renders id per spec.md §6: "<entryID> :: <type>" for resolved
// variants, "EscrowLocator a.b.c :: <type>" for locators.
func (id ID[A, V]) String() string {
	var v V
	typeName := fmt.Sprintf("%T", v)
	if id.variant == KindLocator {
		return Locator{Path: id.path}.String() + " :: " + typeName
	}
	return id.entry.String() + " :: " + typeName
}

// ref is the type-erased view of ID[A,V] that Traverse uses to visit
// every escrow reference in a value without knowing its A, V ahead of
// time. Every ID[A,V] instantiation satisfies it: the method signatures
// below do not vary with A or V.
type ref interface {
	Kind() Kind
	entryID() (ids.EntryID, bool)
	deferredArg() (interface{}, bool)
	locatorPath() ([]string, bool)
}

func (id ID[A, V]) entryID() (ids.EntryID, bool) {
	if id.variant == KindLocator {
		return ids.EntryID{}, false
	}
	return id.entry, true
}

func (id ID[A, V]) deferredArg() (interface{}, bool) {
	if id.variant != KindTXIn {
		return nil, false
	}
	return id.arg, true
}

func (id ID[A, V]) locatorPath() ([]string, bool) {
	if id.variant != KindLocator {
		return nil, false
	}
	return id.path, true
}
