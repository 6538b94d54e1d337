package escrow

import (
	"fmt"
	"reflect"

	"github.com/therewillbecode/Fae-1/errors"
)

// Dynamic is the universal carrier a contract call's argument and return
// value travel as at the wire/engine boundary -- see DESIGN.md's Open
// Question decisions on EscrowID static typing. It pairs a value with the
// static type it was declared as, so a later consumer can check that an
// incoming value matches what it expects (BadArgType) without the engine
// itself knowing anything about user-defined contract types.
type Dynamic struct {
	typ reflect.Type
	val interface{}
}

// NewDynamic wraps v, recording its concrete type.
func NewDynamic(v interface{}) Dynamic {
	return Dynamic{typ: reflect.TypeOf(v), val: v}
}

// Type returns the static type this Dynamic was declared with.
func (d Dynamic) Type() reflect.Type { return d.typ }

// Interface returns the underlying value, type-erased.
func (d Dynamic) Interface() interface{} { return d.val }

// ErrBadArgType is returned when a Dynamic's runtime type does not match
// the type a consumer expected.
type ErrBadArgType struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *ErrBadArgType) Error() string {
	return fmt.Sprintf("bad argument type: expected %s, got %s", e.Expected, e.Actual)
}

// As reconstructs d into out, which must be a non-nil pointer to the
// expected type. It fails with ErrBadArgType if d's declared type does
// not match.
func (d Dynamic) As(out interface{}) error {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.IsNil() {
		return errors.New("escrow: As requires a non-nil pointer")
	}
	want := outVal.Elem().Type()
	if d.typ != want {
		return &ErrBadArgType{Expected: want, Actual: d.typ}
	}
	outVal.Elem().Set(reflect.ValueOf(d.val))
	return nil
}
